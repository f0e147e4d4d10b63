package format

import (
	"fmt"
	"regexp"
	"strings"
)

// category classifies one output line of the formatter
type category int

const (
	catSyntax category = iota
	catPackage
	catImport
	catOption
	catComment
	catBlock
	catRPC
	catField
	catEnumVal
	catReserved
	catClose
	catOther
)

// token is one output line: normalized text without indentation, the
// nesting depth it renders at, and its category for blank-line policy
type token struct {
	text     string
	depth    int
	category category
}

var (
	splitCloseRe = regexp.MustCompile(`^(.+;)\s*(\};?)$`)
	openerRe     = regexp.MustCompile(`^(message|enum|service|oneof)\s+([A-Za-z_]\w*)\s*(\{)?$`)
	rpcRe        = regexp.MustCompile(`^rpc\s+([A-Za-z_]\w*)\s*\(\s*(stream\s+)?([A-Za-z_][\w.]*)\s*\)\s*returns\s*\(\s*(stream\s+)?([A-Za-z_][\w.]*)\s*\)\s*(;|\{)?\s*$`)
	enumValRe    = regexp.MustCompile(`^[A-Za-z_]\w*\s*=\s*-?\d+`)
	fieldRe      = regexp.MustCompile(`^(?:optional\s+|repeated\s+|required\s+)?(?:map\s*<[^>]*>|[A-Za-z_][\w.]*)\s+[A-Za-z_]\w*\s*=`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	assignRe     = regexp.MustCompile(`\s*=\s*`)
	semiRe       = regexp.MustCompile(`\s+;`)
	openBraceRe  = regexp.MustCompile(`\s*\{$`)
)

// Format re-flows proto source text into a canonical layout: normalized
// spacing per line category, two-space indentation per nesting level, and
// blank lines re-inserted between top-level sections. It never fails; for
// malformed input the result is a best-effort re-flow, not guaranteed to
// be valid protobuf. Format is idempotent and fully decoupled from
// validation.
func Format(source string) string {
	lines := presplit(strings.Split(source, "\n"))
	tokens := classify(lines)
	return render(tokens)
}

// presplit breaks `<statement;> }` lines in two so a closing brace never
// shares a line with a preceding statement
func presplit(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if m := splitCloseRe.FindStringSubmatch(trimmed); m != nil {
			out = append(out, m[1], m[2])
			continue
		}
		out = append(out, raw)
	}
	return out
}

// classify trims, categorizes, and normalizes each line while tracking
// brace depth. Blank lines are dropped here; the render pass re-inserts
// them per the adjacency policy.
func classify(lines []string) []token {
	tokens := make([]token, 0, len(lines))
	depth := 0
	inBlockComment := false

	for i := 0; i < len(lines); i++ {
		text := strings.TrimSpace(lines[i])
		if text == "" {
			continue
		}

		// block comments pass through verbatim at the current depth
		if inBlockComment {
			if strings.Contains(text, "*/") {
				inBlockComment = false
			}
			tokens = append(tokens, token{text: text, depth: depth, category: catComment})
			continue
		}
		if strings.HasPrefix(text, "/*") {
			if !strings.Contains(text, "*/") {
				inBlockComment = true
			}
			tokens = append(tokens, token{text: text, depth: depth, category: catComment})
			continue
		}
		if strings.HasPrefix(text, "//") || strings.HasPrefix(text, "*") {
			tokens = append(tokens, token{text: text, depth: depth, category: catComment})
			continue
		}

		if text == "}" || text == "};" {
			if depth > 0 {
				depth--
			}
			tokens = append(tokens, token{text: text, depth: depth, category: catClose})
			continue
		}

		if m := openerRe.FindStringSubmatch(text); m != nil {
			opener := m[1] + " " + m[2]
			if m[3] != "" {
				opener += " {"
			} else if j := nextNonBlank(lines, i+1); j >= 0 && strings.TrimSpace(lines[j]) == "{" {
				// merge the opener with its lone brace line
				opener += " {"
				i = j
			}
			tokens = append(tokens, token{text: opener, depth: depth, category: catBlock})
			if strings.HasSuffix(opener, "{") {
				depth++
			}
			continue
		}

		cat, normalized := normalize(text)
		normalized = strings.TrimRight(normalized, " \t")
		tokens = append(tokens, token{text: normalized, depth: depth, category: cat})
		if strings.HasSuffix(normalized, "{") {
			depth++
		}
	}

	return tokens
}

// normalize categorizes a statement line and applies its category's
// spacing rules
func normalize(text string) (category, string) {
	switch {
	case hasKeyword(text, "syntax"):
		return catSyntax, normalizeAssign(text)
	case hasKeyword(text, "package"):
		return catPackage, normalizeAssign(text)
	case hasKeyword(text, "import"):
		return catImport, normalizeAssign(text)
	case hasKeyword(text, "option"):
		return catOption, normalizeAssign(text)
	case hasKeyword(text, "reserved"):
		return catReserved, normalizeAssign(text)
	case hasKeyword(text, "rpc"):
		return catRPC, normalizeRPC(text)
	case hasKeyword(text, "message"), hasKeyword(text, "enum"),
		hasKeyword(text, "service"), hasKeyword(text, "oneof"):
		// opener the clean regex could not match; best-effort spacing
		return catBlock, normalizeOpener(text)
	case enumValRe.MatchString(text):
		return catEnumVal, normalizeAssign(text)
	case fieldRe.MatchString(text):
		return catField, normalizeAssign(text)
	}
	return catOther, normalizeOpener(text)
}

func normalizeAssign(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = assignRe.ReplaceAllString(text, " = ")
	return semiRe.ReplaceAllString(text, ";")
}

func normalizeOpener(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	return openBraceRe.ReplaceAllString(text, " {")
}

func normalizeRPC(text string) string {
	m := rpcRe.FindStringSubmatch(text)
	if m == nil {
		return normalizeOpener(text)
	}
	request := m[3]
	if m[2] != "" {
		request = "stream " + m[3]
	}
	response := m[5]
	if m[4] != "" {
		response = "stream " + m[5]
	}
	out := fmt.Sprintf("rpc %s(%s) returns (%s)", m[1], request, response)
	switch m[6] {
	case ";":
		out += ";"
	case "{":
		out += " {"
	}
	return out
}

// render indents each token and inserts blank lines per the adjacency
// policy. Trailing blank lines never occur; the output ends with exactly
// one newline.
func render(tokens []token) string {
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && blankBetween(tokens[i-1], tok) {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", tok.depth))
		b.WriteString(tok.text)
		b.WriteString("\n")
	}
	return b.String()
}

// blankBetween is the fixed adjacency policy, evaluated top to bottom with
// first match winning. Only the close rule applies inside block bodies.
func blankBetween(prev, cur token) bool {
	if prev.category == catClose && cur.category != catClose {
		return true
	}
	if cur.depth > 0 {
		return false
	}
	switch {
	case prev.category == catSyntax && cur.category != catSyntax:
		return true
	case prev.category == catPackage && cur.category != catPackage:
		return true
	case prev.category == catImport && cur.category != catImport:
		return true
	case prev.category == catOption && cur.category != catOption:
		return true
	case cur.category == catBlock && prev.category != catComment:
		return true
	case cur.category == catComment && prev.category != catComment &&
		prev.category != catSyntax && prev.category != catPackage &&
		prev.category != catImport && prev.category != catOption:
		return true
	}
	return false
}

func nextNonBlank(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}

func hasKeyword(line, kw string) bool {
	if !strings.HasPrefix(line, kw) {
		return false
	}
	if len(line) == len(kw) {
		return true
	}
	switch line[len(kw)] {
	case ' ', '\t', '=', ';':
		return true
	}
	return false
}
