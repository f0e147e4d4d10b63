package lint

import (
	"fmt"
	"strings"
)

// contextKind identifies the kind of an open structural block
type contextKind string

const (
	ctxMessage contextKind = "message"
	ctxEnum    contextKind = "enum"
	ctxService contextKind = "service"
	ctxOneof   contextKind = "oneof"
	ctxBlock   contextKind = "block"
)

// structuralContext is one entry on the scanner's context stack. The top
// of the stack governs how subsequent lines are interpreted until it is
// popped; checks never consult contexts below the top.
type structuralContext struct {
	kind     contextKind
	name     string
	openedAt int
}

// scanner is the structural pass. It detects malformations (unbalanced
// braces, missing terminators, malformed declarations) from line text plus
// the innermost open context, without building a parse tree.
type scanner struct {
	stack          []structuralContext
	pending        *structuralContext // opener without '{', awaiting a lone brace
	inBlockComment bool
	issues         []Issue
}

// scanStructure runs the structural pass over the line list
func scanStructure(lines []string) []Issue {
	s := &scanner{issues: make([]Issue, 0)}
	for i, raw := range lines {
		s.scanLine(i+1, raw)
	}
	s.finish()
	return s.issues
}

func (s *scanner) scanLine(lineNo int, raw string) {
	line := strings.TrimSpace(raw)

	if s.inBlockComment {
		if strings.Contains(line, "*/") {
			s.inBlockComment = false
		}
		return
	}
	if line == "" {
		return
	}

	// An opener that had no inline '{' requires the very next non-blank
	// line to be a lone brace. Anything else, comments included, means the
	// block is reported as missing its opening brace.
	if s.pending != nil {
		if line == "{" {
			s.stack = append(s.stack, *s.pending)
			s.pending = nil
			return
		}
		s.missingBrace(s.pending)
		s.pending = nil
	}

	if isCommentLine(line) {
		if strings.HasPrefix(line, "/*") && !strings.Contains(line, "*/") {
			s.inBlockComment = true
		}
		return
	}

	if idx := strings.Index(line, "/*"); idx >= 0 && !strings.Contains(line[idx:], "*/") {
		s.inBlockComment = true
	}
	line = stripTrailingComment(line)
	if line == "" {
		return
	}

	s.checkTrailingContent(lineNo, line)

	if m := blockOpenerRe.FindStringSubmatch(line); m != nil {
		kind := contextKind(m[1])
		name := m[2]
		if name == "" {
			s.errorf(lineNo, "%s declaration is missing a name", kind)
		}
		opened := &structuralContext{kind: kind, name: name, openedAt: lineNo}
		if !strings.Contains(line, "{") {
			s.pending = opened
			return
		}
		s.consumeBraces(lineNo, line, opened)
		return
	}

	top := s.top()

	switch {
	case hasKeyword(line, "syntax"):
		if m := syntaxValueRe.FindStringSubmatch(line); m != nil && m[1] != "proto2" && m[1] != "proto3" {
			s.errorf(lineNo, "invalid syntax value %q, expected \"proto2\" or \"proto3\"", m[1])
		}
		s.requireSemicolon(lineNo, line)
	case hasKeyword(line, "package"), hasKeyword(line, "import"), hasKeyword(line, "option"):
		s.requireSemicolon(lineNo, line)
	case hasKeyword(line, "reserved"):
		// reserved statements are exempt from field and enum value checks
	case top != nil && top.kind == ctxService && hasKeyword(line, "rpc"):
		if !rpcShapeRe.MatchString(line) {
			s.errorf(lineNo, "malformed rpc declaration, expected rpc Name(Request) returns (Response)")
		}
	case top != nil && (top.kind == ctxMessage || top.kind == ctxOneof):
		s.checkFieldLine(lineNo, line)
	case top != nil && top.kind == ctxEnum:
		s.checkEnumValueLine(lineNo, line)
	case top == nil:
		if !isKnownTopLevel(line) {
			s.errorf(lineNo, "unrecognized top-level statement")
		}
	}

	s.consumeBraces(lineNo, line, nil)
}

// finish reports the opener still awaiting its body plus every context
// left open at end of input, attributed to their opening lines.
func (s *scanner) finish() {
	if s.pending != nil {
		s.missingBrace(s.pending)
		s.pending = nil
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		ctx := s.stack[i]
		if ctx.name != "" {
			s.errorf(ctx.openedAt, "unclosed %s %q", ctx.kind, ctx.name)
		} else {
			s.errorf(ctx.openedAt, "unclosed %s", ctx.kind)
		}
	}
	s.stack = s.stack[:0]
}

// consumeBraces walks the braces of one line in order. The first '{' binds
// to the recognized opener when one was passed in; every other '{' opens an
// anonymous block. A '}' with an empty stack is an unexpected close.
func (s *scanner) consumeBraces(lineNo int, line string, named *structuralContext) {
	for _, ch := range line {
		switch ch {
		case '{':
			if named != nil {
				s.stack = append(s.stack, *named)
				named = nil
			} else {
				s.stack = append(s.stack, structuralContext{kind: ctxBlock, openedAt: lineNo})
			}
		case '}':
			if len(s.stack) == 0 {
				s.errorf(lineNo, "unexpected closing brace")
			} else {
				s.stack = s.stack[:len(s.stack)-1]
			}
		}
	}
}

func (s *scanner) checkFieldLine(lineNo int, line string) {
	if !fieldShapeRe.MatchString(line) {
		return
	}
	if fieldFullRe.MatchString(line) {
		return
	}
	if fieldNumRe.MatchString(line) {
		s.errorf(lineNo, "field is missing a trailing semicolon")
	} else {
		s.errorf(lineNo, "field is missing a valid field number")
	}
}

func (s *scanner) checkEnumValueLine(lineNo int, line string) {
	if !strings.ContainsAny(line, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_") {
		return
	}
	if line == "}" || line == "};" || line == "{" {
		return
	}
	if enumValueFullRe.MatchString(line) {
		return
	}
	if enumValueNumRe.MatchString(line) {
		s.errorf(lineNo, "enum value is missing a trailing semicolon")
	} else {
		s.errorf(lineNo, "enum value is missing a valid number")
	}
}

func (s *scanner) checkTrailingContent(lineNo int, line string) {
	idx := strings.Index(line, ";")
	if idx < 0 {
		return
	}
	rest := strings.TrimSpace(line[idx+1:])
	if rest == "" || rest == "}" || rest == "};" {
		return
	}
	s.errorf(lineNo, "unexpected content after ';'")
}

func (s *scanner) requireSemicolon(lineNo int, line string) {
	if !strings.Contains(line, ";") && !strings.Contains(line, "{") {
		s.errorf(lineNo, "statement is missing a trailing semicolon")
	}
}

func (s *scanner) top() *structuralContext {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) missingBrace(ctx *structuralContext) {
	if ctx.name != "" {
		s.errorf(ctx.openedAt, "%s %q is missing its opening brace", ctx.kind, ctx.name)
	} else {
		s.errorf(ctx.openedAt, "%s is missing its opening brace", ctx.kind)
	}
}

func (s *scanner) errorf(lineNo int, format string, args ...interface{}) {
	s.issues = append(s.issues, Issue{
		Line:     lineNo,
		Column:   1,
		Rule:     RuleSyntaxError,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
	})
}

var topLevelKeywords = []string{"syntax", "package", "import", "option", "message", "enum", "service", "extend"}

func isKnownTopLevel(line string) bool {
	if line == "{" || line == "}" || line == "};" {
		return true
	}
	for _, kw := range topLevelKeywords {
		if hasKeyword(line, kw) {
			return true
		}
	}
	return false
}

// hasKeyword reports whether a line starts with kw as a whole word
func hasKeyword(line, kw string) bool {
	if !strings.HasPrefix(line, kw) {
		return false
	}
	if len(line) == len(kw) {
		return true
	}
	switch line[len(kw)] {
	case ' ', '\t', '=', ';', '"':
		return true
	}
	return false
}

// isCommentLine reports whether a trimmed line is purely a comment
func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*")
}

// stripTrailingComment removes a same-line comment from the end of a line
// of code. Heuristic: comment markers inside string literals are rare in
// proto sources and are not special-cased.
func stripTrailingComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	if start := strings.Index(line, "/*"); start >= 0 {
		if end := strings.Index(line[start:], "*/"); end >= 0 {
			line = line[:start] + line[start+end+2:]
		} else {
			line = line[:start]
		}
	}
	return strings.TrimSpace(line)
}
