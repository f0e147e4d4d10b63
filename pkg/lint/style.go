package lint

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// enumValue is one recognized value line inside an enum block
type enumValue struct {
	name   string
	number int
	line   int
}

// enumAccumulator collects value lines for the enum currently open so the
// first-value check can run when the block closes.
type enumAccumulator struct {
	name        string
	startLine   int
	depthAtOpen int
	values      []enumValue
}

// styleChecker is the style pass. It carries much lighter state than the
// structural scanner: a previous-line-comment flag, open-brace depth, an
// in-service marker, the current enum accumulator, and import ordering.
type styleChecker struct {
	issues          []Issue
	prevComment     bool
	inBlockComment  bool
	depth           int
	enum            *enumAccumulator
	inService       bool
	serviceDepth    int
	seenSyntax      bool
	syntaxLine      int
	seenPackage     bool
	packageLine     int
	seenPlainImport bool
}

// checkStyle runs the style guide rules over the source. It is independent
// of the structural pass: a malformed file is still checked for style in
// the parts that are recognizable.
func checkStyle(source string, lines []string) []Issue {
	c := &styleChecker{issues: make([]Issue, 0)}
	for i, raw := range lines {
		c.checkLine(i+1, raw)
	}

	if source != "" && !strings.HasSuffix(source, "\n") {
		c.add(len(lines), 1, RuleTrailingNewline, SeverityWarning, "file does not end with a newline")
	}
	if !c.seenSyntax {
		c.add(1, 1, RuleSyntaxDeclaration, SeverityError, "file is missing a syntax declaration")
	}
	if !c.seenPackage {
		c.add(1, 1, RulePackageDeclaration, SeverityWarning, "file is missing a package declaration")
	}
	if c.seenSyntax && c.seenPackage && c.packageLine < c.syntaxLine {
		c.add(c.packageLine, 1, RuleFileStructure, SeverityError, "package declaration must come after the syntax declaration")
	}

	return c.issues
}

func (c *styleChecker) checkLine(lineNo int, raw string) {
	if utf8.RuneCountInString(raw) > MaxLineLength {
		c.add(lineNo, MaxLineLength+1, RuleMaxLineLength, SeverityWarning,
			fmt.Sprintf("line exceeds %d characters", MaxLineLength))
	}

	line := strings.TrimSpace(raw)

	if c.inBlockComment {
		if strings.Contains(line, "*/") {
			c.inBlockComment = false
		}
		c.prevComment = true
		return
	}
	if line == "" {
		c.prevComment = false
		return
	}
	if isCommentLine(line) {
		if strings.HasPrefix(line, "/*") && !strings.Contains(line, "*/") {
			c.inBlockComment = true
		}
		c.prevComment = true
		return
	}

	code := stripTrailingComment(line)
	if code == "" {
		c.prevComment = false
		return
	}

	switch {
	case hasKeyword(code, "syntax"):
		if !c.seenSyntax {
			c.seenSyntax = true
			c.syntaxLine = lineNo
		}
	case strings.HasPrefix(code, "package "):
		if !c.seenPackage {
			c.seenPackage = true
			c.packageLine = lineNo
		}
	case importRe.MatchString(code):
		m := importRe.FindStringSubmatch(code)
		public := m[1] != ""
		if public && c.seenPlainImport {
			c.add(lineNo, 1, RuleImportOrdering, SeverityWarning, "public imports should be grouped before plain imports")
		}
		if !public {
			c.seenPlainImport = true
		}
	case strings.HasPrefix(code, "message "):
		if name := declaredName(code, "message"); name != "" && !pascalCaseRe.MatchString(name) {
			c.add(lineNo, 1, RuleMessageNamePascalCase, SeverityError,
				fmt.Sprintf("message name %q should be PascalCase", name))
		}
	case strings.HasPrefix(code, "enum "):
		name := declaredName(code, "enum")
		if name != "" && !pascalCaseRe.MatchString(name) {
			c.add(lineNo, 1, RuleEnumNamePascalCase, SeverityError,
				fmt.Sprintf("enum name %q should be PascalCase", name))
		}
		c.enum = &enumAccumulator{name: name, startLine: lineNo, depthAtOpen: c.depth}
	case strings.HasPrefix(code, "service "):
		if !c.prevComment {
			c.add(lineNo, 1, RuleServiceComment, SeverityWarning, "service declarations should be preceded by a comment")
		}
		c.inService = true
		c.serviceDepth = c.depth
	case c.inService && strings.HasPrefix(code, "rpc "):
		if !c.prevComment {
			c.add(lineNo, 1, RuleRPCComment, SeverityWarning, "rpc declarations should be preceded by a comment")
		}
	case c.enum != nil && !hasKeyword(code, "option") && !hasKeyword(code, "reserved"):
		if m := enumValueShapeRe.FindStringSubmatch(code); m != nil {
			number, _ := strconv.Atoi(m[2])
			c.enum.values = append(c.enum.values, enumValue{name: m[1], number: number, line: lineNo})
			if !upperSnakeCaseRe.MatchString(m[1]) {
				c.add(lineNo, 1, RuleEnumValueUpperSnakeCase, SeverityError,
					fmt.Sprintf("enum value %q should be UPPER_SNAKE_CASE", m[1]))
			}
		}
	case c.depth > 0 && !c.inService && c.enum == nil && isFieldCandidate(code):
		if m := fieldDeclRe.FindStringSubmatch(code); m != nil && !snakeCaseRe.MatchString(m[1]) {
			c.add(lineNo, 1, RuleFieldNameSnakeCase, SeverityError,
				fmt.Sprintf("field name %q should be snake_case", m[1]))
		}
	}

	c.trackDepth(code)
	c.prevComment = false
}

// trackDepth updates brace depth and fires the block-close checks for the
// enum accumulator and the in-service flag.
func (c *styleChecker) trackDepth(code string) {
	c.depth += strings.Count(code, "{")
	for i := 0; i < strings.Count(code, "}"); i++ {
		if c.depth > 0 {
			c.depth--
		}
		if c.enum != nil && c.depth == c.enum.depthAtOpen {
			c.closeEnum()
		}
		if c.inService && c.depth == c.serviceDepth {
			c.inService = false
		}
	}
}

// closeEnum validates the accumulated values once the enum block closes.
// An empty enum has nothing to judge; the structural pass owns that case.
func (c *styleChecker) closeEnum() {
	accumulated := c.enum
	c.enum = nil
	if len(accumulated.values) == 0 {
		return
	}
	first := accumulated.values[0]
	if first.number != 0 || !strings.HasSuffix(first.name, "UNSPECIFIED") {
		c.add(accumulated.startLine, 1, RuleEnumFirstValueUnspecified, SeverityError,
			fmt.Sprintf("first value of enum %q should be an UNSPECIFIED value numbered 0", accumulated.name))
	}
}

func (c *styleChecker) add(line, column int, rule string, severity Severity, message string) {
	c.issues = append(c.issues, Issue{
		Line:     line,
		Column:   column,
		Rule:     rule,
		Message:  message,
		Severity: severity,
	})
}

// declaredName extracts the identifier declared after a block keyword
func declaredName(code, keyword string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(code, keyword))
	for i, r := range rest {
		if r == ' ' || r == '\t' || r == '{' {
			return rest[:i]
		}
	}
	return rest
}

// isFieldCandidate filters out statements that share the field line shape
// but are never fields
func isFieldCandidate(code string) bool {
	for _, kw := range []string{"option", "reserved", "oneof", "extend", "rpc", "returns", "import", "syntax", "package"} {
		if hasKeyword(code, kw) {
			return false
		}
	}
	return true
}
