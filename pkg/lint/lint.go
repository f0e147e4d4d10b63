package lint

import "strings"

// Validate checks proto source text for structural malformations and style
// guide violations. It never fails: malformed input is the expected case
// and surfaces as issues in the report, not as an error.
//
// Two independent passes walk the same physical lines. The structural
// scanner tracks a stack of open block contexts and reports lines it
// cannot interpret; the style engine reports lines it interprets fine but
// that violate a convention. Their issues are merged, sorted by
// (line, column), and partitioned by severity.
//
// All state is local to one call, so concurrent calls are safe with no
// coordination.
func Validate(source string) *Report {
	lines := strings.Split(source, "\n")

	issues := scanStructure(lines)
	issues = append(issues, checkStyle(source, lines)...)

	return buildReport(issues)
}
