// Package lint checks protobuf schema source text against Google's proto
// style guide and reports structural malformations, using line-oriented
// heuristics rather than a full grammar.
//
// # Overview
//
// Validate runs two independent single-pass checks over the same lines:
//
//   - a structural scanner that tracks a stack of open block contexts
//     (message, enum, service, oneof, anonymous block) and reports
//     unbalanced braces, missing terminators, and malformed declarations
//     under the "syntax-error" rule
//   - a style engine that applies the style guide rules: naming
//     conventions, required comments, file structure, line length,
//     trailing newline, and import ordering
//
// Every check derives from the current line's text plus the innermost open
// context, which bounds the pass to O(lines) with O(nesting) space.
//
// # Usage
//
//	report := lint.Validate(source)
//	if !report.Valid {
//		for _, issue := range report.Errors {
//			fmt.Printf("%d:%d [%s] %s\n", issue.Line, issue.Column, issue.Rule, issue.Message)
//		}
//	}
//
// # Related Packages
//
//   - pkg/format: canonical re-formatting of the same source surface
package lint
