package lint

import "sort"

// Severity indicates how serious an issue is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding reported against a source location
type Issue struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Report is the result of validating one proto source text
type Report struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
}

// buildReport merges issues from both passes into a report. Issues are
// sorted by (line, column) with a stable sort so emission order is
// preserved among ties, then partitioned by severity.
func buildReport(issues []Issue) *Report {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})

	report := &Report{
		Errors:   make([]Issue, 0),
		Warnings: make([]Issue, 0),
		Info:     make([]Issue, 0),
	}

	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			report.Errors = append(report.Errors, issue)
		case SeverityWarning:
			report.Warnings = append(report.Warnings, issue)
		default:
			report.Info = append(report.Info, issue)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

// AllIssues returns every issue in the report in (line, column) order
func (r *Report) AllIssues() []Issue {
	all := make([]Issue, 0, len(r.Errors)+len(r.Warnings)+len(r.Info))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	all = append(all, r.Info...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		return all[i].Column < all[j].Column
	})
	return all
}

// Filter returns a copy of the report with issues matching the ignored
// rules removed and validity recomputed
func (r *Report) Filter(opts *Options) *Report {
	if opts == nil || len(opts.Ignore) == 0 {
		return r
	}

	ignored := make(map[string]bool, len(opts.Ignore))
	for _, rule := range opts.Ignore {
		ignored[rule] = true
	}

	keep := func(issues []Issue) []Issue {
		kept := make([]Issue, 0, len(issues))
		for _, issue := range issues {
			if !ignored[issue.Rule] {
				kept = append(kept, issue)
			}
		}
		return kept
	}

	filtered := &Report{
		Errors:   keep(r.Errors),
		Warnings: keep(r.Warnings),
		Info:     keep(r.Info),
	}
	filtered.Valid = len(filtered.Errors) == 0
	return filtered
}
