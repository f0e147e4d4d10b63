package lint

import (
	"strings"
	"testing"
)

func TestValidate_CleanFile(t *testing.T) {
	source := `syntax = "proto3";
package example.v1;

// A user of the system.
message User {
  string id = 1;
  string display_name = 2;
}

enum UserState {
  USER_STATE_UNSPECIFIED = 0;
  USER_STATE_ACTIVE = 1;
}
`
	report := Validate(source)
	if !report.Valid {
		t.Fatalf("expected valid report, got errors %v", report.Errors)
	}
	if len(report.Errors) != 0 {
		t.Errorf("expected no errors, got %v", report.Errors)
	}
}

func TestValidate_NamingScenario(t *testing.T) {
	source := "syntax = \"proto3\";\npackage example;\n\nmessage foo {\n  string Name = 1;\n}\n"

	report := Validate(source)

	rules := make(map[string]int)
	for _, issue := range report.Errors {
		rules[issue.Rule]++
	}

	if rules[RuleMessageNamePascalCase] != 1 {
		t.Errorf("message-name-pascal-case errors = %d, want 1", rules[RuleMessageNamePascalCase])
	}
	if rules[RuleFieldNameSnakeCase] != 1 {
		t.Errorf("field-name-snake-case errors = %d, want 1", rules[RuleFieldNameSnakeCase])
	}
	if rules[RuleSyntaxDeclaration] != 0 || rules[RulePackageDeclaration] != 0 {
		t.Errorf("unexpected declaration errors: %v", rules)
	}
}

func TestValidate_MissingBraceScenario(t *testing.T) {
	report := Validate("message Foo string name = 1; }")

	found := false
	for _, issue := range report.Errors {
		if issue.Rule == RuleSyntaxError && issue.Line == 1 && strings.Contains(issue.Message, "opening brace") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a syntax-error issue for the missing opening brace on line 1, got %v", report.Errors)
	}
}

func TestValidate_ValidIffNoErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"clean", "syntax = \"proto3\";\npackage a;\n"},
		{"only warnings", "syntax = \"proto3\";\n"},
		{"errors", "message foo {\n"},
		{"binary garbage", "\x00\x01\x02 {{{ ;;; }}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.source)
			if report.Valid != (len(report.Errors) == 0) {
				t.Errorf("Valid = %v with %d errors", report.Valid, len(report.Errors))
			}
		})
	}
}

func TestValidate_IssuesAreSorted(t *testing.T) {
	source := "message zz_bad {\n  string BadName = 1;\n  string AlsoBad = 2;\n}\nmessage also_bad {\n}\n"

	report := Validate(source)

	for _, issues := range [][]Issue{report.Errors, report.Warnings, report.Info} {
		for i := 1; i < len(issues); i++ {
			prev, cur := issues[i-1], issues[i]
			if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
				t.Errorf("issues out of order: %v before %v", prev, cur)
			}
		}
	}
}

func TestValidate_PartitionIsExhaustive(t *testing.T) {
	source := "package a;\nsyntax = \"proto3\";\nmessage foo {\n  string Name = 1\n}\n" + strings.Repeat("x", 90)

	report := Validate(source)

	total := len(report.Errors) + len(report.Warnings) + len(report.Info)
	if total != len(report.AllIssues()) {
		t.Errorf("partition not exhaustive: %d partitioned, %d total", total, len(report.AllIssues()))
	}
	for _, issue := range report.Errors {
		if issue.Severity != SeverityError {
			t.Errorf("non-error severity in errors: %v", issue)
		}
	}
	for _, issue := range report.Warnings {
		if issue.Severity != SeverityWarning {
			t.Errorf("non-warning severity in warnings: %v", issue)
		}
	}
}

func TestValidate_EnumFirstValueScenario(t *testing.T) {
	good := "syntax = \"proto3\";\npackage a;\nenum Status {\n  STATUS_UNSPECIFIED = 0;\n  STATUS_OK = 1;\n}\n"
	if issues := issuesForRule(Validate(good).Errors, RuleEnumFirstValueUnspecified); len(issues) != 0 {
		t.Errorf("unexpected enum-first-value issues: %v", issues)
	}

	bad := strings.Replace(good, "STATUS_UNSPECIFIED = 0", "STATUS_UNSPECIFIED = 1", 1)
	if issues := issuesForRule(Validate(bad).Errors, RuleEnumFirstValueUnspecified); len(issues) != 1 {
		t.Errorf("expected one enum-first-value issue, got %v", issues)
	}
}

func TestValidate_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"}}}}}}",
		"{{{{{{",
		strings.Repeat("message A {\n", 100),
		"syntax = \"proto3\";\n" + strings.Repeat("\x00", 1000),
		"enum {\n = 1;\n}",
	}
	for _, input := range inputs {
		report := Validate(input)
		if report == nil {
			t.Fatal("Validate returned nil")
		}
	}
}

func TestReport_Filter(t *testing.T) {
	source := "message foo {\n}\n"
	report := Validate(source)
	if len(issuesForRule(report.Errors, RuleMessageNamePascalCase)) == 0 {
		t.Fatal("expected a naming error to filter")
	}

	filtered := report.Filter(&Options{Ignore: []string{RuleMessageNamePascalCase, RuleSyntaxDeclaration, RuleSyntaxError}})
	if len(issuesForRule(filtered.Errors, RuleMessageNamePascalCase)) != 0 {
		t.Error("ignored rule still present after filtering")
	}
	if !filtered.Valid {
		t.Errorf("expected filtered report to be valid, errors: %v", filtered.Errors)
	}
}

func TestLoadOptionsFromDir_Defaults(t *testing.T) {
	opts, err := LoadOptionsFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MaxLineLength != MaxLineLength {
		t.Errorf("MaxLineLength = %d, want %d", opts.MaxLineLength, MaxLineLength)
	}
}
