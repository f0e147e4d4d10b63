package lint

import (
	"strings"
	"testing"
)

func structuralIssues(source string) []Issue {
	return scanStructure(strings.Split(source, "\n"))
}

func hasMessage(issues []Issue, fragment string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, fragment) {
			return true
		}
	}
	return false
}

func TestScanner_WellFormedFile(t *testing.T) {
	source := `syntax = "proto3";
package example.v1;

import "other.proto";

message User {
  string id = 1;
  repeated string tags = 2;
  map<string, string> labels = 3;

  oneof contact {
    string email = 4;
    string phone = 5;
  }
}

enum Status {
  STATUS_UNSPECIFIED = 0;
  STATUS_ACTIVE = 1;
}

service UserService {
  rpc GetUser(GetUserRequest) returns (GetUserResponse);
}
`
	issues := structuralIssues(source)
	if len(issues) != 0 {
		t.Errorf("expected no structural issues, got %v", issues)
	}
}

func TestScanner_FieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		fragment string
	}{
		{
			name:     "missing semicolon",
			source:   "message Foo {\n  string name = 1\n}",
			fragment: "missing a trailing semicolon",
		},
		{
			name:     "missing field number",
			source:   "message Foo {\n  string name;\n}",
			fragment: "missing a valid field number",
		},
		{
			name:     "missing number in oneof",
			source:   "message Foo {\n  oneof kind {\n    string a;\n  }\n}",
			fragment: "missing a valid field number",
		},
		{
			name:     "enum value missing semicolon",
			source:   "enum E {\n  E_UNSPECIFIED = 0\n}",
			fragment: "missing a trailing semicolon",
		},
		{
			name:     "enum value missing number",
			source:   "enum E {\n  E_UNSPECIFIED;\n}",
			fragment: "missing a valid number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := structuralIssues(tt.source)
			if !hasMessage(issues, tt.fragment) {
				t.Errorf("expected issue containing %q, got %v", tt.fragment, issues)
			}
		})
	}
}

func TestScanner_FieldWithOptionsIsValid(t *testing.T) {
	source := "message Foo {\n  string name = 1 [deprecated = true];\n}"
	if issues := structuralIssues(source); len(issues) != 0 {
		t.Errorf("expected no issues for field with options, got %v", issues)
	}
}

func TestScanner_OptionAndReservedExemptInsideBlocks(t *testing.T) {
	source := `message Foo {
  option deprecated = true;
  reserved 2, 15;
  reserved "old_name";
}
enum Bar {
  option allow_alias = true;
  reserved 100 to 199;
  BAR_UNSPECIFIED = 0;
}`
	if issues := structuralIssues(source); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestScanner_MissingOpeningBrace(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
	}{
		{"junk after name", "message Foo string name = 1; }", 1},
		{"next statement instead of brace", "message Foo\nstring name = 1;\n", 1},
		{"comment before brace still reported", "message Foo\n// body follows\n{\n}", 1},
		{"opener at end of input", "message Foo", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := structuralIssues(tt.source)
			found := false
			for _, issue := range issues {
				if strings.Contains(issue.Message, "opening brace") && issue.Line == tt.line {
					found = true
				}
			}
			if !found {
				t.Errorf("expected missing-brace issue on line %d, got %v", tt.line, issues)
			}
		})
	}
}

func TestScanner_BraceOnNextLineIsAccepted(t *testing.T) {
	source := "message Foo\n{\n  string name = 1;\n}"
	if issues := structuralIssues(source); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestScanner_BraceBalance(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		unclosedCount int
	}{
		{"balanced", "message A {\n  message B {\n  }\n}", 0},
		{"one unclosed", "message A {\n", 1},
		{"two unclosed", "message A {\nmessage B {\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := structuralIssues(tt.source)
			count := 0
			for _, issue := range issues {
				if strings.Contains(issue.Message, "unclosed") {
					count++
				}
			}
			if count != tt.unclosedCount {
				t.Errorf("unclosed issues = %d, want %d (%v)", count, tt.unclosedCount, issues)
			}
		})
	}
}

func TestScanner_UnexpectedClosingBrace(t *testing.T) {
	issues := structuralIssues("}\n")
	if !hasMessage(issues, "unexpected closing brace") {
		t.Errorf("expected unexpected-closing-brace issue, got %v", issues)
	}
}

func TestScanner_UnclosedReportsOpeningLine(t *testing.T) {
	issues := structuralIssues("syntax = \"proto3\";\n\nmessage Dangling {\n  string a = 1;\n")
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "unclosed") && issue.Line == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unclosed issue attributed to line 3, got %v", issues)
	}
}

func TestScanner_MalformedRPC(t *testing.T) {
	tests := []struct {
		name string
		rpc  string
		want bool
	}{
		{"valid with semicolon", "rpc Get(Req) returns (Resp);", false},
		{"valid with body", "rpc Get(Req) returns (Resp) {", false},
		{"valid streaming", "rpc Watch(Req) returns (stream Resp);", false},
		{"missing returns", "rpc Get(Req);", true},
		{"missing request parens", "rpc Get returns (Resp);", true},
		{"no terminator", "rpc Get(Req) returns (Resp)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "service S {\n  " + tt.rpc + "\n}"
			issues := structuralIssues(source)
			got := hasMessage(issues, "malformed rpc")
			if got != tt.want {
				t.Errorf("malformed rpc reported = %v, want %v (%v)", got, tt.want, issues)
			}
		})
	}
}

func TestScanner_SyntaxValue(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"proto3", `syntax = "proto3";`, false},
		{"proto2", `syntax = "proto2";`, false},
		{"unknown version", `syntax = "proto4";`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := structuralIssues(tt.source)
			got := hasMessage(issues, "invalid syntax value")
			if got != tt.want {
				t.Errorf("invalid-syntax reported = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanner_TopLevelStatements(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unrecognized statement", "this is not proto\n", "unrecognized top-level statement"},
		{"missing semicolon on import", `import "a.proto"`, "missing a trailing semicolon"},
		{"missing semicolon on package", "package foo", "missing a trailing semicolon"},
		{"trailing content", "package a; package b;", "unexpected content after ';'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := structuralIssues(tt.source)
			if !hasMessage(issues, tt.want) {
				t.Errorf("expected issue containing %q, got %v", tt.want, issues)
			}
		})
	}
}

func TestScanner_MissingBlockName(t *testing.T) {
	issues := structuralIssues("message {\n}")
	if !hasMessage(issues, "missing a name") {
		t.Errorf("expected missing-name issue, got %v", issues)
	}
}

func TestScanner_CommentsAreIgnored(t *testing.T) {
	source := `// leading comment
/* block
   comment with { braces } inside
*/
message Foo { // trailing comment
  string name = 1; /* inline */
}
`
	if issues := structuralIssues(source); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}
