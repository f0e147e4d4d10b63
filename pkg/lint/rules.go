package lint

import "regexp"

// Rule identifiers. The structural scanner reports everything under
// RuleSyntaxError; the remaining rules belong to the style engine.
const (
	RuleSyntaxError               = "syntax-error"
	RuleTrailingNewline           = "trailing-newline"
	RuleMaxLineLength             = "max-line-length"
	RuleSyntaxDeclaration         = "syntax-declaration"
	RulePackageDeclaration        = "package-declaration"
	RuleFileStructure             = "file-structure"
	RuleMessageNamePascalCase     = "message-name-pascal-case"
	RuleEnumNamePascalCase        = "enum-name-pascal-case"
	RuleEnumValueUpperSnakeCase   = "enum-value-upper-snake-case"
	RuleEnumFirstValueUnspecified = "enum-first-value-unspecified"
	RuleFieldNameSnakeCase        = "field-name-snake-case"
	RuleServiceComment            = "service-comment"
	RuleRPCComment                = "rpc-comment"
	RuleImportOrdering            = "import-ordering"
)

// MaxLineLength is the style guide line length limit
const MaxLineLength = 80

// RuleInfo describes one entry of the rule catalog
type RuleInfo struct {
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Catalog returns the fixed rule catalog. The returned slice is a copy;
// the catalog itself is never mutated after init.
func Catalog() []RuleInfo {
	catalog := make([]RuleInfo, len(ruleCatalog))
	copy(catalog, ruleCatalog)
	return catalog
}

var ruleCatalog = []RuleInfo{
	{RuleSyntaxError, SeverityError, "Source must be structurally well-formed (balanced braces, terminated statements, valid declarations)"},
	{RuleTrailingNewline, SeverityWarning, "Files should end with a newline"},
	{RuleMaxLineLength, SeverityWarning, "Lines should not exceed 80 characters"},
	{RuleSyntaxDeclaration, SeverityError, "Files must declare a syntax version"},
	{RulePackageDeclaration, SeverityWarning, "Files should declare a package"},
	{RuleFileStructure, SeverityError, "The syntax declaration must precede the package declaration"},
	{RuleMessageNamePascalCase, SeverityError, "Message names must be PascalCase"},
	{RuleEnumNamePascalCase, SeverityError, "Enum names must be PascalCase"},
	{RuleEnumValueUpperSnakeCase, SeverityError, "Enum value names must be UPPER_SNAKE_CASE"},
	{RuleEnumFirstValueUnspecified, SeverityError, "The first enum value must be an UNSPECIFIED value numbered 0"},
	{RuleFieldNameSnakeCase, SeverityError, "Field names must be snake_case"},
	{RuleServiceComment, SeverityWarning, "Service declarations should be preceded by a comment"},
	{RuleRPCComment, SeverityWarning, "RPC declarations should be preceded by a comment"},
	{RuleImportOrdering, SeverityWarning, "Public imports should precede plain imports"},
}

// Shared shape patterns. Compiled once at init and read-only afterwards so
// concurrent Validate calls never coordinate.
var (
	pascalCaseRe     = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	snakeCaseRe      = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	upperSnakeCaseRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)

	blockOpenerRe = regexp.MustCompile(`^(message|enum|service|oneof)\b\s*([A-Za-z_][A-Za-z0-9_]*)?`)

	// field shape: optional label, scalar/map/dotted type, identifier
	fieldShapeRe = regexp.MustCompile(`^(?:optional\s+|repeated\s+|required\s+)?(?:map\s*<[^>]*>|[A-Za-z_][\w.]*)\s+([A-Za-z_]\w*)`)
	fieldDeclRe  = regexp.MustCompile(`^(?:optional\s+|repeated\s+|required\s+)?(?:map\s*<[^>]*>|[A-Za-z_][\w.]*)\s+([A-Za-z_]\w*)\s*=`)
	fieldFullRe  = regexp.MustCompile(`=\s*\d+\s*(\[[^\]]*\])?\s*;`)
	fieldNumRe   = regexp.MustCompile(`=\s*\d+`)

	enumValueFullRe  = regexp.MustCompile(`^[A-Za-z_]\w*\s*=\s*-?\d+\s*(\[[^\]]*\])?\s*;`)
	enumValueShapeRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=\s*(-?\d+)`)
	enumValueNumRe   = regexp.MustCompile(`=\s*-?\d+`)

	rpcShapeRe = regexp.MustCompile(`^rpc\s+[A-Za-z_]\w*\s*\(\s*(stream\s+)?[A-Za-z_][\w.]*\s*\)\s*returns\s*\(\s*(stream\s+)?[A-Za-z_][\w.]*\s*\)\s*(;|\{)`)

	syntaxValueRe = regexp.MustCompile(`^syntax\s*=\s*"([^"]*)"`)
	importRe      = regexp.MustCompile(`^import\s+(public\s+)?(weak\s+)?"`)
)
