package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protovet/protovet/pkg/lint"
)

func TestNewLintCommand(t *testing.T) {
	cmd := newLintCommand()
	assert.NotNil(t, cmd)
	assert.Equal(t, "lint", cmd.Name)
	assert.Equal(t, "Lint protobuf files for style and structure", cmd.Description)
	assert.NotNil(t, cmd.Flags)
	assert.NotNil(t, cmd.Run)
}

func setupFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestFindProtoFiles(t *testing.T) {
	tests := []struct {
		name          string
		setupFiles    map[string]string
		expectedCount int
	}{
		{
			name: "single proto file",
			setupFiles: map[string]string{
				"test.proto": "syntax = \"proto3\";\n",
			},
			expectedCount: 1,
		},
		{
			name: "nested proto files",
			setupFiles: map[string]string{
				"test.proto":     "syntax = \"proto3\";\n",
				"sub/test.proto": "syntax = \"proto3\";\n",
			},
			expectedCount: 2,
		},
		{
			name: "skips hidden and vendor directories",
			setupFiles: map[string]string{
				"test.proto":            "syntax = \"proto3\";\n",
				".git/hidden.proto":     "syntax = \"proto3\";\n",
				"vendor/dep.proto":      "syntax = \"proto3\";\n",
				"third_party/ext.proto": "syntax = \"proto3\";\n",
			},
			expectedCount: 1,
		},
		{
			name: "ignores non-proto files",
			setupFiles: map[string]string{
				"test.proto": "syntax = \"proto3\";\n",
				"README.md":  "# readme\n",
			},
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupFiles(t, tt.setupFiles)

			files, err := findProtoFiles(dir)
			require.NoError(t, err)
			assert.Len(t, files, tt.expectedCount)
		})
	}
}

func TestLintFiles(t *testing.T) {
	dir := setupFiles(t, map[string]string{
		"good.proto": "syntax = \"proto3\";\npackage users.v1;\n",
		"bad.proto":  "message Foo {\n  string name = 1\n}\n",
	})

	paths := []string{
		filepath.Join(dir, "good.proto"),
		filepath.Join(dir, "bad.proto"),
	}

	results, err := lintFiles(paths, lint.DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Order matches input order regardless of goroutine scheduling
	assert.Equal(t, paths[0], results[0].Path)
	assert.Equal(t, paths[1], results[1].Path)

	assert.True(t, results[0].Report.Valid)
	assert.False(t, results[1].Report.Valid)
}

func TestLintFiles_ReadError(t *testing.T) {
	_, err := lintFiles([]string{"/nonexistent/file.proto"}, lint.DefaultOptions(), 1)
	assert.Error(t, err)
}

func TestLintFiles_IgnoredRules(t *testing.T) {
	dir := setupFiles(t, map[string]string{
		// Missing package triggers a package-declaration warning
		"nopack.proto": "syntax = \"proto3\";\n",
	})

	opts := &lint.Options{Ignore: []string{"package-declaration"}}
	results, err := lintFiles([]string{filepath.Join(dir, "nopack.proto")}, opts, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	for _, issue := range results[0].Report.AllIssues() {
		assert.NotEqual(t, "package-declaration", issue.Rule)
	}
}

func TestSummarize(t *testing.T) {
	results := []fileReport{
		{
			Path: "a.proto",
			Report: &lint.Report{
				Valid:  true,
				Errors: []lint.Issue{},
				Warnings: []lint.Issue{
					{Rule: "trailing-newline", Severity: lint.SeverityWarning},
				},
				Info: []lint.Issue{},
			},
		},
		{
			Path: "b.proto",
			Report: &lint.Report{
				Valid: false,
				Errors: []lint.Issue{
					{Rule: "syntax-error", Severity: lint.SeverityError},
					{Rule: "syntax-error", Severity: lint.SeverityError},
				},
				Warnings: []lint.Issue{},
				Info:     []lint.Issue{},
			},
		},
	}

	summary := summarize(results)
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.InvalidFiles)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 0, summary.Infos)
}

func TestLoadOptions(t *testing.T) {
	t.Run("defaults when no file present", func(t *testing.T) {
		opts, err := loadOptions(t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, lint.MaxLineLength, opts.MaxLineLength)
		assert.Empty(t, opts.Ignore)
	})

	t.Run("explicit config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ignore:\n  - max-line-length\n"), 0o644))

		opts, err := loadOptions(dir, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"max-line-length"}, opts.Ignore)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := loadOptions(t.TempDir(), "/nonexistent.yaml")
		assert.Error(t, err)
	})
}
