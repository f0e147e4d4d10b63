package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/protovet/protovet/pkg/lint"
)

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	var (
		dir           = fs.String("dir", ".", "Directory containing proto files")
		configFile    = fs.String("config", "", "Path to options file (.protovet.yaml)")
		format        = fs.String("format", "text", "Output format: text, json, github")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		verbose       = fs.Bool("verbose", false, "Verbose output")
		concurrency   = fs.Int("concurrency", runtime.NumCPU(), "Number of files to lint in parallel")
	)

	return &Command{
		Name:        "lint",
		Description: "Lint protobuf files for style and structure",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runLint(*dir, *configFile, *format, *failOnError, *failOnWarning, *verbose, *concurrency)
		},
	}
}

// fileReport pairs a lint report with the file it came from
type fileReport struct {
	Path   string       `json:"path"`
	Report *lint.Report `json:"report"`
}

// lintSummary aggregates counts across all linted files
type lintSummary struct {
	TotalFiles   int `json:"total_files"`
	InvalidFiles int `json:"invalid_files"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Infos        int `json:"infos"`
}

func runLint(dir, configFile, format string, failOnError, failOnWarning, verbose bool, concurrency int) error {
	opts, err := loadOptions(dir, configFile)
	if err != nil {
		return err
	}

	protoFiles, err := findProtoFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to find proto files: %w", err)
	}

	if len(protoFiles) == 0 {
		fmt.Printf("No proto files found in %s\n", dir)
		return nil
	}

	if verbose {
		fmt.Printf("Linting %d proto files...\n", len(protoFiles))
	}

	results, err := lintFiles(protoFiles, opts, concurrency)
	if err != nil {
		return err
	}

	summary := summarize(results)

	switch format {
	case "json":
		return lintOutputJSON(results, summary)
	case "github":
		return lintOutputGitHub(results)
	default:
		return lintOutputText(results, summary, failOnError, failOnWarning)
	}
}

// loadOptions resolves the options file: an explicit path wins, otherwise
// the target directory is searched for .protovet.yaml
func loadOptions(dir, configFile string) (*lint.Options, error) {
	if configFile != "" {
		opts, err := lint.LoadOptions(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load options: %w", err)
		}
		return opts, nil
	}
	opts, err := lint.LoadOptionsFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	return opts, nil
}

// lintFiles validates files concurrently, preserving input order in the
// returned slice
func lintFiles(paths []string, opts *lint.Options, concurrency int) ([]fileReport, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]fileReport, len(paths))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			results[i] = fileReport{
				Path:   path,
				Report: lint.Validate(string(content)).Filter(opts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// findProtoFiles walks dir collecting .proto files, skipping hidden,
// vendor, and third_party directories
func findProtoFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "third_party") {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) == ".proto" {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func summarize(results []fileReport) lintSummary {
	summary := lintSummary{TotalFiles: len(results)}
	for _, result := range results {
		if !result.Report.Valid {
			summary.InvalidFiles++
		}
		summary.Errors += len(result.Report.Errors)
		summary.Warnings += len(result.Report.Warnings)
		summary.Infos += len(result.Report.Info)
	}
	return summary
}

func lintOutputText(results []fileReport, summary lintSummary, failOnError, failOnWarning bool) error {
	hasIssues := false

	for _, result := range results {
		issues := result.Report.AllIssues()
		if len(issues) == 0 {
			continue
		}

		hasIssues = true
		fmt.Printf("\n%s:\n", result.Path)

		for _, issue := range issues {
			fmt.Printf("  %s:%d:%d: [%s] %s (%s)\n",
				result.Path,
				issue.Line,
				issue.Column,
				issue.Severity,
				issue.Message,
				issue.Rule,
			)
		}
	}

	fmt.Printf("\n")
	fmt.Printf("Summary:\n")
	fmt.Printf("  Files:    %d\n", summary.TotalFiles)
	fmt.Printf("  Invalid:  %d\n", summary.InvalidFiles)
	fmt.Printf("  Errors:   %d\n", summary.Errors)
	fmt.Printf("  Warnings: %d\n", summary.Warnings)
	fmt.Printf("  Infos:    %d\n", summary.Infos)

	if failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}

	if failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}

	if !hasIssues {
		fmt.Println("\n✓ All files passed linting")
	}

	return nil
}

func lintOutputJSON(results []fileReport, summary lintSummary) error {
	output := struct {
		Results []fileReport `json:"results"`
		Summary lintSummary  `json:"summary"`
	}{
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func lintOutputGitHub(results []fileReport) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line},col={col}::{message}
	for _, result := range results {
		for _, issue := range result.Report.AllIssues() {
			level := "error"
			if issue.Severity == lint.SeverityWarning {
				level = "warning"
			} else if issue.Severity == lint.SeverityInfo {
				level = "notice"
			}

			fmt.Printf("::%s file=%s,line=%d,col=%d::[%s] %s\n",
				level,
				result.Path,
				issue.Line,
				issue.Column,
				issue.Rule,
				issue.Message,
			)
		}
	}

	return nil
}
