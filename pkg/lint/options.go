package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OptionsFileName is the config file the CLI and watcher look for
const OptionsFileName = ".protovet.yaml"

// Options adjusts how a report is consumed. The rule catalog itself is
// fixed; options only filter the produced report, so the core Validate
// contract is unaffected.
type Options struct {
	// MaxLineLength overrides the reported line length limit in CLI
	// summaries. Zero means the default of 80.
	MaxLineLength int `yaml:"max_line_length"`
	// Ignore lists rule identifiers whose issues are dropped
	Ignore []string `yaml:"ignore"`
}

// DefaultOptions returns options matching the fixed catalog
func DefaultOptions() *Options {
	return &Options{MaxLineLength: MaxLineLength}
}

// LoadOptions reads options from a yaml file
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = MaxLineLength
	}
	return opts, nil
}

// LoadOptionsFromDir looks for .protovet.yaml in dir, falling back to
// defaults when the file does not exist
func LoadOptionsFromDir(dir string) (*Options, error) {
	path := filepath.Join(dir, OptionsFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultOptions(), nil
	}
	return LoadOptions(path)
}
