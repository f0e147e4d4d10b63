package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/protovet/protovet/pkg/lint"
)

// newRulesCommand creates a new rules command
func newRulesCommand() *Command {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)

	var (
		format = fs.String("format", "text", "Output format: text, json")
	)

	return &Command{
		Name:        "rules",
		Description: "List the lint rule catalog",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runRules(*format)
		},
	}
}

func runRules(format string) error {
	catalog := lint.Catalog()

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(catalog)
	}

	fmt.Printf("Available lint rules (%d):\n\n", len(catalog))
	for _, rule := range catalog {
		fmt.Printf("  - %-28s [%s]\n    %s\n", rule.Name, rule.Severity, rule.Description)
	}

	return nil
}
