package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/protovet/protovet/pkg/format"
)

// newFmtCommand creates a new fmt command
func newFmtCommand() *Command {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)

	var (
		dir     = fs.String("dir", ".", "Directory containing proto files")
		write   = fs.Bool("write", false, "Rewrite files in place instead of printing")
		check   = fs.Bool("check", false, "Exit with error code if any file is not formatted")
		verbose = fs.Bool("verbose", false, "Verbose output")
	)

	return &Command{
		Name:        "fmt",
		Description: "Reformat protobuf files into canonical layout",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			// Positional args override directory discovery
			files := fs.Args()
			if len(files) == 0 {
				var err error
				files, err = findProtoFiles(*dir)
				if err != nil {
					return fmt.Errorf("failed to find proto files: %w", err)
				}
			}

			return runFmt(files, *write, *check, *verbose)
		},
	}
}

func runFmt(files []string, write, check, verbose bool) error {
	if len(files) == 0 {
		fmt.Println("No proto files found")
		return nil
	}

	var unformatted []string

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		formatted := format.Format(string(content))
		if formatted == string(content) {
			if verbose {
				fmt.Printf("%s: already formatted\n", path)
			}
			continue
		}

		unformatted = append(unformatted, path)

		switch {
		case check:
			fmt.Printf("%s: not formatted\n", path)
		case write:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			if verbose {
				fmt.Printf("%s: rewritten\n", path)
			}
		default:
			// Print the formatted source, prefixed with the file name
			// when formatting more than one file
			if len(files) > 1 {
				fmt.Printf("--- %s\n", path)
			}
			fmt.Print(formatted)
		}
	}

	if check && len(unformatted) > 0 {
		return fmt.Errorf("%d files are not formatted", len(unformatted))
	}

	return nil
}
