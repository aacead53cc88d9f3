package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pthm/pgddl/internal/cli"
	"github.com/pthm/pgddl/internal/version"
	"github.com/pthm/pgddl/pkg/changefile"
	"github.com/pthm/pgddl/pkg/compiler"
)

var (
	renderFile                string
	renderOutput              string
	renderQuoteExclusionNames bool
	renderTerminator          bool
	renderHeader              bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render DDL for a change file",
	Long: `Render PostgreSQL DDL for every change in a YAML or JSON change file.

Statements are printed one per line in change file order. Nothing is printed
if any change fails to render.`,
	Example: `  # Render to stdout
  pgddl render -f db/changes.yaml

  # Render a semicolon-terminated script with a header into a file
  pgddl render -f db/changes.yaml --terminator --header -o schema.sql

  # Read the change file from stdin
  cat changes.json | pgddl render -f -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveString(renderFile, cfg.Changes)
		output := resolveString(renderOutput, cfg.Render.Output)

		f, err := loadChangeFile(cmd, path)
		if err != nil {
			return err
		}

		c := compiler.New(compiler.Options{
			QuoteExclusionNames: resolveBool(renderQuoteExclusionNames, cfg.Render.QuoteExclusionNames),
			Logger:              logger,
		})

		var buf bytes.Buffer
		err = c.WriteScript(&buf, f.Changes, compiler.ScriptOptions{
			Terminator: resolveBool(renderTerminator, cfg.Render.Terminator),
			Header:     resolveBool(renderHeader, cfg.Render.Header),
			Source:     path,
			Version:    version.Short(),
		})
		if err != nil {
			return cli.RenderError("rendering changes", err)
		}

		if output == "" {
			if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
				return cli.GeneralError("writing to stdout", err)
			}
			return nil
		}

		if dir := filepath.Dir(output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return cli.GeneralError("creating output directory", err)
			}
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return cli.GeneralError(fmt.Sprintf("writing %s", output), err)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %d changes to %s\n", len(f.Changes), output)
		}
		return nil
	},
}

// loadChangeFile decodes the change file at path, or stdin when path is "-".
func loadChangeFile(cmd *cobra.Command, path string) (*changefile.File, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, cli.ChangeFileError("reading stdin", err)
		}
		f, err := changefile.Parse(data)
		if err != nil {
			return nil, cli.ChangeFileError("parsing change file", err)
		}
		return f, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, cli.ChangeFileError(fmt.Sprintf("change file not found: %s", path), nil)
	}
	f, err := changefile.Load(path)
	if err != nil {
		return nil, cli.ChangeFileError("parsing change file", err)
	}
	logger.Debug("change file loaded", "path", path, "changes", len(f.Changes))
	return f, nil
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFile, "file", "f", "", `change file path, or "-" for stdin (default: changes.yaml)`)
	f.StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
	f.BoolVar(&renderQuoteExclusionNames, "quote-exclusion-names", false, "quote exclusion constraint names")
	f.BoolVar(&renderTerminator, "terminator", false, "end every statement with a semicolon")
	f.BoolVar(&renderHeader, "header", false, "write a comment header naming the source")
}
