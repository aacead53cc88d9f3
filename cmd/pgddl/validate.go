package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/pgddl/internal/cli"
	"github.com/pthm/pgddl/pkg/compiler"
)

var (
	validateFile                string
	validateQuoteExclusionNames bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a change file",
	Long:  `Decode a change file and render every change without printing the DDL.`,
	Example: `  # Validate a specific change file
  pgddl validate -f db/changes.yaml

  # Validate using config file settings
  pgddl validate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveString(validateFile, cfg.Changes)

		f, err := loadChangeFile(cmd, path)
		if err != nil {
			return err
		}

		c := compiler.New(compiler.Options{
			QuoteExclusionNames: resolveBool(validateQuoteExclusionNames, cfg.Render.QuoteExclusionNames),
			Logger:              logger,
		})
		if _, err := c.CompileAll(f.Changes); err != nil {
			return cli.RenderError("rendering changes", err)
		}

		if !quiet {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Change file is valid. Found %d changes:\n", len(f.Changes))
			for _, n := range f.Changes {
				fmt.Fprintf(out, "  - %s\n", compiler.Describe(n))
			}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", `change file path, or "-" for stdin (default: changes.yaml)`)
	validateCmd.Flags().BoolVar(&validateQuoteExclusionNames, "quote-exclusion-names", false, "quote exclusion constraint names")
}
