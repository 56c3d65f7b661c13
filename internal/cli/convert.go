package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/chordwheel/pkg/io"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// convertCommand creates the convert command for changing dataset formats.
func (c *CLI) convertCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a word dataset between JSON, YAML, TOML and CSV",
		Long: `Convert a word dataset between JSON, YAML, TOML and CSV.

Formats are chosen by file extension. With a single argument the dataset is
written to stdout in the format given by --to.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, err := pipeline.Load(ctx, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				format, err := pkgio.ParseFormat(to)
				if err != nil {
					return err
				}
				return pkgio.WriteWords(ds, cmd.OutOrStdout(), format)
			}

			if err := pkgio.ExportWords(ds, args[1]); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			printSuccess("Converted %d words", len(ds.Words))
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", string(pkgio.FormatJSON), "output format when writing to stdout: json, yaml, toml, csv")

	return cmd
}
