package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucasefe/erd"
	"github.com/lucasefe/erd/generator"
	"github.com/lucasefe/erd/parser"
)

func newFmtCmd(v *viper.Viper) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite ER notation in canonical form",
		Long: `Rewrite ER notation in canonical form.

If no file is provided, reads notation from stdin.
Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if overwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			m, err := erd.Parse(parser.NormalizeNewlines(string(source)), &erd.Config{ErrorPolicy: errorPolicy(v)})
			if err != nil {
				if filename != "" {
					return fmt.Errorf("%s:\n%w", filename, err)
				}
				return err
			}
			output := generator.Notation(m)

			if overwrite {
				if output == string(source) {
					return nil
				}
				return os.WriteFile(filename, []byte(output), 0644)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
