package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lucasefe/erd"
	"github.com/lucasefe/erd/parser"
	"github.com/lucasefe/erd/schema"
)

func newModelCmd(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "model [file]",
		Short: "Print the parsed model as YAML or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			if len(args) == 0 {
				source, err = io.ReadAll(cmd.InOrStdin())
			} else {
				source, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			m, err := erd.Parse(parser.NormalizeNewlines(string(source)), &erd.Config{ErrorPolicy: errorPolicy(v)})
			if err != nil {
				return err
			}
			return writeModel(cmd.OutOrStdout(), m, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "yaml", "Output encoding: yaml or json")

	return cmd
}

func writeModel(w io.Writer, m *schema.Model, encoding string) error {
	switch encoding {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output encoding %q (want yaml or json)", encoding)
	}
}
