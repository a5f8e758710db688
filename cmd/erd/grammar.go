package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasefe/erd/parser"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !verify {
				_, err := io.WriteString(out, parser.Grammar)
				return err
			}

			if err := parser.VerifyGrammar(); err != nil {
				return err
			}
			names, err := parser.Productions()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "grammar ok: %d productions from %s\n%s\n",
				len(names), parser.StartProduction, strings.Join(names, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check that every production is defined and reachable")

	return cmd
}
