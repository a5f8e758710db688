package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/lucasefe/erd/parser"
)

func log() commonlog.Logger {
	return commonlog.GetLogger("erd.cli")
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "erd",
		Short: "ER notation to diagram source",
		Long: `erd converts a small entity-relationship notation into Graphviz DOT or
Mermaid flowcharts, formats notation files, and reverse-engineers notation
from PostgreSQL schemas.

Configuration is read from flags, ERD_* environment variables, a .env file
and an optional .erd.yaml in the working directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			commonlog.Configure(v.GetInt("verbose"), nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().Bool("all-errors", false, "Report every syntax error instead of only the first")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./.erd.yaml)")

	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag("all_errors", rootCmd.PersistentFlags().Lookup("all-errors"))
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(newRenderCmd(v, "dot", "Render notation as a Graphviz DOT digraph"))
	rootCmd.AddCommand(newRenderCmd(v, "mermaid", "Render notation as a Mermaid flowchart"))
	rootCmd.AddCommand(newFmtCmd(v))
	rootCmd.AddCommand(newModelCmd(v))
	rootCmd.AddCommand(newIntrospectCmd(v))
	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("ERD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("url", "DATABASE_URL")

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".erd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func errorPolicy(v *viper.Viper) parser.ErrorPolicy {
	if v.GetBool("all_errors") {
		return parser.AllErrors
	}
	return parser.FirstError
}
