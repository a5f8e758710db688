package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucasefe/erd/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering HTTP API",
		Long: `Serve the rendering HTTP API.

Routes:
  POST /v1/render/:format  render notation as dot, mermaid or erd
  POST /v1/model           return the parsed model as JSON
  GET  /v1/formats         list the supported formats
  GET  /healthz            liveness check

Failed requests report every syntax error in the source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(
				server.WithAllowedOrigins(v.GetStringSlice("serve.allow_origins")...),
				server.WithMaxBodyBytes(v.GetInt64("serve.max_body_bytes")),
			)
			return srv.ListenAndServe(ctx, v.GetString("serve.addr"))
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.StringSlice("allow-origin", nil, "CORS origins allowed to call the API (default: any)")
	flags.Int64("max-body-bytes", 1<<20, "Largest accepted request body")

	_ = v.BindPFlag("serve.addr", flags.Lookup("addr"))
	_ = v.BindPFlag("serve.allow_origins", flags.Lookup("allow-origin"))
	_ = v.BindPFlag("serve.max_body_bytes", flags.Lookup("max-body-bytes"))

	return cmd
}
