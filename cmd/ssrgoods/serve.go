package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the render server",
		Long: `Start the render server.

GET / fetches the goods list and answers with the fully rendered page.
The client bundle, /healthz, /metrics and the /_ssr/live channel are
served alongside it.

Examples:
  ssrgoods serve
  ssrgoods serve --port=8080 --endpoint=http://localhost:9000/goods
  SSR_LOG_FORMAT=json ssrgoods serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			if path := cfg.Path(); path != "" {
				logger.Info().Str("path", path).Msg("config loaded")
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := newServer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
}

// contextOrBackground guards commands executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
