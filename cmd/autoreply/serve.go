package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/autoreply/internal/config"
	"github.com/jonathan/autoreply/internal/server"
	"github.com/jonathan/autoreply/internal/server/ratelimit"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes reply generation and compensation research to the browser extension.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := newDeps(ctx, cfg)
			defer func() { _ = d.Close() }()

			srv := server.New(serverConfig(cfg), d.orchestrator(nil), d.estimator)
			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides SERVER_PORT)")
	return cmd
}

// serverConfig maps the loaded configuration onto the server's.
func serverConfig(cfg *config.Config) server.Config {
	sc := server.Config{
		Addr:           cfg.Server.Addr(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWT:            cfg.JWT,
	}
	if cfg.RateLimit.Enabled {
		rl := ratelimit.DefaultConfig()
		rl.DefaultLimit = cfg.RateLimit.DefaultLimit
		rl.DefaultWindow = cfg.RateLimit.DefaultWindow
		rl.CleanupInterval = cfg.RateLimit.CleanupInterval
		rl.Whitelist = ratelimit.IPSet(cfg.RateLimit.Whitelist)
		rl.Blacklist = ratelimit.IPSet(cfg.RateLimit.Blacklist)
		sc.RateLimit = rl
	}
	return sc
}
