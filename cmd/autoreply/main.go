// Package main provides the autoreply command line: the HTTP API used by the
// browser extension and one-shot research and reply runs.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/autoreply/internal/config"
)

// rootOptions carries the persistent flags and the configuration loaded from them.
type rootOptions struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "autoreply",
		Short: "Recruiter outreach research and reply generator",
		Long: "autoreply reads recruiter outreach, estimates compensation for the implied role, " +
			"and drafts personalized replies. It serves the browser extension over HTTP or runs once from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a dotenv-format config file (default .env)")

	root.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
		newResearchCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

func (o *rootOptions) load(logOut io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(newLogger(cfg.Log, logOut))
	o.cfg = cfg
	return nil
}

// newLogger builds the process logger from the log configuration.
func newLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
