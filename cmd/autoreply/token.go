package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/autoreply/internal/server"
)

var errNoSecret = errors.New("JWT_SECRET is not configured")

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a client",
		Long:  `Sign a bearer token for the given client ID with JWT_SECRET. The extension sends it in the Authorization header.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(clientID)
			if err != nil {
				return fmt.Errorf("invalid --client-id: %w", err)
			}
			if !opts.cfg.JWT.Enabled() {
				return errNoSecret
			}

			token, err := server.NewJWTService(opts.cfg.JWT).GenerateToken(id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Client UUID to embed in the token")
	_ = cmd.MarkFlagRequired("client-id")

	return cmd
}
