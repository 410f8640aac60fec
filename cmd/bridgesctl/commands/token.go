package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/bridges/internal/app"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/sessions"
	"github.com/gogotex/bridges/internal/tokens"
	"github.com/spf13/cobra"
)

func newTokenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Args:  cobra.NoArgs,
		Short: "Issue and revoke HS256 access tokens",
	}
	cmd.AddCommand(
		newTokenIssueCommand(cfg),
		newTokenRevokeCommand(cfg),
	)
	return cmd
}

func newTokenIssueCommand(cfg *config.Config) *cobra.Command {
	var (
		who identity.Identity
		ttl time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Args:  cobra.NoArgs,
		Short: "Sign an access token with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenTTL
			}
			tok, err := tokens.GenerateAccessToken(cfg.JWT.Secret, &who, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&who.ID, "sub", "", "subject id")
	cmd.Flags().StringVar(&who.DisplayName, "name", "", "display name")
	cmd.Flags().StringVar(&who.Type, "type", identity.DefaultType, "subject type")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_ACCESS_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func newTokenRevokeCommand(cfg *config.Config) *cobra.Command {
	var (
		token string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "revoke",
		Args:  cobra.NoArgs,
		Short: "Blacklist a token in Redis until it expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := app.OpenRedis(cmd.Context(), cfg.Redis)
			if client == nil {
				return errors.New("redis is not available; set REDIS_HOST")
			}
			defer client.Close()
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenTTL
			}
			if err := sessions.NewBlacklist(client).Revoke(cmd.Context(), token, ttl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token revoked for %s\n", ttl)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "raw access token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "how long to remember the revocation (default JWT_ACCESS_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
