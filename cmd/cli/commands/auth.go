package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-matching/pkg/api"
	"github.com/jakechorley/volunteer-matching/pkg/utils"
)

// AuthorizeCmd creates the authorize command
func AuthorizeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "authorize",
		Short:       "Authorize Gmail access for email notifications and save the token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationSkipNotifier: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.Notifications.OAuthClientPath == "" {
				return fmt.Errorf("notifications.oauthClientPath is not configured")
			}

			oauthCfg, err := utils.LoadOAuthConfig(app.Cfg.Notifications.OAuthClientPath)
			if err != nil {
				return err
			}

			tokenPath, err := TokenPath(app)
			if err != nil {
				return err
			}

			if _, err := utils.Authorize(app.Ctx, oauthCfg, tokenPath, app.Logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Authorization complete, token saved to %s\n\n", tokenPath)
			return nil
		},
	}
}

// IssueTokenCmd creates the issue-token command
func IssueTokenCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "issue-token <subject>",
		Short:       "Issue a bearer token for the HTTP API",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{AnnotationSkipNotifier: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")

			if app.Cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("auth.jwtSecret is not configured")
			}

			token, err := api.GenerateToken([]byte(app.Cfg.Auth.JWTSecret), args[0], ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Duration("ttl", 24*time.Hour, "How long the token stays valid")

	return cmd
}
