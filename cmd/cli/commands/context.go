package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/internal/config"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/notify"
	"github.com/jakechorley/volunteer-matching/pkg/utils"
)

// AnnotationSkipNotifier marks commands that must run without a configured notifier
const AnnotationSkipNotifier = "skipNotifier"

// closeTimeout bounds how long pending notifications are drained on exit
const closeTimeout = 30 * time.Second

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Notifier notify.Notifier
	Logger   *zap.Logger
	Ctx      context.Context
}

// Close drains the notifier, closes the store and flushes the logger
func (app *AppContext) Close() {
	if closer, ok := app.Notifier.(interface{ Close(context.Context) error }); ok {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		if err := closer.Close(ctx); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to drain notifications", zap.Error(err))
		}
		cancel()
	}
	if app.Database != nil {
		app.Database.Close()
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}

// Execute runs the root command and always closes the app afterwards,
// including when the command fails.
func Execute(root *cobra.Command, app *AppContext) error {
	defer app.Close()
	return root.Execute()
}

// TokenPath returns the configured OAuth token path or the per-environment default
func TokenPath(app *AppContext) (string, error) {
	if app.Cfg.Notifications.OAuthTokenPath != "" {
		return app.Cfg.Notifications.OAuthTokenPath, nil
	}
	return utils.DefaultTokenPath(app.Env)
}
