package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/cmd/cli/commands"
	"github.com/jakechorley/volunteer-matching/internal/config"
	"github.com/jakechorley/volunteer-matching/pkg/clients/gmailclient"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/memstore"
	"github.com/jakechorley/volunteer-matching/pkg/notify"
	"github.com/jakechorley/volunteer-matching/pkg/postgres"
	"github.com/jakechorley/volunteer-matching/pkg/utils"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Volunteer Matching CLI - Score, recommend and manage volunteer matches",
		Long:  `A CLI tool for matching volunteers to events: scoring, recommendations, match lifecycle and the HTTP API server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app, cmd)
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.SeedCmd(app))
	rootCmd.AddCommand(commands.AuthorizeCmd(app))
	rootCmd.AddCommand(commands.IssueTokenCmd(app))
	rootCmd.AddCommand(commands.ScoreCmd(app))
	rootCmd.AddCommand(commands.RecommendVolunteersCmd(app))
	rootCmd.AddCommand(commands.RecommendEventsCmd(app))
	rootCmd.AddCommand(commands.CreateMatchCmd(app))
	rootCmd.AddCommand(commands.UpdateStatusCmd(app))
	rootCmd.AddCommand(commands.DeleteMatchCmd(app))
	rootCmd.AddCommand(commands.ListMatchesCmd(app))
	rootCmd.AddCommand(commands.GetMatchCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))
	rootCmd.AddCommand(commands.AutoMatchCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := commands.Execute(rootCmd, app); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, store and notifier
func initApp(app *commands.AppContext, cmd *cobra.Command) error {
	var err error
	app.Ctx = context.Background()
	app.Env = env

	// Load configuration
	app.Cfg, err = config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(logging.Options{Env: env, Dir: app.Cfg.LogDir, Level: app.Cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("store", app.Cfg.Store))

	// Initialize store
	app.Database, err = openStore(app)
	if err != nil {
		return err
	}
	app.Logger.Info("Store initialized successfully")

	// Commands that manage credentials run before a token exists
	if cmd.Annotations[commands.AnnotationSkipNotifier] == "true" {
		app.Notifier = notify.Nop{}
		return nil
	}

	// Initialize notifier
	app.Notifier, err = openNotifier(app)
	if err != nil {
		return err
	}
	app.Logger.Info("Notifier initialized successfully", zap.String("mode", app.Cfg.Notifications.Mode))

	return nil
}

func openStore(app *commands.AppContext) (db.Database, error) {
	switch app.Cfg.Store {
	case config.StorePostgres:
		app.Logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return database, nil
	default:
		store := memstore.New()
		if app.Cfg.FixturesPath == "" {
			return store, nil
		}

		app.Logger.Info("Loading fixtures", zap.String("path", app.Cfg.FixturesPath))
		fx, err := db.LoadFixtures(app.Cfg.FixturesPath)
		if err != nil {
			return nil, err
		}
		if _, err := services.Seed(app.Ctx, store, app.Logger, fx); err != nil {
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return store, nil
	}
}

func openNotifier(app *commands.AppContext) (notify.Notifier, error) {
	cfg := app.Cfg.Notifications
	if cfg.Mode != config.NotifyGmail {
		return notify.NewLogNotifier(app.Logger), nil
	}

	oauthCfg, err := utils.LoadOAuthConfig(cfg.OAuthClientPath)
	if err != nil {
		return nil, err
	}

	tokenPath, err := commands.TokenPath(app)
	if err != nil {
		return nil, err
	}

	token, err := utils.LoadToken(app.Ctx, oauthCfg, tokenPath)
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	gmail, err := gmailclient.NewClient(app.Ctx, oauthCfg, token, cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	return notify.NewQueue(notify.NewEmailSender(app.Database, gmail), cfg.QueueSize, app.Logger), nil
}
