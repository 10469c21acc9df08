package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/api"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop signal
const shutdownTimeout = 15 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server and the scheduled auto-matcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(app.Database, app.Notifier, app.Logger)
			srv := &http.Server{
				Addr:         app.Cfg.HTTP.Addr,
				Handler:      server.Routes(app.Cfg.Auth.JWTSecret),
				ReadTimeout:  app.Cfg.HTTP.ReadTimeout,
				WriteTimeout: app.Cfg.HTTP.WriteTimeout,
				IdleTimeout:  60 * time.Second,
			}

			if app.Cfg.Auth.JWTSecret == "" {
				app.Logger.Warn("JWT secret not configured, API authentication disabled")
			}

			scheduleCtx, stopSchedule := context.WithCancel(ctx)
			scheduleDone := startAutoMatchSchedule(scheduleCtx, app, func(ctx context.Context) error {
				_, err := services.AutoMatchAll(ctx, app.Database, app.Notifier, app.Logger)
				return err
			})
			// The scheduled run writes to the store, so it must finish before the app is closed
			defer func() {
				stopSchedule()
				<-scheduleDone
			}()

			serveErr := make(chan error, 1)
			go func() {
				app.Logger.Info("Server starting", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			case <-ctx.Done():
			}

			app.Logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}
			app.Logger.Info("Server stopped")
			return nil
		},
	}
}

// startAutoMatchSchedule runs the configured schedule in the background.
// The returned channel is closed once no scheduled run is in flight.
func startAutoMatchSchedule(ctx context.Context, app *AppContext, run func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	schedule := app.Cfg.AutoMatch.Schedule
	if schedule == "" {
		close(done)
		return done
	}

	app.Logger.Info("Auto-match schedule enabled", zap.String("schedule", schedule))
	go func() {
		defer close(done)
		err := services.RunAutoMatchSchedule(ctx, schedule, app.Logger, run)
		if err != nil && !errors.Is(err, context.Canceled) {
			app.Logger.Error("Auto-match schedule stopped", zap.Error(err))
		}
	}()
	return done
}
