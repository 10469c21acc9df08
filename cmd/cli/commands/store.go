package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/services"
	"github.com/jakechorley/volunteer-matching/pkg/db"
)

// migrator is implemented by stores with a managed schema
type migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Apply pending database migrations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationSkipNotifier: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := app.Database.(migrator)
			if !ok {
				return fmt.Errorf("store %q has no migrations", app.Cfg.Store)
			}

			applied, err := m.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nDatabase is up to date.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", name)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// SeedCmd creates the seed command
func SeedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "seed [fixtures_path]",
		Short:       "Load volunteers, events and matches from a YAML fixture file (defaults to fixturesPath)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{AnnotationSkipNotifier: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Cfg.FixturesPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no fixtures path given and fixturesPath is not configured")
			}

			app.Logger.Debug("seed command", zap.String("path", path))

			fx, err := db.LoadFixtures(path)
			if err != nil {
				return err
			}

			result, err := services.Seed(app.Ctx, app.Database, app.Logger, fx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Seed completed!\n\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Volunteers: %d\n", result.Volunteers)
			fmt.Fprintf(cmd.OutOrStdout(), "Events:     %d\n", result.Events)
			fmt.Fprintf(cmd.OutOrStdout(), "Matches:    %d (%d already present)\n\n", result.Matches, result.SkippedMatches)
			return nil
		},
	}
}
