package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// CreateMatchCmd creates the create-match command
func CreateMatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create-match <volunteer_id> <event_id>",
		Short: "Match a volunteer to an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := services.CreateMatch(app.Ctx, app.Database, app.Notifier, app.Logger, args[0], args[1])
			if err != nil {
				if id, ok := model.ConflictMatchID(err); ok {
					return fmt.Errorf("match already exists: %s", id)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Match created successfully!\n\n")
			printMatch(cmd.OutOrStdout(), match)
			return nil
		},
	}
}

// UpdateStatusCmd creates the update-status command
func UpdateStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update-status <match_id> <status>",
		Short: fmt.Sprintf("Change a match status (%v)", model.MatchStatuses),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("update-status command", logging.MatchID(args[0]), zap.String("status", args[1]))

			match, err := services.UpdateMatchStatus(app.Ctx, app.Database, app.Notifier, app.Logger, args[0], model.MatchStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Match status updated!\n\n")
			printMatch(cmd.OutOrStdout(), match)
			return nil
		},
	}
}

// DeleteMatchCmd creates the delete-match command
func DeleteMatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-match <match_id>",
		Short: "Permanently remove a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteMatch(app.Ctx, app.Database, app.Notifier, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Match %s deleted\n\n", args[0])
			return nil
		},
	}
}

// ListMatchesCmd creates the list-matches command
func ListMatchesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-matches",
		Short: "List every match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := services.ListMatches(app.Ctx, app.Database)
			if err != nil {
				return err
			}

			printMatches(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

// GetMatchCmd creates the get-match command
func GetMatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get-match <match_id>",
		Short: "Show a single match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := services.GetMatch(app.Ctx, app.Database, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			printMatch(cmd.OutOrStdout(), match)
			return nil
		},
	}
}

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show match history joined with volunteer and event details, latest events first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := services.GetMatchHistory(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			printHistory(cmd.OutOrStdout(), history)
			return nil
		},
	}
}
