package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-matching/pkg/core/services"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// ScoreCmd creates the score command
func ScoreCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "score <volunteer_id> <event_id>",
		Short: "Show the match score and its breakdown for a volunteer and an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("score command", logging.VolunteerID(args[0]), logging.EventID(args[1]))

			result, err := services.CalculateScore(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			printScore(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// RecommendVolunteersCmd creates the recommend-volunteers command
func RecommendVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend-volunteers <event_id>",
		Short: "Rank volunteers for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := services.RecommendVolunteers(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printVolunteerRecommendations(cmd.OutOrStdout(), args[0], recs)
			return nil
		},
	}
}

// RecommendEventsCmd creates the recommend-events command
func RecommendEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend-events <volunteer_id>",
		Short: "Rank open events for a volunteer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := services.RecommendEvents(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			printEventRecommendations(cmd.OutOrStdout(), args[0], recs)
			return nil
		},
	}
}

// AutoMatchCmd creates the auto-match command
func AutoMatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auto-match",
		Short: "Propose a Pending match for every volunteer with a suitable open event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := services.AutoMatchAll(app.Ctx, app.Database, app.Notifier, app.Logger)
			if len(created) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Auto-match created %d matches\n", len(created))
				printMatches(cmd.OutOrStdout(), created)
			}
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nNo new matches to propose.")
			}
			return nil
		},
	}
}
