package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// scoreColor picks a color for a score: green from the auto-match threshold, yellow from half of it, red below
func scoreColor(score int) string {
	switch {
	case score >= matcher.AutoMatchThreshold:
		return colorGreen
	case score >= matcher.AutoMatchThreshold/2:
		return colorYellow
	}
	return colorRed
}

func statusColor(status model.MatchStatus) string {
	switch status {
	case model.StatusMatched, model.StatusCompleted:
		return colorGreen
	case model.StatusPending:
		return colorYellow
	case model.StatusCancelled:
		return colorDim
	}
	return colorReset
}

func printScore(w io.Writer, result *services.ScoreResult) {
	fmt.Fprintf(w, "\nScore for volunteer %s and event %s: %s%d%s / %d\n\n",
		result.VolunteerID, result.EventID, scoreColor(result.Score), result.Score, colorReset, matcher.MaxScore)
	for _, c := range result.Breakdown.Components {
		fmt.Fprintf(w, "  %-14s %5.1f / %-5.0f (%3.0f%%)\n", c.Criterion, c.Points, c.MaxPoints, c.Fraction*100)
	}
	fmt.Fprintln(w)
}

func printVolunteerRecommendations(w io.Writer, eventID string, recs []matcher.VolunteerRecommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(w, "\nNo volunteers to recommend for event %s.\n\n", eventID)
		return
	}

	fmt.Fprintf(w, "\nRecommended volunteers for %s (%s):\n\n", recs[0].EventName, eventID)
	for i, r := range recs {
		fmt.Fprintf(w, "  %2d. %s%3d%s  %-24s %s  [%s]\n",
			i+1, scoreColor(r.Score), r.Score, colorReset, r.Volunteer.Name, r.Volunteer.ID, strings.Join(r.Volunteer.Skills, ", "))
	}
	fmt.Fprintln(w)
}

func printEventRecommendations(w io.Writer, volunteerID string, recs []matcher.EventRecommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(w, "\nNo open events to recommend for volunteer %s.\n\n", volunteerID)
		return
	}

	fmt.Fprintf(w, "\nRecommended events for %s (%s):\n\n", recs[0].VolunteerName, volunteerID)
	for i, r := range recs {
		fmt.Fprintf(w, "  %2d. %s%3d%s  %-28s %s  %s  %s\n",
			i+1, scoreColor(r.Score), r.Score, colorReset, r.Event.Name, r.Event.ID, r.Event.Date, r.Event.Location)
	}
	fmt.Fprintln(w)
}

func printMatch(w io.Writer, m *model.Match) {
	fmt.Fprintf(w, "Match ID:   %s\n", m.ID)
	fmt.Fprintf(w, "Volunteer:  %s\n", m.VolunteerID)
	fmt.Fprintf(w, "Event:      %s\n", m.EventID)
	fmt.Fprintf(w, "Status:     %s%s%s\n", statusColor(m.Status), m.Status, colorReset)
	fmt.Fprintf(w, "Score:      %d\n", m.Score)
	fmt.Fprintf(w, "Updated:    %s\n\n", m.UpdatedAt.Format("2006-01-02 15:04"))
}

func printMatches(w io.Writer, matches []model.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "\nNo matches found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d matches:\n\n", len(matches))
	fmt.Fprintf(w, "  %-38s %-10s %-10s %-10s %s\n", "ID", "VOLUNTEER", "EVENT", "STATUS", "SCORE")
	for _, m := range matches {
		fmt.Fprintf(w, "  %-38s %-10s %-10s %s%-10s%s %d\n",
			m.ID, m.VolunteerID, m.EventID, statusColor(m.Status), m.Status, colorReset, m.Score)
	}
	fmt.Fprintln(w)
}

func printHistory(w io.Writer, history []model.HistoryEntry) {
	if len(history) == 0 {
		fmt.Fprintln(w, "\nNo match history found.")
		return
	}

	fmt.Fprintf(w, "\nMatch history (%d entries):\n\n", len(history))
	for _, h := range history {
		fmt.Fprintf(w, "  %s  %-24s %-28s %s%-10s%s %3d  %s\n",
			h.EventDate, h.VolunteerName, h.EventName, statusColor(h.Status), h.Status, colorReset, h.Score, h.Location)
	}
	fmt.Fprintln(w)
}
