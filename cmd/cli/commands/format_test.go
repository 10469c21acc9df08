package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/core/services"
)

func TestScoreColor(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected string
	}{
		{"perfect - green", 100, colorGreen},
		{"threshold - green", 50, colorGreen},
		{"just below threshold - yellow", 49, colorYellow},
		{"half threshold - yellow", 25, colorYellow},
		{"below half - red", 24, colorRed},
		{"zero - red", 0, colorRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreColor(tt.score))
		})
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colorGreen, statusColor(model.StatusMatched))
	assert.Equal(t, colorGreen, statusColor(model.StatusCompleted))
	assert.Equal(t, colorYellow, statusColor(model.StatusPending))
	assert.Equal(t, colorDim, statusColor(model.StatusCancelled))
	assert.Equal(t, colorReset, statusColor("Bogus"))
}

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	printScore(&buf, &services.ScoreResult{
		VolunteerID: "v1",
		EventID:     "e1",
		Score:       70,
		Breakdown: matcher.Breakdown{
			Total: 70,
			Components: []matcher.ComponentScore{
				{Criterion: "Skills", Fraction: 1, Points: 60, MaxPoints: 60},
				{Criterion: "Availability", Fraction: 0, Points: 0, MaxPoints: 30},
				{Criterion: "Location", Fraction: 1, Points: 10, MaxPoints: 10},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "volunteer v1 and event e1")
	assert.Contains(t, out, "70"+colorReset+" / 100")
	assert.Contains(t, out, "Skills")
	assert.Contains(t, out, "Availability")
	assert.Contains(t, out, "(100%)")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	printVolunteerRecommendations(&buf, "e1", nil)
	assert.Contains(t, buf.String(), "No volunteers to recommend for event e1")

	buf.Reset()
	printEventRecommendations(&buf, "v1", []matcher.EventRecommendation{})
	assert.Contains(t, buf.String(), "No open events to recommend for volunteer v1")
}

func TestPrintVolunteerRecommendations(t *testing.T) {
	var buf bytes.Buffer
	printVolunteerRecommendations(&buf, "e1", []matcher.VolunteerRecommendation{
		{Volunteer: model.Volunteer{ID: "v1", Name: "John Smith", Skills: []string{"First Aid", "Driving"}}, EventID: "e1", EventName: "Food Drive", Score: 100},
		{Volunteer: model.Volunteer{ID: "v3", Name: "Michael Johnson"}, EventID: "e1", EventName: "Food Drive", Score: 40},
	})

	out := buf.String()
	assert.Contains(t, out, "Recommended volunteers for Food Drive (e1)")
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "First Aid, Driving")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("John Smith")), bytes.Index(buf.Bytes(), []byte("Michael Johnson")))
}

func TestPrintMatchesAndHistory(t *testing.T) {
	var buf bytes.Buffer
	printMatches(&buf, nil)
	assert.Contains(t, buf.String(), "No matches found")

	buf.Reset()
	printMatches(&buf, []model.Match{{ID: "m1", VolunteerID: "v1", EventID: "e1", Status: model.StatusPending, Score: 92}})
	assert.Contains(t, buf.String(), "Found 1 matches")
	assert.Contains(t, buf.String(), "m1")

	buf.Reset()
	printMatch(&buf, &model.Match{ID: "m1", Status: model.StatusCompleted, UpdatedAt: time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC)})
	assert.Contains(t, buf.String(), "2023-11-02 10:30")

	buf.Reset()
	printHistory(&buf, []model.HistoryEntry{})
	assert.Contains(t, buf.String(), "No match history found")

	buf.Reset()
	printHistory(&buf, []model.HistoryEntry{{EventDate: "2023-11-15", VolunteerName: "John Smith", EventName: "Food Drive", Status: model.StatusMatched, Score: 85}})
	assert.Contains(t, buf.String(), "Match history (1 entries)")
	assert.Contains(t, buf.String(), "2023-11-15")
}
