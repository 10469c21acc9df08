package matcher

import (
	"sort"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

// VolunteerRecommendation is a volunteer ranked against an event
type VolunteerRecommendation struct {
	Volunteer model.Volunteer `json:"volunteer"`
	EventID   string          `json:"eventId"`
	EventName string          `json:"eventName"`
	Score     int             `json:"matchScore"`
}

// EventRecommendation is an event ranked against a volunteer
type EventRecommendation struct {
	Event         model.Event `json:"event"`
	VolunteerID   string      `json:"volunteerId"`
	VolunteerName string      `json:"volunteerName"`
	Score         int         `json:"matchScore"`
}

// RankVolunteers scores every volunteer against the event and returns those with a
// positive score, highest first. Ties are broken by ascending volunteer ID.
//
// Volunteers holding a Matched or Completed match for the event are excluded;
// Pending and Cancelled matches do not exclude. matches may contain matches for
// other events, they are ignored.
//
// Returns an empty list if event is nil.
func RankVolunteers(event *model.Event, volunteers []model.Volunteer, matches []model.Match) []VolunteerRecommendation {
	recommendations := []VolunteerRecommendation{}
	if event == nil {
		return recommendations
	}

	blocked := make(map[string]bool)
	for _, m := range matches {
		if m.EventID == event.ID && m.Status.BlocksRecommendation() {
			blocked[m.VolunteerID] = true
		}
	}

	for i := range volunteers {
		volunteer := &volunteers[i]
		if blocked[volunteer.ID] {
			continue
		}

		score := Score(volunteer, event)
		if score <= 0 {
			continue
		}

		recommendations = append(recommendations, VolunteerRecommendation{
			Volunteer: *volunteer,
			EventID:   event.ID,
			EventName: event.Name,
			Score:     score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Volunteer.ID < recommendations[j].Volunteer.ID
	})

	return recommendations
}

// RankEvents scores every open event (Active, dated today or later) against the volunteer
// and returns those with a positive score, highest first. Ties are broken by ascending event ID.
//
// Events the volunteer holds a Matched or Completed match for are excluded.
//
// Returns an empty list if volunteer is nil.
func RankEvents(volunteer *model.Volunteer, events []model.Event, matches []model.Match, today string) []EventRecommendation {
	recommendations := []EventRecommendation{}
	if volunteer == nil {
		return recommendations
	}

	blocked := make(map[string]bool)
	for _, m := range matches {
		if m.VolunteerID == volunteer.ID && m.Status.BlocksRecommendation() {
			blocked[m.EventID] = true
		}
	}

	for i := range events {
		event := &events[i]
		if blocked[event.ID] || !event.IsOpen(today) {
			continue
		}

		score := Score(volunteer, event)
		if score <= 0 {
			continue
		}

		recommendations = append(recommendations, EventRecommendation{
			Event:         *event,
			VolunteerID:   volunteer.ID,
			VolunteerName: volunteer.Name,
			Score:         score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Event.ID < recommendations[j].Event.ID
	})

	return recommendations
}
