package matcher

import "github.com/jakechorley/volunteer-matching/pkg/core/model"

// Proposal is a volunteer/event pair selected by the auto-matcher
type Proposal struct {
	VolunteerID string
	EventID     string
	EventName   string
	Score       int
}

// AutoMatchOutcome reports the result of planning an auto-match batch
type AutoMatchOutcome struct {
	// Proposals are the pairs that should be persisted as Pending matches, in volunteer order
	Proposals []Proposal

	// AtCapacity lists volunteers skipped because they already hold MaxActiveMatches active matches
	AtCapacity []string

	// BelowThreshold lists volunteers whose best candidate scored under AutoMatchThreshold
	BelowThreshold []string

	// NoCandidates lists volunteers with no open, unmatched event to consider
	NoCandidates []string
}

// PlanAutoMatches picks at most one event per volunteer, in volunteer enumeration order.
//
// For each volunteer:
//   - skip if they hold MaxActiveMatches or more Pending/Matched matches
//   - candidates are open events (Active, dated today or later) the volunteer has no match with, in any status
//   - the highest scoring candidate wins; the first seen wins ties
//   - propose it if its score is at least AutoMatchThreshold
//
// Planning has no side effects. Proposals for one volunteer never affect another.
func PlanAutoMatches(volunteers []model.Volunteer, events []model.Event, matches []model.Match, today string) *AutoMatchOutcome {
	outcome := &AutoMatchOutcome{
		Proposals:      []Proposal{},
		AtCapacity:     []string{},
		BelowThreshold: []string{},
		NoCandidates:   []string{},
	}

	openEvents := make([]*model.Event, 0, len(events))
	for i := range events {
		if events[i].IsOpen(today) {
			openEvents = append(openEvents, &events[i])
		}
	}

	activeCount := make(map[string]int)
	matchedEvents := make(map[string]map[string]bool)
	for _, m := range matches {
		if m.Status.IsActive() {
			activeCount[m.VolunteerID]++
		}
		if matchedEvents[m.VolunteerID] == nil {
			matchedEvents[m.VolunteerID] = make(map[string]bool)
		}
		matchedEvents[m.VolunteerID][m.EventID] = true
	}

	for i := range volunteers {
		volunteer := &volunteers[i]

		if activeCount[volunteer.ID] >= MaxActiveMatches {
			outcome.AtCapacity = append(outcome.AtCapacity, volunteer.ID)
			continue
		}

		bestEvent, bestScore := findBestEvent(volunteer, openEvents, matchedEvents[volunteer.ID])
		if bestEvent == nil {
			outcome.NoCandidates = append(outcome.NoCandidates, volunteer.ID)
			continue
		}

		if bestScore < AutoMatchThreshold {
			outcome.BelowThreshold = append(outcome.BelowThreshold, volunteer.ID)
			continue
		}

		outcome.Proposals = append(outcome.Proposals, Proposal{
			VolunteerID: volunteer.ID,
			EventID:     bestEvent.ID,
			EventName:   bestEvent.Name,
			Score:       bestScore,
		})
	}

	return outcome
}

// findBestEvent returns the candidate with the highest score, skipping events already matched.
// A candidate only replaces the current best when it scores strictly higher.
func findBestEvent(volunteer *model.Volunteer, events []*model.Event, alreadyMatched map[string]bool) (*model.Event, int) {
	var bestEvent *model.Event
	bestScore := -1

	for _, event := range events {
		if alreadyMatched[event.ID] {
			continue
		}

		score := Score(volunteer, event)
		if score > bestScore {
			bestScore = score
			bestEvent = event
		}
	}

	return bestEvent, bestScore
}
