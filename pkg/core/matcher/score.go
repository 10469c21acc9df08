package matcher

import (
	"math"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

// ComponentScore is the contribution of a single criterion to a score
type ComponentScore struct {
	Criterion string  `json:"criterion"`
	Fraction  float64 `json:"fraction"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"maxPoints"`
}

// Breakdown explains how a score was computed
type Breakdown struct {
	Total      int              `json:"total"`
	Components []ComponentScore `json:"components"`
}

// Score computes the compatibility score between a volunteer and an event, in [0, MaxScore].
// It returns 0 if either is nil. Score is pure: it reads only its arguments.
func Score(volunteer *model.Volunteer, event *model.Event) int {
	return Explain(volunteer, event).Total
}

// Explain computes the score along with each criterion's contribution
func Explain(volunteer *model.Volunteer, event *model.Event) Breakdown {
	return explainWith(volunteer, event, defaultCriteria)
}

func explainWith(volunteer *model.Volunteer, event *model.Event, criteria []Criterion) Breakdown {
	breakdown := Breakdown{Components: []ComponentScore{}}
	if volunteer == nil || event == nil {
		return breakdown
	}

	total := 0.0
	for _, criterion := range criteria {
		fraction := clamp(criterion.Fraction(volunteer, event), 0, 1)
		points := fraction * criterion.Weight()
		total += points

		breakdown.Components = append(breakdown.Components, ComponentScore{
			Criterion: criterion.Name(),
			Fraction:  fraction,
			Points:    points,
			MaxPoints: criterion.Weight(),
		})
	}

	breakdown.Total = roundHalfUp(total)
	return breakdown
}

// roundHalfUp rounds to the nearest integer with halves rounded up
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
