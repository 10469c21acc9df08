package matcher

import "github.com/jakechorley/volunteer-matching/pkg/core/model"

// LocationCriterion awards its full weight when the volunteer location string
// equals the event location string exactly.
type LocationCriterion struct {
	weight float64
}

// NewLocationCriterion creates a new LocationCriterion with the given weight
func NewLocationCriterion(weight float64) *LocationCriterion {
	return &LocationCriterion{weight: weight}
}

func (c *LocationCriterion) Name() string {
	return "Location"
}

func (c *LocationCriterion) Fraction(volunteer *model.Volunteer, event *model.Event) float64 {
	if volunteer.Location == event.Location {
		return 1
	}
	return 0
}

func (c *LocationCriterion) Weight() float64 {
	return c.weight
}
