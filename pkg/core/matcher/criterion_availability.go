package matcher

import "github.com/jakechorley/volunteer-matching/pkg/core/model"

// AvailabilityCriterion awards its full weight when the volunteer lists the event date
// as available. There is no partial credit.
type AvailabilityCriterion struct {
	weight float64
}

// NewAvailabilityCriterion creates a new AvailabilityCriterion with the given weight
func NewAvailabilityCriterion(weight float64) *AvailabilityCriterion {
	return &AvailabilityCriterion{weight: weight}
}

func (c *AvailabilityCriterion) Name() string {
	return "Availability"
}

func (c *AvailabilityCriterion) Fraction(volunteer *model.Volunteer, event *model.Event) float64 {
	if volunteer.IsAvailableOn(event.Date) {
		return 1
	}
	return 0
}

func (c *AvailabilityCriterion) Weight() float64 {
	return c.weight
}
