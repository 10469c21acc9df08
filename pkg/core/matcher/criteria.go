package matcher

import "github.com/jakechorley/volunteer-matching/pkg/core/model"

// Criterion scores one aspect of volunteer/event compatibility
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Fraction returns how well the volunteer satisfies this criterion for the event,
	// between 0.0 and 1.0. It is multiplied by Weight to give the criterion's points.
	// Both arguments are non-nil.
	Fraction(volunteer *model.Volunteer, event *model.Event) float64

	// Weight returns the maximum number of points this criterion contributes
	Weight() float64
}

var defaultCriteria = []Criterion{
	NewSkillsCriterion(WeightSkills),
	NewAvailabilityCriterion(WeightAvailability),
	NewLocationCriterion(WeightLocation),
}

// DefaultCriteria returns the fixed criteria set used by Score
func DefaultCriteria() []Criterion {
	criteria := make([]Criterion, len(defaultCriteria))
	copy(criteria, defaultCriteria)
	return criteria
}
