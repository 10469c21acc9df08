package matcher

import "github.com/jakechorley/volunteer-matching/pkg/core/model"

// SkillsCriterion rewards volunteers who hold the event's required skills.
//
// Fraction:
//   - 1.0 when the event requires no skills (no constraint, never a division by zero)
//   - otherwise matching required skills / required skills, using case-sensitive exact comparison
type SkillsCriterion struct {
	weight float64
}

// NewSkillsCriterion creates a new SkillsCriterion with the given weight
func NewSkillsCriterion(weight float64) *SkillsCriterion {
	return &SkillsCriterion{weight: weight}
}

func (c *SkillsCriterion) Name() string {
	return "Skills"
}

func (c *SkillsCriterion) Fraction(volunteer *model.Volunteer, event *model.Event) float64 {
	required := uniqueSkills(event.RequiredSkills)
	if len(required) == 0 {
		return 1
	}

	held := make(map[string]bool, len(volunteer.Skills))
	for _, skill := range volunteer.Skills {
		held[skill] = true
	}

	matching := 0
	for _, skill := range required {
		if held[skill] {
			matching++
		}
	}

	return float64(matching) / float64(len(required))
}

func (c *SkillsCriterion) Weight() float64 {
	return c.weight
}

// uniqueSkills drops repeated skill names, keeping first-seen order
func uniqueSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	result := make([]string, 0, len(skills))
	for _, skill := range skills {
		if seen[skill] {
			continue
		}
		seen[skill] = true
		result = append(result, skill)
	}
	return result
}
