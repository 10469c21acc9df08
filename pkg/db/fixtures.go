package db

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

// Fixtures is the seed data file format
type Fixtures struct {
	Volunteers []model.Volunteer `yaml:"volunteers"`
	Events     []model.Event     `yaml:"events"`
	Matches    []model.Match     `yaml:"matches,omitempty"`
}

// LoadFixtures reads and checks a YAML fixture file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	return ParseFixtures(data)
}

// ParseFixtures decodes fixture YAML and rejects records without ids,
// duplicated ids and matches referencing unknown volunteers or events
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures file: %w", err)
	}

	volunteerIDs := make(map[string]bool, len(fx.Volunteers))
	for i, v := range fx.Volunteers {
		if v.ID == "" {
			return nil, fmt.Errorf("volunteers[%d] has no id: %w", i, model.ErrInvalidInput)
		}
		if volunteerIDs[v.ID] {
			return nil, fmt.Errorf("duplicate volunteer id %s: %w", v.ID, model.ErrInvalidInput)
		}
		volunteerIDs[v.ID] = true
	}

	eventIDs := make(map[string]bool, len(fx.Events))
	for i, e := range fx.Events {
		if e.ID == "" {
			return nil, fmt.Errorf("events[%d] has no id: %w", i, model.ErrInvalidInput)
		}
		if eventIDs[e.ID] {
			return nil, fmt.Errorf("duplicate event id %s: %w", e.ID, model.ErrInvalidInput)
		}
		if e.Urgency != "" && !e.Urgency.IsValid() {
			return nil, fmt.Errorf("event %s has invalid urgency %q: %w", e.ID, e.Urgency, model.ErrInvalidInput)
		}
		eventIDs[e.ID] = true
	}

	for i, m := range fx.Matches {
		if m.ID == "" {
			return nil, fmt.Errorf("matches[%d] has no id: %w", i, model.ErrInvalidInput)
		}
		if !volunteerIDs[m.VolunteerID] || !eventIDs[m.EventID] {
			return nil, fmt.Errorf("match %s references unknown volunteer or event: %w", m.ID, model.ErrInvalidInput)
		}
		if !m.Status.IsValid() {
			return nil, fmt.Errorf("match %s has invalid status %q: %w", m.ID, m.Status, model.ErrInvalidInput)
		}
	}

	return &fx, nil
}
