package model

import "time"

// DateLayout is the ISO date format used for event dates and availability
const DateLayout = "2006-01-02"

type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

func (u Urgency) IsValid() bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

type EventStatus string

// EventStatusActive is the only status the matching engine recommends or auto-matches against.
// Other statuses are owned by the event collaborator and treated as inactive.
const EventStatusActive EventStatus = "Active"

// Preferences holds optional volunteer preferences
type Preferences struct {
	MaxDistance int      `json:"maxDistance" yaml:"maxDistance"`
	EventTypes  []string `json:"eventTypes" yaml:"eventTypes"`
}

// Volunteer represents a registered volunteer profile
type Volunteer struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Email        string       `json:"email,omitempty" yaml:"email"`
	Location     string       `json:"location" yaml:"location"`
	Skills       []string     `json:"skills" yaml:"skills"`
	Availability []string     `json:"availability" yaml:"availability"` // ISO dates
	Preferences  *Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// HasSkill reports whether the volunteer lists the skill (case-sensitive)
func (v *Volunteer) HasSkill(skill string) bool {
	for _, s := range v.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// IsAvailableOn reports whether the volunteer's availability contains the ISO date
func (v *Volunteer) IsAvailableOn(date string) bool {
	for _, d := range v.Availability {
		if d == date {
			return true
		}
	}
	return false
}

// Event represents a single-day volunteering event
type Event struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	Description    string      `json:"description" yaml:"description"`
	Date           string      `json:"date" yaml:"date"` // ISO date
	Location       string      `json:"location" yaml:"location"`
	RequiredSkills []string    `json:"requiredSkills" yaml:"requiredSkills"`
	Urgency        Urgency     `json:"urgency" yaml:"urgency"`
	Status         EventStatus `json:"status" yaml:"status"`
}

// IsOpen reports whether the event is active and takes place on or after today.
// Both dates are ISO formatted so string comparison orders them chronologically.
func (e *Event) IsOpen(today string) bool {
	return e.Status == EventStatusActive && e.Date >= today
}

// Match links one volunteer to one event
type Match struct {
	ID          string      `json:"id" yaml:"id"`
	VolunteerID string      `json:"volunteerId" yaml:"volunteerId"`
	EventID     string      `json:"eventId" yaml:"eventId"`
	Status      MatchStatus `json:"status" yaml:"status"`
	Score       int         `json:"matchScore" yaml:"matchScore"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// HistoryEntry is a match joined with the volunteer and event it references
type HistoryEntry struct {
	MatchID        string      `json:"matchId"`
	VolunteerID    string      `json:"volunteerId"`
	VolunteerName  string      `json:"volunteerName"`
	EventID        string      `json:"eventId"`
	EventName      string      `json:"eventName"`
	EventDate      string      `json:"eventDate"`
	Location       string      `json:"location"`
	RequiredSkills []string    `json:"requiredSkills"`
	Urgency        Urgency     `json:"urgency"`
	Status         MatchStatus `json:"status"`
	Score          int         `json:"matchScore"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
