package matcher

// Scoring weights. Each is the maximum number of points its criterion contributes
// and together they sum to MaxScore. Recommendation ordering and the auto-match
// threshold depend on these exact values.
const (
	// WeightSkills is scaled by the fraction of the event's required skills the volunteer has.
	// An event with no required skills awards the full weight.
	WeightSkills = 60

	// WeightAvailability is awarded in full when the volunteer is available on the event date.
	WeightAvailability = 30

	// WeightLocation is awarded in full when the volunteer and event locations are identical.
	WeightLocation = 10

	MaxScore = WeightSkills + WeightAvailability + WeightLocation
)

// Auto-match policy
const (
	// MaxActiveMatches is the number of Pending/Matched matches at which a volunteer
	// stops receiving auto-matches.
	MaxActiveMatches = 3

	// AutoMatchThreshold is the minimum score an auto-match candidate must reach.
	AutoMatchThreshold = 50
)
