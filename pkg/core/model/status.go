package model

type MatchStatus string

const (
	StatusPending   MatchStatus = "Pending"
	StatusMatched   MatchStatus = "Matched"
	StatusCompleted MatchStatus = "Completed"
	StatusCancelled MatchStatus = "Cancelled"
)

// MatchStatuses lists every valid status in lifecycle order
var MatchStatuses = []MatchStatus{StatusPending, StatusMatched, StatusCompleted, StatusCancelled}

func (s MatchStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusMatched, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed out of this status
func (s MatchStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the match counts toward a volunteer's capacity
func (s MatchStatus) IsActive() bool {
	return s == StatusPending || s == StatusMatched
}

// BlocksRecommendation reports whether a match in this status stops the pair from being recommended again.
// Pending and Cancelled matches do not block.
func (s MatchStatus) BlocksRecommendation() bool {
	return s == StatusMatched || s == StatusCompleted
}

// CanTransitionTo reports whether a match may move from s to next.
//
// Pending -> Matched -> Completed, with Cancelled reachable from either non-terminal state.
// Re-applying the current status is accepted for non-terminal states only.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusMatched || next == StatusCancelled
	case StatusMatched:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}
