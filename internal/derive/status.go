// Package derive contains the pure budget-derivation logic: allocation
// amounts, monthly spending progress, pacing, credit card bonus windows,
// goal projections and savings streaks. Nothing in this package performs
// I/O; callers load the data and pass "today" explicitly so every
// computation is deterministic and testable.
package derive

// Status classifies progress for a category card, goal or tracker.
// The set is closed: every consumer must handle all values exhaustively.
type Status string

const (
	StatusOnTrack       Status = "on_track"
	StatusWatchSpending Status = "watch_spending"
	StatusOverBudget    Status = "over_budget"
	StatusAheadOfPace   Status = "ahead_of_pace"
	StatusBehind        Status = "behind"
	StatusUrgent        Status = "urgent"
	StatusExpired       Status = "expired"
	StatusComplete      Status = "complete"
	StatusNotStarted    Status = "not_started"
	StatusNoAllocation  Status = "no_allocation"
)

// Label returns the human-readable label for a status. The switch is
// exhaustive so adding a status without a label fails review, not runtime.
func (s Status) Label() string {
	switch s {
	case StatusOnTrack:
		return "on track"
	case StatusWatchSpending:
		return "watch spending"
	case StatusOverBudget:
		return "over budget"
	case StatusAheadOfPace:
		return "ahead of pace"
	case StatusBehind:
		return "behind"
	case StatusUrgent:
		return "urgent"
	case StatusExpired:
		return "expired"
	case StatusComplete:
		return "complete"
	case StatusNotStarted:
		return "not started"
	case StatusNoAllocation:
		return "no allocation"
	}
	return string(s)
}

// Color returns the hex accent color used by the presentation layer.
func (s Status) Color() string {
	switch s {
	case StatusOnTrack, StatusAheadOfPace, StatusComplete:
		return "#34d399"
	case StatusWatchSpending, StatusUrgent:
		return "#fbbf24"
	case StatusOverBudget, StatusBehind, StatusExpired:
		return "#f87171"
	case StatusNotStarted, StatusNoAllocation:
		return "#a3a3a3"
	}
	return "#a3a3a3"
}
