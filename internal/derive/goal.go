package derive

import "math"

// GoalProgress is the cumulative, all-time view of a category goal. It is
// independent of any single month's budget: TotalLogged spans every entry
// ever recorded for the category.
type GoalProgress struct {
	Target      int64  `json:"target"`
	TotalLogged int64  `json:"total_logged"`
	Remaining   int64  `json:"remaining"`
	GoalPct     int    `json:"goal_pct"`
	GoalReached bool   `json:"goal_reached"`
	Status      Status `json:"status"`

	// MonthsToGoal projects how many months of the current allocation are
	// needed to close the gap. Nil when there is no positive monthly rate
	// to project from, or nothing left to close.
	MonthsToGoal *int `json:"months_to_goal,omitempty"`
}

// Goal derives cumulative progress toward an all-time target.
func Goal(target, totalLogged, monthlyAllocation int64) GoalProgress {
	p := GoalProgress{Target: target, TotalLogged: totalLogged}

	if target <= 0 {
		p.Status = StatusNoAllocation
		return p
	}

	p.GoalPct = clampPct(int(totalLogged * 100 / target))
	p.GoalReached = totalLogged >= target
	if !p.GoalReached {
		p.Remaining = target - totalLogged
	}

	switch {
	case p.GoalReached:
		p.Status = StatusComplete
	case totalLogged == 0:
		p.Status = StatusNotStarted
	default:
		p.Status = StatusOnTrack
	}

	if monthlyAllocation > 0 && p.Remaining > 0 {
		months := int(math.Ceil(float64(p.Remaining) / float64(monthlyAllocation)))
		p.MonthsToGoal = &months
	}
	return p
}
