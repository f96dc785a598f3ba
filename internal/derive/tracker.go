package derive

import (
	"time"

	"budgetr/internal/models"
)

// TrackerProgress is the spend-to-bonus view for a credit card tracker.
type TrackerProgress struct {
	SpendTarget     int64  `json:"spend_target"`
	Spent           int64  `json:"spent"`
	Remaining       int64  `json:"remaining"`
	SpendPct        int    `json:"spend_pct"`
	DaysLeft        int    `json:"days_left"`
	TotalDays       int    `json:"total_days"`
	DailyPaceNeeded int64  `json:"daily_pace_needed"`
	Status          Status `json:"status"`
}

// Tracker derives bonus progress for a credit card spend window. Only
// entries dated within [start, end] inclusive count toward the target;
// the window is a fixed span and deliberately does not follow the
// month-elapsed pacing model.
//
// Status priority: complete > expired > urgent > behind > on_track.
func Tracker(target int64, entries []models.Entry, start, end, today time.Time) TrackerProgress {
	p := TrackerProgress{
		SpendTarget: target,
		Spent:       SumInWindow(entries, start, end),
		TotalDays:   daysBetween(start, end),
		DaysLeft:    daysBetween(today, end),
	}

	if target <= 0 {
		p.Status = StatusNoAllocation
		return p
	}

	if p.Spent < target {
		p.Remaining = target - p.Spent
	}
	p.SpendPct = clampPct(int(p.Spent * 100 / target))
	p.DailyPaceNeeded = p.Remaining / int64(max(p.DaysLeft, 1))

	elapsed := daysBetween(start, today)
	if elapsed > p.TotalDays {
		elapsed = p.TotalDays
	}
	var expected int64
	if p.TotalDays > 0 && elapsed > 0 {
		expected = target * int64(elapsed) / int64(p.TotalDays)
	}

	switch {
	case p.Spent >= target:
		p.Status = StatusComplete
	case today.After(end):
		p.Status = StatusExpired
	case p.DaysLeft <= 7:
		p.Status = StatusUrgent
	case p.Spent-expected < 0:
		p.Status = StatusBehind
	default:
		p.Status = StatusOnTrack
	}
	return p
}

// daysBetween returns the whole calendar days from a to b, never negative.
func daysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
