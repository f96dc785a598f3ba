package derive

import "math"

// AllocatedAmount returns the cents allocated to a category:
// income * pct / 100.
func AllocatedAmount(income int64, pct int) int64 {
	return income * int64(pct) / 100
}

// SpendingProgress is the month-scoped spent-vs-limit view for a
// spending-type category.
type SpendingProgress struct {
	Allocated int64  `json:"allocated"`
	Spent     int64  `json:"spent"`
	Remaining int64  `json:"remaining"`
	Overspent int64  `json:"overspent"`
	UsedPct   int    `json:"used_pct"`
	Status    Status `json:"status"`
}

// Spending derives monthly spending progress against an allocated limit.
// A zero allocation is reported as StatusNoAllocation rather than 0% of
// nothing. UsedPct is clamped to [0, 100]; spending past the limit shows
// up in Overspent, not as a >100% bar.
func Spending(allocated, spent int64) SpendingProgress {
	p := SpendingProgress{Allocated: allocated, Spent: spent}

	if allocated <= 0 {
		p.Status = StatusNoAllocation
		return p
	}

	p.UsedPct = clampPct(int(math.Round(float64(spent) / float64(allocated) * 100)))
	if spent > allocated {
		p.Overspent = spent - allocated
	} else {
		p.Remaining = allocated - spent
	}

	switch {
	case p.UsedPct > 85:
		p.Status = StatusOverBudget
	case p.UsedPct > 60:
		p.Status = StatusWatchSpending
	default:
		p.Status = StatusOnTrack
	}
	return p
}

// paceTolerancePct is the band, in percentage points, within which actual
// progress counts as on pace. It keeps status labels from flapping on
// small daily fluctuations.
const paceTolerancePct = 5

// Pace compares actual progress against the fraction of the period that
// has elapsed.
type Pace struct {
	Target        int64  `json:"target"`
	Actual        int64  `json:"actual"`
	ExpectedByNow int64  `json:"expected_by_now"`
	AheadOfPace   int64  `json:"ahead_of_pace"`
	ActualPct     int    `json:"actual_pct"`
	ElapsedPct    int    `json:"elapsed_pct"`
	Status        Status `json:"status"`
}

// Pacing derives pace status for a target over a period of totalDays, of
// which daysElapsed have passed. StatusNoAllocation overrides everything
// when the target is zero; StatusNotStarted overrides when nothing has
// been logged yet.
func Pacing(target, actual int64, daysElapsed, totalDays int) Pace {
	p := Pace{Target: target, Actual: actual}

	if target <= 0 {
		p.Status = StatusNoAllocation
		return p
	}
	if totalDays > 0 {
		p.ExpectedByNow = target * int64(daysElapsed) / int64(totalDays)
		p.ElapsedPct = clampPct(daysElapsed * 100 / totalDays)
	}
	p.AheadOfPace = actual - p.ExpectedByNow
	p.ActualPct = clampPct(int(math.Round(float64(actual) / float64(target) * 100)))

	switch {
	case actual == 0:
		p.Status = StatusNotStarted
	case p.ActualPct >= p.ElapsedPct+paceTolerancePct:
		p.Status = StatusAheadOfPace
	case p.ActualPct <= p.ElapsedPct-paceTolerancePct:
		p.Status = StatusBehind
	default:
		p.Status = StatusOnTrack
	}
	return p
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
