package derive

import (
	"testing"
	"time"

	"budgetr/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entryOn(amount int64, date time.Time) models.Entry {
	return models.Entry{
		Amount: amount,
		Date:   date,
		Month:  int(date.Month()),
		Year:   date.Year(),
	}
}

func TestTrackerWindowIsInclusive(t *testing.T) {
	start := day(2025, time.January, 1)
	end := day(2025, time.March, 31)

	entries := []models.Entry{
		entryOn(10000, start),                    // first day counts
		entryOn(20000, end),                      // last day counts
		entryOn(99999, day(2024, time.December, 31)), // one day before: excluded
		entryOn(99999, day(2025, time.April, 1)),     // one day after: excluded
	}

	p := Tracker(300000, entries, start, end, day(2025, time.February, 1))
	if p.Spent != 30000 {
		t.Errorf("expected 30000 spent inside window, got %d", p.Spent)
	}
}

func TestTrackerStatusPriority(t *testing.T) {
	start := day(2025, time.January, 1)
	end := day(2025, time.March, 31)

	t.Run("complete_even_after_expiry", func(t *testing.T) {
		// target 3000, spent 3100: complete, remaining 0 (never negative)
		entries := []models.Entry{entryOn(310000, day(2025, time.February, 1))}
		p := Tracker(300000, entries, start, end, day(2025, time.May, 1))
		if p.Status != StatusComplete {
			t.Errorf("expected complete, got %s", p.Status)
		}
		if p.Remaining != 0 {
			t.Errorf("expected 0 remaining, got %d", p.Remaining)
		}
		if p.SpendPct != 100 {
			t.Errorf("expected clamped 100%%, got %d%%", p.SpendPct)
		}
	})

	t.Run("expired_when_past_end", func(t *testing.T) {
		entries := []models.Entry{entryOn(10000, day(2025, time.February, 1))}
		p := Tracker(300000, entries, start, end, day(2025, time.April, 1))
		if p.Status != StatusExpired {
			t.Errorf("expected expired, got %s", p.Status)
		}
	})

	t.Run("urgent_within_seven_days", func(t *testing.T) {
		// Spend well ahead of pace so only the deadline triggers urgency.
		entries := []models.Entry{entryOn(290000, day(2025, time.January, 10))}
		p := Tracker(300000, entries, start, end, day(2025, time.March, 28))
		if p.Status != StatusUrgent {
			t.Errorf("expected urgent, got %s", p.Status)
		}
		if p.DaysLeft != 3 {
			t.Errorf("expected 3 days left, got %d", p.DaysLeft)
		}
	})

	t.Run("behind_when_under_window_pace", func(t *testing.T) {
		// Halfway through the window with ~3% of the target spent.
		entries := []models.Entry{entryOn(10000, day(2025, time.January, 10))}
		p := Tracker(300000, entries, start, end, day(2025, time.February, 14))
		if p.Status != StatusBehind {
			t.Errorf("expected behind, got %s", p.Status)
		}
	})

	t.Run("on_track_when_at_pace", func(t *testing.T) {
		// ~55% spent halfway through.
		entries := []models.Entry{entryOn(165000, day(2025, time.January, 20))}
		p := Tracker(300000, entries, start, end, day(2025, time.February, 14))
		if p.Status != StatusOnTrack {
			t.Errorf("expected on_track, got %s", p.Status)
		}
	})
}

func TestTrackerDailyPace(t *testing.T) {
	start := day(2025, time.January, 1)
	end := day(2025, time.January, 31)

	entries := []models.Entry{entryOn(100000, day(2025, time.January, 5))}
	p := Tracker(300000, entries, start, end, day(2025, time.January, 21))

	// 2000.00 remaining over 10 days.
	if p.DaysLeft != 10 {
		t.Errorf("expected 10 days left, got %d", p.DaysLeft)
	}
	if p.DailyPaceNeeded != 20000 {
		t.Errorf("expected 20000/day, got %d", p.DailyPaceNeeded)
	}
}

func TestTrackerGuardsZeroDaysLeft(t *testing.T) {
	start := day(2025, time.January, 1)
	end := day(2025, time.January, 31)

	// On the end date with nothing spent: remaining / max(daysLeft, 1).
	p := Tracker(300000, nil, start, end, end)
	if p.DaysLeft != 0 {
		t.Errorf("expected 0 days left, got %d", p.DaysLeft)
	}
	if p.DailyPaceNeeded != 300000 {
		t.Errorf("expected full remaining as daily pace, got %d", p.DailyPaceNeeded)
	}
}

func TestTrackerZeroTarget(t *testing.T) {
	start := day(2025, time.January, 1)
	p := Tracker(0, nil, start, start.AddDate(0, 0, 90), start)
	if p.Status != StatusNoAllocation {
		t.Errorf("expected no_allocation, got %s", p.Status)
	}
}
