package derive

import (
	"testing"
	"time"

	"budgetr/internal/models"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month, year, want int
	}{
		{1, 2025, 31},
		{2, 2025, 28},
		{2, 2024, 29}, // leap year
		{4, 2025, 30},
		{12, 2025, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month, c.year); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.month, c.year, got, c.want)
		}
	}
}

func TestDaysElapsed(t *testing.T) {
	today := day(2025, time.June, 10)

	if got := DaysElapsed(6, 2025, today); got != 10 {
		t.Errorf("current month: expected 10, got %d", got)
	}
	if got := DaysElapsed(5, 2025, today); got != 31 {
		t.Errorf("past month counts in full: expected 31, got %d", got)
	}
	if got := DaysElapsed(7, 2025, today); got != 0 {
		t.Errorf("future month: expected 0, got %d", got)
	}
	if got := DaysElapsed(12, 2024, today); got != 31 {
		t.Errorf("past year: expected 31, got %d", got)
	}
}

func TestStreak(t *testing.T) {
	t.Run("gap_at_current_month_means_zero", func(t *testing.T) {
		contributed := []MonthYear{
			{Month: 11, Year: 2024},
			{Month: 12, Year: 2024},
			{Month: 1, Year: 2025},
		}
		if got := Streak(contributed, MonthYear{Month: 2, Year: 2025}); got != 0 {
			t.Errorf("expected 0 from 2025-02, got %d", got)
		}
		if got := Streak(contributed, MonthYear{Month: 1, Year: 2025}); got != 3 {
			t.Errorf("expected 3 from 2025-01, got %d", got)
		}
	})

	t.Run("stops_at_first_gap", func(t *testing.T) {
		contributed := []MonthYear{
			{Month: 3, Year: 2025},
			{Month: 4, Year: 2025},
			// May missing
			{Month: 6, Year: 2025},
		}
		if got := Streak(contributed, MonthYear{Month: 6, Year: 2025}); got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})

	t.Run("year_rollover", func(t *testing.T) {
		contributed := []MonthYear{
			{Month: 12, Year: 2023},
			{Month: 1, Year: 2024},
		}
		if got := Streak(contributed, MonthYear{Month: 1, Year: 2024}); got != 2 {
			t.Errorf("expected 2 across year boundary, got %d", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Streak(nil, MonthYear{Month: 1, Year: 2025}); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestAverageMonthly(t *testing.T) {
	t.Run("only_active_months_in_denominator", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(30000, day(2025, time.January, 5)),
			entryOn(10000, day(2025, time.January, 20)),
			// February skipped entirely
			entryOn(20000, day(2025, time.March, 1)),
		}
		// 600.00 over 2 active months, not 3 calendar months.
		if got := AverageMonthly(entries); got != 30000 {
			t.Errorf("expected 30000, got %d", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := AverageMonthly(nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestSumForMonth(t *testing.T) {
	entries := []models.Entry{
		entryOn(10000, day(2025, time.January, 5)),
		entryOn(20000, day(2025, time.January, 31)),
		entryOn(40000, day(2025, time.February, 1)),
	}
	if got := SumForMonth(entries, 1, 2025); got != 30000 {
		t.Errorf("expected 30000, got %d", got)
	}
	if got := SumForMonth(entries, 3, 2025); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestMonthYearPrev(t *testing.T) {
	if got := (MonthYear{Month: 1, Year: 2025}).Prev(); got != (MonthYear{Month: 12, Year: 2024}) {
		t.Errorf("expected 2024-12, got %+v", got)
	}
	if got := (MonthYear{Month: 7, Year: 2025}).Prev(); got != (MonthYear{Month: 6, Year: 2025}) {
		t.Errorf("expected 2025-06, got %+v", got)
	}
}
