package derive

import (
	"time"

	"budgetr/internal/models"
)

// MonthYear identifies one calendar month.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Prev returns the month immediately before m, rolling December backward
// across the year boundary.
func (m MonthYear) Prev() MonthYear {
	if m.Month == 1 {
		return MonthYear{Month: 12, Year: m.Year - 1}
	}
	return MonthYear{Month: m.Month - 1, Year: m.Year}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(month, year int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysElapsed returns how many days of the given month have passed as of
// today, inclusive of today. A month entirely in the past counts in full,
// a future month counts as zero.
func DaysElapsed(month, year int, today time.Time) int {
	current := MonthOf(today)
	viewing := MonthYear{Month: month, Year: year}

	switch {
	case viewing == current:
		return today.Day()
	case viewing.Year < current.Year || (viewing.Year == current.Year && viewing.Month < current.Month):
		return DaysInMonth(month, year)
	default:
		return 0
	}
}

// SumForMonth totals entry amounts dated in the given calendar month.
func SumForMonth(entries []models.Entry, month, year int) int64 {
	var total int64
	for _, e := range entries {
		if e.Month == month && e.Year == year {
			total += e.Amount
		}
	}
	return total
}

// SumInWindow totals entry amounts with start <= date <= end. Entries
// outside the window never count, even for the same category.
func SumInWindow(entries []models.Entry, start, end time.Time) int64 {
	var total int64
	for _, e := range entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		total += e.Amount
	}
	return total
}

// SumAll totals all entry amounts regardless of date.
func SumAll(entries []models.Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// Streak counts consecutive months with at least one contribution, walking
// backward from the given month. The walk stops at the first gap, so a
// missing current month yields zero.
func Streak(contributed []MonthYear, from MonthYear) int {
	seen := make(map[MonthYear]bool, len(contributed))
	for _, m := range contributed {
		seen[m] = true
	}

	streak := 0
	for cursor := from; seen[cursor]; cursor = cursor.Prev() {
		streak++
	}
	return streak
}

// AverageMonthly returns the average amount logged per active month: the
// total divided by the number of distinct months that have at least one
// entry. Months with no entries are not zero-filled into the denominator.
func AverageMonthly(entries []models.Entry) int64 {
	if len(entries) == 0 {
		return 0
	}

	months := make(map[MonthYear]bool)
	var total int64
	for _, e := range entries {
		months[MonthYear{Month: e.Month, Year: e.Year}] = true
		total += e.Amount
	}
	return total / int64(len(months))
}
