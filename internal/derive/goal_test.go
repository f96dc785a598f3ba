package derive

import "testing"

func TestGoal(t *testing.T) {
	t.Run("reached_exactly", func(t *testing.T) {
		// target 5000, logged 5000: reached regardless of allocation
		p := Goal(500000, 500000, 0)
		if !p.GoalReached {
			t.Error("expected goal reached")
		}
		if p.GoalPct != 100 {
			t.Errorf("expected 100%%, got %d%%", p.GoalPct)
		}
		if p.Status != StatusComplete {
			t.Errorf("expected complete, got %s", p.Status)
		}
		if p.MonthsToGoal != nil {
			t.Errorf("expected nil months to goal, got %d", *p.MonthsToGoal)
		}
	})

	t.Run("partial", func(t *testing.T) {
		p := Goal(500000, 125000, 0)
		if p.GoalPct != 25 {
			t.Errorf("expected 25%%, got %d%%", p.GoalPct)
		}
		if p.Remaining != 375000 {
			t.Errorf("expected 375000 remaining, got %d", p.Remaining)
		}
		if p.Status != StatusOnTrack {
			t.Errorf("expected on_track, got %s", p.Status)
		}
	})

	t.Run("overshoot_clamps", func(t *testing.T) {
		p := Goal(500000, 600000, 0)
		if p.GoalPct != 100 {
			t.Errorf("expected clamped 100%%, got %d%%", p.GoalPct)
		}
		if p.Remaining != 0 {
			t.Errorf("expected 0 remaining, got %d", p.Remaining)
		}
	})

	t.Run("months_to_goal_rounds_up", func(t *testing.T) {
		// 3750.00 remaining at 1000.00/month: 4 months, not 3.75
		p := Goal(500000, 125000, 100000)
		if p.MonthsToGoal == nil {
			t.Fatal("expected months to goal")
		}
		if *p.MonthsToGoal != 4 {
			t.Errorf("expected 4 months, got %d", *p.MonthsToGoal)
		}
	})

	t.Run("no_projection_without_allocation", func(t *testing.T) {
		p := Goal(500000, 125000, 0)
		if p.MonthsToGoal != nil {
			t.Errorf("expected nil projection, got %d", *p.MonthsToGoal)
		}
	})

	t.Run("not_started", func(t *testing.T) {
		p := Goal(500000, 0, 100000)
		if p.Status != StatusNotStarted {
			t.Errorf("expected not_started, got %s", p.Status)
		}
	})

	t.Run("zero_target_is_no_allocation", func(t *testing.T) {
		p := Goal(0, 100, 100)
		if p.Status != StatusNoAllocation {
			t.Errorf("expected no_allocation, got %s", p.Status)
		}
	})
}
