package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"budgetr/internal/derive"
	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
)

// progressService is the read side of the dashboard: it loads the budget
// period, categories, ledger entries, goals and trackers, and runs them
// through the derive package. All date-dependent figures take today as an
// explicit parameter.
type progressService struct {
	db      *gorm.DB
	budgets BudgetServicer
	entries EntryServicer
}

// NewProgressService creates a new ProgressServicer.
func NewProgressService(db *gorm.DB, budgets BudgetServicer, entries EntryServicer) ProgressServicer {
	return &progressService{db: db, budgets: budgets, entries: entries}
}

// GetDashboard builds the full month view: one card per category with
// spending, pacing, goal and tracker figures. Viewing a month that has no
// budget yet bootstraps it through the budget period manager.
func (s *progressService) GetDashboard(userID uint, month, year int, today time.Time) (*Dashboard, error) {
	budget, err := s.budgets.GetOrCreate(userID, month, year)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("sort_order ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	entries, err := s.entries.ListForCategories(userID, ids)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[uint][]models.Entry, len(categories))
	for _, e := range entries {
		byCategory[e.CategoryID] = append(byCategory[e.CategoryID], e)
	}

	goals, trackers, err := s.loadRegistry(userID)
	if err != nil {
		return nil, err
	}

	pctByCategory := make(map[uint]int, len(budget.Allocations))
	for _, a := range budget.Allocations {
		pctByCategory[a.CategoryID] = a.AllocationPct
	}

	dashboard := &Dashboard{
		Month:       month,
		Year:        year,
		Income:      budget.Income,
		DaysInMonth: derive.DaysInMonth(month, year),
		DaysElapsed: derive.DaysElapsed(month, year, today),
		Cards:       make([]CategoryCard, 0, len(categories)),
	}

	for _, category := range categories {
		card := s.buildCard(category, budget.Income, pctByCategory[category.ID],
			byCategory[category.ID], goals[category.ID], trackers[category.ID],
			month, year, today)
		dashboard.Cards = append(dashboard.Cards, card)
	}

	return dashboard, nil
}

// GetCategoryProgress builds the card for a single category.
func (s *progressService) GetCategoryProgress(userID, categoryID uint, month, year int, today time.Time) (*CategoryCard, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget, err := s.budgets.GetOrCreate(userID, month, year)
	if err != nil {
		return nil, err
	}
	pct := 0
	for _, a := range budget.Allocations {
		if a.CategoryID == categoryID {
			pct = a.AllocationPct
			break
		}
	}

	entries, err := s.entries.ListForCategories(userID, []uint{categoryID})
	if err != nil {
		return nil, err
	}

	goals, trackers, err := s.loadRegistry(userID)
	if err != nil {
		return nil, err
	}

	card := s.buildCard(category, budget.Income, pct, entries,
		goals[categoryID], trackers[categoryID], month, year, today)
	return &card, nil
}

// GetStreak counts consecutive months with at least one entry for the
// category, walking backward from today's month.
func (s *progressService) GetStreak(userID, categoryID uint, today time.Time) (int, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return 0, apperrors.ErrCategoryNotFound
	}

	entries, err := s.entries.ListForCategories(userID, []uint{categoryID})
	if err != nil {
		return 0, err
	}

	months := make([]derive.MonthYear, 0, len(entries))
	seen := make(map[derive.MonthYear]bool)
	for _, e := range entries {
		m := derive.MonthYear{Month: e.Month, Year: e.Year}
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}

	return derive.Streak(months, derive.MonthOf(today)), nil
}

// buildCard derives one category's view-ready figures.
func (s *progressService) buildCard(category models.Category, income int64, pct int,
	entries []models.Entry, goal *models.Goal, tracker *models.CreditCardTracker,
	month, year int, today time.Time) CategoryCard {

	allocated := derive.AllocatedAmount(income, pct)
	monthSpent := derive.SumForMonth(entries, month, year)

	card := CategoryCard{
		Category:      category,
		AllocationPct: pct,
		Allocated:     allocated,
		Spending:      derive.Spending(allocated, monthSpent),
		Pace: derive.Pacing(allocated, monthSpent,
			derive.DaysElapsed(month, year, today), derive.DaysInMonth(month, year)),
		AvgMonthly: derive.AverageMonthly(entries),
	}

	if goal != nil {
		progress := derive.Goal(goal.TargetAmount, derive.SumAll(entries), allocated)
		card.Goal = &progress
	}
	if tracker != nil {
		progress := derive.Tracker(tracker.SpendTarget, entries,
			tracker.StartDate, tracker.EndDate, today)
		card.Tracker = &progress
	}
	return card
}

// loadRegistry indexes the user's goals and trackers by category id.
func (s *progressService) loadRegistry(userID uint) (map[uint]*models.Goal, map[uint]*models.CreditCardTracker, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goalsByCategory := make(map[uint]*models.Goal, len(goals))
	for i := range goals {
		goalsByCategory[goals[i].CategoryID] = &goals[i]
	}

	var trackers []models.CreditCardTracker
	if err := s.db.Where("user_id = ?", userID).Find(&trackers).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	trackersByCategory := make(map[uint]*models.CreditCardTracker, len(trackers))
	for i := range trackers {
		trackersByCategory[trackers[i].CategoryID] = &trackers[i]
	}

	return goalsByCategory, trackersByCategory, nil
}
