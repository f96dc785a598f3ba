package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
)

// onboardingService runs the one-time setup flow.
type onboardingService struct {
	db *gorm.DB
}

// NewOnboardingService creates a new OnboardingServicer.
func NewOnboardingService(db *gorm.DB) OnboardingServicer {
	return &onboardingService{db: db}
}

// Complete atomically creates the user's settings, categories, first
// budget period and its allocations. Percentages must sum to exactly 100;
// any other sum is rejected before anything is written. All five steps run
// in one transaction so a failure partway leaves no half-onboarded state.
func (s *onboardingService) Complete(userID uint, income int64, month, year int, categories []OnboardingCategory) (*OnboardingResult, error) {
	if income <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must be positive")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if len(categories) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one category is required")
	}

	total := 0
	for _, c := range categories {
		if c.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if c.AllocationPct < 0 || c.AllocationPct > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation percentage must be between 0 and 100")
		}
		total += c.AllocationPct
	}
	if total != 100 {
		return nil, apperrors.ErrAllocationSum
	}

	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	switch {
	case err == nil && settings.OnboardingCompleted:
		return nil, apperrors.ErrAlreadyOnboarded
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &OnboardingResult{}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// Upsert settings.
		if settings.ID == 0 {
			settings = models.UserSettings{UserID: userID}
		}
		settings.MonthlyIncome = income
		settings.OnboardingCompleted = true
		if err := tx.Save(&settings).Error; err != nil {
			return err
		}

		// Categories, in the order given.
		created := make([]models.Category, 0, len(categories))
		for i, c := range categories {
			category := models.Category{
				UserID:    userID,
				Name:      c.Name,
				Type:      c.Type,
				Emoji:     c.Emoji,
				Color:     c.Color,
				SortOrder: i,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			created = append(created, category)
		}

		// First budget period.
		budget := models.Budget{UserID: userID, Month: month, Year: year, Income: income}
		if err := tx.Create(&budget).Error; err != nil {
			return err
		}

		// One allocation per category.
		allocations := make([]models.Allocation, 0, len(created))
		for i, category := range created {
			allocations = append(allocations, models.Allocation{
				BudgetID:      budget.ID,
				CategoryID:    category.ID,
				AllocationPct: categories[i].AllocationPct,
			})
		}
		if err := tx.Create(&allocations).Error; err != nil {
			return err
		}

		result.Budget = &budget
		result.Categories = created
		return nil
	})
	if txErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, txErr)
	}

	return result, nil
}
