package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
)

// budgetService manages budget periods: one (user, month, year) row plus
// its allocation set.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetOrCreate returns the budget period for the given month, bootstrapping
// it when absent. A new period copies income and the full allocation set
// from the user's most recent prior period, so viewing a fresh month never
// requires re-entering the split. With no prior period, income is seeded
// from settings (0 if absent) and the period starts with no allocations.
//
// The call is idempotent: the unique index on (user_id, month, year)
// means a concurrent bootstrap race leaves exactly one row, and the
// losing writer falls back to reading the winner's.
func (s *budgetService) GetOrCreate(userID uint, month, year int) (*models.Budget, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	if budget, err := s.find(userID, month, year); err == nil {
		return budget, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Most recent prior period, regardless of how far back it is.
	var previous models.Budget
	hasPrevious := true
	if err := s.db.Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		First(&previous).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		hasPrevious = false
	}

	var income int64
	if hasPrevious {
		income = previous.Income
	} else {
		var settings models.UserSettings
		if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err == nil {
			income = settings.MonthlyIncome
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	created := &models.Budget{UserID: userID, Month: month, Year: year, Income: income}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(created).Error; err != nil {
			return err
		}
		if !hasPrevious {
			return nil
		}

		var previousAllocations []models.Allocation
		if err := tx.Where("budget_id = ?", previous.ID).Find(&previousAllocations).Error; err != nil {
			return err
		}
		if len(previousAllocations) == 0 {
			return nil
		}

		copies := make([]models.Allocation, 0, len(previousAllocations))
		for _, a := range previousAllocations {
			copies = append(copies, models.Allocation{
				BudgetID:      created.ID,
				CategoryID:    a.CategoryID,
				AllocationPct: a.AllocationPct,
			})
		}
		return tx.Create(&copies).Error
	})
	if txErr != nil {
		// A concurrent bootstrap may have won the unique-index race;
		// re-read and return the winner's row instead of erroring.
		if budget, err := s.find(userID, month, year); err == nil {
			return budget, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, txErr)
	}

	budget, err := s.find(userID, month, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// UpdateIncome sets the income for an existing period. Stored allocation
// percentages are untouched; every category's allocated amount scales
// through the derivation instead.
func (s *budgetService) UpdateIncome(userID uint, month, year int, income int64) (*models.Budget, error) {
	if income <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must be positive")
	}

	budget, err := s.requirePeriod(userID, month, year)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Update("income", income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.reload(budget.ID)
}

// ReplaceAllocations replaces the period's entire allocation set with the
// provided one. It is a full replace, not a merge: a category omitted from
// the input loses its allocation. Allocations naming categories the caller
// does not own are silently dropped.
func (s *budgetService) ReplaceAllocations(userID uint, month, year int, allocations []AllocationInput) (*models.Budget, error) {
	for _, a := range allocations {
		if a.AllocationPct < 0 || a.AllocationPct > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation percentage must be between 0 and 100")
		}
	}

	budget, err := s.requirePeriod(userID, month, year)
	if err != nil {
		return nil, err
	}

	var owned []models.Category
	if err := s.db.Select("id").Where("user_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	ownedIDs := make(map[uint]bool, len(owned))
	for _, c := range owned {
		ownedIDs[c.ID] = true
	}

	rows := make([]models.Allocation, 0, len(allocations))
	for _, a := range allocations {
		if !ownedIDs[a.CategoryID] {
			continue
		}
		rows = append(rows, models.Allocation{
			BudgetID:      budget.ID,
			CategoryID:    a.CategoryID,
			AllocationPct: a.AllocationPct,
		})
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Allocation{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if txErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, txErr)
	}

	return s.reload(budget.ID)
}

// find loads a period with its allocations; callers handle ErrRecordNotFound.
func (s *budgetService) find(userID uint, month, year int) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Allocations").Preload("Allocations.Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// requirePeriod loads an existing period or reports BUDGET_NOT_FOUND; it
// never bootstraps, callers must have fetched the period first.
func (s *budgetService) requirePeriod(userID uint, month, year int) (*models.Budget, error) {
	budget, err := s.find(userID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

func (s *budgetService) reload(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Allocations").Preload("Allocations.Category").
		First(&budget, budgetID).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
