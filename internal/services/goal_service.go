package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
)

// goalService handles category goals: all-time cumulative targets.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// UpsertGoal creates the goal for a category, or replaces the existing one.
// A category holds at most one goal.
func (s *goalService) UpsertGoal(userID, categoryID uint, name string, targetAmount int64) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	goal := &models.Goal{
		UserID:       userID,
		CategoryID:   categoryID,
		Name:         name,
		TargetAmount: targetAmount,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "target_amount", "updated_at"}),
	}).Create(goal).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetGoal(userID, categoryID)
}

// GetGoal returns the goal for a category.
func (s *goalService) GetGoal(userID, categoryID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("category_id = ? AND user_id = ?", categoryID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// ListGoals returns all of the user's goals.
func (s *goalService) ListGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// DeleteGoal removes the goal for a category.
func (s *goalService) DeleteGoal(userID, categoryID uint) error {
	goal, err := s.GetGoal(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
