package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
)

// trackerDefaultWindowDays is the spend window applied when the caller
// omits an end date: sign-up bonuses commonly give 90 days from account
// opening.
const trackerDefaultWindowDays = 90

// trackerService handles credit card bonus trackers.
type trackerService struct {
	db *gorm.DB
}

// NewTrackerService creates a new TrackerServicer.
func NewTrackerService(db *gorm.DB) TrackerServicer {
	return &trackerService{db: db}
}

// UpsertTracker creates the tracker for a category or replaces the
// existing one. The end date defaults to start + 90 days; the default is
// resolved here in the write path so the rule stays visible and testable
// rather than buried in a column default.
func (s *trackerService) UpsertTracker(userID, categoryID uint, cardName string, spendTarget int64, bonusPoints int, startDate time.Time, endDate *time.Time) (*models.CreditCardTracker, error) {
	if cardName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if spendTarget <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "spend target must be positive")
	}
	if bonusPoints < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bonus points cannot be negative")
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

	start := normalizeDate(startDate)
	end := start.AddDate(0, 0, trackerDefaultWindowDays)
	if endDate != nil {
		end = normalizeDate(*endDate)
	}
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date cannot be before start date")
	}

	tracker := &models.CreditCardTracker{
		UserID:      userID,
		CategoryID:  categoryID,
		CardName:    cardName,
		SpendTarget: spendTarget,
		BonusPoints: bonusPoints,
		StartDate:   start,
		EndDate:     end,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"card_name", "spend_target", "bonus_points", "start_date", "end_date", "updated_at"}),
	}).Create(tracker).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTracker(userID, categoryID)
}

// UpdateTracker applies a patch: the paid-in-full toggle, earned bonus
// points, or a moved end date.
func (s *trackerService) UpdateTracker(userID, trackerID uint, patch TrackerPatch) (*models.CreditCardTracker, error) {
	var tracker models.CreditCardTracker
	if err := s.db.Where("id = ? AND user_id = ?", trackerID, userID).First(&tracker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTrackerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if patch.PaidInFull != nil {
		updates["paid_in_full"] = *patch.PaidInFull
	}
	if patch.BonusPoints != nil {
		if *patch.BonusPoints < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bonus points cannot be negative")
		}
		updates["bonus_points"] = *patch.BonusPoints
	}
	if patch.EndDate != nil {
		end := normalizeDate(*patch.EndDate)
		if end.Before(tracker.StartDate) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date cannot be before start date")
		}
		updates["end_date"] = end
	}

	if len(updates) > 0 {
		if err := s.db.Model(&tracker).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &tracker, nil
}

// GetTracker returns the tracker for a category.
func (s *trackerService) GetTracker(userID, categoryID uint) (*models.CreditCardTracker, error) {
	var tracker models.CreditCardTracker
	if err := s.db.Where("category_id = ? AND user_id = ?", categoryID, userID).First(&tracker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTrackerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tracker, nil
}

// ListTrackers returns the user's trackers, newest first.
func (s *trackerService) ListTrackers(userID uint) ([]models.CreditCardTracker, error) {
	var trackers []models.CreditCardTracker
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trackers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return trackers, nil
}

// DeleteTracker removes a tracker.
func (s *trackerService) DeleteTracker(userID, trackerID uint) error {
	var tracker models.CreditCardTracker
	if err := s.db.Where("id = ? AND user_id = ?", trackerID, userID).First(&tracker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTrackerNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&tracker).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
