package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
	"budgetr/internal/pagination"
)

// entryService handles the entry ledger: dated monetary records against
// categories.
type entryService struct {
	db *gorm.DB
}

// NewEntryService creates a new EntryServicer.
func NewEntryService(db *gorm.DB) EntryServicer {
	return &entryService{db: db}
}

// CreateEntry stores a new entry. Month and year are derived from the
// entry's own date, not from today, so back-dated entries land in the
// month they belong to.
func (s *entryService) CreateEntry(userID, categoryID uint, amount int64, date time.Time, description string) (*models.Entry, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	// The category must belong to the caller.
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	date = normalizeDate(date)
	entry := &models.Entry{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
		Month:       int(date.Month()),
		Year:        date.Year(),
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// UpdateEntry applies a patch to an existing entry. A date change
// re-derives the denormalized month/year.
func (s *entryService) UpdateEntry(userID, entryID uint, patch EntryPatch) (*models.Entry, error) {
	entry, err := s.getEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Date != nil {
		date := normalizeDate(*patch.Date)
		updates["date"] = date
		updates["month"] = int(date.Month())
		updates["year"] = date.Year()
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return entry, nil
}

// DeleteEntry hard-deletes an entry. Deleting an absent or foreign id is
// ENTRY_NOT_FOUND, never a silent success.
func (s *entryService) DeleteEntry(userID, entryID uint) error {
	entry, err := s.getEntry(userID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListForCategory returns a category's entries as a stable
// reverse-chronological feed: newest date first, creation time breaking
// ties. Passing month and year scopes the feed to that single month.
func (s *entryService) ListForCategory(userID, categoryID uint, month, year *int, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error) {
	page.Defaults()

	base := s.db.Model(&models.Entry{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID)
	if month != nil && year != nil {
		base = base.Where("month = ? AND year = ?", *month, *year)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.Entry
	if err := base.Order("date DESC, created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListForCategories is the bulk variant used by dashboard aggregation.
// An empty id set returns immediately rather than issuing a query that
// would match everything.
func (s *entryService) ListForCategories(userID uint, categoryIDs []uint) ([]models.Entry, error) {
	if len(categoryIDs) == 0 {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	if err := s.db.Where("user_id = ? AND category_id IN ?", userID, categoryIDs).
		Order("date DESC, created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

func (s *entryService) getEntry(userID, entryID uint) (*models.Entry, error) {
	var entry models.Entry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// normalizeDate strips any time-of-day component; entries are calendar
// dates.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
