package services

import (
	"time"

	"budgetr/internal/derive"
	"budgetr/internal/models"
	"budgetr/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	GetSettings(userID uint) (*models.UserSettings, error)
}

// CategoryOrder pairs a category id with its new position.
type CategoryOrder struct {
	CategoryID uint
	SortOrder  int
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.CategoryType, emoji, color string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string, categoryType *models.CategoryType, emoji, color *string) (*models.Category, error)
	ReorderCategories(userID uint, items []CategoryOrder) error
	DeleteCategory(userID, categoryID uint) error
}

// AllocationInput is one category's share in an allocation replacement.
type AllocationInput struct {
	CategoryID    uint
	AllocationPct int
}

// BudgetServicer defines the contract for budget period management.
type BudgetServicer interface {
	GetOrCreate(userID uint, month, year int) (*models.Budget, error)
	UpdateIncome(userID uint, month, year int, income int64) (*models.Budget, error)
	ReplaceAllocations(userID uint, month, year int, allocations []AllocationInput) (*models.Budget, error)
}

// EntryPatch holds the optional fields of an entry update. Nil fields are
// left untouched.
type EntryPatch struct {
	Amount      *int64
	Date        *time.Time
	Description *string
}

// EntryServicer defines the contract for the entry ledger.
type EntryServicer interface {
	CreateEntry(userID, categoryID uint, amount int64, date time.Time, description string) (*models.Entry, error)
	UpdateEntry(userID, entryID uint, patch EntryPatch) (*models.Entry, error)
	DeleteEntry(userID, entryID uint) error
	ListForCategory(userID, categoryID uint, month, year *int, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error)
	ListForCategories(userID uint, categoryIDs []uint) ([]models.Entry, error)
}

// GoalServicer defines the contract for category goals.
type GoalServicer interface {
	UpsertGoal(userID, categoryID uint, name string, targetAmount int64) (*models.Goal, error)
	GetGoal(userID, categoryID uint) (*models.Goal, error)
	ListGoals(userID uint) ([]models.Goal, error)
	DeleteGoal(userID, categoryID uint) error
}

// TrackerPatch holds the optional fields of a tracker update.
type TrackerPatch struct {
	PaidInFull  *bool
	BonusPoints *int
	EndDate     *time.Time
}

// TrackerServicer defines the contract for credit card trackers.
type TrackerServicer interface {
	UpsertTracker(userID, categoryID uint, cardName string, spendTarget int64, bonusPoints int, startDate time.Time, endDate *time.Time) (*models.CreditCardTracker, error)
	UpdateTracker(userID, trackerID uint, patch TrackerPatch) (*models.CreditCardTracker, error)
	GetTracker(userID, categoryID uint) (*models.CreditCardTracker, error)
	ListTrackers(userID uint) ([]models.CreditCardTracker, error)
	DeleteTracker(userID, trackerID uint) error
}

// OnboardingCategory is one category definition in the onboarding payload.
type OnboardingCategory struct {
	Name          string
	Emoji         string
	Color         string
	Type          models.CategoryType
	AllocationPct int
}

// OnboardingResult is what a completed onboarding produced.
type OnboardingResult struct {
	Budget     *models.Budget    `json:"budget"`
	Categories []models.Category `json:"categories"`
}

// OnboardingServicer defines the contract for the one-time setup flow.
type OnboardingServicer interface {
	Complete(userID uint, income int64, month, year int, categories []OnboardingCategory) (*OnboardingResult, error)
}

// CategoryCard is the view-ready progress for one category in one month.
type CategoryCard struct {
	Category      models.Category          `json:"category"`
	AllocationPct int                      `json:"allocation_pct"`
	Allocated     int64                    `json:"allocated"`
	Spending      derive.SpendingProgress  `json:"spending"`
	Pace          derive.Pace              `json:"pace"`
	AvgMonthly    int64                    `json:"avg_monthly"`
	Goal          *derive.GoalProgress     `json:"goal,omitempty"`
	Tracker       *derive.TrackerProgress  `json:"tracker,omitempty"`
}

// Dashboard is the full month view: the budget period plus one card per
// category.
type Dashboard struct {
	Month       int            `json:"month"`
	Year        int            `json:"year"`
	Income      int64          `json:"income"`
	DaysInMonth int            `json:"days_in_month"`
	DaysElapsed int            `json:"days_elapsed"`
	Cards       []CategoryCard `json:"cards"`
}

// ProgressServicer combines budget, ledger and registry reads through the
// derivation engine into view-ready figures.
type ProgressServicer interface {
	GetDashboard(userID uint, month, year int, today time.Time) (*Dashboard, error)
	GetCategoryProgress(userID, categoryID uint, month, year int, today time.Time) (*CategoryCard, error)
	GetStreak(userID, categoryID uint, today time.Time) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
