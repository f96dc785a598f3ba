package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetr/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSettings creates user settings with the given income (in cents).
func CreateTestSettings(t *testing.T, db *gorm.DB, userID uint, income int64) *models.UserSettings {
	t.Helper()

	settings := &models.UserSettings{
		UserID:              userID,
		MonthlyIncome:       income,
		OnboardingCompleted: true,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget period with the given income (in cents).
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, month, year int, income int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID: userID,
		Month:  month,
		Year:   year,
		Income: income,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestAllocation links a category to a budget period at the given percentage.
func CreateTestAllocation(t *testing.T, db *gorm.DB, budgetID, categoryID uint, pct int) *models.Allocation {
	t.Helper()

	allocation := &models.Allocation{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		AllocationPct: pct,
	}
	if err := db.Create(allocation).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return allocation
}

// CreateTestEntry creates an entry dated on the given day (amount in cents).
func CreateTestEntry(t *testing.T, db *gorm.DB, userID, categoryID uint, amount int64, date time.Time) *models.Entry {
	t.Helper()

	entry := &models.Entry{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		Month:      int(date.Month()),
		Year:       date.Year(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestGoal creates a goal for the category (target in cents).
func CreateTestGoal(t *testing.T, db *gorm.DB, userID, categoryID uint, target int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		CategoryID:   categoryID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestTracker creates a credit card tracker with a 90-day window.
func CreateTestTracker(t *testing.T, db *gorm.DB, userID, categoryID uint, target int64, start time.Time) *models.CreditCardTracker {
	t.Helper()

	tracker := &models.CreditCardTracker{
		UserID:      userID,
		CategoryID:  categoryID,
		CardName:    fmt.Sprintf("Test Card %d", nextID()),
		SpendTarget: target,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 90),
	}
	if err := db.Create(tracker).Error; err != nil {
		t.Fatalf("failed to create test tracker: %v", err)
	}
	return tracker
}
