package services

import (
	"testing"

	"budgetr/internal/models"
	"budgetr/internal/testutil"
)

func TestGoalService_UpsertGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewGoalService(db)

	t.Run("creates a goal for the category", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSaving)

		goal, err := service.UpsertGoal(user.ID, cat.ID, "Emergency fund", 500000)
		testutil.AssertNoError(t, err)
		if goal.TargetAmount != 500000 || goal.CategoryID != cat.ID {
			t.Errorf("unexpected goal %+v", goal)
		}
	})

	t.Run("upserting again replaces instead of duplicating", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSaving)

		first, err := service.UpsertGoal(user.ID, cat.ID, "House", 1000000)
		testutil.AssertNoError(t, err)

		second, err := service.UpsertGoal(user.ID, cat.ID, "Bigger house", 2000000)
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected same row updated, got ids %d and %d", first.ID, second.ID)
		}
		if second.Name != "Bigger house" || second.TargetAmount != 2000000 {
			t.Errorf("expected replaced fields, got %+v", second)
		}

		var count int64
		db.Model(&models.Goal{}).Where("category_id = ?", cat.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one goal for the category, got %d", count)
		}
	})

	t.Run("rejects a category owned by another user", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		theirs := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeSaving)

		_, err := service.UpsertGoal(user.ID, theirs.ID, "Nope", 100)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSaving)

		_, err := service.UpsertGoal(user.ID, cat.ID, "Zero", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGoalService_DeleteGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewGoalService(db)

	t.Run("deletes by category", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSaving)
		testutil.CreateTestGoal(t, db, user.ID, cat.ID, 500000)

		testutil.AssertNoError(t, service.DeleteGoal(user.ID, cat.ID))

		_, err := service.GetGoal(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("returns not found when no goal exists", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSaving)

		err := service.DeleteGoal(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
