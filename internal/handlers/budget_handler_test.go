package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
	"budgetr/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	getOrCreateFn        func(userID uint, month, year int) (*models.Budget, error)
	updateIncomeFn       func(userID uint, month, year int, income int64) (*models.Budget, error)
	replaceAllocationsFn func(userID uint, month, year int, allocations []services.AllocationInput) (*models.Budget, error)
}

func (m *mockBudgetService) GetOrCreate(userID uint, month, year int) (*models.Budget, error) {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(userID, month, year)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateIncome(userID uint, month, year int, income int64) (*models.Budget, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(userID, month, year, income)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) ReplaceAllocations(userID uint, month, year int, allocations []services.AllocationInput) (*models.Budget, error) {
	if m.replaceAllocationsFn != nil {
		return m.replaceAllocationsFn(userID, month, year, allocations)
	}
	return &models.Budget{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/budgets", handler.GetBudget)
	auth.PUT("/budgets/income", handler.UpdateIncome)
	auth.PUT("/budgets/allocations", handler.ReplaceAllocations)
	return r
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("passes the requested period through", func(t *testing.T) {
		var gotMonth, gotYear int
		budgetSvc := &mockBudgetService{
			getOrCreateFn: func(_ uint, month, year int) (*models.Budget, error) {
				gotMonth, gotYear = month, year
				return &models.Budget{Month: month, Year: year, Income: 400000}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=3&year=2025", "")

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != 3 || gotYear != 2025 {
			t.Errorf("expected period 3/2025 passed to service, got %d/%d", gotMonth, gotYear)
		}
	})

	t.Run("returns 400 for an out-of-range month", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=13&year=2025", "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_UpdateIncome(t *testing.T) {
	t.Run("returns 404 when the period does not exist", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			updateIncomeFn: func(_ uint, _, _ int, _ int64) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/income?month=3&year=2025", `{"income":400000}`)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "BUDGET_NOT_FOUND") {
			t.Errorf("expected error code in body, got %s", rec.Body.String())
		}
	})

	t.Run("returns 400 for non-positive income", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/income?month=3&year=2025", `{"income":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_ReplaceAllocations(t *testing.T) {
	t.Run("passes the full set through to the service", func(t *testing.T) {
		var got []services.AllocationInput
		budgetSvc := &mockBudgetService{
			replaceAllocationsFn: func(_ uint, _, _ int, allocations []services.AllocationInput) (*models.Budget, error) {
				got = allocations
				return &models.Budget{}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/allocations?month=3&year=2025",
			`{"allocations":[{"category_id":1,"allocation_pct":40},{"category_id":2,"allocation_pct":60}]}`)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 || got[0].AllocationPct != 40 || got[1].CategoryID != 2 {
			t.Errorf("unexpected allocations passed to service: %+v", got)
		}
	})

	t.Run("returns 400 for a percentage above 100", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/allocations?month=3&year=2025",
			`{"allocations":[{"category_id":1,"allocation_pct":120}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
