package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/services"
)

// BudgetHandler handles budget period requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpdateIncomeRequest represents the request payload for updating a period's income.
type UpdateIncomeRequest struct {
	Income int64 `json:"income" binding:"required,gt=0"`
}

// ReplaceAllocationsRequest carries the full new allocation set for a period.
type ReplaceAllocationsRequest struct {
	Allocations []AllocationItem `json:"allocations" binding:"dive"`
}

// AllocationItem is one category's share of the monthly income.
type AllocationItem struct {
	CategoryID    uint `json:"category_id" binding:"required"`
	AllocationPct int  `json:"allocation_pct" binding:"min=0,max=100"`
}

// GetBudget returns the budget period for a month, bootstrapping it when absent.
// @Summary     Get budget period
// @Description Get the budget for a month, creating it from the most recent prior period when it does not exist yet
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to current"
// @Param       year  query int false "Year, defaults to current"
// @Success     200 {object} models.Budget "Budget period"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetOrCreate(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateIncome updates the income for an existing period.
// @Summary     Update income
// @Description Set the monthly income for an existing budget period
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month   query int                 false "Month (1-12), defaults to current"
// @Param       year    query int                 false "Year, defaults to current"
// @Param       request body UpdateIncomeRequest true "New income in cents"
// @Success     200 {object} models.Budget "Updated budget period"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/income [put]
func (h *BudgetHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateIncome(userID, month, year, req.Income)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INCOME", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"income": req.Income, "month": month, "year": year})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// ReplaceAllocations replaces a period's entire allocation set.
// @Summary     Replace allocations
// @Description Replace the full percentage split for a budget period
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month   query int                       false "Month (1-12), defaults to current"
// @Param       year    query int                       false "Year, defaults to current"
// @Param       request body ReplaceAllocationsRequest true "New allocation set"
// @Success     200 {object} models.Budget "Updated budget period"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/allocations [put]
func (h *BudgetHandler) ReplaceAllocations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReplaceAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	allocations := make([]services.AllocationInput, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, services.AllocationInput{
			CategoryID:    a.CategoryID,
			AllocationPct: a.AllocationPct,
		})
	}

	budget, err := h.budgetService.ReplaceAllocations(userID, month, year, allocations)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REPLACE_ALLOCATIONS", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"count": len(allocations), "month": month, "year": year})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
