package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/models"
	"budgetr/internal/services"
)

// OnboardingHandler handles the one-time setup flow.
type OnboardingHandler struct {
	onboardingService services.OnboardingServicer
	auditService      services.AuditServicer
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService services.OnboardingServicer, auditService services.AuditServicer) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService, auditService: auditService}
}

// OnboardingCategoryRequest is one category definition in the onboarding payload.
type OnboardingCategoryRequest struct {
	Name          string              `json:"name" binding:"required,min=1,max=100"`
	Type          models.CategoryType `json:"type" binding:"required,category_type"`
	Emoji         string              `json:"emoji" binding:"max=16"`
	Color         string              `json:"color" binding:"omitempty,hex_color"`
	AllocationPct int                 `json:"allocation_pct" binding:"min=0,max=100"`
}

// CompleteOnboardingRequest represents the full onboarding payload.
type CompleteOnboardingRequest struct {
	Income     int64                       `json:"income" binding:"required,gt=0"`
	Month      int                         `json:"month" binding:"omitempty,min=1,max=12"`
	Year       int                         `json:"year" binding:"omitempty,min=1970"`
	Categories []OnboardingCategoryRequest `json:"categories" binding:"required,min=1,dive"`
}

// Complete runs the one-time setup: settings, categories, first budget
// period and allocations, all in one transaction.
// @Summary     Complete onboarding
// @Description Set up income, categories and the first budget period. Allocation percentages must sum to exactly 100.
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CompleteOnboardingRequest true "Onboarding payload"
// @Success     201 {object} services.OnboardingResult "Setup complete"
// @Failure     400 {object} ErrorResponse "Invalid input or bad allocation sum"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already onboarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /onboarding [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, year := req.Month, req.Year
	if month == 0 || year == 0 {
		now := time.Now()
		month, year = int(now.Month()), now.Year()
	}

	categories := make([]services.OnboardingCategory, 0, len(req.Categories))
	for _, cat := range req.Categories {
		categories = append(categories, services.OnboardingCategory{
			Name:          cat.Name,
			Type:          cat.Type,
			Emoji:         cat.Emoji,
			Color:         cat.Color,
			AllocationPct: cat.AllocationPct,
		})
	}

	result, err := h.onboardingService.Complete(userID, req.Income, month, year, categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "COMPLETE_ONBOARDING", "budget", result.Budget.ID, c.ClientIP(),
		map[string]interface{}{"income": req.Income, "categories": len(categories)})

	c.JSON(http.StatusCreated, result)
}
