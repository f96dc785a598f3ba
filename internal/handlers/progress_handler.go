package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgetr/internal/services"
)

// ProgressHandler serves the derived read side: dashboards, per-category
// progress and streaks.
type ProgressHandler struct {
	progressService services.ProgressServicer
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService services.ProgressServicer) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetDashboard returns the full month view.
// @Summary     Get dashboard
// @Description Get the month view: income, elapsed days, and one progress card per category
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to current"
// @Param       year  query int false "Year, defaults to current"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ProgressHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	month, year, err := parsePeriod(c, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.progressService.GetDashboard(userID, month, year, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetCategoryProgress returns one category's progress card.
// @Summary     Get category progress
// @Description Get spending, pacing, goal and tracker figures for one category in one month
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       categoryId path  int true  "Category ID"
// @Param       month      query int false "Month (1-12), defaults to current"
// @Param       year       query int false "Year, defaults to current"
// @Success     200 {object} services.CategoryCard "Category progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{categoryId}/progress [get]
func (h *ProgressHandler) GetCategoryProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	month, year, err := parsePeriod(c, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	card, err := h.progressService.GetCategoryProgress(userID, categoryID, month, year, now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// GetStreak returns the category's consecutive-month contribution streak.
// @Summary     Get streak
// @Description Count consecutive months with at least one entry, walking backward from the current month
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       categoryId path int true "Category ID"
// @Success     200 {object} map[string]int "Streak in months"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{categoryId}/streak [get]
func (h *ProgressHandler) GetStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	streak, err := h.progressService.GetStreak(userID, categoryID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
