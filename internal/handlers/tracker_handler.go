package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/services"
)

// TrackerHandler handles credit card tracker requests.
type TrackerHandler struct {
	trackerService services.TrackerServicer
	auditService   services.AuditServicer
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService services.TrackerServicer, auditService services.AuditServicer) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService, auditService: auditService}
}

// UpsertTrackerRequest represents the request payload for setting a category's tracker.
type UpsertTrackerRequest struct {
	CardName    string  `json:"card_name" binding:"required,min=1,max=100"`
	SpendTarget int64   `json:"spend_target" binding:"required,gt=0"`
	BonusPoints int     `json:"bonus_points" binding:"min=0"`
	StartDate   string  `json:"start_date" binding:"required,calendar_date"`
	EndDate     *string `json:"end_date" binding:"omitempty,calendar_date"`
}

// UpdateTrackerRequest represents the request payload for patching a tracker.
type UpdateTrackerRequest struct {
	PaidInFull  *bool   `json:"paid_in_full"`
	BonusPoints *int    `json:"bonus_points" binding:"omitempty,min=0"`
	EndDate     *string `json:"end_date" binding:"omitempty,calendar_date"`
}

// UpsertTracker creates or replaces the tracker for a category.
// @Summary     Set a tracker
// @Description Create the credit card bonus tracker for a category, replacing any existing one. The end date defaults to 90 days after the start date.
// @Tags        trackers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       categoryId path int                  true "Category ID"
// @Param       request    body UpsertTrackerRequest true "Tracker details"
// @Success     200 {object} models.CreditCardTracker "Tracker set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{categoryId}/tracker [put]
func (h *TrackerHandler) UpsertTracker(c *gin.Context) {
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

	var req UpsertTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var endDate *time.Time
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		endDate = &end
	}

	tracker, err := h.trackerService.UpsertTracker(userID, categoryID, req.CardName,
		req.SpendTarget, req.BonusPoints, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_TRACKER", "tracker", tracker.ID, c.ClientIP(),
		map[string]interface{}{"category_id": categoryID, "card_name": req.CardName, "spend_target": req.SpendTarget})

	c.JSON(http.StatusOK, gin.H{"tracker": tracker})
}

// GetTrackers lists all of the user's trackers.
// @Summary     Get trackers
// @Description Get all credit card trackers for the authenticated user, newest first
// @Tags        trackers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.CreditCardTracker "Trackers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trackers [get]
func (h *TrackerHandler) GetTrackers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trackers, err := h.trackerService.ListTrackers(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trackers": trackers})
}

// UpdateTracker patches an existing tracker.
// @Summary     Update tracker
// @Description Toggle paid-in-full, record earned bonus points, or move the end date
// @Tags        trackers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Tracker ID"
// @Param       request body UpdateTrackerRequest true "Tracker patch"
// @Success     200 {object} models.CreditCardTracker "Updated tracker"
// @Failure     400 {object} ErrorResponse "Invalid input or tracker ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tracker not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trackers/{id} [put]
func (h *TrackerHandler) UpdateTracker(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trackerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.TrackerPatch{PaidInFull: req.PaidInFull, BonusPoints: req.BonusPoints}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		patch.EndDate = &end
	}

	tracker, err := h.trackerService.UpdateTracker(userID, trackerID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRACKER", "tracker", trackerID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"tracker": tracker})
}

// DeleteTracker removes a tracker.
// @Summary     Delete tracker
// @Description Delete a credit card tracker
// @Tags        trackers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Tracker ID"
// @Success     200 {object} MessageResponse "Tracker deleted"
// @Failure     400 {object} ErrorResponse "Invalid tracker ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tracker not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trackers/{id} [delete]
func (h *TrackerHandler) DeleteTracker(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trackerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.trackerService.DeleteTracker(userID, trackerID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRACKER", "tracker", trackerID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tracker deleted"})
}
