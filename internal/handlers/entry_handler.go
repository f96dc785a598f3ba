package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetr/internal/errors"
	"budgetr/internal/pagination"
	"budgetr/internal/services"
)

// EntryHandler handles entry ledger requests.
type EntryHandler struct {
	entryService services.EntryServicer
	auditService services.AuditServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, auditService services.AuditServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for logging an entry.
type CreateEntryRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Date        string `json:"date" binding:"required,calendar_date"`
	Description string `json:"description" binding:"max=255"`
}

// UpdateEntryRequest represents the request payload for editing an entry.
type UpdateEntryRequest struct {
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	Date        *string `json:"date" binding:"omitempty,calendar_date"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// CreateEntry logs a new entry against a category.
// @Summary     Create an entry
// @Description Log a dated amount against a category; the entry lands in the month of its own date
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.Entry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.CreateEntry(userID, req.CategoryID, req.Amount, date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ENTRY", "entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"category_id": req.CategoryID, "amount": req.Amount, "date": req.Date})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetEntries lists a category's entries.
// @Summary     Get entries
// @Description Get a category's entries newest first, optionally scoped to one month
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category_id query int true  "Category ID"
// @Param       month       query int false "Month (1-12); requires year"
// @Param       year        query int false "Year; requires month"
// @Param       page        query int false "Page number (default 1)"
// @Param       page_size   query int false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Entry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [get]
func (h *EntryHandler) GetEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 32)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var month, year *int
	if c.Query("month") != "" || c.Query("year") != "" {
		m, y, err := parsePeriod(c, time.Now())
		if err != nil {
			respondWithError(c, err)
			return
		}
		month, year = &m, &y
	}

	result, err := h.entryService.ListForCategory(userID, uint(categoryID), month, year, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateEntry edits an existing entry.
// @Summary     Update entry
// @Description Edit an entry's amount, date or description
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Entry ID"
// @Param       request body UpdateEntryRequest true "Updated entry details"
// @Success     200 {object} models.Entry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.EntryPatch{Amount: req.Amount, Description: req.Description}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		patch.Date = &date
	}

	entry, err := h.entryService.UpdateEntry(userID, entryID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry removes an entry.
// @Summary     Delete entry
// @Description Delete an entry from the ledger
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
