package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/services"
)

// HouseholdHandler handles household profile requests.
type HouseholdHandler struct {
	householdService services.HouseholdServicer
	auditService     services.AuditServicer
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(householdService services.HouseholdServicer, auditService services.AuditServicer) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService, auditService: auditService}
}

// SaveHouseholdRequest represents the request payload for saving the household profile.
type SaveHouseholdRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Member1Name string `json:"member1_name" binding:"required,min=1,max=100"`
	Member2Name string `json:"member2_name" binding:"required,min=1,max=100"`
}

// UpdateHouseholdRequest represents a partial update to the household profile.
type UpdateHouseholdRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Member1Name *string `json:"member1_name" binding:"omitempty,min=1,max=100"`
	Member2Name *string `json:"member2_name" binding:"omitempty,min=1,max=100"`
}

// GetHousehold returns the authenticated account's household profile.
// @Summary     Get household
// @Description Get the household profile for the authenticated account
// @Tags        household
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Household "Household profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Household not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /household [get]
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	household, err := h.householdService.GetHousehold(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"household": household})
}

// SaveHousehold creates or replaces the household profile.
// @Summary     Save household
// @Description Create or replace the household profile for the authenticated account
// @Tags        household
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveHouseholdRequest true "Household details"
// @Success     200 {object} models.Household "Household saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /household [post]
func (h *HouseholdHandler) SaveHousehold(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.SaveHousehold(accountID, req.Name, req.Member1Name, req.Member2Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "SAVE_HOUSEHOLD", "household", household.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"household": household})
}

// UpdateHousehold applies a partial update to the household profile.
// @Summary     Update household
// @Description Partially update the household profile for the authenticated account
// @Tags        household
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateHouseholdRequest true "Fields to update"
// @Success     200 {object} models.Household "Household updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Household not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /household [patch]
func (h *HouseholdHandler) UpdateHousehold(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.UpdateHousehold(accountID, req.Name, req.Member1Name, req.Member2Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "UPDATE_HOUSEHOLD", "household", household.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"household": household})
}
