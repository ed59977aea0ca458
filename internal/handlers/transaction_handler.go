package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Owner               string  `json:"owner" binding:"omitempty,owner"`
	Date                *string `json:"date"`
	Vendor              string  `json:"vendor" binding:"required,min=1,max=200"`
	Amount              int64   `json:"amount" binding:"required,gt=0"`
	Category            string  `json:"category" binding:"omitempty,category"`
	IsShared            bool    `json:"is_shared"`
	Notes               string  `json:"notes" binding:"max=1000"`
	IsRecurring         bool    `json:"is_recurring"`
	RecurrenceFrequency string  `json:"recurrence_frequency" binding:"omitempty,recurrence_frequency"`
	SplitType           string  `json:"split_type" binding:"omitempty,split_type"`
	Member1Share        *int    `json:"member1_share" binding:"omitempty,min=0,max=100"`
	Member2Share        *int    `json:"member2_share" binding:"omitempty,min=0,max=100"`
}

// UpdateTransactionRequest represents a partial update; omitted fields are untouched.
type UpdateTransactionRequest struct {
	Owner               *string `json:"owner" binding:"omitempty,owner"`
	Date                *string `json:"date"`
	Vendor              *string `json:"vendor" binding:"omitempty,min=1,max=200"`
	Amount              *int64  `json:"amount" binding:"omitempty,gt=0"`
	Category            *string `json:"category" binding:"omitempty,category"`
	IsShared            *bool   `json:"is_shared"`
	Notes               *string `json:"notes" binding:"omitempty,max=1000"`
	IsRecurring         *bool   `json:"is_recurring"`
	RecurrenceFrequency *string `json:"recurrence_frequency" binding:"omitempty,recurrence_frequency"`
	SplitType           *string `json:"split_type" binding:"omitempty,split_type"`
	Member1Share        *int    `json:"member1_share" binding:"omitempty,min=0,max=100"`
	Member2Share        *int    `json:"member2_share" binding:"omitempty,min=0,max=100"`
}

// BulkDeleteRequest represents the request payload for bulk transaction deletion.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// CreateTransaction handles the creation of a manually entered transaction.
// @Summary     Create a transaction
// @Description Create a transaction; recurring ones dated in the past are backfilled immediately
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		date = parsed
	}

	owner := models.Owner(req.Owner)
	if owner == "" {
		owner = models.OwnerCombined
	}

	transaction, err := h.transactionService.CreateTransaction(services.CreateTransactionInput{
		AccountID:           accountID,
		Owner:               owner,
		Date:                date,
		Vendor:              req.Vendor,
		Amount:              req.Amount,
		Category:            req.Category,
		IsShared:            req.IsShared,
		Notes:               req.Notes,
		IsRecurring:         req.IsRecurring,
		RecurrenceFrequency: models.RecurrenceFrequency(req.RecurrenceFrequency),
		SplitType:           models.SplitType(req.SplitType),
		Member1Share:        req.Member1Share,
		Member2Share:        req.Member2Share,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"vendor": req.Vendor, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions with optional filters.
// @Summary     List transactions
// @Description Get the account's transactions with optional filters; recurring lineages are reconciled first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month      query string false "Filter by month (YYYY-MM)"
// @Param       month_from query string false "Range start month (YYYY-MM, with month_to)"
// @Param       month_to   query string false "Range end month (YYYY-MM, with month_from)"
// @Param       category   query string false "Filter by category"
// @Param       owner      query string false "Filter by owner (alias-aware; combined lists all)"
// @Success     200 {array} models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetTransactions(accountID, filterFromQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// UpdateTransaction applies a partial update to a transaction.
// @Summary     Update a transaction
// @Description Partially update a transaction owned by the authenticated account
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateTransactionInput{
		Vendor:       req.Vendor,
		Amount:       req.Amount,
		Category:     req.Category,
		IsShared:     req.IsShared,
		Notes:        req.Notes,
		IsRecurring:  req.IsRecurring,
		Member1Share: req.Member1Share,
		Member2Share: req.Member2Share,
	}
	if req.Owner != nil {
		owner := models.Owner(*req.Owner)
		input.Owner = &owner
	}
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Date = &parsed
	}
	if req.RecurrenceFrequency != nil {
		freq := models.RecurrenceFrequency(*req.RecurrenceFrequency)
		input.RecurrenceFrequency = &freq
	}
	if req.SplitType != nil {
		splitType := models.SplitType(*req.SplitType)
		input.SplitType = &splitType
	}

	transaction, err := h.transactionService.UpdateTransaction(accountID, transactionID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransactions handles bulk deletion of transactions.
// @Summary     Bulk delete transactions
// @Description Delete several transactions at once; ids outside the account are skipped
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BulkDeleteRequest true "Transaction IDs"
// @Success     200 {object} map[string]string "Transactions deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/bulk-delete [post]
func (h *TransactionHandler) DeleteTransactions(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.DeleteTransactions(accountID, req.IDs); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "BULK_DELETE_TRANSACTIONS", "transaction", 0, c.ClientIP(),
		map[string]interface{}{"count": len(req.IDs)})

	c.JSON(http.StatusOK, gin.H{"message": "Transactions deleted"})
}

// DeleteTransaction deletes a single transaction.
// @Summary     Delete a transaction
// @Description Delete a transaction owned by the authenticated account
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(accountID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// filterFromQuery builds a TransactionFilter from the request's query string.
func filterFromQuery(c *gin.Context) services.TransactionFilter {
	var filter services.TransactionFilter
	if v, ok := c.GetQuery("month"); ok && v != "" {
		filter.Month = &v
	}
	if v, ok := c.GetQuery("month_from"); ok && v != "" {
		filter.MonthFrom = &v
	}
	if v, ok := c.GetQuery("month_to"); ok && v != "" {
		filter.MonthTo = &v
	}
	if v, ok := c.GetQuery("category"); ok && v != "" {
		filter.Category = &v
	}
	if v, ok := c.GetQuery("owner"); ok && v != "" {
		owner := models.Owner(v)
		filter.Owner = &owner
	}
	return filter
}
