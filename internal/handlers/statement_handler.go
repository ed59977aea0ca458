package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/services"
)

// StatementHandler handles statement upload and processing requests.
type StatementHandler struct {
	statementService services.StatementServicer
	auditService     services.AuditServicer
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementService services.StatementServicer, auditService services.AuditServicer) *StatementHandler {
	return &StatementHandler{statementService: statementService, auditService: auditService}
}

// UploadStatement accepts a statement file for later processing.
// @Summary     Upload a statement
// @Description Upload a CSV or Excel statement; it is stored pending until processed
// @Tags        statements
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file  formData file   true  "Statement file (.csv, .xlsx, .xls)"
// @Param       owner formData string false "Owner the statement belongs to (defaults to combined)"
// @Success     201 {object} models.Statement "Statement created"
// @Failure     400 {object} ErrorResponse "Invalid input or unsupported file type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/upload [post]
func (h *StatementHandler) UploadStatement(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	owner := models.Owner(c.PostForm("owner"))

	statement, err := h.statementService.CreateFromUpload(accountID, owner, fileHeader.Filename, data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "UPLOAD_STATEMENT", "statement", statement.ID, c.ClientIP(),
		map[string]interface{}{"filename": statement.Filename, "owner": statement.Owner})

	c.JSON(http.StatusCreated, gin.H{"statement": statement})
}

// GetStatements lists the account's statements.
// @Summary     List statements
// @Description Get all statements for the authenticated account, newest first
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Statement "Statements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements [get]
func (h *StatementHandler) GetStatements(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statements, err := h.statementService.GetStatements(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statements": statements})
}

// GetStatement returns a statement with its extracted transactions.
// @Summary     Get a statement
// @Description Get a statement and the transactions extracted from it
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {object} models.StatementWithTransactions "Statement with transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id} [get]
func (h *StatementHandler) GetStatement(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	statement, err := h.statementService.GetStatement(accountID, statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statement": statement})
}

// ProcessStatement runs extraction on a pending statement.
// @Summary     Process a statement
// @Description Extract transactions from an uploaded statement; already processed statements are a no-op
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {object} map[string]interface{} "Processing outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     502 {object} ErrorResponse "Extraction failed"
// @Router      /statements/{id}/process [post]
func (h *StatementHandler) ProcessStatement(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alreadyProcessed, err := h.statementService.Process(c.Request.Context(), accountID, statementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if alreadyProcessed {
		c.JSON(http.StatusOK, gin.H{"message": "Statement already processed"})
		return
	}

	h.auditService.Log(accountID, "PROCESS_STATEMENT", "statement", statementID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Statement processed"})
}

// DeleteStatement removes a statement and its extracted transactions.
// @Summary     Delete a statement
// @Description Delete a statement together with every transaction extracted from it
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Statement ID"
// @Success     200 {object} map[string]string "Statement deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statements/{id} [delete]
func (h *StatementHandler) DeleteStatement(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statementID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.statementService.DeleteStatement(accountID, statementID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(accountID, "DELETE_STATEMENT", "statement", statementID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Statement deleted"})
}
