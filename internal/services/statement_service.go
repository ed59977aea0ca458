package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/extraction"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// statementService handles the statement lifecycle: upload, extraction and
// deletion with its derived transactions.
type statementService struct {
	db        *gorm.DB
	extractor extraction.Extractor
}

// NewStatementService creates a new StatementServicer.
func NewStatementService(db *gorm.DB, extractor extraction.Extractor) StatementServicer {
	return &statementService{db: db, extractor: extractor}
}

// CreateFromUpload validates the upload and stores it as a pending
// statement. Unsupported file types are rejected before any record exists.
func (s *statementService) CreateFromUpload(accountID string, owner models.Owner, filename string, data []byte) (*models.Statement, error) {
	if owner == "" {
		owner = models.OwnerCombined
	}
	if !owner.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown owner identifier")
	}

	content, err := extractContent(filename, data)
	if err != nil {
		return nil, err
	}

	statement := &models.Statement{
		AccountID: accountID,
		Owner:     owner,
		Filename:  filename,
		Content:   content,
		Status:    models.StatementStatusPending,
	}
	if err := s.db.Create(statement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return statement, nil
}

// extractContent turns an uploaded file into plain text. CSV files pass
// through as-is; spreadsheets are flattened row by row.
func extractContent(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return string(data), nil
	case ".xlsx", ".xls":
		return flattenSpreadsheet(data)
	default:
		return "", apperrors.ErrUnsupportedFileType
	}
}

// flattenSpreadsheet joins every sheet's cells into comma-separated lines
// so the extractor sees the same shape as a CSV upload.
func flattenSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrSpreadsheetParse, err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrSpreadsheetParse, err)
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, ","))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetStatements lists the account's statements, newest first.
func (s *statementService) GetStatements(accountID string) ([]models.Statement, error) {
	var statements []models.Statement
	if err := s.db.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&statements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return statements, nil
}

// GetStatement returns a statement with the transactions extracted from it.
func (s *statementService) GetStatement(accountID string, statementID uint) (*models.StatementWithTransactions, error) {
	statement, err := s.getOwned(accountID, statementID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.
		Where("statement_id = ? AND account_id = ?", statementID, accountID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &models.StatementWithTransactions{
		Statement:    *statement,
		Transactions: transactions,
	}, nil
}

// Process runs extraction on a pending statement and stores the resulting
// transactions. Calling it on an already processed statement is a no-op
// reported through the alreadyProcessed flag. The statement's owner is
// inherited by every transaction it produces.
func (s *statementService) Process(ctx context.Context, accountID string, statementID uint) (bool, error) {
	statement, err := s.getOwned(accountID, statementID)
	if err != nil {
		return false, err
	}
	if statement.Status == models.StatementStatusProcessed {
		return true, nil
	}

	if err := s.setStatus(statement, models.StatementStatusProcessing); err != nil {
		return false, err
	}

	candidates, err := s.extractor.Extract(ctx, statement.Content)
	if err != nil {
		if statusErr := s.setStatus(statement, models.StatementStatusFailed); statusErr != nil {
			return false, statusErr
		}
		return false, apperrors.Wrap(apperrors.ErrExtractionFailed, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range candidates {
			transaction := models.Transaction{
				StatementID: &statement.ID,
				AccountID:   accountID,
				Owner:       statement.Owner,
				Date:        c.Date,
				Vendor:      c.Vendor,
				Amount:      c.Amount,
				Category:    c.Category,
				IsShared:    c.IsShared,
				Notes:       c.Notes,
			}
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}
		return tx.Model(statement).Update("status", models.StatementStatusProcessed).Error
	})
	if err != nil {
		if statusErr := s.setStatus(statement, models.StatementStatusFailed); statusErr != nil {
			return false, statusErr
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return false, nil
}

// DeleteStatement removes a statement and every transaction derived from it.
func (s *statementService) DeleteStatement(accountID string, statementID uint) error {
	statement, err := s.getOwned(accountID, statementID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("statement_id = ? AND account_id = ?", statementID, accountID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(statement).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *statementService) getOwned(accountID string, statementID uint) (*models.Statement, error) {
	var statement models.Statement
	if err := s.db.Where("id = ? AND account_id = ?", statementID, accountID).First(&statement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStatementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &statement, nil
}

func (s *statementService) setStatus(statement *models.Statement, status models.StatementStatus) error {
	if err := s.db.Model(statement).Update("status", status).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
