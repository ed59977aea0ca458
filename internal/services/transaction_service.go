package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/logger"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/recurrence"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db                *gorm.DB
	recurrenceService RecurrenceServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, recurrenceService RecurrenceServicer) TransactionServicer {
	return &transactionService{
		db:                db,
		recurrenceService: recurrenceService,
	}
}

// CreateTransaction creates a manually entered transaction. Recurring
// templates dated in the past are immediately backfilled up to now.
func (s *transactionService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Vendor == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "vendor is required")
	}
	if !input.Owner.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown owner identifier")
	}

	member1Share, member2Share, err := normalizeShares(input.Member1Share, input.Member2Share)
	if err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	transaction := &models.Transaction{
		StatementID:         input.StatementID,
		AccountID:           input.AccountID,
		Owner:               input.Owner,
		Date:                input.Date,
		Vendor:              input.Vendor,
		Amount:              input.Amount,
		Category:            input.Category,
		IsShared:            input.IsShared,
		Notes:               input.Notes,
		IsRecurring:         input.IsRecurring,
		RecurrenceFrequency: input.RecurrenceFrequency,
		SplitType:           input.SplitType,
		Member1Share:        member1Share,
		Member2Share:        member2Share,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if transaction.IsRecurring && transaction.RecurrenceFrequency != "" {
		s.backfillRecurring(transaction)
	}

	return transaction, nil
}

// backfillRecurring materializes instances a past-dated recurring template
// already owes. Each insert is independent; failures are logged and the
// reconciler picks up the remainder on the next read.
func (s *transactionService) backfillRecurring(template *models.Transaction) {
	for _, inst := range recurrence.Expand(template, time.Now()) {
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&inst).Error; err != nil {
			logger.Get().Warnw("recurring backfill insert failed",
				"account_id", template.AccountID,
				"vendor", template.Vendor,
				"date", inst.Date,
				"error", err,
			)
			return
		}
	}
}

// GetTransactions reconciles the account's recurring lineages and returns
// the filtered transaction list, newest first. Reconciliation failures are
// logged but never block the read: stale data beats no data.
func (s *transactionService) GetTransactions(accountID string, filter TransactionFilter) ([]models.Transaction, error) {
	if err := s.recurrenceService.Reconcile(accountID, time.Now()); err != nil {
		logger.Get().Warnw("recurrence reconciliation failed, serving persisted transactions",
			"account_id", accountID,
			"error", err,
		)
	}

	return queryTransactions(s.db, accountID, filter)
}

// GetTransactionByID retrieves a transaction owned by the account.
func (s *transactionService) GetTransactionByID(accountID string, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND account_id = ?", transactionID, accountID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial, user-initiated update. Share fields
// go through the same write-time validation as creation.
func (s *transactionService) UpdateTransaction(accountID string, transactionID uint, input UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(accountID, transactionID)
	if err != nil {
		return nil, err
	}

	if input.Owner != nil && !input.Owner.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown owner identifier")
	}
	if input.Amount != nil && *input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	updates := make(map[string]interface{})
	if input.Owner != nil {
		updates["owner"] = *input.Owner
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Vendor != nil {
		updates["vendor"] = *input.Vendor
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.IsShared != nil {
		updates["is_shared"] = *input.IsShared
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.IsRecurring != nil {
		updates["is_recurring"] = *input.IsRecurring
	}
	if input.RecurrenceFrequency != nil {
		updates["recurrence_frequency"] = *input.RecurrenceFrequency
	}
	if input.SplitType != nil {
		updates["split_type"] = *input.SplitType
	}

	if input.Member1Share != nil || input.Member2Share != nil {
		member1Share, member2Share, err := normalizeShares(input.Member1Share, input.Member2Share)
		if err != nil {
			return nil, err
		}
		updates["member1_share"] = member1Share
		updates["member2_share"] = member2Share
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction deletes a single transaction owned by the account.
func (s *transactionService) DeleteTransaction(accountID string, transactionID uint) error {
	transaction, err := s.GetTransactionByID(accountID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteTransactions deletes the given transactions, silently skipping ids
// that don't belong to the account.
func (s *transactionService) DeleteTransactions(accountID string, transactionIDs []uint) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	if err := s.db.
		Where("id IN ? AND account_id = ?", transactionIDs, accountID).
		Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeShares enforces the split invariant at write time: two shares
// must sum to 100, a single share implies its complement.
func normalizeShares(member1Share, member2Share *int) (*int, *int, error) {
	switch {
	case member1Share != nil && member2Share != nil:
		if *member1Share+*member2Share != 100 {
			return nil, nil, apperrors.ErrInvalidShareSplit
		}
	case member1Share != nil:
		complement := 100 - *member1Share
		member2Share = &complement
	case member2Share != nil:
		complement := 100 - *member2Share
		member1Share = &complement
	}
	return member1Share, member2Share, nil
}
