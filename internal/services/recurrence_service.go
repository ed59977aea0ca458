package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/recurrence"
)

// recurrenceService reconciles recurring lineages: it finds every recurring
// series an account owns and materializes the instances that have come due
// since the last read.
type recurrenceService struct {
	db *gorm.DB
}

// NewRecurrenceService creates a new RecurrenceServicer.
func NewRecurrenceService(db *gorm.DB) RecurrenceServicer {
	return &recurrenceService{db: db}
}

// lineageKey identifies one logical recurring series. Rows sharing a key
// within an account are instances of the same template.
type lineageKey struct {
	Vendor    string
	Amount    int64
	Frequency models.RecurrenceFrequency
	Owner     models.Owner
}

// Reconcile catches up every recurring lineage for the account to asOf.
// Within a lineage the row with the latest date acts as the template; each
// candidate date is skipped when an instance already exists on that calendar
// day. Inserts are independent writes, so a failure partway leaves a state
// that the next call completes. The partial unique index on
// (account_id, vendor, amount, recurrence_frequency, owner, date) backs the
// duplicate check against concurrent reconciliations.
func (s *recurrenceService) Reconcile(accountID string, asOf time.Time) error {
	var recurring []models.Transaction
	if err := s.db.
		Where("account_id = ? AND is_recurring = ?", accountID, true).
		Order("date DESC").
		Find(&recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(recurring) == 0 {
		return nil
	}

	groups := make(map[lineageKey][]models.Transaction)
	for _, tx := range recurring {
		if tx.RecurrenceFrequency == "" {
			continue
		}
		key := lineageKey{
			Vendor:    tx.Vendor,
			Amount:    tx.Amount,
			Frequency: tx.RecurrenceFrequency,
			Owner:     tx.Owner,
		}
		groups[key] = append(groups[key], tx)
	}

	for _, group := range groups {
		template := latestInstance(group)
		for _, inst := range recurrence.Expand(&template, asOf) {
			if existsOnDate(group, inst.Date) {
				continue
			}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&inst).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}
	return nil
}

// latestInstance picks the row with the maximum date; it is the effective
// template, not necessarily the originally created one.
func latestInstance(group []models.Transaction) models.Transaction {
	latest := group[0]
	for _, tx := range group[1:] {
		if tx.Date.After(latest.Date) {
			latest = tx
		}
	}
	return latest
}

func existsOnDate(group []models.Transaction, date time.Time) bool {
	for _, tx := range group {
		if recurrence.SameDay(tx.Date, date) {
			return true
		}
	}
	return false
}
