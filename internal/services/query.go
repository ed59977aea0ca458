package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/justmenoble-ux/mano-web-app/internal/errors"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// monthRange maps a "YYYY-MM" month string to its first and last instants.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month format, expected YYYY-MM")
	}
	end := time.Date(start.Year(), start.Month()+1, 0, 23, 59, 59, 999999999, time.UTC)
	return start, end, nil
}

// queryTransactions fetches an account's transactions newest-first with the
// given filters applied. The owner filter expands legacy aliases and is
// skipped entirely for the combined viewpoint: the combined view lists all
// rows and lets the share calculator decide what counts.
func queryTransactions(db *gorm.DB, accountID string, f TransactionFilter) ([]models.Transaction, error) {
	q := db.Model(&models.Transaction{}).Where("account_id = ?", accountID)

	if f.Month != nil && *f.Month != "" {
		start, end, err := monthRange(*f.Month)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date <= ?", start, end)
	}

	if f.MonthFrom != nil && *f.MonthFrom != "" && f.MonthTo != nil && *f.MonthTo != "" {
		start, _, err := monthRange(*f.MonthFrom)
		if err != nil {
			return nil, err
		}
		_, end, err := monthRange(*f.MonthTo)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date <= ?", start, end)
	}

	if f.Category != nil && *f.Category != "" {
		q = q.Where("category = ?", *f.Category)
	}

	if f.Owner != nil && *f.Owner != "" && *f.Owner != models.OwnerCombined {
		q = q.Where("owner IN ?", f.Owner.AliasSet())
	}

	var transactions []models.Transaction
	if err := q.Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
