package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/justmenoble-ux/mano-web-app/internal/logger"
	"github.com/justmenoble-ux/mano-web-app/internal/split"
)

// statsService aggregates effective spending for a viewpoint.
type statsService struct {
	db                *gorm.DB
	recurrenceService RecurrenceServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB, recurrenceService RecurrenceServicer) StatsServicer {
	return &statsService{db: db, recurrenceService: recurrenceService}
}

// ComputeStats totals effective spending and breaks it down by category.
// An individual viewpoint needs every row fetched, including combined ones,
// because combined expenses contribute a member's share to their totals; the
// owner filter is therefore applied per row by the share calculator, not in
// the query.
func (s *statsService) ComputeStats(accountID string, filter TransactionFilter) (*DashboardStats, error) {
	if err := s.recurrenceService.Reconcile(accountID, time.Now()); err != nil {
		logger.Get().Warnw("recurrence reconciliation failed, computing stats over persisted transactions",
			"account_id", accountID,
			"error", err,
		)
	}

	viewpoint := filter.Owner
	fetchFilter := filter
	fetchFilter.Owner = nil

	transactions, err := queryTransactions(s.db, accountID, fetchFilter)
	if err != nil {
		return nil, err
	}

	var total int64
	byCategory := make(map[string]int64)
	for i := range transactions {
		amount := split.EffectiveAmount(&transactions[i], viewpoint)
		if amount <= 0 {
			continue
		}
		total += amount
		byCategory[transactions[i].Category] += amount
	}

	breakdown := make([]CategorySpending, 0, len(byCategory))
	for category, amount := range byCategory {
		breakdown = append(breakdown, CategorySpending{Category: category, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	return &DashboardStats{
		TotalSpending:     total,
		CategoryBreakdown: breakdown,
	}, nil
}
