package services

import (
	"context"
	"time"

	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// HouseholdServicer defines the contract for household settings.
type HouseholdServicer interface {
	GetHousehold(accountID string) (*models.Household, error)
	SaveHousehold(accountID, name, member1Name, member2Name string) (*models.Household, error)
	UpdateHousehold(accountID string, name, member1Name, member2Name *string) (*models.Household, error)
}

// StatementServicer defines the contract for statement lifecycle management.
type StatementServicer interface {
	CreateFromUpload(accountID string, owner models.Owner, filename string, data []byte) (*models.Statement, error)
	GetStatements(accountID string) ([]models.Statement, error)
	GetStatement(accountID string, statementID uint) (*models.StatementWithTransactions, error)
	Process(ctx context.Context, accountID string, statementID uint) (alreadyProcessed bool, err error)
	DeleteStatement(accountID string, statementID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Owner filtering is alias-aware and deliberately accepts arbitrary values.
type TransactionFilter struct {
	Month     *string
	MonthFrom *string
	MonthTo   *string
	Category  *string
	Owner     *models.Owner
}

// CreateTransactionInput carries a new transaction's fields into the service.
type CreateTransactionInput struct {
	AccountID           string
	StatementID         *uint
	Owner               models.Owner
	Date                time.Time
	Vendor              string
	Amount              int64
	Category            string
	IsShared            bool
	Notes               string
	IsRecurring         bool
	RecurrenceFrequency models.RecurrenceFrequency
	SplitType           models.SplitType
	Member1Share        *int
	Member2Share        *int
}

// UpdateTransactionInput carries a partial update; nil fields are untouched.
type UpdateTransactionInput struct {
	Owner               *models.Owner
	Date                *time.Time
	Vendor              *string
	Amount              *int64
	Category            *string
	IsShared            *bool
	Notes               *string
	IsRecurring         *bool
	RecurrenceFrequency *models.RecurrenceFrequency
	SplitType           *models.SplitType
	Member1Share        *int
	Member2Share        *int
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
	GetTransactions(accountID string, filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(accountID string, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(accountID string, transactionID uint, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(accountID string, transactionID uint) error
	DeleteTransactions(accountID string, transactionIDs []uint) error
}

// RecurrenceServicer catches up recurring lineages before reads.
type RecurrenceServicer interface {
	Reconcile(accountID string, asOf time.Time) error
}

// CategorySpending is one category's effective spending within a range.
type CategorySpending struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// DashboardStats aggregates effective spending for a viewpoint. Amounts are cents.
type DashboardStats struct {
	TotalSpending     int64              `json:"total_spending"`
	CategoryBreakdown []CategorySpending `json:"category_breakdown"`
}

// StatsServicer defines the contract for dashboard aggregation.
type StatsServicer interface {
	ComputeStats(accountID string, filter TransactionFilter) (*DashboardStats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(accountID, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
