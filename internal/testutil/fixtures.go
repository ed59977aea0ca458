package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justmenoble-ux/mano-web-app/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewAccountID returns a unique account identifier for a test.
func NewAccountID() string {
	return fmt.Sprintf("acct-%d", nextID())
}

// CreateTestHousehold creates a household profile for the account.
func CreateTestHousehold(t *testing.T, db *gorm.DB, accountID string) *models.Household {
	t.Helper()

	household := &models.Household{
		AccountID:   accountID,
		Name:        fmt.Sprintf("Household %d", nextID()),
		Member1Name: "Noble",
		Member2Name: "Maria",
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	return household
}

// CreateTestStatement creates a pending statement with CSV content.
func CreateTestStatement(t *testing.T, db *gorm.DB, accountID string, owner models.Owner) *models.Statement {
	t.Helper()

	statement := &models.Statement{
		AccountID: accountID,
		Owner:     owner,
		Filename:  fmt.Sprintf("statement%d.csv", nextID()),
		Content:   "date,vendor,amount\n2024-01-05,Grocery Store,42.50\n",
		Status:    models.StatementStatusPending,
	}
	if err := db.Create(statement).Error; err != nil {
		t.Fatalf("failed to create test statement: %v", err)
	}
	return statement
}

// CreateTestTransaction creates a transaction with sensible defaults.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID string, owner models.Owner, date time.Time, amount int64) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		AccountID: accountID,
		Owner:     owner,
		Date:      date,
		Vendor:    fmt.Sprintf("Vendor %d", nextID()),
		Amount:    amount,
		Category:  "Miscellaneous",
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestSharedTransaction creates a combined transaction with a custom split.
func CreateTestSharedTransaction(t *testing.T, db *gorm.DB, accountID string, date time.Time, amount int64, member1Share int) *models.Transaction {
	t.Helper()

	member2Share := 100 - member1Share
	transaction := &models.Transaction{
		AccountID:    accountID,
		Owner:        models.OwnerCombined,
		Date:         date,
		Vendor:       fmt.Sprintf("Vendor %d", nextID()),
		Amount:       amount,
		Category:     "Miscellaneous",
		IsShared:     true,
		SplitType:    models.SplitTypeCustom,
		Member1Share: &member1Share,
		Member2Share: &member2Share,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestRecurringTransaction creates a recurring template with a fixed vendor.
func CreateTestRecurringTransaction(t *testing.T, db *gorm.DB, accountID string, owner models.Owner, vendor string, date time.Time, amount int64, frequency models.RecurrenceFrequency) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		AccountID:           accountID,
		Owner:               owner,
		Date:                date,
		Vendor:              vendor,
		Amount:              amount,
		Category:            "Subscriptions",
		IsRecurring:         true,
		RecurrenceFrequency: frequency,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}
