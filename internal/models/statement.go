package models

// StatementStatus is the processing state of an uploaded statement.
type StatementStatus string

const (
	StatementStatusPending    StatementStatus = "pending"
	StatementStatusProcessing StatementStatus = "processing"
	StatementStatusProcessed  StatementStatus = "processed"
	StatementStatusFailed     StatementStatus = "failed"
)

// Statement is an uploaded bank statement. Content holds the extracted text
// (CSV or sheet-flattened spreadsheet) handed to the extraction service.
type Statement struct {
	Base
	AccountID string          `gorm:"not null;index" json:"account_id"`
	Owner     Owner           `gorm:"type:text;not null;default:'combined'" json:"owner"`
	Filename  string          `gorm:"not null" json:"filename"`
	Content   string          `gorm:"type:text" json:"content,omitempty"`
	Status    StatementStatus `gorm:"not null;default:'pending'" json:"status"`
}

// StatementWithTransactions bundles a statement with the transactions
// extracted from it.
type StatementWithTransactions struct {
	Statement
	Transactions []Transaction `json:"transactions"`
}
