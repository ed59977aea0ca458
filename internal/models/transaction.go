package models

import "time"

// RecurrenceFrequency is the period between instances of a recurring expense.
type RecurrenceFrequency string

const (
	FrequencyWeekly    RecurrenceFrequency = "weekly"
	FrequencyBiWeekly  RecurrenceFrequency = "bi-weekly"
	FrequencyMonthly   RecurrenceFrequency = "monthly"
	FrequencyQuarterly RecurrenceFrequency = "quarterly"
	FrequencyYearly    RecurrenceFrequency = "yearly"
)

// SplitType describes how a combined expense is divided between members.
type SplitType string

const (
	SplitTypeEven   SplitType = "50-50"
	SplitTypeCustom SplitType = "custom"
)

// Transaction is a single expense. Amount is in cents. StatementID is nil
// for manual entries and recurrence-generated rows. Split fields are only
// meaningful when Owner is "combined".
type Transaction struct {
	Base
	StatementID *uint     `gorm:"index" json:"statement_id,omitempty"`
	AccountID   string    `gorm:"not null;index" json:"account_id"`
	Owner       Owner     `gorm:"type:text;not null;default:'combined'" json:"owner"`
	Date        time.Time `gorm:"not null" json:"date"`
	Vendor      string    `gorm:"not null" json:"vendor"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Category    string    `gorm:"not null" json:"category"`
	IsShared    bool      `gorm:"default:false" json:"is_shared"`
	Notes       string    `json:"notes,omitempty"`

	IsRecurring         bool                `gorm:"default:false;index" json:"is_recurring"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrence_frequency,omitempty"`

	SplitType    SplitType `json:"split_type,omitempty"`
	Member1Share *int      `json:"member1_share,omitempty"`
	Member2Share *int      `json:"member2_share,omitempty"`

	Statement *Statement `gorm:"foreignKey:StatementID" json:"statement,omitempty"`
}
