package models

// Household is the per-account settings record naming the household and its
// members. Absence means the account has not completed setup.
type Household struct {
	Base
	AccountID   string `gorm:"not null;uniqueIndex" json:"account_id"`
	Name        string `gorm:"not null" json:"name"`
	Member1Name string `gorm:"not null" json:"member1_name"`
	Member2Name string `json:"member2_name,omitempty"`
}
