package models

// AuditLog records a mutation performed against an account's data.
type AuditLog struct {
	Base
	AccountID    string `gorm:"not null;index" json:"account_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `gorm:"type:text" json:"changes,omitempty"`
}
