package models

import "time"

// Base contains common columns for all tables. Rows are hard-deleted:
// statement deletion cascades to its transactions, so soft-delete markers
// would leave orphaned history behind.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
