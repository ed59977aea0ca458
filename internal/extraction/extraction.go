// Package extraction is the boundary to the AI statement-parsing service.
// It receives raw statement text and returns candidate transactions; the
// statement service owns persistence and status transitions.
package extraction

import (
	"context"
	"math"
	"time"
)

// Candidate is one transaction proposed by the extraction service.
// Amount is in cents and always positive.
type Candidate struct {
	Date     time.Time
	Vendor   string
	Amount   int64
	Category string
	IsShared bool
	Notes    string
}

// Extractor parses raw statement text into transaction candidates.
type Extractor interface {
	Extract(ctx context.Context, content string) ([]Candidate, error)
}

// toCents converts a dollar amount to cents, rounding to the nearest cent
// and discarding sign (statements report expenses with mixed signs).
func toCents(dollars float64) int64 {
	return int64(math.Round(math.Abs(dollars) * 100))
}
