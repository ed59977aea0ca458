// Package recurrence expands recurring-transaction templates into dated
// instances. Expansion is deterministic and bounded; the reconciler in the
// services layer decides what actually gets persisted.
package recurrence

import (
	"time"

	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// MaxCatchUp caps how many instances one expansion may emit. A lineage
// dormant for longer than 52 periods catches up incrementally across
// successive reconciliations instead of flooding the table in one burst.
const MaxCatchUp = 52

// NextDate advances date by one frequency step. Month-based steps clamp to
// the last day of the target month (Jan 31 + 1 month = Feb 28). Unknown
// frequencies step monthly.
func NextDate(date time.Time, frequency models.RecurrenceFrequency) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case models.FrequencyBiWeekly:
		return date.AddDate(0, 0, 14)
	case models.FrequencyMonthly:
		return addMonths(date, 1)
	case models.FrequencyQuarterly:
		return addMonths(date, 3)
	case models.FrequencyYearly:
		return date.AddDate(1, 0, 0)
	default:
		return addMonths(date, 1)
	}
}

// addMonths adds n calendar months, clamping the day to the target month's
// length rather than letting it roll over (time.AddDate would turn
// Jan 31 + 1 month into Mar 2/3).
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// SameDay reports whether two timestamps fall on the same calendar date,
// ignoring time of day. This is the idempotence key within a lineage.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Expand generates the instances a recurring template owes between its own
// date (exclusive) and asOf (inclusive), oldest first, capped at MaxCatchUp.
// Each instance copies the template except for the date and the statement
// reference, which is always cleared: generated rows are never attributed
// to a source document. Non-recurring templates expand to nothing.
func Expand(template *models.Transaction, asOf time.Time) []models.Transaction {
	if !template.IsRecurring || template.RecurrenceFrequency == "" {
		return nil
	}

	var instances []models.Transaction
	next := NextDate(template.Date, template.RecurrenceFrequency)
	for len(instances) < MaxCatchUp && !next.After(asOf) {
		instances = append(instances, instance(template, next))
		next = NextDate(next, template.RecurrenceFrequency)
	}
	return instances
}

func instance(template *models.Transaction, date time.Time) models.Transaction {
	return models.Transaction{
		AccountID:           template.AccountID,
		Owner:               template.Owner,
		Date:                date,
		Vendor:              template.Vendor,
		Amount:              template.Amount,
		Category:            template.Category,
		IsShared:            template.IsShared,
		Notes:               template.Notes,
		IsRecurring:         true,
		RecurrenceFrequency: template.RecurrenceFrequency,
		SplitType:           template.SplitType,
		Member1Share:        template.Member1Share,
		Member2Share:        template.Member2Share,
		StatementID:         nil,
	}
}
