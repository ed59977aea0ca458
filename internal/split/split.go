// Package split computes each viewpoint's effective share of a transaction.
// This is the single source of the share calculation: dashboard stats,
// trend aggregation, and per-row display must all go through EffectiveAmount
// so the numbers can never drift apart.
package split

import (
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

const defaultShare = 50

// EffectiveAmount returns the portion of tx's amount, in cents, attributable
// to the given viewpoint.
//
// A nil viewpoint means "no filter" and returns the full amount. The
// combined viewpoint counts only pool-level expenses. A member viewpoint
// counts its own expenses in full (legacy aliases included), its configured
// percentage of combined expenses, and nothing of the other member's.
func EffectiveAmount(tx *models.Transaction, viewpoint *models.Owner) int64 {
	amount := tx.Amount
	if amount < 0 {
		amount = -amount
	}

	if viewpoint == nil {
		return amount
	}

	if *viewpoint == models.OwnerCombined {
		if tx.Owner == models.OwnerCombined {
			return amount
		}
		return 0
	}

	if viewpoint.Matches(tx.Owner) {
		return amount
	}

	if tx.Owner == models.OwnerCombined {
		m1 := member1Portion(tx, amount)
		if viewpoint.IsMember1() {
			return m1
		}
		// Member2 gets the exact remainder so the two shares always sum
		// to the full amount even when cents don't divide evenly.
		return amount - m1
	}

	// Belongs to the other member.
	return 0
}

// member1Portion returns member1's share of a combined expense, rounded to
// the nearest cent. Shares default to an even split; when only member2's
// share is stored, member1's is its complement.
func member1Portion(tx *models.Transaction, amount int64) int64 {
	share := int64(defaultShare)
	switch {
	case tx.Member1Share != nil:
		share = int64(*tx.Member1Share)
	case tx.Member2Share != nil:
		share = int64(100 - *tx.Member2Share)
	}
	return (amount*share + 50) / 100
}
