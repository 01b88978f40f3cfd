package model

import (
	"fmt"
	"time"
)

// Transaction is a single contribution from the Open Collective feed.
//
// A transaction is immutable once fetched: it is compared against the
// ledger, persisted if novel, and announced. It is never updated or
// deleted afterwards.
type Transaction struct {
	ID          string    // Primary key (opaque id from Open Collective)
	CreatedAt   time.Time // Creation time reported by the feed
	FromAccount string    // Contributor display name (free text, not unique)
	AmountCents int64     // Amount in minor currency units, non-negative
}

// DollarString renders AmountCents as a two-decimal dollar amount,
// e.g. 500 -> "5.00". Integer math only, no float rounding.
func (t Transaction) DollarString() string {
	return fmt.Sprintf("%d.%02d", t.AmountCents/100, t.AmountCents%100)
}
