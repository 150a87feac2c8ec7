package entity

import (
	"time"

	"github.com/google/uuid"
)

// SwapConfirmation is the durable per-party confirmation marker for the
// two-phase completion gate. A row exists once the party's proof token was
// verified; it lapses after a bounded TTL if the counterpart never arrives,
// without reverting the swap status.
type SwapConfirmation struct {
	SwapID      uuid.UUID // The swap being confirmed.
	UserID      uuid.UUID // The confirming party.
	ConfirmedAt time.Time // When the proof was verified.
	ExpiresAt   time.Time // When this marker stops counting toward completion.
}

// IsExpired reports whether the marker lapsed at the given instant.
func (c *SwapConfirmation) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
