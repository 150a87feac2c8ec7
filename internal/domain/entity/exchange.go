package entity

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is the physical-handover record created once both parties verified
// their presence. Its creation is the only trigger for ownership mutation.
type Exchange struct {
	ID                 uuid.UUID  // The Global Unique Identifier (GUID) for the exchange.
	SwapID             uuid.UUID  // The swap this exchange belongs to.
	LocationID         *uuid.UUID // Where the handover happened.
	ExchangedAt        time.Time  // Timestamp of the handover.
	InitiatorConfirmed bool       // The initiator verified presence.
	ReceiverConfirmed  bool       // The receiver verified presence.
	ProofOfScan        bool       // True when both confirmations came from scanned tokens.
	Notes              string     // Optional free-form notes.
	CreatedAt          time.Time  // Timestamp of when this record was created.
}

// IsComplete holds iff both parties confirmed.
func (e *Exchange) IsComplete() bool {
	return e.InitiatorConfirmed && e.ReceiverConfirmed
}
