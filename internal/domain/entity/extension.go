package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtensionStatus is the review state of a return-deadline extension request.
type ExtensionStatus string

const (
	ExtensionPending  ExtensionStatus = "pending"
	ExtensionApproved ExtensionStatus = "approved"
	ExtensionDenied   ExtensionStatus = "denied"
)

// ExtensionRequest asks to push the return deadline of a completed borrow swap.
// At most one pending request may exist per swap at a time.
type ExtensionRequest struct {
	ID            uuid.UUID       // The Global Unique Identifier (GUID) for the request.
	SwapID        uuid.UUID       // The borrow swap this request belongs to.
	RequesterID   uuid.UUID       // The borrowing party asking for more time.
	DaysRequested int             // How many days to add to the return deadline.
	Reason        string          // Why the extension is needed.
	Status        ExtensionStatus // pending, approved or denied.
	ResponseNote  string          // Optional note from the responding party.
	CreatedAt     time.Time       // Timestamp of when this request was created.
	RespondedAt   *time.Time      // Timestamp of the decision, if any.
}
