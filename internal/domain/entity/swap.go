// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SwapStatus is the lifecycle state of a swap.
type SwapStatus string

const (
	// SwapStatusRequested is the initial state after a proposal.
	SwapStatusRequested SwapStatus = "requested"
	// SwapStatusAccepted means the receiver agreed to a meetup.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusConfirmed means one party has verified presence; the counterpart is pending.
	SwapStatusConfirmed SwapStatus = "confirmed"
	// SwapStatusCompleted is terminal; ownership has been transferred.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusCancelled is terminal.
	SwapStatusCancelled SwapStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusCompleted || s == SwapStatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Cancelled is reachable from any non-terminal state; the forward path is
// Requested -> Accepted -> Confirmed -> Completed with no skipping.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == SwapStatusCancelled {
		return true
	}

	switch s {
	case SwapStatusRequested:
		return next == SwapStatusAccepted
	case SwapStatusAccepted:
		return next == SwapStatusConfirmed
	case SwapStatusConfirmed:
		return next == SwapStatusConfirmed || next == SwapStatusCompleted
	default:
		return false
	}
}

// Swap is a proposed or in-progress exchange of items between two parties.
type Swap struct {
	ID             uuid.UUID  // The Global Unique Identifier (GUID) for the swap.
	InitiatorID    uuid.UUID  // The user who proposed the swap.
	ReceiverID     uuid.UUID  // The user receiving the proposal.
	InitiatorItem  uuid.UUID  // The item offered by the initiator.
	ReceiverItem   *uuid.UUID // The item offered by the receiver; nil for a pure borrow.
	Status         SwapStatus // Current lifecycle state.
	MeetupLocation *uuid.UUID // Agreed meetup location, set on acceptance.
	MeetupTime     *time.Time // Agreed meetup time, set on acceptance.
	LockExpiresAt  *time.Time // When the item locks taken for this swap lapse.
	IsBorrowing    bool       // True when the receiver borrows the item rather than trades for it.
	BorrowDays     int        // Agreed return window in days, borrow swaps only.
	ReturnDeadline *time.Time // Return deadline, set on completion of borrow swaps.
	CreatedAt      time.Time  // Timestamp of when this swap was proposed.
	UpdatedAt      time.Time  // Timestamp of the last modification.
}

// IsParty reports whether the user is one of the two swap parties.
func (s *Swap) IsParty(userID uuid.UUID) bool {
	return s.InitiatorID == userID || s.ReceiverID == userID
}

// Counterpart returns the other party of the swap.
func (s *Swap) Counterpart(userID uuid.UUID) uuid.UUID {
	if s.InitiatorID == userID {
		return s.ReceiverID
	}

	return s.InitiatorID
}
