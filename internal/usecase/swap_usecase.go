// Package usecase defines the application-facing interfaces and their DTOs.
package usecase

import (
	"context"
	"time"

	"swapmeet/internal/domain/entity"

	"github.com/google/uuid"
)

// ProposeSwapInput represents the input for proposing a new swap.
type ProposeSwapInput struct {
	InitiatorID   uuid.UUID  `json:"initiator_id"`
	ReceiverID    uuid.UUID  `json:"receiver_id"`
	InitiatorItem uuid.UUID  `json:"initiator_item"`
	ReceiverItem  *uuid.UUID `json:"receiver_item,omitempty"` // nil for a pure borrow
	IsBorrowing   bool       `json:"is_borrowing"`
	BorrowDays    int        `json:"borrow_days,omitempty"` // return window, borrow swaps only
}

// AcceptSwapInput represents the input for accepting a proposed swap.
type AcceptSwapInput struct {
	MeetupLocation uuid.UUID `json:"meetup_location"`
	MeetupTime     time.Time `json:"meetup_time"`
}

// ConfirmSwapInput carries one party's proof of presence to the confirmation gate.
type ConfirmSwapInput struct {
	Proof     string   `json:"proof"` // sealed proof-token blob, usually scanned from QR
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ConfirmSwapResult reports what the confirmation call achieved.
type ConfirmSwapResult struct {
	Swap      *entity.Swap     `json:"swap"`
	Completed bool             `json:"completed"` // true when this call triggered completion
	Exchange  *entity.Exchange `json:"exchange,omitempty"`
}

// RequestExtensionInput represents the input for a borrow-extension request.
type RequestExtensionInput struct {
	DaysRequested int    `json:"days_requested"`
	Reason        string `json:"reason"`
}

// RespondExtensionInput represents the decision on a pending extension request.
type RespondExtensionInput struct {
	Approve      bool   `json:"approve"`
	ResponseNote string `json:"response_note,omitempty"`
}

// SwapUsecase drives the authoritative swap state machine.
type SwapUsecase interface {
	// Propose creates a new swap in Requested state, locking both items.
	Propose(ctx context.Context, input *ProposeSwapInput) (*entity.Swap, error)

	// Accept moves a Requested swap to Accepted with an agreed meetup.
	// Only the receiver may accept.
	Accept(ctx context.Context, swapID, actingUser uuid.UUID, input *AcceptSwapInput) (*entity.Swap, error)

	// Confirm records one party's presence proof. The call that observes both
	// confirmations completes the swap atomically.
	Confirm(ctx context.Context, swapID, actingUser uuid.UUID, input *ConfirmSwapInput) (*ConfirmSwapResult, error)

	// Cancel moves any non-terminal swap to Cancelled. Idempotent on an
	// already cancelled swap.
	Cancel(ctx context.Context, swapID, actingUser uuid.UUID) (*entity.Swap, error)

	// RequestExtension asks for more time on a completed borrow swap.
	RequestExtension(ctx context.Context, swapID, actingUser uuid.UUID, input *RequestExtensionInput) (*entity.ExtensionRequest, error)

	// RespondToExtension approves or denies the pending extension request.
	RespondToExtension(ctx context.Context, swapID, actingUser uuid.UUID, input *RespondExtensionInput) (*entity.ExtensionRequest, error)

	// GetSwap retrieves a swap visible to the acting user.
	GetSwap(ctx context.Context, swapID, actingUser uuid.UUID) (*entity.Swap, error)

	// ListSwaps retrieves the acting user's swaps, newest first.
	ListSwaps(ctx context.Context, actingUser uuid.UUID) ([]*entity.Swap, error)
}
