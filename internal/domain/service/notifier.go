// Package service defines interfaces for infrastructure collaborators used by the use case layer.
package service

import (
	"context"
)

// SwapEventType enumerates the lifecycle events handed to the notification collaborator.
type SwapEventType string

const (
	EventSwapProposed      SwapEventType = "swap_proposed"
	EventSwapAccepted      SwapEventType = "swap_accepted"
	EventSwapCancelled     SwapEventType = "swap_cancelled"
	EventSwapCompleted     SwapEventType = "swap_completed"
	EventExtensionRequest  SwapEventType = "extension_requested"
	EventExtensionResponse SwapEventType = "extension_responded"
)

// SwapEvent is the payload handed to the notification collaborator. Delivery
// (push, mail, in-app) is entirely the collaborator's concern.
type SwapEvent struct {
	RequestID   string        `json:"request_id,omitempty"` // For distributed tracing
	EventType   SwapEventType `json:"event_type"`
	RecipientID string        `json:"recipient_id"`
	SwapID      string        `json:"swap_id"`
	Message     string        `json:"message"`
	ContentType string        `json:"content_type,omitempty"`
	ContentID   string        `json:"content_id,omitempty"`
}

// EventPublisher defines the interface for publishing swap events to a message queue.
// Publishing is best-effort; the swap core never blocks on it.
type EventPublisher interface {
	// PublishSwapEvent publishes a swap lifecycle event for async processing.
	PublishSwapEvent(ctx context.Context, event *SwapEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
