// Package eventbus defines the contract for publishing and subscribing
// to domain events.
package eventbus

import (
	"context"

	"github.com/ozanselte/bankcore/pkg/domain/common"
)

// HandlerFunc processes one published event.
type HandlerFunc func(ctx context.Context, event common.Event) error

// Bus is the event-driven communication contract. Implementations live
// under infra/eventbus (in-memory and Kafka).
type Bus interface {
	// Emit publishes the event to all handlers registered for its type.
	Emit(ctx context.Context, event common.Event) error

	// Register subscribes a handler to a specific event type.
	Register(eventType string, handler HandlerFunc)
}
