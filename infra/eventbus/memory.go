// Package eventbus provides the event bus backends: a synchronous
// in-memory bus for single-process deployments and tests, and a Kafka
// bridge for distributed ones.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ozanselte/bankcore/pkg/domain/common"
	"github.com/ozanselte/bankcore/pkg/eventbus"
)

// MemoryBus is a simple in-memory implementation of eventbus.Bus.
// Handlers run synchronously on the emitting goroutine.
type MemoryBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []common.Event // retained for test assertions
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryBus {
	return &MemoryBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// Register subscribes a handler to a specific event type.
func (b *MemoryBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all handlers registered for its type.
// Handler errors are logged, not propagated: events are informational.
func (b *MemoryBus) Emit(ctx context.Context, event common.Event) error {
	eventType := event.Type()
	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "event_type", eventType, "error", err)
		}
	}
	return nil
}

// Published returns the events emitted so far. Useful in tests.
func (b *MemoryBus) Published() []common.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]common.Event(nil), b.published...)
}

// ClearPublished resets the recorded events. Useful in tests.
func (b *MemoryBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

var _ eventbus.Bus = (*MemoryBus)(nil)
