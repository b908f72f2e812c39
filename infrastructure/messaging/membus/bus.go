package membus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/events"
)

// Bus is a synchronous in-process event bus. Observers (the websocket
// mirror, the metrics sink) run inline on the publisher's goroutine; a
// panicking observer is isolated so it cannot fail the turn that
// produced the event.
type Bus struct {
	mu          sync.RWMutex
	subscribers []func(events.DomainEvent)
	logger      *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

var _ ports.EventBus = (*Bus)(nil)

// Publish delivers events to every subscriber in registration order.
func (b *Bus) Publish(ctx context.Context, evts ...events.DomainEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, evt := range evts {
		for _, fn := range subs {
			b.deliver(fn, evt)
		}
	}
}

// Subscribe registers an observer for all future events.
func (b *Bus) Subscribe(fn func(events.DomainEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

func (b *Bus) deliver(fn func(events.DomainEvent), evt events.DomainEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("event subscriber panicked",
				zap.String("event_type", evt.GetEventType()),
				zap.Any("panic", rec),
			)
		}
	}()
	fn(evt)
}
