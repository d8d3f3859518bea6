// Package events carries in-process domain events between services. It
// replaces the hidden HTTP call the order subsystem used to make into the
// location subsystem with an explicit, observable hand-off.
package events

import (
	"context"
	"sync"
	"time"
)

// OrderCreated is published after an order commit succeeds.
type OrderCreated struct {
	OrderID       string
	OriginAddress string
	CreatedAt     time.Time
}

type OrderCreatedHandler func(ctx context.Context, e OrderCreated) error

const handlerTimeout = 5 * time.Second

// Bus dispatches events to subscribers. Dispatch is asynchronous and
// detached from the publishing request: subscriber failures never fail the
// request that produced the event.
type Bus struct {
	mu       sync.RWMutex
	handlers []OrderCreatedHandler
	errFn    func(error)
}

// NewBus creates a Bus. errFn is called with every subscriber error; pass
// nil to drop them.
func NewBus(errFn func(error)) *Bus {
	return &Bus{errFn: errFn}
}

func (b *Bus) SubscribeOrderCreated(h OrderCreatedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) PublishOrderCreated(e OrderCreated) {
	b.mu.RLock()
	handlers := make([]OrderCreatedHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		go func(h OrderCreatedHandler) {
			ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
			defer cancel()
			if err := h(ctx, e); err != nil && b.errFn != nil {
				b.errFn(err)
			}
		}(h)
	}
}
