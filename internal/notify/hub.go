package notify

import (
	"context"
	"sync"

	"chem.app/api/common/metrics"
)

const DefaultBuffer = 32

// Subscription receives events until Close is called.
type Subscription struct {
	ch   chan Event
	hub  *Hub
	once sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.hub != nil {
			s.hub.remove(s)
		}
	})
}

// Hub is an in-process fan-out. Each subscriber has its own buffered
// channel; a full buffer drops the event for that subscriber only.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
	}
}

func (h *Hub) Publish(_ context.Context, evt Event) error {
	h.broadcast(evt)
	return nil
}

func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{ch: make(chan Event, h.buffer), hub: h}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	metrics.SubscriberAdded()
	return s
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		select {
		case s.ch <- evt:
			metrics.EventDelivered()
		default:
			metrics.EventDropped()
		}
	}
}

// remove holds the write lock so no broadcast can send on the channel
// while it is being closed.
func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.ch)
	metrics.SubscriberRemoved()
}
