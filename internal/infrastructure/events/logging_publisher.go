package events

import (
	"context"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// LoggingPublisher is the in-process observer hub: every published event is
// written to the debug log, then handed to the listeners of its type in the
// order they subscribed. Dispatch is synchronous.
type LoggingPublisher struct {
	logger ports.Logger

	mu        sync.RWMutex
	seq       int
	listeners map[string][]listener
}

type listener struct {
	id      int
	handler ports.EventHandler
}

// NewLoggingPublisher creates an event publisher. A nil logger disables the
// log output, not the dispatch.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger:    logger,
		listeners: make(map[string][]listener),
	}
}

// Publish logs the event and runs its listeners. Listener errors are logged
// and never stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}
	eventType := event.EventType()

	if p.logger != nil {
		p.logger.Debug(ctx, "domain event", eventFields(event)...)
	}

	for _, l := range p.snapshot(eventType) {
		if err := l.handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", eventType, "error", err)
		}
	}
	return nil
}

// Subscribe registers handler for eventType. Unsubscribing twice is a no-op.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return cancelFunc(nil), nil
	}

	p.mu.Lock()
	p.seq++
	id := p.seq
	p.listeners[eventType] = append(p.listeners[eventType], listener{id: id, handler: handler})
	p.mu.Unlock()

	var once sync.Once
	return cancelFunc(func() {
		once.Do(func() { p.remove(eventType, id) })
	}), nil
}

// SubscriberCount returns how many handlers listen for eventType.
func (p *LoggingPublisher) SubscriberCount(eventType string) int {
	if p == nil {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.listeners[eventType])
}

func (p *LoggingPublisher) snapshot(eventType string) []listener {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]listener(nil), p.listeners[eventType]...)
}

func (p *LoggingPublisher) remove(eventType string, id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.listeners[eventType]
	kept := make([]listener, 0, len(current))
	for _, l := range current {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(p.listeners, eventType)
		return
	}
	p.listeners[eventType] = kept
}

// eventFields flattens an event into logger key/value pairs. Map payloads
// are expanded in key order.
func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}

	switch payload := event.Payload().(type) {
	case nil:
	case map[string]interface{}:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fields = append(fields, key, payload[key])
		}
	default:
		fields = append(fields, "payload", payload)
	}
	return fields
}

// cancelFunc adapts a function to ports.Subscription.
type cancelFunc func()

func (f cancelFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}

var _ ports.EventPublisher = (*LoggingPublisher)(nil)
