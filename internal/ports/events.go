package ports

import "context"

const (
	// EventPreviewSelected is raised by a preview unit when it is activated.
	EventPreviewSelected = "preview.selected"
	// EventCatalogInitialized is emitted once the first page has been rendered.
	EventCatalogInitialized = "catalog.initialized"
	// EventCatalogFiltered is emitted after a filter transition completes.
	EventCatalogFiltered = "catalog.filtered"
	// EventPageLoaded is emitted after a load-more transition appended units.
	EventPageLoaded = "catalog.page_loaded"
	// EventNoMoreResults is emitted when load-more found nothing left.
	EventNoMoreResults = "catalog.no_more_results"
	// EventEntryNotFound is emitted when a selection references an unknown id.
	EventEntryNotFound = "catalog.entry_not_found"
)

// DomainEvent represents a significant occurrence within the catalog. Events
// carry structured payloads that subscribers use for logging or UI updates.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish returns after every handler ran. Implementations must
// be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are returned
// so publishers can log them and keep delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}

// SelectionEvent is raised when a preview unit is activated.
type SelectionEvent struct {
	EntryID string
}

// EventType implements DomainEvent.
func (SelectionEvent) EventType() string { return EventPreviewSelected }

// Payload implements DomainEvent.
func (e SelectionEvent) Payload() interface{} {
	return map[string]interface{}{"entry_id": e.EntryID}
}
