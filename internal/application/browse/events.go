package browse

import (
	"context"

	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// eventFields is the payload of a controller transition event.
type eventFields map[string]interface{}

// transitionEvent reports a completed controller transition.
type transitionEvent struct {
	kind   string
	fields eventFields
}

func (e transitionEvent) EventType() string    { return e.kind }
func (e transitionEvent) Payload() interface{} { return map[string]interface{}(e.fields) }

// emit publishes kind when a publisher is configured. Publisher failures
// are logged; the transition itself has already succeeded.
func (c *Controller) emit(ctx context.Context, kind string, fields eventFields) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, transitionEvent{kind: kind, fields: fields}); err != nil {
		c.logger.Warn(ctx, "publishing transition event failed", "event_type", kind, "error", err)
	}
}

var _ ports.DomainEvent = transitionEvent{}
