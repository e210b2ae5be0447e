package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logginginfra "github.com/alexisbeaulieu97/bookconnect/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

type sampleEvent struct {
	eventType string
	payload   interface{}
}

func (e sampleEvent) EventType() string    { return e.eventType }
func (e sampleEvent) Payload() interface{} { return e.payload }

func newTestLogger(t *testing.T, buf *bytes.Buffer) ports.Logger {
	t.Helper()
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     "debug",
		Layer:     "test",
		Component: "publisher",
	})
	require.NoError(t, err)
	return logger
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newTestLogger(t, buf))

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, sampleEvent{
		eventType: ports.EventCatalogFiltered,
		payload:   map[string]interface{}{"matches": 3},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "domain event", entry["message"])
	assert.Equal(t, ports.EventCatalogFiltered, entry["event_type"])
	assert.Equal(t, "abc-123", entry["correlation_id"])
	assert.EqualValues(t, 3, entry["matches"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)

	var received []string
	sub, err := publisher.Subscribe(ports.EventPreviewSelected, func(_ context.Context, event ports.DomainEvent) error {
		received = append(received, event.(ports.SelectionEvent).EntryID)
		return nil
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventPageLoaded, func(context.Context, ports.DomainEvent) error {
		t.Fatal("unrelated handler must not run")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), ports.SelectionEvent{EntryID: "b1"}))
	require.NoError(t, publisher.Publish(context.Background(), ports.SelectionEvent{EntryID: "b2"}))
	assert.Equal(t, []string{"b1", "b2"}, received)

	sub.Unsubscribe()
	assert.Equal(t, 0, publisher.SubscriberCount(ports.EventPreviewSelected))
	require.NoError(t, publisher.Publish(context.Background(), ports.SelectionEvent{EntryID: "b3"}))
	assert.Equal(t, []string{"b1", "b2"}, received)
}

func TestLoggingPublisherContinuesAfterHandlerError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newTestLogger(t, buf))

	calls := 0
	_, _ = publisher.Subscribe(ports.EventPreviewSelected, func(context.Context, ports.DomainEvent) error {
		calls++
		return errors.New("boom")
	})
	_, _ = publisher.Subscribe(ports.EventPreviewSelected, func(context.Context, ports.DomainEvent) error {
		calls++
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), ports.SelectionEvent{EntryID: "b1"}))
	assert.Equal(t, 2, calls)
	assert.True(t, strings.Contains(buf.String(), "event handler failed"))
}

func TestLoggingPublisherUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)
	noop := func(context.Context, ports.DomainEvent) error { return nil }

	first, err := publisher.Subscribe(ports.EventPreviewSelected, noop)
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventPreviewSelected, noop)
	require.NoError(t, err)

	first.Unsubscribe()
	first.Unsubscribe()
	assert.Equal(t, 1, publisher.SubscriberCount(ports.EventPreviewSelected))
}

func TestLoggingPublisherNilHandler(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(nil)
	sub, err := publisher.Subscribe(ports.EventPreviewSelected, nil)
	require.NoError(t, err)
	assert.NotPanics(t, sub.Unsubscribe)
	assert.Zero(t, publisher.SubscriberCount(ports.EventPreviewSelected))
}

func TestEventFields(t *testing.T) {
	t.Parallel()

	fields := eventFields(ports.SelectionEvent{EntryID: "bk-007"})
	assert.Equal(t, []interface{}{"event_type", ports.EventPreviewSelected, "entry_id", "bk-007"}, fields)
}
