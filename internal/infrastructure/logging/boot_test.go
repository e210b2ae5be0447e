package logging

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

type recordedEntry struct {
	level  string
	msg    string
	fields []interface{}
}

type recordingLogger struct {
	entries []recordedEntry
}

func (r *recordingLogger) add(level, msg string, fields []interface{}) {
	r.entries = append(r.entries, recordedEntry{level: level, msg: msg, fields: fields})
}

func (r *recordingLogger) Debug(_ context.Context, msg string, fields ...interface{}) {
	r.add("debug", msg, fields)
}
func (r *recordingLogger) Info(_ context.Context, msg string, fields ...interface{}) {
	r.add("info", msg, fields)
}
func (r *recordingLogger) Warn(_ context.Context, msg string, fields ...interface{}) {
	r.add("warn", msg, fields)
}
func (r *recordingLogger) Error(_ context.Context, msg string, fields ...interface{}) {
	r.add("error", msg, fields)
}
func (r *recordingLogger) With(...interface{}) ports.Logger { return r }

func TestBootLoggerReplaysInOrder(t *testing.T) {
	t.Parallel()

	boot := NewBootLogger(10)
	ctx := context.Background()
	boot.Debug(ctx, "first")
	boot.With("component", "config").Warn(ctx, "second", "path", "/tmp/x")
	boot.Error(ctx, "third")
	require.Equal(t, 3, boot.Len())

	rec := &recordingLogger{}
	boot.Replay(rec)

	require.Len(t, rec.entries, 3)
	assert.Equal(t, recordedEntry{level: "debug", msg: "first", fields: []interface{}{}}, rec.entries[0])
	assert.Equal(t, "warn", rec.entries[1].level)
	assert.Equal(t, []interface{}{"component", "config", "path", "/tmp/x"}, rec.entries[1].fields)
	assert.Equal(t, "error", rec.entries[2].level)
	assert.Zero(t, boot.Len())
}

func TestBootLoggerDropsOldestPastLimit(t *testing.T) {
	t.Parallel()

	boot := NewBootLogger(2)
	for i := 0; i < 5; i++ {
		boot.Info(context.Background(), fmt.Sprintf("entry-%d", i))
	}
	assert.Equal(t, 2, boot.Len())
	assert.Equal(t, 3, boot.Dropped())

	rec := &recordingLogger{}
	boot.Replay(rec)

	require.Len(t, rec.entries, 3)
	assert.Equal(t, "startup log entries dropped", rec.entries[0].msg)
	assert.Equal(t, "entry-3", rec.entries[1].msg)
	assert.Equal(t, "entry-4", rec.entries[2].msg)
	assert.Zero(t, boot.Dropped())
}

func TestBootLoggerReplayToNilIsSafe(t *testing.T) {
	t.Parallel()

	boot := NewBootLogger(0)
	boot.Info(context.Background(), "kept")
	boot.Replay(nil)
	assert.Equal(t, 1, boot.Len())
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	logger := NewNoOpLogger()
	assert.NotPanics(t, func() {
		logger.With("k", "v").Error(context.Background(), "ignored", "error", assert.AnError)
	})
}
