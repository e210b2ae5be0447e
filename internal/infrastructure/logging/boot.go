package logging

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

const defaultBootLimit = 1000

// BootLogger holds entries emitted before the configured logger exists and
// replays them into it once configuration has been read. When the limit is
// reached the oldest entries are dropped.
type BootLogger struct {
	store  *bootStore
	fields []interface{}
}

type bootEntry struct {
	ctx    context.Context
	level  zerolog.Level
	msg    string
	fields []interface{}
}

type bootStore struct {
	mu      sync.Mutex
	limit   int
	entries []bootEntry
	dropped int
}

// NewBootLogger creates a boot logger keeping at most limit entries
// (1000 when limit is not positive).
func NewBootLogger(limit int) *BootLogger {
	if limit <= 0 {
		limit = defaultBootLimit
	}
	return &BootLogger{store: &bootStore{limit: limit}}
}

func (l *BootLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, zerolog.DebugLevel, msg, fields)
}

func (l *BootLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, zerolog.InfoLevel, msg, fields)
}

func (l *BootLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, zerolog.WarnLevel, msg, fields)
}

func (l *BootLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, zerolog.ErrorLevel, msg, fields)
}

// With returns a child that shares the parent's entries.
func (l *BootLogger) With(fields ...interface{}) ports.Logger {
	return &BootLogger{store: l.store, fields: append(append([]interface{}{}, l.fields...), fields...)}
}

// Len reports how many entries are waiting to be replayed.
func (l *BootLogger) Len() int {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return len(l.store.entries)
}

// Dropped reports how many entries were discarded because of the limit.
func (l *BootLogger) Dropped() int {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.store.dropped
}

// Replay writes every held entry to delegate in emission order and empties
// the logger.
func (l *BootLogger) Replay(delegate ports.Logger) {
	if l == nil || delegate == nil {
		return
	}
	l.store.mu.Lock()
	entries := l.store.entries
	dropped := l.store.dropped
	l.store.entries = nil
	l.store.dropped = 0
	l.store.mu.Unlock()

	if dropped > 0 {
		delegate.Warn(context.Background(), "startup log entries dropped", "dropped", dropped)
	}
	for _, entry := range entries {
		switch entry.level {
		case zerolog.DebugLevel:
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case zerolog.WarnLevel:
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case zerolog.ErrorLevel:
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}

func (l *BootLogger) record(ctx context.Context, level zerolog.Level, msg string, fields []interface{}) {
	if l == nil || l.store == nil {
		return
	}
	entry := bootEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	}

	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == s.limit {
		s.entries = append(s.entries[:0], s.entries[1:]...)
		s.dropped++
	}
	s.entries = append(s.entries, entry)
}

// NewNoOpLogger returns a logger that drops every entry. Components fall
// back to it when no logger is injected.
func NewNoOpLogger() ports.Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(context.Context, string, ...interface{}) {}
func (discard) Info(context.Context, string, ...interface{})  {}
func (discard) Warn(context.Context, string, ...interface{})  {}
func (discard) Error(context.Context, string, ...interface{}) {}
func (d discard) With(...interface{}) ports.Logger            { return d }

var (
	_ ports.Logger = (*BootLogger)(nil)
	_ ports.Logger = discard{}
)
