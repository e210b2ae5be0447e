package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
)

// Options configures the zerolog adapter.
type Options struct {
	Writer        io.Writer
	Level         string
	HumanReadable bool
	TimeFormat    string
	Layer         string
	Component     string
	// Fields are attached to every entry.
	Fields map[string]interface{}
}

type field struct {
	key   string
	value interface{}
}

// Logger implements ports.Logger using zerolog. Persistent fields set
// through With are keyed: setting a key again replaces its value.
type Logger struct {
	base   zerolog.Logger
	layer  string
	fields []field
}

// New creates a Logger adapter with the supplied options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.NoColor = true
		console.TimeFormat = opts.TimeFormat
		if console.TimeFormat == "" {
			console.TimeFormat = time.RFC3339
		}
		writer = console
	}

	zctx := zerolog.New(writer).Level(level).With().Timestamp()
	keys := make([]string, 0, len(opts.Fields))
	for key := range opts.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		zctx = zctx.Interface(key, opts.Fields[key])
	}

	logger := &Logger{base: zctx.Logger(), layer: opts.Layer}
	if logger.layer == "" {
		logger.layer = "infrastructure"
	}
	if opts.Component != "" {
		logger.fields = []field{{key: "component", value: opts.Component}}
	}
	return logger, nil
}

// Debug emits a debug log entry.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.DebugLevel, msg, fields)
}

// Info emits an info log entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.InfoLevel, msg, fields)
}

// Warn emits a warning log entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.WarnLevel, msg, fields)
}

// Error emits an error log entry.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, zerolog.ErrorLevel, msg, fields)
}

// With derives a logger with persistent fields. A "layer" key replaces the
// logger's layer.
func (l *Logger) With(kv ...interface{}) ports.Logger {
	if l == nil {
		return NewNoOpLogger()
	}
	child := &Logger{base: l.base, layer: l.layer}
	var rest []field
	for _, f := range pairs(kv) {
		if f.key == "layer" {
			if value, ok := f.value.(string); ok && value != "" {
				child.layer = value
			}
			continue
		}
		rest = append(rest, f)
	}
	child.fields = merge(l.fields, rest)
	return child
}

func (l *Logger) log(ctx context.Context, level zerolog.Level, msg string, kv []interface{}) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}

	event = event.Str("layer", l.layer)
	if id := ports.GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}

	merged := merge(l.fields, pairs(kv))
	flat := make([]interface{}, 0, len(merged)*2)
	for _, f := range merged {
		if f.key == "layer" || f.key == "correlation_id" {
			continue
		}
		flat = append(flat, f.key, f.value)
	}
	event.Fields(flat).Msg(msg)
}

// pairs reads alternating key/value arguments. Non-string keys and a
// trailing key without a value are ignored.
func pairs(kv []interface{}) []field {
	out := make([]field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			continue
		}
		out = append(out, field{key: key, value: kv[i+1]})
	}
	return out
}

// merge returns base overlaid with additions, keeping first-seen key order.
// Neither input is modified.
func merge(base, additions []field) []field {
	out := make([]field, len(base), len(base)+len(additions))
	copy(out, base)
	for _, add := range additions {
		replaced := false
		for i := range out {
			if out[i].key == add.key {
				out[i].value = add.value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, add)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
