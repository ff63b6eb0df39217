package logging

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

// startupBufferLimit bounds the entries held while the CLI has not yet read
// its configuration. Only the newest entries are kept.
const startupBufferLimit = 256

type bufferedEntry struct {
	ctx    context.Context
	level  string
	msg    string
	fields []interface{}
}

// StartupBuffer holds log entries emitted before the configured logger
// exists (config discovery happens before the log level is known).
type StartupBuffer struct {
	mu      sync.Mutex
	limit   int
	entries []bufferedEntry
}

// NewStartupBuffer creates a buffer keeping at most limit entries.
func NewStartupBuffer(limit int) *StartupBuffer {
	if limit <= 0 {
		limit = startupBufferLimit
	}
	return &StartupBuffer{limit: limit}
}

// Logger returns a ports.Logger writing into the buffer.
func (b *StartupBuffer) Logger() ports.Logger {
	return &bufferedLogger{buffer: b}
}

// Len reports the number of buffered entries.
func (b *StartupBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Flush replays buffered entries into delegate in order and empties the buffer.
func (b *StartupBuffer) Flush(delegate ports.Logger) {
	if b == nil || delegate == nil {
		return
	}
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.mu.Unlock()

	for _, entry := range entries {
		switch entry.level {
		case "debug":
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case "warn":
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case "error":
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}

func (b *StartupBuffer) add(entry bufferedEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) >= b.limit {
		b.entries = append(b.entries[1:], entry)
		return
	}
	b.entries = append(b.entries, entry)
}

type bufferedLogger struct {
	buffer *StartupBuffer
	fields []interface{}
}

func (l *bufferedLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, "debug", msg, fields)
}

func (l *bufferedLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, "info", msg, fields)
}

func (l *bufferedLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, "warn", msg, fields)
}

func (l *bufferedLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, "error", msg, fields)
}

func (l *bufferedLogger) With(fields ...interface{}) ports.Logger {
	return &bufferedLogger{buffer: l.buffer, fields: append(append([]interface{}{}, l.fields...), fields...)}
}

func (l *bufferedLogger) log(ctx context.Context, level, msg string, fields []interface{}) {
	if l == nil || l.buffer == nil {
		return
	}
	l.buffer.add(bufferedEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	})
}
