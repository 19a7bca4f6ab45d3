// Package log is a small structured logger with asynchronous delivery to
// pluggable transporters and request-scoped fields carried in a context.
package log

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the queue capacity used by New.
const DefaultBufferSize = 1000

// Logger emits entries at or above its level. Child loggers created with
// With share the parent's buffer.
type Logger struct {
	level  *atomic.Int32
	buffer *Buffer
	fields map[string]any
}

// New creates a logger with the given minimum level and transporters.
func New(level Level, transporters ...Transporter) *Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(level))
	return &Logger{
		level:  lv,
		buffer: NewBuffer(DefaultBufferSize, transporters...),
		fields: map[string]any{},
	}
}

// SetLevel changes the minimum level for this logger and its children.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Enabled reports whether entries at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return Level(l.level.Load()).Enables(level)
}

// With returns a child logger with additional base fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := make(map[string]any, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return &Logger{level: l.level, buffer: l.buffer, fields: fields}
}

// Close flushes queued entries and closes the transporters.
func (l *Logger) Close() {
	l.buffer.Close()
}

// callerSkip is the frame distance from log to the user's call site.
const callerSkip = 3

// log builds an entry from base fields, then context fields, then call-site
// pairs; later sources override earlier ones.
func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues []any) {
	if !l.Enabled(level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = caller(callerSkip)
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	if ctx != nil {
		entry.RequestID = RequestIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}
	l.buffer.Send(*entry.With(keysAndValues...))
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

func (l *Logger) Debug(msg string, kv ...any) { l.log(nil, Debug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(nil, Info, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(nil, Warn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(nil, Error, msg, kv) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Debug, msg, kv) }
func (l *Logger) InfoCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Info, msg, kv) }
func (l *Logger) WarnCtx(ctx context.Context, msg string, kv ...any)  { l.log(ctx, Warn, msg, kv) }
func (l *Logger) ErrorCtx(ctx context.Context, msg string, kv ...any) { l.log(ctx, Error, msg, kv) }

// --- Global Logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	discard      = newDiscard()
)

func newDiscard() *Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(Fatal + 1))
	return &Logger{level: lv, buffer: NewBuffer(1, noopTransporter{}), fields: map[string]any{}}
}

// SetDefault sets the global logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the global logger, or a logger that discards everything
// when none is set.
func Default() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return discard
	}
	return globalLogger
}

func GlobalDebug(msg string, kv ...any) { Default().log(nil, Debug, msg, kv) }
func GlobalInfo(msg string, kv ...any)  { Default().log(nil, Info, msg, kv) }
func GlobalWarn(msg string, kv ...any)  { Default().log(nil, Warn, msg, kv) }
func GlobalError(msg string, kv ...any) { Default().log(nil, Error, msg, kv) }

func GlobalDebugCtx(ctx context.Context, msg string, kv ...any) { Default().log(ctx, Debug, msg, kv) }
func GlobalInfoCtx(ctx context.Context, msg string, kv ...any)  { Default().log(ctx, Info, msg, kv) }
func GlobalWarnCtx(ctx context.Context, msg string, kv ...any)  { Default().log(ctx, Warn, msg, kv) }
func GlobalErrorCtx(ctx context.Context, msg string, kv ...any) { Default().log(ctx, Error, msg, kv) }
