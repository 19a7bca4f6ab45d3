package log

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// captureTransporter captures entries for testing
type captureTransporter struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

func (c *captureTransporter) Name() string { return "capture" }

func (c *captureTransporter) Write(entry Entry) error {
	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry{}, c.entries...)
}

// logAndFlush runs fn against a fresh Info logger and returns what it emitted.
func logAndFlush(fn func(l *Logger)) []Entry {
	capture := &captureTransporter{}
	logger := New(Info, capture)
	fn(logger)
	logger.Close()
	return capture.Entries()
}

func TestLogger_LevelFiltering(t *testing.T) {
	entries := logAndFlush(func(l *Logger) {
		l.Debug("hidden")
		l.Info("shown")
		l.Warn("shown")
		l.Error("shown")
	})

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Message != "shown" {
			t.Errorf("unexpected entry %q at %v", e.Message, e.Level)
		}
	}
}

func TestLogger_SetLevel_AffectsChildren(t *testing.T) {
	entries := logAndFlush(func(l *Logger) {
		child := l.With("component", "sync")
		l.SetLevel(Error)
		child.Warn("dropped")
		child.Error("kept")
	})

	if len(entries) != 1 || entries[0].Message != "kept" {
		t.Fatalf("got %+v", entries)
	}
	if entries[0].Fields["component"] != "sync" {
		t.Errorf("component field missing: %v", entries[0].Fields)
	}
}

func TestLogger_FieldPrecedence(t *testing.T) {
	// Arrange
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithFields(ctx, "source", "ctx", "run_id", "abc")

	// Act
	entries := logAndFlush(func(l *Logger) {
		l.With("source", "base", "service", "house31").InfoCtx(ctx, "msg", "source", "call")
	})

	// Assert
	e := entries[0]
	if e.RequestID != "req-1" {
		t.Errorf("RequestID = %q", e.RequestID)
	}
	if e.Fields["source"] != "call" {
		t.Errorf("call-site field should win, got %v", e.Fields["source"])
	}
	if e.Fields["run_id"] != "abc" || e.Fields["service"] != "house31" {
		t.Errorf("fields = %v", e.Fields)
	}
}

func TestLogger_CallerPointsAtCallSite(t *testing.T) {
	entries := logAndFlush(func(l *Logger) {
		l.Info("here")
	})

	if !strings.HasPrefix(entries[0].Caller, "logger_test.go:") {
		t.Errorf("Caller = %q, want logger_test.go:<line>", entries[0].Caller)
	}
}

func TestGlobal_DefaultDiscards(t *testing.T) {
	SetDefault(nil)

	// Must not panic or block.
	GlobalInfo("nobody listens")
	GlobalErrorCtx(context.Background(), "still nobody")
}

func TestGlobal_UsesDefaultLogger(t *testing.T) {
	// Arrange
	capture := &captureTransporter{}
	logger := New(Debug, capture)
	SetDefault(logger)
	defer SetDefault(nil)

	// Act
	GlobalDebug("debug")
	GlobalWarnCtx(WithFields(context.Background(), "k", "v"), "warn")
	logger.Close()

	// Assert
	entries := capture.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[1].Fields["k"] != "v" {
		t.Errorf("context fields missing: %v", entries[1].Fields)
	}
	if !strings.HasPrefix(entries[0].Caller, "logger_test.go:") {
		t.Errorf("Caller = %q", entries[0].Caller)
	}
}

func TestEntry_MarshalJSON_RendersErrorsAndDurations(t *testing.T) {
	// Arrange
	e := Entry{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Level:     Error,
		Message:   "sync persist failed",
		Fields: map[string]any{
			"error":   errors.New("disk full"),
			"elapsed": 1500 * time.Millisecond,
			"count":   3,
			"level":   "shadowed",
		},
	}

	// Act
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Assert
	if got["error"] != "disk full" {
		t.Errorf("error = %v", got["error"])
	}
	if got["elapsed"] != "1.5s" {
		t.Errorf("elapsed = %v", got["elapsed"])
	}
	if got["level"] != "ERROR" {
		t.Errorf("reserved key should win, level = %v", got["level"])
	}
	if got["timestamp"] != "2024-01-01T00:00:00.000Z" {
		t.Errorf("timestamp = %v", got["timestamp"])
	}
	if _, ok := got["request_id"]; ok {
		t.Error("empty request_id should be omitted")
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent := WithFields(context.Background(), "a", 1)
	_ = WithFields(parent, "b", 2)

	if _, ok := FieldsFromContext(parent)["b"]; ok {
		t.Error("child fields leaked into parent")
	}
	if FieldsFromContext(nil) != nil || RequestIDFromContext(nil) != "" {
		t.Error("nil context should yield nothing")
	}
}

func TestEntry_With_IgnoresMalformedPairs(t *testing.T) {
	e := NewEntry(Info, "msg").With("trigger", "cron", 42, "bad-key", "dangling")

	if len(e.Fields) != 1 || e.Fields["trigger"] != "cron" {
		t.Errorf("fields = %v", e.Fields)
	}
}
