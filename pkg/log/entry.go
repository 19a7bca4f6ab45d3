package log

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// TimeFormat is the timestamp layout of encoded entries.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Entry represents a structured log entry.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RequestID string
	Message   string
	Fields    map[string]any
}

// NewEntry creates a new log entry with the current timestamp.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With adds alternating key/value pairs. Non-string keys and a trailing
// key without a value are ignored.
func (e *Entry) With(keysAndValues ...any) *Entry {
	mergePairs(e.Fields, keysAndValues)
	return e
}

// mergePairs copies alternating key/value pairs into dst.
func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}

// FieldValue converts values that do not encode usefully into text: errors
// and durations become their string form.
func FieldValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case error:
		return val.Error()
	case time.Duration:
		return val.String()
	case time.Time:
		return val.UTC().Format(TimeFormat)
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

// MarshalJSON flattens fields into the root object. Reserved keys win over
// fields of the same name; empty caller and request_id are omitted.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+5)
	for k, v := range e.Fields {
		m[k] = FieldValue(v)
	}

	m["timestamp"] = e.Timestamp.UTC().Format(TimeFormat)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}

	return json.Marshal(m)
}
