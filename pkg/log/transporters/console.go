package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"house31/pkg/log"
)

// Console writes human-readable lines:
//
//	15:04:05.000 INFO  sync completed processed=3 run_id=... (sync_posts.go:88)
type Console struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsole writes to os.Stderr.
func NewConsole() *Console {
	return NewConsoleWithWriter(os.Stderr)
}

// NewConsoleWithWriter writes to w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

func (c *Console) Name() string { return "console" }

// Write formats the entry with fields sorted by key.
func (c *Console) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s %s", entry.Level, entry.Message)

	if entry.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", entry.RequestID)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, quote(log.FieldValue(entry.Fields[k])))
	}

	if entry.Caller != "" {
		fmt.Fprintf(&b, " (%s)", entry.Caller)
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.writer, b.String())
	return err
}

func (c *Console) Close() error { return nil }

// quote wraps strings containing spaces.
func quote(v any) any {
	if s, ok := v.(string); ok && strings.ContainsAny(s, " \t\n\"") {
		return fmt.Sprintf("%q", s)
	}
	return v
}
