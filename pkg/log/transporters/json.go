// Package transporters provides log output destinations.
package transporters

import (
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"house31/pkg/log"
)

// JSON writes one JSON object per line.
type JSON struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewJSON writes to os.Stdout.
func NewJSON() *JSON {
	return NewJSONWithWriter(os.Stdout)
}

// NewJSONWithWriter writes to w.
func NewJSONWithWriter(w io.Writer) *JSON {
	return &JSON{writer: w}
}

func (j *JSON) Name() string { return "json" }

// Write encodes the entry followed by a newline.
func (j *JSON) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.writer.Write(data)
	return err
}

func (j *JSON) Close() error { return nil }
