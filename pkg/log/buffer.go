package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries asynchronously through a bounded queue. When the
// queue is full the oldest entry is dropped.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	fallback     io.Writer

	dropped atomic.Int64
	closed  atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewBuffer starts a delivery worker for the given transporters.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		queue:        make(chan Entry, capacity),
		transporters: transporters,
		fallback:     os.Stderr,
		done:         make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Send queues an entry. It never blocks. Safe for concurrent use.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}
	for attempt := 0; attempt < 2; attempt++ {
		select {
		case b.queue <- entry:
			return
		default:
		}
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
	b.dropped.Add(1)
}

// DroppedCount returns the number of entries lost to overflow.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close stops the worker, delivers what is still queued and closes the
// transporters. Later calls are no-ops.
func (b *Buffer) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	close(b.done)
	b.wg.Wait()

	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		default:
			for _, t := range b.transporters {
				if err := t.Close(); err != nil {
					fmt.Fprintf(b.fallback, "log transporter %q close failed: %v\n", t.Name(), err)
				}
			}
			return
		}
	}
}

func (b *Buffer) run() {
	defer b.wg.Done()
	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		case <-b.done:
			return
		}
	}
}

// deliver writes to every transporter, reporting failures on stderr.
func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(b.fallback, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}
