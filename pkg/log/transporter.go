package log

// Transporter is a log output destination.
type Transporter interface {
	// Name identifies the transporter in fallback error output.
	Name() string

	// Write emits one entry. It is only called from the buffer worker.
	Write(entry Entry) error

	// Close releases resources. Write is not called afterwards.
	Close() error
}

type noopTransporter struct{}

func (noopTransporter) Name() string      { return "noop" }
func (noopTransporter) Write(Entry) error { return nil }
func (noopTransporter) Close() error      { return nil }
