package store

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

// Store is a SnapshotStore that holds resources.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend         string
	Dir             string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend named by o.Backend.
func Open(ctx context.Context, o Options) (Store, error) {
	switch o.Backend {
	case "", BackendFile:
		return NewFileStore(o.Dir)
	case BackendBadger:
		return OpenBadger(o.Dir)
	case BackendMongo:
		return ConnectMongo(ctx, o.MongoURI, o.MongoDatabase, o.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", o.Backend)
	}
}
