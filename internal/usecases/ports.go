package usecases

import (
	"context"
	"time"

	"house31/internal/domain"
)

// Logical keys of the persisted artifacts.
const (
	KeySnapshot = "facebook-sync.json"
	KeyBackup   = "facebook-sync-backup.json"
	KeyTrending = "trending-videos.json"
)

// SnapshotStore is a key/blob store for sync artifacts.
// Get returns domain.ErrSnapshotNotFound for a missing key.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// PostSource fetches the latest page posts from upstream.
type PostSource interface {
	FetchPosts(ctx context.Context) ([]domain.RawPost, error)
}

// Metrics records pipeline outcomes.
type Metrics interface {
	ObserveRun(trigger, status string, d time.Duration)
	PostsDropped(reason string, n int)
	PostsPublished(category domain.Category, n int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRun(string, string, time.Duration) {}
func (nopMetrics) PostsDropped(string, int)                 {}
func (nopMetrics) PostsPublished(domain.Category, int)      {}
