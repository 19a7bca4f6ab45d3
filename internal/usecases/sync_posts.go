package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"house31/internal/domain"
	"house31/internal/pipeline"
	"house31/pkg/log"
)

// Trigger names used in logs and metrics.
const (
	TriggerManual   = "manual"
	TriggerCron     = "cron"
	TriggerSchedule = "schedule"
)

// SyncPostsUseCase runs the pipeline over a batch of posts and persists the
// snapshot and the trending feed.
type SyncPostsUseCase struct {
	normalizer *pipeline.Normalizer
	store      SnapshotStore
	metrics    Metrics
	now        func() time.Time
}

// SyncOption configures a SyncPostsUseCase.
type SyncOption func(*SyncPostsUseCase)

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) SyncOption {
	return func(uc *SyncPostsUseCase) { uc.metrics = m }
}

// WithNow overrides the clock used for syncedAt.
func WithNow(now func() time.Time) SyncOption {
	return func(uc *SyncPostsUseCase) { uc.now = now }
}

// NewSyncPostsUseCase creates a new SyncPostsUseCase.
func NewSyncPostsUseCase(normalizer *pipeline.Normalizer, store SnapshotStore, opts ...SyncOption) *SyncPostsUseCase {
	uc := &SyncPostsUseCase{
		normalizer: normalizer,
		store:      store,
		metrics:    nopMetrics{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute derives everything in memory, then backs up the previous snapshot
// and writes the new snapshot followed by the trending feed.
func (uc *SyncPostsUseCase) Execute(ctx context.Context, trigger string, posts []domain.RawPost) (*domain.SyncResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = log.WithFields(ctx, "run_id", runID, "trigger", trigger)

	batch := uc.normalizer.Process(posts)
	syncedAt := uc.now().UTC()

	snapshot := domain.SyncSnapshot{
		Posts:          batch.Curated,
		SyncedAt:       syncedAt.Format(domain.TimestampLayout),
		Source:         domain.SourceFacebook,
		CategoryCounts: batch.CategoryCounts,
	}

	snapshotData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		uc.metrics.ObserveRun(trigger, "error", time.Since(start))
		return nil, fmt.Errorf("%w: encode snapshot: %v", domain.ErrPersistFailed, err)
	}
	trendingData, err := json.MarshalIndent(batch.Trending, "", "  ")
	if err != nil {
		uc.metrics.ObserveRun(trigger, "error", time.Since(start))
		return nil, fmt.Errorf("%w: encode trending: %v", domain.ErrPersistFailed, err)
	}

	if err := uc.persist(ctx, snapshotData, trendingData); err != nil {
		log.GlobalErrorCtx(ctx, "sync persist failed", "error", err)
		uc.metrics.ObserveRun(trigger, "error", time.Since(start))
		return nil, err
	}

	for reason, n := range batch.Dropped {
		uc.metrics.PostsDropped(string(reason), n)
	}
	for category, n := range batch.CategoryCounts {
		uc.metrics.PostsPublished(category, n)
	}
	uc.metrics.ObserveRun(trigger, "success", time.Since(start))

	log.GlobalInfoCtx(ctx, "sync completed",
		"received", len(posts),
		"processed", len(batch.Curated),
		"trending", len(batch.Trending),
		"dropped_short", batch.Dropped[pipeline.DropTooShort],
		"dropped_off_topic", batch.Dropped[pipeline.DropOffTopic],
	)

	return &domain.SyncResult{
		RunID:      runID,
		Processed:  len(batch.Curated),
		Categories: batch.CategoryCounts,
		SyncedAt:   syncedAt,
	}, nil
}

func (uc *SyncPostsUseCase) persist(ctx context.Context, snapshot, trending []byte) error {
	prev, err := uc.store.Get(ctx, KeySnapshot)
	switch {
	case err == nil:
		if err := uc.store.Put(ctx, KeyBackup, prev); err != nil {
			return fmt.Errorf("%w: backup: %v", domain.ErrPersistFailed, err)
		}
	case errors.Is(err, domain.ErrSnapshotNotFound):
		log.GlobalDebugCtx(ctx, "no previous snapshot to back up")
	default:
		return fmt.Errorf("%w: read previous snapshot: %v", domain.ErrPersistFailed, err)
	}

	if err := uc.store.Put(ctx, KeySnapshot, snapshot); err != nil {
		return fmt.Errorf("%w: snapshot: %v", domain.ErrPersistFailed, err)
	}
	if err := uc.store.Put(ctx, KeyTrending, trending); err != nil {
		return fmt.Errorf("%w: trending: %v", domain.ErrPersistFailed, err)
	}
	return nil
}
