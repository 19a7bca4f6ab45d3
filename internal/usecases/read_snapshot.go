package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"house31/internal/domain"
)

// PreviewSize is the number of posts included in the status view.
const PreviewSize = 5

// GetStatusUseCase reads the last snapshot.
type GetStatusUseCase struct {
	store SnapshotStore
}

// NewGetStatusUseCase creates a new GetStatusUseCase.
func NewGetStatusUseCase(store SnapshotStore) *GetStatusUseCase {
	return &GetStatusUseCase{store: store}
}

// Execute returns Synced=false when no snapshot has been written yet.
func (uc *GetStatusUseCase) Execute(ctx context.Context) (*domain.SyncStatus, error) {
	data, err := uc.store.Get(ctx, KeySnapshot)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return &domain.SyncStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	var snap domain.SyncSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	preview := snap.Posts
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}
	if preview == nil {
		preview = []domain.ContentRecord{}
	}
	categories := snap.CategoryCounts
	if categories == nil {
		categories = map[domain.Category]int{}
	}

	return &domain.SyncStatus{
		Synced:     true,
		LastSync:   snap.SyncedAt,
		PostCount:  len(snap.Posts),
		Categories: categories,
		Preview:    preview,
	}, nil
}

// GetTrendingUseCase reads the trending feed.
type GetTrendingUseCase struct {
	store SnapshotStore
}

// NewGetTrendingUseCase creates a new GetTrendingUseCase.
func NewGetTrendingUseCase(store SnapshotStore) *GetTrendingUseCase {
	return &GetTrendingUseCase{store: store}
}

// Execute returns an empty feed when none has been written yet.
func (uc *GetTrendingUseCase) Execute(ctx context.Context) ([]domain.TrendingVideo, error) {
	data, err := uc.store.Get(ctx, KeyTrending)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return []domain.TrendingVideo{}, nil
	}
	if err != nil {
		return nil, err
	}

	videos := []domain.TrendingVideo{}
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("decode trending: %w", err)
	}
	if videos == nil {
		videos = []domain.TrendingVideo{}
	}
	return videos, nil
}
