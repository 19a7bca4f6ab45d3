package usecases

import (
	"context"

	"house31/internal/domain"
	"house31/pkg/log"
)

// CronSyncUseCase pulls the latest posts from upstream and syncs them.
type CronSyncUseCase struct {
	source PostSource
	sync   *SyncPostsUseCase
}

// NewCronSyncUseCase creates a new CronSyncUseCase.
func NewCronSyncUseCase(source PostSource, sync *SyncPostsUseCase) *CronSyncUseCase {
	return &CronSyncUseCase{source: source, sync: sync}
}

// Execute fetches and syncs. When upstream returns no posts nothing is
// written and the result reports zero processed.
func (uc *CronSyncUseCase) Execute(ctx context.Context, trigger string) (*domain.SyncResult, error) {
	posts, err := uc.source.FetchPosts(ctx)
	if err != nil {
		return nil, err
	}

	posts, err = domain.ValidPosts(posts)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		log.GlobalInfoCtx(ctx, "no posts fetched from upstream", "trigger", trigger)
		return &domain.SyncResult{Categories: map[domain.Category]int{}}, nil
	}

	return uc.sync.Execute(ctx, trigger, posts)
}
