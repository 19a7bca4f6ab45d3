package pipeline

import "house31/internal/domain"

// Batch is the in-memory output of one run over a set of posts.
type Batch struct {
	Curated        []domain.ContentRecord
	Trending       []domain.TrendingVideo
	CategoryCounts map[domain.Category]int
	Dropped        map[DropReason]int
}

// Process normalizes, ranks and selects over posts. It never fails; posts
// that are not content-worthy are counted in Dropped.
func (n *Normalizer) Process(posts []domain.RawPost) Batch {
	records := make([]domain.ContentRecord, 0, len(posts))
	dropped := make(map[DropReason]int)

	for _, p := range posts {
		rec, reason := n.Normalize(p)
		if rec == nil {
			dropped[reason]++
			continue
		}
		records = append(records, *rec)
	}

	curated := Rank(records)
	return Batch{
		Curated:        curated,
		Trending:       TopTrending(curated, TrendingLimit),
		CategoryCounts: CategoryCounts(curated),
		Dropped:        dropped,
	}
}
