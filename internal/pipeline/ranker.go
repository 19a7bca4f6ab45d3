package pipeline

import (
	"sort"

	"house31/internal/domain"
)

const (
	// CuratedLimit caps the full sync snapshot.
	CuratedLimit = 12

	// TrendingLimit caps the homepage trending feed.
	TrendingLimit = 6
)

// Rank orders records by tier, then by recency, and keeps the first
// CuratedLimit. Equal keys keep their input order. The input is not modified.
func Rank(records []domain.ContentRecord) []domain.ContentRecord {
	sorted := make([]domain.ContentRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return sorted[i].PostedAt.After(sorted[j].PostedAt)
	})

	if len(sorted) > CuratedLimit {
		sorted = sorted[:CuratedLimit]
	}
	return sorted
}

// TopTrending takes the first n video records of an already ranked list and
// numbers them from 1. A negative n is treated as zero.
func TopTrending(ranked []domain.ContentRecord, n int) []domain.TrendingVideo {
	if n < 0 {
		n = 0
	}
	out := make([]domain.TrendingVideo, 0, n)
	for _, r := range ranked {
		if len(out) == n {
			break
		}
		if r.Type != domain.MediaVideo {
			continue
		}
		out = append(out, domain.TrendingVideo{
			ID:          len(out) + 1,
			Title:       r.Title,
			Views:       r.Views,
			Category:    r.Category,
			Slug:        r.Slug,
			Thumbnail:   r.ThumbnailURL,
			VideoLink:   r.VideoLink,
			PostURL:     r.PostURL,
			PostDate:    r.PostDate,
			Description: r.Description,
		})
	}
	return out
}

// CategoryCounts counts records per category.
func CategoryCounts(records []domain.ContentRecord) map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}
