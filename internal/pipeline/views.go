package pipeline

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"house31/internal/domain"
)

const (
	baseViews      = 20000
	viewsPerScore  = 5000
	minGrowthPerHr = 200.0
	maxGrowthPerHr = 1000.0
)

// GrowthSource draws the per-hour view growth. Implementations must return a
// value in [200, 1000).
type GrowthSource func() float64

// RandomGrowth draws uniformly from [200, 1000).
func RandomGrowth() float64 {
	return minGrowthPerHr + rand.Float64()*(maxGrowthPerHr-minGrowthPerHr)
}

// FixedGrowth returns a source that always yields g.
func FixedGrowth(g float64) GrowthSource {
	return func() float64 { return g }
}

// SyntheticViews computes the popularity number for a post.
func SyntheticViews(category domain.Category, score float64, posted, now time.Time, growth float64) int {
	base := math.Floor((baseViews + score*viewsPerScore) * domain.ViewMultiplier(category))

	hours := 1.0
	if !posted.IsZero() {
		hours = math.Max(1, now.Sub(posted).Hours())
	}

	return int(math.Floor(base + math.Sqrt(hours)*growth))
}

// FormatViews renders a view count the way the site displays it.
func FormatViews(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK views", n/1_000)
	default:
		return fmt.Sprintf("%d views", n)
	}
}
