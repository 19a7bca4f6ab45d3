// Package pipeline turns raw page posts into ranked, publishable content.
//
// The stages are pure: Categorizer scores text against a taxonomy,
// Normalizer derives a ContentRecord from a RawPost, and the ranking helpers
// order and cap the result. All I/O lives in the use cases.
package pipeline

import (
	"strings"

	"house31/internal/domain"
)

// MinConfidence is the share of an entry's keywords a text must contain for
// the entry to count. It is also the normalizer's eligibility floor.
const MinConfidence = 0.05

// Categorizer scores text against an immutable taxonomy.
type Categorizer struct {
	taxonomy domain.Taxonomy
	floor    float64
}

// NewCategorizer creates a categorizer over t. The table is copied.
func NewCategorizer(t domain.Taxonomy) *Categorizer {
	entries := make(domain.Taxonomy, len(t))
	for i, e := range t {
		kws := make([]string, len(e.Keywords))
		for j, kw := range e.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		e.Keywords = kws
		entries[i] = e
	}
	return &Categorizer{taxonomy: entries, floor: MinConfidence}
}

// Taxonomy returns the categorizer's table.
func (c *Categorizer) Taxonomy() domain.Taxonomy {
	return c.taxonomy
}

// unclassified is returned when no entry passes the floor.
var unclassified = domain.Classification{
	Category: domain.CategoryGeneral,
	Priority: domain.PriorityLow,
}

// Categorize returns the best-scoring category for text.
//
// Keywords match as plain substrings of the lower-cased text. The best entry is
// the first one with the strictly highest score; if its confidence is below the
// floor the text is unclassified.
func (c *Categorizer) Categorize(text string) domain.Classification {
	lower := strings.ToLower(text)

	best := -1
	var bestScore, bestConfidence float64
	for i, e := range c.taxonomy {
		matches := countMatches(lower, e.Keywords)
		score := float64(matches) * e.Boost
		if score > bestScore {
			best = i
			bestScore = score
			bestConfidence = float64(matches) / float64(len(e.Keywords))
		}
	}

	if best < 0 || bestConfidence < c.floor {
		return unclassified
	}

	e := c.taxonomy[best]
	return domain.Classification{
		Category:   e.Category,
		Priority:   e.Priority,
		Score:      bestScore,
		Confidence: bestConfidence,
	}
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
