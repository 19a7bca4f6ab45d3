package domain

import (
	"fmt"
	"strings"
)

// Category identifies a topical bucket.
type Category string

const (
	CategoryMilitary   Category = "MILITARY"
	CategoryAI         Category = "AI"
	CategoryConspiracy Category = "CONSPIRACY"
	CategorySpace      Category = "SPACE"
	CategoryTech       Category = "TECH"
	CategoryViral      Category = "VIRAL"

	// CategoryGeneral is the unclassified sentinel. No published record carries it.
	CategoryGeneral Category = "GENERAL"
)

// Priority is the coarse ranking tier of a category.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps the tier onto its sort weight. Unknown tiers rank as low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Valid reports whether p is one of the declared tiers.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// TaxonomyEntry is a named category with its keyword set, tier and boost.
type TaxonomyEntry struct {
	Category Category
	Keywords []string
	Priority Priority
	Boost    float64
}

// Taxonomy is an ordered table of entries. Order is the tie-break order.
type Taxonomy []TaxonomyEntry

// Validate checks the table invariants: known tier, positive boost, and a
// non-empty set of lowercase keywords per entry.
func (t Taxonomy) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidTaxonomy)
	}

	seen := make(map[Category]struct{}, len(t))
	for _, e := range t {
		if e.Category == "" || e.Category == CategoryGeneral {
			return fmt.Errorf("%w: entry with category %q", ErrInvalidTaxonomy, e.Category)
		}
		if _, dup := seen[e.Category]; dup {
			return fmt.Errorf("%w: duplicate category %s", ErrInvalidTaxonomy, e.Category)
		}
		seen[e.Category] = struct{}{}

		if !e.Priority.Valid() {
			return fmt.Errorf("%w: %s has unknown priority %q", ErrInvalidTaxonomy, e.Category, e.Priority)
		}
		if e.Boost <= 0 {
			return fmt.Errorf("%w: %s boost must be positive", ErrInvalidTaxonomy, e.Category)
		}
		if len(e.Keywords) == 0 {
			return fmt.Errorf("%w: %s has no keywords", ErrInvalidTaxonomy, e.Category)
		}
		for _, kw := range e.Keywords {
			if kw == "" || kw != strings.ToLower(kw) {
				return fmt.Errorf("%w: %s keyword %q must be lowercase and non-empty", ErrInvalidTaxonomy, e.Category, kw)
			}
		}
	}
	return nil
}

// Categories returns the categories in declaration order.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, len(t))
	for i, e := range t {
		out[i] = e.Category
	}
	return out
}

// viewMultipliers weights synthetic popularity per category.
var viewMultipliers = map[Category]float64{
	CategoryMilitary:   2.5,
	CategoryAI:         2.2,
	CategoryConspiracy: 2.8,
	CategoryViral:      3.0,
	CategorySpace:      1.8,
	CategoryTech:       1.5,
	CategoryGeneral:    1.0,
}

// ViewMultiplier returns the popularity multiplier for c, 1.0 when unknown.
func ViewMultiplier(c Category) float64 {
	if m, ok := viewMultipliers[c]; ok {
		return m
	}
	return 1.0
}

// DefaultTaxonomy returns a fresh copy of the built-in table.
func DefaultTaxonomy() Taxonomy {
	out := make(Taxonomy, len(defaultTaxonomy))
	for i, e := range defaultTaxonomy {
		e.Keywords = append([]string(nil), e.Keywords...)
		out[i] = e
	}
	return out
}

var defaultTaxonomy = Taxonomy{
	{
		Category: CategoryMilitary,
		Keywords: []string{
			"military", "army", "navy", "air force", "marines", "defense", "pentagon",
			"weapon", "missile", "drone", "submarine", "fighter jet", "tank", "aircraft carrier",
			"stealth", "radar", "sonar", "satellite", "reconnaissance", "surveillance",
			"special forces", "navy seals", "green beret", "delta force", "combat", "war",
			"battlefield", "strategic", "tactical", "classified operation", "military exercise",
			"hypersonic", "laser weapon", "electromagnetic", "cyber warfare", "space force",
		},
		Priority: PriorityHigh,
		Boost:    1.5,
	},
	{
		Category: CategoryAI,
		Keywords: []string{
			"artificial intelligence", "ai", "machine learning", "deep learning",
			"chatgpt", "gpt-4", "gpt-5", "openai", "anthropic", "claude", "google ai",
			"neural network", "transformer", "llm", "large language model",
			"automation", "robot", "robotics", "autonomous", "algorithm", "computer vision",
			"natural language", "speech recognition", "generative ai", "ai breakthrough",
			"ai safety", "ai regulation", "superintelligence", "artificial general intelligence",
			"ai takeover", "technological singularity", "ai consciousness",
		},
		Priority: PriorityHigh,
		Boost:    1.4,
	},
	{
		Category: CategoryConspiracy,
		Keywords: []string{
			"conspiracy", "secret", "classified", "top secret", "cover up", "coverup",
			"leaked", "whistleblower", "insider", "government secret", "deep state",
			"shadow government", "illuminati", "new world order", "globalist",
			"ufo", "uap", "alien", "extraterrestrial", "area 51", "roswell",
			"close encounter", "abduction", "disclosure", "pentagon ufo",
			"false flag", "mind control", "surveillance state", "social credit",
			"population control", "agenda", "psyop", "disinformation",
		},
		Priority: PriorityHigh,
		Boost:    1.3,
	},
	{
		Category: CategorySpace,
		Keywords: []string{
			"nasa", "spacex", "blue origin", "boeing space", "lockheed martin",
			"roscosmos", "esa", "jaxa", "isro", "space force",
			"mars", "moon", "jupiter", "saturn", "venus", "asteroid", "comet",
			"space station", "iss", "artemis", "perseverance", "rover",
			"space exploration", "space colonization", "terraforming",
			"rocket", "spacecraft", "satellite", "space telescope", "hubble", "james webb",
			"launch", "orbit", "landing", "reusable rocket", "starship",
		},
		Priority: PriorityMedium,
		Boost:    1.2,
	},
	{
		Category: CategoryTech,
		Keywords: []string{
			"quantum computing", "quantum computer", "quantum supremacy", "fusion energy",
			"nuclear fusion", "breakthrough", "innovation", "revolutionary",
			"supercomputer", "blockchain", "cryptocurrency", "bitcoin", "ethereum",
			"metaverse", "virtual reality", "vr", "augmented reality", "ar",
			"crispr", "gene editing", "bioengineering", "nanotechnology", "biotechnology",
			"longevity", "life extension", "anti-aging", "stem cell",
		},
		Priority: PriorityMedium,
		Boost:    1.1,
	},
	{
		Category: CategoryViral,
		Keywords: []string{
			"viral", "trending", "breaking news", "breaking", "exclusive", "leaked video",
			"shocking", "amazing", "incredible", "unbelievable", "mind-blowing",
			"game changer", "never before seen", "first time ever", "historic",
			"watch this", "you wont believe", "must see", "goes viral", "internet breaks",
			"everyone is talking", "social media explodes", "video surfaces",
		},
		Priority: PriorityHigh,
		Boost:    1.6,
	},
}
