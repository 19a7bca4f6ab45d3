package pipeline_test

import (
	"testing"
	"time"

	"house31/internal/domain"
	"house31/internal/pipeline"
)

func TestFormatViews(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 views"},
		{999, "999 views"},
		{1000, "1K views"},
		{1999, "1K views"},
		{999999, "999K views"},
		{1000000, "1.0M views"},
		{1550000, "1.6M views"},
	}

	for _, tt := range tests {
		if got := pipeline.FormatViews(tt.n); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSyntheticViews_HoursClampToOne(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// MILITARY multiplier 2.5, score 0: base 50000, one hour adds the growth.
	const want = 50000 + 400

	tests := []struct {
		name   string
		posted time.Time
	}{
		{"zero time", time.Time{}},
		{"future", now.Add(48 * time.Hour)},
		{"just posted", now},
		{"ten minutes ago", now.Add(-10 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.SyntheticViews(domain.CategoryMilitary, 0, tt.posted, now, 400)
			if got != want {
				t.Errorf("got %d, want %d", got, want)
			}
		})
	}
}

func TestSyntheticViews_GrowsWithSqrtOfAge(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got := pipeline.SyntheticViews(domain.CategoryMilitary, 2, now.Add(-9*time.Hour), now, 500)

	// base floor((20000 + 2*5000) * 2.5) = 75000, sqrt(9) * 500 = 1500
	if got != 76500 {
		t.Errorf("got %d, want 76500", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Navy Drone Test!", "navy-drone-test"},
		{"no-break spaces", "\u00a0\u00a0military\u00a0drone\u00a0navy", "military-drone-navy"},
		{"narrow no-break space", "space\u202fstation\u202forbit", "space-station-orbit"},
		{"mixed separators", "ai -- robots\t  today", "ai-robots-today"},
		{"only symbols", "¡¿!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pipeline.Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
