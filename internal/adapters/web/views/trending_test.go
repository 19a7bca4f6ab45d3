package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house31/internal/domain"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"seconds", "2024-03-10T11:59:30.000Z", "Just now"},
		{"minutes", "2024-03-10T11:15:00Z", "45 minutes ago"},
		{"hours", "2024-03-10T02:00:00Z", "10 hours ago"},
		{"graph offset", "2024-03-08T12:00:00+0000", "2 days ago"},
		{"older than a week", "2024-02-01T08:00:00Z", "Feb 1, 2024"},
		{"future", "2024-03-11T12:00:00Z", "Just now"},
		{"garbage", "yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.date, now))
		})
	}
}

func TestTrendingPage_RendersVideos(t *testing.T) {
	// Arrange
	data := TrendingData{
		Videos: []domain.TrendingVideo{
			{
				ID:        1,
				Title:     "Navy <drone> test",
				Views:     "52K views",
				Category:  domain.CategoryMilitary,
				Slug:      "navy-drone-test",
				Thumbnail: "https://img.example.com/1.jpg",
				VideoLink: "https://www.facebook.com/watch/?v=1",
				PostDate:  "2024-03-10T09:00:00+0000",
			},
			{
				ID:        2,
				Title:     "Orbit",
				Category:  domain.CategorySpace,
				Slug:      "orbit",
				Thumbnail: "javascript:alert(1)",
			},
		},
		LastSync: "2024-03-10T11:30:00.000Z",
		Now:      now,
	}
	var buf bytes.Buffer

	// Act
	err := TrendingPage(data).Render(context.Background(), &buf)

	// Assert
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Navy &lt;drone&gt; test")
	assert.NotContains(t, html, "<drone>")
	assert.Contains(t, html, `href="https://www.facebook.com/watch/?v=1"`)
	assert.Contains(t, html, `href="/videos/orbit"`)
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "3 hours ago")
	assert.Contains(t, html, "30 minutes ago")
	assert.Contains(t, html, `class="chip chip-purple"`)
	assert.Equal(t, 2, strings.Count(html, `<li class="video"`))
}

func TestTrendingPage_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := TrendingPage(TrendingData{Now: now}).Render(context.Background(), &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Not synced yet")
	assert.Contains(t, buf.String(), "No trending videos right now")
}
