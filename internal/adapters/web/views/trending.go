// Package views renders the server-side HTML pages.
package views

import (
	"fmt"
	"time"

	"house31/internal/domain"
)

// TrendingData is what the trending page needs.
type TrendingData struct {
	Videos   []domain.TrendingVideo
	LastSync string
	Now      time.Time
}

// videoHref prefers the video, then the post, then the site's own page.
func videoHref(v domain.TrendingVideo) string {
	switch {
	case v.VideoLink != "":
		return v.VideoLink
	case v.PostURL != "":
		return v.PostURL
	default:
		return "/videos/" + v.Slug
	}
}

func categoryClass(c domain.Category) string {
	switch c {
	case domain.CategoryMilitary:
		return "chip chip-red"
	case domain.CategoryAI:
		return "chip chip-blue"
	case domain.CategorySpace:
		return "chip chip-purple"
	default:
		return "chip chip-gray"
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
}

// RelativeTime formats an ISO-8601 date relative to now. Dates a week or
// more old are shown as a calendar date; unparseable input is returned as is.
func RelativeTime(date string, now time.Time) string {
	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, date); err == nil {
			break
		}
	}
	if err != nil {
		return date
	}

	secs := int64(now.Sub(t) / time.Second)
	switch {
	case secs < 60:
		return "Just now"
	case secs < 3600:
		return fmt.Sprintf("%d minutes ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d hours ago", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%d days ago", secs/86400)
	default:
		return t.Format("Jan 2, 2006")
	}
}
