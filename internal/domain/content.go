package domain

import "time"

// MediaType is the kind of media a record links to.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaLink  MediaType = "link"
	MediaImage MediaType = "image"
)

// SourceFacebook is the source tag written into every snapshot.
const SourceFacebook = "facebook"

// TimestampLayout is the ISO-8601 form used for syncedAt, in UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Classification is the outcome of scoring a text against the taxonomy.
type Classification struct {
	Category   Category
	Priority   Priority
	Score      float64
	Confidence float64
}

// Unclassified reports whether no category reached the confidence floor.
func (c Classification) Unclassified() bool {
	return c.Category == CategoryGeneral
}

// ContentRecord is a normalized post ready for publishing.
type ContentRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoLink    string    `json:"videoLink,omitempty"`
	PostDate     string    `json:"postDate"`
	PostURL      string    `json:"postUrl"`
	Type         MediaType `json:"type"`
	Category     Category  `json:"category"`
	Slug         string    `json:"slug"`
	Views        string    `json:"views"`
	Priority     Priority  `json:"priority"`
	Score        float64   `json:"score"`

	// PostedAt is the parsed PostDate used for ordering.
	PostedAt time.Time `json:"-"`
}

// TrendingVideo is one entry of the homepage trending feed.
type TrendingVideo struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Views       string   `json:"views"`
	Category    Category `json:"category"`
	Slug        string   `json:"slug"`
	Thumbnail   string   `json:"thumbnail"`
	VideoLink   string   `json:"videoLink,omitempty"`
	PostURL     string   `json:"postUrl,omitempty"`
	PostDate    string   `json:"postDate,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SyncSnapshot is the full sync artifact.
type SyncSnapshot struct {
	Posts          []ContentRecord  `json:"posts"`
	SyncedAt       string           `json:"syncedAt"`
	Source         string           `json:"source"`
	CategoryCounts map[Category]int `json:"categoryCounts"`
}

// SyncResult summarises one pipeline run.
type SyncResult struct {
	RunID      string
	Processed  int
	Categories map[Category]int
	SyncedAt   time.Time
}

// SyncStatus is the read-side view of the last snapshot.
type SyncStatus struct {
	Synced     bool
	LastSync   string
	PostCount  int
	Categories map[Category]int
	Preview    []ContentRecord
}
