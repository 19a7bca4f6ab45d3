package pipeline

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"house31/internal/domain"
)

// DropReason says why a post did not become a record. Empty means kept.
type DropReason string

const (
	Kept         DropReason = ""
	DropTooShort DropReason = "too_short"
	DropOffTopic DropReason = "off_topic"
)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the time source used for view synthesis.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithGrowth overrides the random growth draw.
func WithGrowth(g GrowthSource) Option {
	return func(n *Normalizer) { n.growth = g }
}

// Normalizer converts raw posts into content records.
type Normalizer struct {
	categorizer *Categorizer
	now         func() time.Time
	growth      GrowthSource
}

// NewNormalizer creates a normalizer backed by c.
func NewNormalizer(c *Categorizer, opts ...Option) *Normalizer {
	n := &Normalizer{
		categorizer: c,
		now:         time.Now,
		growth:      RandomGrowth,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize derives a record from raw. It returns nil and the reason when the
// post is not content-worthy.
func (n *Normalizer) Normalize(raw domain.RawPost) (*domain.ContentRecord, DropReason) {
	text := raw.Text()
	if utf8.RuneCountInString(text) < minTextLength {
		return nil, DropTooShort
	}

	class := n.categorizer.Categorize(text)
	if class.Unclassified() || class.Confidence < MinConfidence {
		return nil, DropOffTopic
	}

	title := deriveTitle(text)
	lower := strings.ToLower(text)
	attachments := raw.AttachmentData()
	media := mediaType(raw, lower, attachments)
	posted := raw.CreatedAt()

	rec := &domain.ContentRecord{
		ID:           raw.ID,
		Title:        title,
		Description:  deriveDescription(text),
		ThumbnailURL: thumbnail(raw, attachments),
		PostDate:     raw.CreatedTime,
		PostURL:      postURL(raw),
		Type:         media,
		Category:     class.Category,
		Slug:         deriveSlug(title, raw.ID),
		Priority:     class.Priority,
		Score:        class.Score,
		PostedAt:     posted,
	}
	if media == domain.MediaVideo {
		rec.VideoLink = videoLink(raw, attachments)
	}

	views := SyntheticViews(class.Category, class.Score, posted, n.now(), n.growth())
	rec.Views = FormatViews(views)

	return rec, Kept
}

func mediaType(raw domain.RawPost, lowerText string, attachments []domain.Attachment) domain.MediaType {
	for _, a := range attachments {
		if a.Type == "video_inline" {
			return domain.MediaVideo
		}
	}
	if strings.Contains(lowerText, "video") || strings.Contains(lowerText, "watch") {
		return domain.MediaVideo
	}

	if raw.Link != "" {
		return domain.MediaLink
	}
	for _, a := range attachments {
		if a.Target != nil && a.Target.URL != "" {
			return domain.MediaLink
		}
	}
	return domain.MediaImage
}

func videoLink(raw domain.RawPost, attachments []domain.Attachment) string {
	if raw.Link != "" {
		return raw.Link
	}
	if len(attachments) > 0 && attachments[0].Target != nil {
		return attachments[0].Target.URL
	}
	return ""
}

const placeholderURL = "https://picsum.photos/400/225?random="

func thumbnail(raw domain.RawPost, attachments []domain.Attachment) string {
	if raw.FullPicture != "" {
		return raw.FullPicture
	}
	if raw.Picture != "" {
		return raw.Picture
	}
	if len(attachments) > 0 {
		if m := attachments[0].Media; m != nil && m.Image != nil && m.Image.Src != "" {
			return m.Image.Src
		}
	}
	return placeholderURL + strconv.FormatUint(uint64(placeholderSeed(raw.ID)), 10)
}

// placeholderSeed uses the numeric post part of a "{page}_{post}" id, and an
// FNV hash of the id otherwise.
func placeholderSeed(id string) uint32 {
	if _, post, ok := strings.Cut(id, "_"); ok {
		if v, err := strconv.ParseUint(post, 10, 32); err == nil && v > 0 {
			return uint32(v)
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

func postURL(raw domain.RawPost) string {
	if raw.PermalinkURL != "" {
		return raw.PermalinkURL
	}
	return "https://facebook.com/post/" + raw.ID
}
