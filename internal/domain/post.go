// Package domain contains the core business entities and rules.
package domain

import (
	"bytes"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// RawPost is a page post as returned by the Graph API.
type RawPost struct {
	ID           string          `json:"id"`
	Message      string          `json:"message,omitempty"`
	Story        string          `json:"story,omitempty"`
	Link         string          `json:"link,omitempty"`
	Picture      string          `json:"picture,omitempty"`
	FullPicture  string          `json:"full_picture,omitempty"`
	CreatedTime  string          `json:"created_time"`
	PermalinkURL string          `json:"permalink_url,omitempty"`
	Attachments  *AttachmentList `json:"attachments,omitempty"`
}

// AttachmentList wraps the Graph API attachments edge.
type AttachmentList struct {
	Data []Attachment `json:"data"`
}

// Attachment is a single structured attachment on a post.
type Attachment struct {
	Type        string            `json:"type"`
	Media       *AttachmentMedia  `json:"media,omitempty"`
	Target      *AttachmentTarget `json:"target,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
}

// AttachmentMedia holds the media reference of an attachment.
type AttachmentMedia struct {
	Image *AttachmentImage `json:"image,omitempty"`
}

// AttachmentImage is an image source.
type AttachmentImage struct {
	Src string `json:"src"`
}

// AttachmentTarget is the link target of an attachment.
type AttachmentTarget struct {
	URL string `json:"url"`
}

// Text joins message and story and trims the result.
func (p RawPost) Text() string {
	return strings.TrimSpace(p.Message + " " + p.Story)
}

// HasShape reports whether the post carries an id and at least one text or
// date field.
func (p RawPost) HasShape() bool {
	if strings.TrimSpace(p.ID) == "" {
		return false
	}
	return p.Message != "" || p.Story != "" || p.CreatedTime != ""
}

// AttachmentData returns the attachments, nil when there are none.
func (p RawPost) AttachmentData() []Attachment {
	if p.Attachments == nil {
		return nil
	}
	return p.Attachments.Data
}

// createdTimeLayouts covers RFC 3339 and the Graph API's "+0000" offset form.
var createdTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreatedAt parses CreatedTime. It returns the zero time when unparseable.
func (p RawPost) CreatedAt() time.Time {
	s := strings.TrimSpace(p.CreatedTime)
	for _, layout := range createdTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// SyncRequest is the body accepted by the sync trigger.
type SyncRequest struct {
	Posts json.RawMessage `json:"posts"`
}

// DecodeSyncRequest parses a trigger body into raw posts.
//
// The body must be an object with a posts array, otherwise ErrInvalidPayload.
// Elements that do not decode or lack the minimal shape are skipped; if the
// array is non-empty and nothing survives, ErrNoValidPosts is returned. An
// empty array is valid and yields no posts.
func DecodeSyncRequest(body []byte) ([]RawPost, error) {
	var req SyncRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, ErrInvalidPayload
	}

	raw := bytes.TrimSpace(req.Posts)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidPayload
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, ErrInvalidPayload
	}

	return FilterShape(elems)
}

// FilterShape decodes each element and keeps the ones with a valid shape.
func FilterShape(elems []json.RawMessage) ([]RawPost, error) {
	posts := make([]RawPost, 0, len(elems))
	for _, e := range elems {
		var p RawPost
		if err := json.Unmarshal(e, &p); err != nil {
			continue
		}
		if p.HasShape() {
			posts = append(posts, p)
		}
	}

	if len(elems) > 0 && len(posts) == 0 {
		return nil, ErrNoValidPosts
	}
	return posts, nil
}

// ValidPosts keeps the posts with a valid shape, with the same empty-input
// rule as FilterShape.
func ValidPosts(in []RawPost) ([]RawPost, error) {
	out := make([]RawPost, 0, len(in))
	for _, p := range in {
		if p.HasShape() {
			out = append(out, p)
		}
	}
	if len(in) > 0 && len(out) == 0 {
		return nil, ErrNoValidPosts
	}
	return out, nil
}
