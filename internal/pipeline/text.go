package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minTextLength      = 20
	minTitleLength     = 20
	titleFallbackWords = 12
	maxTitleLength     = 100
	maxDescription     = 150
	descriptionCut     = 147
	maxSlugLength      = 60
)

// deriveTitle takes the first sentence, or the first twelve words when that
// sentence is too short, capped and capitalised.
func deriveTitle(text string) string {
	title := text
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		title = text[:i]
	}
	title = strings.TrimSpace(title)

	if utf8.RuneCountInString(title) < minTitleLength {
		words := strings.Fields(text)
		if len(words) > titleFallbackWords {
			words = words[:titleFallbackWords]
		}
		title = strings.Join(words, " ")
	}

	return capitalize(truncateRunes(title, maxTitleLength))
}

// deriveDescription caps text at 150 characters with an ellipsis.
func deriveDescription(text string) string {
	if utf8.RuneCountInString(text) > maxDescription {
		return truncateRunes(text, descriptionCut) + "..."
	}
	return text
}

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s\p{Zs}-]`)
	slugWhitespace = regexp.MustCompile(`[\s\p{Zs}]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify lower-cases s and reduces it to hyphen-separated [a-z0-9] runs of at
// most 60 characters. The result can be empty.
func Slugify(s string) string {
	slug := strings.ToLower(s)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// deriveSlug slugifies the title and falls back to the post id when the title
// has no ASCII letters or digits.
func deriveSlug(title, id string) string {
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return Slugify("post " + id)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
