package domain

import "errors"

var (
	// ErrInvalidPayload is returned when the trigger body has no posts array.
	ErrInvalidPayload = errors.New("invalid request body, expected posts array")

	// ErrNoValidPosts is returned when a non-empty posts array contains no
	// post with an id and at least one text or date field.
	ErrNoValidPosts = errors.New("no valid posts found in the data")

	// ErrFetchFailed is returned when the upstream page feed cannot be read.
	ErrFetchFailed = errors.New("failed to fetch posts from upstream")

	// ErrSourceNotConfigured is returned when the upstream credentials are missing.
	ErrSourceNotConfigured = errors.New("facebook credentials not configured")

	// ErrSnapshotNotFound is returned by blob stores for a missing key.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrPersistFailed is returned when an output artifact cannot be written.
	ErrPersistFailed = errors.New("failed to persist sync output")

	// ErrUnauthorized is returned when the cron secret does not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned when a client exceeds the trigger rate limit.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidTaxonomy is returned when a taxonomy table breaks its invariants.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
)
