// Package facebook reads page posts from the Facebook Graph API.
package facebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"house31/internal/domain"
	"house31/pkg/log"
)

const (
	DefaultBaseURL = "https://graph.facebook.com"
	DefaultVersion = "v18.0"
	DefaultLimit   = 20
)

// postFields is the field list requested for each post.
var postFields = strings.Join([]string{
	"id",
	"message",
	"story",
	"link",
	"picture",
	"full_picture",
	"created_time",
	"permalink_url",
	"attachments{type,media,target,title,description}",
}, ",")

// Config holds the Graph API settings.
type Config struct {
	BaseURL     string
	Version     string
	PageID      string
	AccessToken string
	Limit       int
	Timeout     time.Duration
}

// StateListener is notified when the circuit breaker changes state.
type StateListener func(name string, from, to gobreaker.State)

// Client fetches page posts behind a circuit breaker.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.RawPost]
}

// NewClient creates a Graph API client. Zero config values take defaults.
func NewClient(cfg Config, onState StateListener) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "facebook-graph",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A reachable upstream with nothing usable is not a failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNoValidPosts)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.GlobalWarn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			if onState != nil {
				onState(name, from, to)
			}
		},
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]domain.RawPost](settings),
	}
}

// Configured reports whether page id and token are set.
func (c *Client) Configured() bool {
	return c.cfg.PageID != "" && c.cfg.AccessToken != ""
}

// FetchPosts returns the latest page posts with a valid shape.
func (c *Client) FetchPosts(ctx context.Context) ([]domain.RawPost, error) {
	if !c.Configured() {
		return nil, domain.ErrSourceNotConfigured
	}

	posts, err := c.breaker.Execute(func() ([]domain.RawPost, error) {
		return c.fetch(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return posts, err
}

type graphResponse struct {
	Data  []json.RawMessage `json:"data"`
	Error *graphError       `json:"error,omitempty"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (c *Client) fetch(ctx context.Context) ([]domain.RawPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.postsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}

	var gr graphResponse
	decodeErr := json.Unmarshal(body, &gr)

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decodeErr == nil && gr.Error != nil {
			msg = fmt.Sprintf("%s (%s %d)", gr.Error.Message, gr.Error.Type, gr.Error.Code)
		}
		return nil, fmt.Errorf("%w: graph api: %s", domain.ErrFetchFailed, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrFetchFailed, decodeErr)
	}

	posts, err := domain.FilterShape(gr.Data)
	if err != nil {
		return nil, err
	}
	log.GlobalDebugCtx(ctx, "fetched page posts", "received", len(gr.Data), "valid", len(posts))
	return posts, nil
}

func (c *Client) postsURL() string {
	q := url.Values{}
	q.Set("fields", postFields)
	q.Set("limit", strconv.Itoa(c.cfg.Limit))
	q.Set("access_token", c.cfg.AccessToken)

	return fmt.Sprintf("%s/%s/%s/posts?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		c.cfg.Version,
		url.PathEscape(c.cfg.PageID),
		q.Encode(),
	)
}
