package facebook_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house31/internal/adapters/facebook"
	"house31/internal/domain"
	"house31/test/fixtures"
)

func newServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(baseURL string) *facebook.Client {
	return facebook.NewClient(facebook.Config{
		BaseURL:     baseURL,
		PageID:      "house31",
		AccessToken: "token-123",
	}, nil)
}

func TestClient_FetchPosts_BuildsGraphRequest(t *testing.T) {
	// Arrange
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"fields":       r.URL.Query().Get("fields"),
			"limit":        r.URL.Query().Get("limit"),
			"access_token": r.URL.Query().Get("access_token"),
		}
		_, _ = w.Write([]byte(fixtures.GraphEmpty()))
	}))
	defer srv.Close()

	// Act
	_, err := newClient(srv.URL).FetchPosts(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/v18.0/house31/posts", gotPath)
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "token-123", gotQuery["access_token"])
	assert.True(t, strings.HasPrefix(gotQuery["fields"], "id,message,story,link,picture,full_picture,created_time,permalink_url,attachments{"))
}

func TestClient_FetchPosts_DecodesAndFiltersPosts(t *testing.T) {
	// Arrange
	srv := newServer(t, http.StatusOK, fixtures.GraphPagePosts(), nil)

	// Act
	posts, err := newClient(srv.URL).FetchPosts(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, posts, 3, "entry without id is dropped")
	assert.Equal(t, "104_9001", posts[0].ID)
	assert.Equal(t, "https://scontent.example.com/9001.jpg", posts[0].FullPicture)
	require.Len(t, posts[0].AttachmentData(), 1)
	assert.Equal(t, "video_inline", posts[0].AttachmentData()[0].Type)
	assert.Equal(t, "https://example.com/spacex", posts[1].AttachmentData()[0].Target.URL)
}

func TestClient_FetchPosts_EmptyFeed(t *testing.T) {
	srv := newServer(t, http.StatusOK, fixtures.GraphEmpty(), nil)

	posts, err := newClient(srv.URL).FetchPosts(context.Background())

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClient_FetchPosts_GraphErrorIsFetchFailed(t *testing.T) {
	// Arrange
	srv := newServer(t, http.StatusBadRequest, fixtures.GraphTokenError(), nil)

	// Act
	_, err := newClient(srv.URL).FetchPosts(context.Background())

	// Assert
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "Invalid OAuth access token.")
}

func TestClient_FetchPosts_MalformedBodyIsFetchFailed(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"data": [`, nil)

	_, err := newClient(srv.URL).FetchPosts(context.Background())

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_FetchPosts_NotConfigured(t *testing.T) {
	// Arrange
	var hits atomic.Int32
	srv := newServer(t, http.StatusOK, fixtures.GraphEmpty(), &hits)
	c := facebook.NewClient(facebook.Config{BaseURL: srv.URL, PageID: "house31"}, nil)

	// Act
	_, err := c.FetchPosts(context.Background())

	// Assert
	assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
	assert.False(t, c.Configured())
	assert.Zero(t, hits.Load(), "no request without credentials")
}

func TestClient_FetchPosts_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	// Arrange
	var hits atomic.Int32
	var opened atomic.Bool
	srv := newServer(t, http.StatusInternalServerError, `{}`, &hits)
	c := facebook.NewClient(facebook.Config{BaseURL: srv.URL, PageID: "p", AccessToken: "t"},
		func(_ string, _, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				opened.Store(true)
			}
		})

	// Act
	for i := 0; i < 3; i++ {
		_, err := c.FetchPosts(context.Background())
		require.ErrorIs(t, err, domain.ErrFetchFailed)
	}
	_, err := c.FetchPosts(context.Background())

	// Assert
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, int32(3), hits.Load())
	assert.True(t, opened.Load())
}
