package web

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"house31/internal/adapters/web/views"
	"house31/internal/domain"
	"house31/internal/usecases"
	"house31/pkg/log"
)

// syncTimeout bounds a single pipeline run started over HTTP.
const syncTimeout = 60 * time.Second

// Handlers contains the HTTP handlers for the sync API and pages.
type Handlers struct {
	sync     *usecases.SyncPostsUseCase
	cron     *usecases.CronSyncUseCase
	status   *usecases.GetStatusUseCase
	trending *usecases.GetTrendingUseCase
	now      func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	sync *usecases.SyncPostsUseCase,
	cron *usecases.CronSyncUseCase,
	status *usecases.GetStatusUseCase,
	trending *usecases.GetTrendingUseCase,
) *Handlers {
	return &Handlers{
		sync:     sync,
		cron:     cron,
		status:   status,
		trending: trending,
		now:      time.Now,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type syncResponse struct {
	Success    bool                    `json:"success"`
	Processed  int                     `json:"processed"`
	Categories map[domain.Category]int `json:"categories"`
	Message    string                  `json:"message"`
}

type cronResponse struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Processed  int                     `json:"processed"`
	Categories map[domain.Category]int `json:"categories,omitempty"`
	Timestamp  string                  `json:"timestamp"`
}

type notSyncedResponse struct {
	Synced  bool   `json:"synced"`
	Message string `json:"message"`
}

type statusResponse struct {
	Synced     bool                    `json:"synced"`
	LastSync   string                  `json:"lastSync"`
	PostCount  int                     `json:"postCount"`
	Categories map[domain.Category]int `json:"categories"`
	Posts      []domain.ContentRecord  `json:"posts"`
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

// TriggerSync runs the pipeline over posts supplied in the request body.
func (h *Handlers) TriggerSync(c *fiber.Ctx) error {
	posts, err := domain.DecodeSyncRequest(c.Body())
	if err != nil {
		log.GlobalWarnCtx(c.UserContext(), "rejected sync payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: friendlyError(err)})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), syncTimeout)
	defer cancel()

	res, err := h.sync.Execute(ctx, usecases.TriggerManual, posts)
	if err != nil {
		log.GlobalErrorCtx(ctx, "manual sync failed", "posts", len(posts), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: friendlyError(err)})
	}

	return c.JSON(syncResponse{
		Success:    true,
		Processed:  res.Processed,
		Categories: res.Categories,
		Message:    fmt.Sprintf("Successfully processed %d posts matching House31's content niche", res.Processed),
	})
}

// CronSync fetches the latest page posts upstream and runs the pipeline.
func (h *Handlers) CronSync(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), syncTimeout)
	defer cancel()

	res, err := h.cron.Execute(ctx, usecases.TriggerCron)
	timestamp := h.now().UTC().Format(domain.TimestampLayout)
	if err != nil {
		log.GlobalErrorCtx(ctx, "cron sync failed", "error", err)
		return c.Status(cronErrorStatus(err)).JSON(cronResponse{
			Error:     friendlyError(err),
			Timestamp: timestamp,
		})
	}

	if res.RunID == "" {
		return c.JSON(cronResponse{
			Success:   true,
			Message:   "No new posts to sync",
			Timestamp: timestamp,
		})
	}

	return c.JSON(cronResponse{
		Success:    true,
		Message:    "Facebook sync completed successfully",
		Processed:  res.Processed,
		Categories: res.Categories,
		Timestamp:  timestamp,
	})
}

// SyncStatus reports the last sync and a preview of the curated posts.
func (h *Handlers) SyncStatus(c *fiber.Ctx) error {
	st, err := h.status.Execute(c.UserContext())
	if err != nil {
		log.GlobalErrorCtx(c.UserContext(), "read sync status failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "Error reading sync data"})
	}

	if !st.Synced {
		return c.JSON(notSyncedResponse{Synced: false, Message: "No sync data available"})
	}

	return c.JSON(statusResponse{
		Synced:     true,
		LastSync:   st.LastSync,
		PostCount:  st.PostCount,
		Categories: st.Categories,
		Posts:      st.Preview,
	})
}

// Trending returns the trending feed as JSON.
func (h *Handlers) Trending(c *fiber.Ctx) error {
	videos, err := h.trending.Execute(c.UserContext())
	if err != nil {
		log.GlobalErrorCtx(c.UserContext(), "read trending failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "Error reading trending data"})
	}
	return c.JSON(videos)
}

// TrendingPage renders the trending feed as HTML.
func (h *Handlers) TrendingPage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	videos, err := h.trending.Execute(ctx)
	if err != nil {
		log.GlobalErrorCtx(ctx, "read trending failed", "error", err)
	}

	var lastSync string
	if st, err := h.status.Execute(ctx); err != nil {
		log.GlobalWarnCtx(ctx, "read sync status failed", "error", err)
	} else {
		lastSync = st.LastSync
	}

	return render(c, views.TrendingPage(views.TrendingData{
		Videos:   videos,
		LastSync: lastSync,
		Now:      h.now(),
	}))
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func cronErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrSourceNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrFetchFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// friendlyError returns a short client-facing message for err.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		return "Invalid request body. Expected posts array."
	case errors.Is(err, domain.ErrNoValidPosts):
		return "No valid posts found in the data"
	case errors.Is(err, domain.ErrSourceNotConfigured):
		return "Facebook credentials not configured"
	case errors.Is(err, domain.ErrFetchFailed):
		return "Could not fetch posts from Facebook. Please try again later."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	default:
		return "Internal server error during sync"
	}
}
