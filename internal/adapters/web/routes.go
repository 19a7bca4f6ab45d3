package web

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"house31/pkg/log"
)

// NewApp creates a Fiber app with the JSON codec, error handler and the
// request middleware chain installed.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	return app
}

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter, cronSecret string) {
	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Manual trigger with a posts payload, rate limited per IP
	api.Post("/facebook-sync", rateLimiter.Middleware(), handlers.TriggerSync)
	api.Get("/facebook-sync", handlers.SyncStatus)

	// Scheduled pull from the Graph API, GET or POST
	cron := BearerAuth(cronSecret)
	api.Get("/facebook-sync/cron", cron, handlers.CronSync)
	api.Post("/facebook-sync/cron", cron, handlers.CronSync)

	api.Get("/trending", handlers.Trending)

	app.Get("/trending", handlers.TrendingPage)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "unhandled request error", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(errorResponse{Error: msg})
}
