package routes

import (
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	identityHandler *handlers.IdentityHandler,
	providerHandler *handlers.ProviderHandler,
	healthHandler *handlers.HealthHandler,
	identityRequired fiber.Handler,
	metricsHandler http.Handler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))

	api := app.Group("/api")

	// General API rate limit per IP
	if cfg.RateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	api.Get("/health", healthHandler.Check)
	api.Get("/clientId", identityHandler.ClientID)
	api.Get("/providers", providerHandler.List)

	// Token verification and account erasure get a stricter limit
	var authLimit fiber.Handler = func(c *fiber.Ctx) error { return c.Next() }
	if cfg.AuthRateLimit > 0 {
		authLimit = limiter.New(limiter.Config{
			Max:               cfg.AuthRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		})
	}
	api.Post("/validation", authLimit, identityHandler.Validate)
	api.Delete("/profile", authLimit, identityHandler.DeleteProfile)

	// Profile writes require the owner's identity token
	api.Post("/provider", identityRequired, providerHandler.Create)
	api.Put("/provider", identityRequired, providerHandler.Update)
	api.Post("/calendar", identityRequired, providerHandler.AttachCalendar)
}
