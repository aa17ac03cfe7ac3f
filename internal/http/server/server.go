// Package server assembles the fiber application.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/redis/go-redis/v9"

	"certpdf/internal/certificate"
	"certpdf/internal/config"
	"certpdf/internal/http/handlers"
	"certpdf/internal/http/middleware"
	"certpdf/internal/infra/cache"
	"certpdf/internal/infra/logging"
	"certpdf/internal/tokens"
)

// Deps are the collaborators built by main. Nil Redis, Tokens or Registry
// disable caching, API keys and verification respectively.
type Deps struct {
	Config   config.Config
	Renderer *certificate.Renderer
	Redis    *redis.Client
	Tokens   *tokens.Cache
	Registry handlers.Registry
}

// New creates the app with JSON errors for every failure, 404s included.
func New(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		DisableStartupMessage: true,
		BodyLimit:             cfg.Limits.MaxRequestBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				msg = fe.Message
			}

			logging.Warn("Request failed", "path", c.Path(), "status", code, "reason", msg)
			return middleware.JSONError(c, code, msg)
		},
	})

	middleware.Register(app, cfg, d.Tokens)
	RegisterRoutes(app, d)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})
	return app
}

// RegisterRoutes mounts the v1 API.
func RegisterRoutes(app *fiber.App, d Deps) {
	renderer := d.Renderer
	if renderer == nil {
		renderer = certificate.New()
	}

	var pdfCache *cache.PDFCache
	if d.Redis != nil && d.Config.Cache.PDFCacheEnabled {
		pdfCache = cache.NewPDFCache(d.Redis, d.Config.Cache.PDFCacheTTL)
	}

	svc := handlers.NewCertificateService(d.Config, renderer, pdfCache, d.Registry)

	v1 := app.Group("/v1")
	v1.Post("/certificates", svc.HandleGenerate)
	v1.Post("/certificates/preview", svc.HandlePreview)
	v1.Get("/certificates/:id/verify", svc.HandleVerify)
	v1.Get("/monitor", monitor.New())
}
