// Package middleware holds the global request pipeline of the HTTP service.
package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"
	"github.com/rs/xid"

	"certpdf/internal/config"
	"certpdf/internal/infra/logging"
	"certpdf/internal/tokens"
)

// NewStorage returns Redis-backed limiter storage, or memory storage when Redis
// is not configured or unreachable.
func NewStorage(cfg config.Config) (store fiber.Storage) {
	store = memoryStorage.New()
	if cfg.Cache.RedisHost == "" {
		return store
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Redis limiter store init panicked, falling back to memory", "panic", r)
		}
	}()
	store = redisStorage.New(redisStorage.Config{
		Addrs:    []string{cfg.Cache.RedisHost},
		Database: cfg.Cache.RateLimitDB,
	})
	logging.Info("Using Redis for rate limiting", "addr", cfg.Cache.RedisHost, "db", cfg.Cache.RateLimitDB)
	return store
}

// KeyAuth checks X-API-Key against the token cache. Requests without the
// header pass through anonymously.
func KeyAuth(cache *tokens.Cache) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:X-API-Key",
		ContextKey: APIKeyLocal,
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			if err := cache.Validate(key); err != nil {
				return false, err
			}
			return true, nil
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || c.Get("X-API-Key") == ""
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// keyauth may call this with a nil error.
			status := fiber.StatusUnauthorized
			if err == nil {
				err = fiber.ErrUnauthorized
			}
			if errors.Is(err, tokens.ErrTokenStoreNotReady) {
				status = fiber.StatusServiceUnavailable
			}
			return JSONError(c, status, err.Error())
		},
	})
}

// RequestLogger logs every request with its id.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = c.GetRespHeader(fiber.HeaderXRequestID)
		}
		logging.Info("Incoming request", "method", c.Method(), "path", c.Path(), "request_id", requestID)
		return c.Next()
	}
}

// Register attaches the global middleware. A nil cache disables API keys
// entirely; every caller is then anonymous.
func Register(app *fiber.App, cfg config.Config, cache *tokens.Cache) {
	store := NewStorage(cfg)
	rl := RateLimitConfigFrom(cfg)

	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/ops/health",
		ReadinessEndpoint: "/ops/ready",
	}))

	if cache != nil {
		app.Use(KeyAuth(cache))
		app.Use(TokenRateLimit(rl, cache, store, NewLimiterCache()))
	}
	app.Use(UserRateLimit(rl, store))
	app.Use(RequestLogger())
}
