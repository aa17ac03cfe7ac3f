package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"certpdf/internal/config"
	"certpdf/internal/infra/logging"
)

// APIKeyLocal is the Locals key holding the authenticated token.
const APIKeyLocal = "api_key"

type RateLimitConfig struct {
	RateInterval      time.Duration
	EnableUserLimiter bool
	UserLimit         int
}

func RateLimitConfigFrom(cfg config.Config) RateLimitConfig {
	return RateLimitConfig{
		RateInterval:      cfg.RateLimiter.Interval,
		EnableUserLimiter: cfg.RateLimiter.EnableUserLimiter || cfg.RateLimiter.UserLimit > 0,
		UserLimit:         cfg.RateLimiter.UserLimit,
	}
}

// TokenRater yields the per-token request budget; 0 means unlimited.
type TokenRater interface {
	RateLimit(token string) int
}

// LimiterCache keeps one limiter per distinct token limit so that tokens
// sharing a limit share a handler.
type LimiterCache struct {
	mu       sync.RWMutex
	handlers map[int]fiber.Handler
}

func NewLimiterCache() *LimiterCache {
	return &LimiterCache{handlers: make(map[int]fiber.Handler)}
}

func (lc *LimiterCache) get(limit int, build func() fiber.Handler) fiber.Handler {
	lc.mu.RLock()
	h, ok := lc.handlers[limit]
	lc.mu.RUnlock()
	if ok {
		return h
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if h, ok := lc.handlers[limit]; ok {
		return h
	}
	h = build()
	lc.handlers[limit] = h
	return h
}

func apiKey(c *fiber.Ctx) string {
	token, _ := c.Locals(APIKeyLocal).(string)
	return token
}

func clientKey(c *fiber.Ctx) string {
	sum := sha256.Sum256([]byte(c.IP() + c.Get("User-Agent")))
	return hex.EncodeToString(sum[:])
}

func tooManyRequests(c *fiber.Ctx) error {
	return JSONError(c, fiber.StatusTooManyRequests, "Too many requests")
}

// TokenRateLimit applies each authenticated token's sliding-window budget.
func TokenRateLimit(cfg RateLimitConfig, rater TokenRater, store fiber.Storage, cache *LimiterCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := apiKey(c)
		if token == "" {
			return c.Next()
		}
		limit := rater.RateLimit(token)
		if limit <= 0 {
			return c.Next()
		}
		h := cache.get(limit, func() fiber.Handler {
			return limiter.New(limiter.Config{
				Max:               limit,
				Expiration:        cfg.RateInterval,
				LimiterMiddleware: limiter.SlidingWindow{},
				Storage:           store,
				KeyGenerator:      apiKey,
				LimitReached: func(c *fiber.Ctx) error {
					logging.Warn("Rate limit exceeded", "token", apiKey(c), "path", c.Path())
					return tooManyRequests(c)
				},
			})
		})
		return h(c)
	}
}

// UserRateLimit limits anonymous clients by IP and User-Agent. Requests that
// carry a token are left to TokenRateLimit.
func UserRateLimit(cfg RateLimitConfig, store fiber.Storage) fiber.Handler {
	if !cfg.EnableUserLimiter || cfg.UserLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	userLimiter := limiter.New(limiter.Config{
		Max:               cfg.UserLimit,
		Expiration:        cfg.RateInterval,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           store,
		KeyGenerator:      clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			logging.Warn("Rate limit exceeded", "user", clientKey(c), "path", c.Path())
			return tooManyRequests(c)
		},
	})
	return func(c *fiber.Ctx) error {
		if apiKey(c) != "" {
			return c.Next()
		}
		return userLimiter(c)
	}
}
