// Package cache stores rendered certificates in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"certpdf/internal/domain"
	"certpdf/internal/infra/logging"
)

const (
	keyPrefix  = "pdfcache:"
	defaultTTL = time.Minute
	opTimeout  = time.Second
)

// PDFCache is a thin Redis wrapper. A nil *PDFCache or nil client is a
// permanently empty cache.
type PDFCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPDFCache(rdb *redis.Client, ttl time.Duration) *PDFCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PDFCache{rdb: rdb, ttl: ttl}
}

// Key hashes every field that affects the rendered output. kind separates
// documents of different formats rendered from the same request.
func Key(kind string, req domain.CertificateRequest) string {
	h := sha256.New()
	for _, part := range []string{
		kind,
		req.RecipientName,
		req.RecipientEmail,
		req.CourseTitle,
		req.CompletionDate.Format(time.DateOnly),
		req.VerificationURL,
		req.CertificateID,
	} {
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write([]byte(part))
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns nil, nil on a miss.
func (p *PDFCache) Get(ctx context.Context, key string) ([]byte, error) {
	if p == nil || p.rdb == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cached, err := p.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logging.Warn("Redis read failed", "error", err)
		return nil, err
	}
	logging.Info("PDF cache hit", "key", key)
	return cached, nil
}

// Set stores data; failures are logged and otherwise ignored.
func (p *PDFCache) Set(ctx context.Context, key string, data []byte) {
	if p == nil || p.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
		logging.Warn("Redis write failed", "error", err)
	}
}
