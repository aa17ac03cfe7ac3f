// Package handlers implements the certificate endpoints.
package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"certpdf/internal/certificate"
	"certpdf/internal/config"
	"certpdf/internal/domain"
	"certpdf/internal/infra/cache"
	"certpdf/internal/infra/logging"
	"certpdf/internal/infra/postgres"
)

// Registry stores and finds issued certificates.
type Registry interface {
	Record(ctx context.Context, c postgres.IssuedCertificate) error
	Lookup(ctx context.Context, id string) (postgres.IssuedCertificate, error)
}

// CertificateService bundles the renderer with its optional cache and registry.
// A nil Cache or Registry disables that feature.
type CertificateService struct {
	Config   config.Config
	Renderer *certificate.Renderer
	Cache    *cache.PDFCache
	Registry Registry
	Now      func() time.Time
}

func NewCertificateService(cfg config.Config, r *certificate.Renderer, pdfCache *cache.PDFCache, reg Registry) *CertificateService {
	return &CertificateService{Config: cfg, Renderer: r, Cache: pdfCache, Registry: reg, Now: time.Now}
}

type certificateBody struct {
	RecipientName   string `json:"recipient_name"`
	RecipientEmail  string `json:"recipient_email"`
	CourseTitle     string `json:"course_title"`
	CompletionDate  string `json:"completion_date"`
	CertificateID   string `json:"certificate_id"`
	VerificationURL string `json:"verification_url"`
}

// parseRequest decodes the JSON body. A missing verification URL is derived
// from the configured base URL.
func (svc *CertificateService) parseRequest(c *fiber.Ctx) (domain.CertificateRequest, error) {
	var body certificateBody
	if err := c.BodyParser(&body); err != nil {
		return domain.CertificateRequest{}, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}

	req := domain.CertificateRequest{
		RecipientName:   strings.TrimSpace(body.RecipientName),
		RecipientEmail:  strings.TrimSpace(body.RecipientEmail),
		CourseTitle:     strings.TrimSpace(body.CourseTitle),
		CertificateID:   strings.TrimSpace(body.CertificateID),
		VerificationURL: strings.TrimSpace(body.VerificationURL),
	}
	if body.CompletionDate != "" {
		date, err := time.Parse(time.DateOnly, body.CompletionDate)
		if err != nil {
			return req, toFiberError(&domain.InvalidInputError{Field: "completion_date", Reason: "must be YYYY-MM-DD"})
		}
		req.CompletionDate = date
	}
	if req.VerificationURL == "" && req.CertificateID != "" && svc.Config.Certificate.VerifyBaseURL != "" {
		req.VerificationURL = domain.VerificationURL(svc.Config.Certificate.VerifyBaseURL, req.CertificateID)
	}
	return req, nil
}

// toFiberError maps renderer errors onto HTTP statuses.
func toFiberError(err error) error {
	var invalid *domain.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return fiber.NewError(fiber.StatusBadRequest, invalid.Error())
	case errors.Is(err, domain.ErrQREncoding):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrRenderBackend):
		logging.Error("Certificate rendering failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Certificate rendering failed")
	}
	logging.Error("Unexpected certificate error", "error", err)
	return fiber.ErrInternalServerError
}

// HandleGenerate renders a PDF or serves a cached copy.
func (svc *CertificateService) HandleGenerate(c *fiber.Ctx) error {
	req, err := svc.parseRequest(c)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return toFiberError(err)
	}

	key := cache.Key("pdf", req)
	doc, err := svc.Cache.Get(c.Context(), key)
	if err != nil || doc == nil {
		doc, err = svc.Renderer.Generate(req)
		if err != nil {
			return toFiberError(err)
		}
		if limit := svc.Config.Limits.MaxPDFBytes; limit > 0 && len(doc) > limit {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "PDF exceeds allowed size")
		}
		svc.Cache.Set(c.Context(), key, doc)
	}

	svc.record(c.Context(), req, doc)

	filename := certificate.Filename(req.CertificateID, "pdf")
	logging.Info("Certificate generated", "filename", filename, "bytes", len(doc), "request_id", c.GetRespHeader(fiber.HeaderXRequestID))

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(doc)
}

func (svc *CertificateService) record(ctx context.Context, req domain.CertificateRequest, doc []byte) {
	if svc.Registry == nil {
		return
	}
	sum := sha256.Sum256(doc)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	issued := postgres.NewIssuedCertificate(req, hex.EncodeToString(sum[:]), svc.Now())
	if err := svc.Registry.Record(ctx, issued); err != nil {
		logging.Warn("Failed to record certificate", "certificate_id", req.CertificateID, "error", err)
	}
}

// HandlePreview renders the same layout as SVG. Previews are not recorded.
func (svc *CertificateService) HandlePreview(c *fiber.Ctx) error {
	req, err := svc.parseRequest(c)
	if err != nil {
		return err
	}

	key := cache.Key("svg", req)
	doc, err := svc.Cache.Get(c.Context(), key)
	if err != nil || doc == nil {
		doc, err = svc.Renderer.Preview(req)
		if err != nil {
			return toFiberError(err)
		}
		svc.Cache.Set(c.Context(), key, doc)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(doc)
}

// HandleVerify reports what the registry knows about a certificate id.
func (svc *CertificateService) HandleVerify(c *fiber.Ctx) error {
	if svc.Registry == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Certificate registry is not configured")
	}
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil || id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid certificate id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()
	rec, err := svc.Registry.Lookup(ctx, id)
	if errors.Is(err, postgres.ErrCertificateNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Certificate not found")
	}
	if err != nil {
		logging.Error("Certificate lookup failed", "certificate_id", id, "error", err)
		return fiber.NewError(fiber.StatusServiceUnavailable, "Certificate registry unavailable")
	}
	return c.JSON(fiber.Map{"valid": true, "certificate": rec})
}
