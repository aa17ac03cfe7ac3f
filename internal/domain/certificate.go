package domain

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// CertificateRequest is the immutable input of a single render.
type CertificateRequest struct {
	RecipientName   string
	RecipientEmail  string
	CourseTitle     string
	CompletionDate  time.Time
	VerificationURL string
	CertificateID   string
}

// HasRecipientName reports whether a display name should be printed above the email.
func (r CertificateRequest) HasRecipientName() bool {
	return strings.TrimSpace(r.RecipientName) != ""
}

// Validate checks the fields a certificate cannot be drawn without.
// The recipient name is optional.
func (r CertificateRequest) Validate() error {
	if strings.TrimSpace(r.RecipientEmail) == "" {
		return &InvalidInputError{Field: "recipient_email", Reason: "is required"}
	}
	if strings.TrimSpace(r.CourseTitle) == "" {
		return &InvalidInputError{Field: "course_title", Reason: "is required"}
	}
	if r.CompletionDate.IsZero() {
		return &InvalidInputError{Field: "completion_date", Reason: "is required"}
	}
	if strings.TrimSpace(r.CertificateID) == "" {
		return &InvalidInputError{Field: "certificate_id", Reason: "is required"}
	}
	if r.VerificationURL == "" {
		return &InvalidInputError{Field: "verification_url", Reason: "is required"}
	}
	parsed, err := url.ParseRequestURI(r.VerificationURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &InvalidInputError{Field: "verification_url", Reason: "must be an absolute HTTP or HTTPS URL"}
	}

	for _, f := range []struct{ name, value string }{
		{"recipient_name", r.RecipientName},
		{"recipient_email", r.RecipientEmail},
		{"course_title", r.CourseTitle},
		{"certificate_id", r.CertificateID},
		{"verification_url", r.VerificationURL},
	} {
		if err := CheckPrintable(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// CheckPrintable rejects text the core PDF fonts cannot show. Those fonts use
// the Windows-1252 repertoire; anything outside it would be printed as a
// substitute glyph.
func CheckPrintable(field, value string) error {
	if _, err := charmap.Windows1252.NewEncoder().String(value); err != nil {
		return &InvalidInputError{Field: field, Reason: "contains characters the certificate fonts cannot print"}
	}
	return nil
}

// VerificationURL joins a base URL and a certificate id the way the web layer links certificates.
func VerificationURL(baseURL, certificateID string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(certificateID)
}
