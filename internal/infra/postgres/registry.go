package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"certpdf/internal/domain"
)

// ErrCertificateNotFound is returned by Lookup for unknown ids.
var ErrCertificateNotFound = errors.New("certificate not found")

const certificatesSchema = `CREATE TABLE IF NOT EXISTS certificates (
	certificate_id TEXT PRIMARY KEY,
	recipient_name TEXT NOT NULL DEFAULT '',
	recipient_email TEXT NOT NULL,
	course_title TEXT NOT NULL,
	completion_date DATE NOT NULL,
	verification_url TEXT NOT NULL,
	digest TEXT NOT NULL,
	issued_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// IssuedCertificate is what the registry knows about a rendered certificate.
type IssuedCertificate struct {
	CertificateID   string    `json:"certificate_id"`
	RecipientName   string    `json:"recipient_name,omitempty"`
	RecipientEmail  string    `json:"recipient_email"`
	CourseTitle     string    `json:"course_title"`
	CompletionDate  string    `json:"completion_date"`
	VerificationURL string    `json:"verification_url"`
	Digest          string    `json:"digest"`
	IssuedAt        time.Time `json:"issued_at"`
}

// NewIssuedCertificate describes req; digest identifies the rendered bytes.
func NewIssuedCertificate(req domain.CertificateRequest, digest string, issuedAt time.Time) IssuedCertificate {
	return IssuedCertificate{
		CertificateID:   req.CertificateID,
		RecipientName:   req.RecipientName,
		RecipientEmail:  req.RecipientEmail,
		CourseTitle:     req.CourseTitle,
		CompletionDate:  req.CompletionDate.Format(time.DateOnly),
		VerificationURL: req.VerificationURL,
		Digest:          digest,
		IssuedAt:        issuedAt.UTC(),
	}
}

// Registry records issued certificates so their links can be verified.
type Registry struct {
	DB  *DB
	DSN string
}

func NewRegistry(db *DB, dsn string) *Registry {
	return &Registry{DB: db, DSN: dsn}
}

func (r *Registry) conn(ctx context.Context) (*sql.DB, error) {
	db, err := r.DB.Get(r.DSN)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, certificatesSchema); err != nil {
		return nil, fmt.Errorf("ensure certificates schema: %w", err)
	}
	return db, nil
}

// Record upserts c. Re-rendering an id replaces the stored details.
func (r *Registry) Record(ctx context.Context, c IssuedCertificate) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO certificates
		(certificate_id, recipient_name, recipient_email, course_title, completion_date, verification_url, digest, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (certificate_id) DO UPDATE SET
			recipient_name = EXCLUDED.recipient_name,
			recipient_email = EXCLUDED.recipient_email,
			course_title = EXCLUDED.course_title,
			completion_date = EXCLUDED.completion_date,
			verification_url = EXCLUDED.verification_url,
			digest = EXCLUDED.digest,
			issued_at = EXCLUDED.issued_at`,
		c.CertificateID, c.RecipientName, c.RecipientEmail, c.CourseTitle,
		c.CompletionDate, c.VerificationURL, c.Digest, c.IssuedAt)
	if err != nil {
		return fmt.Errorf("record certificate %s: %w", c.CertificateID, err)
	}
	return nil
}

func (r *Registry) Lookup(ctx context.Context, id string) (IssuedCertificate, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return IssuedCertificate{}, err
	}

	var (
		c    IssuedCertificate
		date time.Time
	)
	err = db.QueryRowContext(ctx, `SELECT certificate_id, recipient_name, recipient_email, course_title,
		completion_date, verification_url, digest, issued_at
		FROM certificates WHERE certificate_id = $1`, id).
		Scan(&c.CertificateID, &c.RecipientName, &c.RecipientEmail, &c.CourseTitle,
			&date, &c.VerificationURL, &c.Digest, &c.IssuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return IssuedCertificate{}, ErrCertificateNotFound
	}
	if err != nil {
		return IssuedCertificate{}, fmt.Errorf("lookup certificate %s: %w", id, err)
	}
	c.CompletionDate = date.Format(time.DateOnly)
	return c, nil
}
