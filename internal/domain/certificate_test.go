package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CertificateRequest {
	return CertificateRequest{
		RecipientName:   "Jane Doe",
		RecipientEmail:  "jane@example.com",
		CourseTitle:     "Intro to Ruby",
		CompletionDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		VerificationURL: "https://x.test/v/abc",
		CertificateID:   "abc-123",
	}
}

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	noName := validRequest()
	noName.RecipientName = ""
	assert.NoError(t, noName.Validate())
	assert.False(t, noName.HasRecipientName())
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(r *CertificateRequest)
	}{
		{name: "email", field: "recipient_email", edit: func(r *CertificateRequest) { r.RecipientEmail = " " }},
		{name: "course", field: "course_title", edit: func(r *CertificateRequest) { r.CourseTitle = "" }},
		{name: "date", field: "completion_date", edit: func(r *CertificateRequest) { r.CompletionDate = time.Time{} }},
		{name: "id", field: "certificate_id", edit: func(r *CertificateRequest) { r.CertificateID = "" }},
		{name: "url missing", field: "verification_url", edit: func(r *CertificateRequest) { r.VerificationURL = "" }},
		{name: "url relative", field: "verification_url", edit: func(r *CertificateRequest) { r.VerificationURL = "/v/abc" }},
		{name: "url scheme", field: "verification_url", edit: func(r *CertificateRequest) { r.VerificationURL = "ftp://x.test/v" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestValidate_RejectsUnprintableText(t *testing.T) {
	accented := validRequest()
	accented.RecipientName = "Zoë Müller-Señor"
	accented.CourseTitle = "Café “Go” – Beyond €"
	require.NoError(t, accented.Validate())

	tests := []struct {
		field string
		edit  func(r *CertificateRequest)
	}{
		{field: "recipient_name", edit: func(r *CertificateRequest) { r.RecipientName = "Łukasz Żółć" }},
		{field: "recipient_name", edit: func(r *CertificateRequest) { r.RecipientName = "李" }},
		{field: "recipient_email", edit: func(r *CertificateRequest) { r.RecipientEmail = "jürgen@例え.jp" }},
		{field: "course_title", edit: func(r *CertificateRequest) { r.CourseTitle = "Go ✓" }},
		{field: "certificate_id", edit: func(r *CertificateRequest) { r.CertificateID = "ид-1" }},
	}
	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)
			var invalid *InvalidInputError
			require.True(t, errors.As(req.Validate(), &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestVerificationURL_JoinsBaseAndID(t *testing.T) {
	assert.Equal(t, "https://x.test/v/abc-123", VerificationURL("https://x.test/v/", "abc-123"))
	assert.Equal(t, "https://x.test/v/a%2Fb", VerificationURL("https://x.test/v", "a/b"))
}
