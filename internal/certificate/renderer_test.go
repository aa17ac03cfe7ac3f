package certificate

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	ledong "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certpdf/internal/certificate/canvas"
	"certpdf/internal/certificate/pdf"
	"certpdf/internal/certificate/qr"
	"certpdf/internal/domain"
)

func init() {
	// Keep pdfcpu from writing a config directory under $HOME.
	model.ConfigPath = "disable"
}

func janeDoe() domain.CertificateRequest {
	return domain.CertificateRequest{
		RecipientName:   "Jane Doe",
		RecipientEmail:  "jane@example.com",
		CourseTitle:     "Intro to Go",
		CompletionDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		VerificationURL: "https://example.com/verify/ABC-123",
		CertificateID:   "ABC-123",
	}
}

func fixedClock() time.Time {
	return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
}

func plainText(t *testing.T, doc []byte) string {
	t.Helper()
	r, err := ledong.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	text, err := r.GetPlainText()
	require.NoError(t, err)
	b, err := io.ReadAll(text)
	require.NoError(t, err)
	return string(b)
}

func TestGenerate_JaneDoe(t *testing.T) {
	out, err := New(WithClock(fixedClock)).Generate(janeDoe())
	require.NoError(t, err)

	assert.Greater(t, len(out), 1000)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(bytes.TrimSpace(out[len(out)-16:])), "%%EOF")
	for _, marker := range []string{"/Type /Catalog", "/Type /Page", "/MediaBox", "D:20240115"} {
		assert.Contains(t, string(out), marker)
	}

	text := plainText(t, out)
	for _, want := range []string{"CERTIFICATE", "Jane Doe", "jane@example.com", "Intro to Go", "January 15, 2024", "ABC-123"} {
		assert.Contains(t, text, want)
	}
}

func TestGenerate_CreatorInInfoDictionary(t *testing.T) {
	creator := func(doc []byte) string {
		r, err := ledong.NewReader(bytes.NewReader(doc), int64(len(doc)))
		require.NoError(t, err)
		return r.Trailer().Key("Info").Key("Creator").Text()
	}

	out, err := New().Generate(janeDoe())
	require.NoError(t, err)
	assert.Equal(t, "certpdf", creator(out))

	out, err = New(WithCreator("certgen")).Generate(janeDoe())
	require.NoError(t, err)
	assert.Equal(t, "certgen", creator(out))
}

func TestGenerate_ValidatesWithPdfcpu(t *testing.T) {
	out, err := New().Generate(janeDoe())
	require.NoError(t, err)

	require.NoError(t, api.Validate(bytes.NewReader(out), nil))
	pages, err := api.PageCount(bytes.NewReader(out), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestGenerate_Idempotent(t *testing.T) {
	r := New(WithClock(fixedClock))
	first, err := r.Generate(janeDoe())
	require.NoError(t, err)
	second, err := r.Generate(janeDoe())
	require.NoError(t, err)
	assert.Equal(t, pdf.StripDates(first), pdf.StripDates(second))

	unpinned := New()
	a, err := unpinned.Generate(janeDoe())
	require.NoError(t, err)
	b, err := unpinned.Generate(janeDoe())
	require.NoError(t, err)
	assert.Equal(t, pdf.StripDates(a), pdf.StripDates(b))
}

func TestGenerate_EmailOnly(t *testing.T) {
	req := janeDoe()
	req.RecipientName = "  "

	out, err := New().Generate(req)
	require.NoError(t, err)

	text := plainText(t, out)
	assert.Contains(t, text, "jane@example.com")
	assert.NotContains(t, text, "Jane Doe")
}

func TestGenerate_InvalidInputDrawsNothing(t *testing.T) {
	req := janeDoe()
	req.RecipientEmail = ""

	out, err := New().Generate(req)
	assert.Nil(t, out)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "recipient_email", invalid.Field)

	rec := canvas.NewRecorder()
	require.Error(t, New().Draw(rec, req))
	assert.Empty(t, rec.Calls)
}

func TestGenerate_RejectsNamesOutsideFontRepertoire(t *testing.T) {
	req := janeDoe()
	req.RecipientName = "Łukasz Żółć 李"

	out, err := New().Generate(req)
	assert.Nil(t, out)
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "recipient_name", invalid.Field)

	rec := canvas.NewRecorder()
	require.Error(t, New().Draw(rec, req))
	assert.Empty(t, rec.Calls)
}

func TestGenerate_KeepsWesternEuropeanAccents(t *testing.T) {
	req := janeDoe()
	req.RecipientName = "Zoë Müller"

	out, err := New().Generate(req)
	require.NoError(t, err)
	assert.Contains(t, plainText(t, out), "Zoë Müller")
}

func TestGenerate_QRCapacityExceeded(t *testing.T) {
	req := janeDoe()
	req.VerificationURL = "https://example.com/verify/" + strings.Repeat("x", 4000)

	for _, name := range []string{qr.EncoderSkip2, qr.EncoderBoombuler} {
		t.Run(name, func(t *testing.T) {
			enc, err := qr.NewEncoder(name)
			require.NoError(t, err)

			rec := canvas.NewRecorder()
			err = New(WithEncoder(enc)).Draw(rec, req)
			require.ErrorIs(t, err, domain.ErrQREncoding)
			assert.Empty(t, rec.Calls, "no drawing before the QR matrix exists")
		})
	}
}

type brokenEncoder struct{}

func (brokenEncoder) Encode(string) (qr.Matrix, error) {
	return qr.Matrix{{true, false}}, nil
}

func TestGenerate_MalformedMatrixRejected(t *testing.T) {
	_, err := New(WithEncoder(brokenEncoder{})).Generate(janeDoe())
	require.ErrorIs(t, err, domain.ErrQREncoding)
}

func TestGenerate_BackendFailureReturnsNoBytes(t *testing.T) {
	boom := errors.New("disk on fire")
	r := New(WithPDFOptions(func(f *gofpdf.Fpdf) { f.SetError(boom) }))

	out, err := r.Generate(janeDoe())
	assert.Nil(t, out)
	require.ErrorIs(t, err, domain.ErrRenderBackend)
	require.ErrorIs(t, err, boom)

	var backend *domain.RenderBackendError
	require.ErrorAs(t, err, &backend)
	assert.Equal(t, "background", backend.Stage)
}

func TestDraw_RecorderFailureNamesStage(t *testing.T) {
	rec := canvas.NewRecorder()
	rec.FailOn = canvas.OpText

	err := New().Draw(rec, janeDoe())
	var backend *domain.RenderBackendError
	require.ErrorAs(t, err, &backend)
	assert.Equal(t, "header", backend.Stage)
	assert.ErrorIs(t, err, canvas.ErrInjected)
}

func TestGenerate_EncodersAgreeOnLayout(t *testing.T) {
	for _, name := range []string{qr.EncoderSkip2, qr.EncoderBoombuler} {
		enc, err := qr.NewEncoder(name)
		require.NoError(t, err)
		out, err := New(WithEncoder(enc)).Generate(janeDoe())
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), name)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	r := New(WithClock(fixedClock))
	want, err := r.Generate(janeDoe())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Generate(janeDoe())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, pdf.StripDates(want), pdf.StripDates(got))
	}
}

func TestPreview_SVG(t *testing.T) {
	out, err := New().Preview(janeDoe())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<svg")
	assert.Contains(t, s, "Jane Doe")
	assert.Contains(t, s, "VERIFIED")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "</svg>"))
}
