package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certpdf/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_PDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.pdf")
	_, err := execute(t, "render",
		"--name", "Jane Doe", "--email", "jane@example.com", "--course", "Intro to Go",
		"--date", "2024-01-15", "--id", "ABC-123", "--url", "https://example.com/verify/ABC-123",
		"--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestRender_DefaultOutputNameIsSanitized(t *testing.T) {
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := execute(t, "render", "--email", "jane@example.com", "--course", "Intro to Go",
		"--date", "2024-01-15", "--id", "../escape/ABC", "--url", "https://example.com/verify/ABC")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "certificate-.._escape_ABC.pdf", entries[0].Name())
	assert.NoFileExists(t, filepath.Join(dir, "..", "escape", "ABC.pdf"))
}

func TestRender_SVGToStdoutWithConfigBaseURL(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "certgen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`[certificate]
verify_base_url = "https://certs.example.com/verify"
platform_name = "Acme Academy"
`), 0o644))

	out, err := execute(t, "render", "--email", "jane@example.com", "--course", "Intro to Go",
		"--date", "2024-01-15", "--id", "ABC-123", "--format", "svg", "--out", "-", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Acme Academy")
	assert.Contains(t, out, "https://certs.example.com/verify/ABC-123")
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, "render", "--email", "jane@example.com", "--course", "Go",
		"--id", "x", "--url", "https://example.com/x", "--format", "png")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "render", "--email", "jane@example.com", "--course", "Go",
		"--id", "x", "--url", "https://example.com/x", "--date", "yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "render", "--course", "Go", "--id", "x", "--url", "https://example.com/x", "--out", "-")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
