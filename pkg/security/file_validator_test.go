package security_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-talent-sift-backend/pkg/security"
)

const maxTestSize = 2 << 20

func pdfBytes() []byte {
	return []byte("%PDF-1.7 sample content")
}

func docxBytes() []byte {
	return append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("zip payload")...)
}

func TestValidateResume(t *testing.T) {
	t.Run("Should accept a well-formed PDF", func(t *testing.T) {
		result := security.ValidateResume("cv.pdf", pdfBytes(), "application/pdf", maxTestSize)
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
	})

	t.Run("Should accept DOCX detected as octet-stream", func(t *testing.T) {
		result := security.ValidateResume("cv.docx", docxBytes(), "application/octet-stream", maxTestSize)
		assert.True(t, result.Valid)
	})

	t.Run("Should reject disallowed extensions", func(t *testing.T) {
		result := security.ValidateResume("cv.exe", pdfBytes(), "application/pdf", maxTestSize)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "extension not allowed")
	})

	t.Run("Should reject files without an extension", func(t *testing.T) {
		result := security.ValidateResume("resume", pdfBytes(), "application/pdf", maxTestSize)
		assert.False(t, result.Valid)
	})

	t.Run("Should reject oversized files", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), 10)
		result := security.ValidateResume("cv.pdf", big, "application/pdf", 5)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "maximum size")
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		spoofed := []byte(strings.Repeat("MZ executable", 3))
		result := security.ValidateResume("cv.pdf", spoofed, "application/pdf", maxTestSize)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "spoofing")
	})

	t.Run("Should reject octet-stream for non-DOCX files", func(t *testing.T) {
		result := security.ValidateResume("cv.pdf", pdfBytes(), "application/octet-stream", maxTestSize)
		assert.False(t, result.Valid)
	})

	t.Run("Should reject MIME types outside the whitelist", func(t *testing.T) {
		result := security.ValidateResume("cv.pdf", pdfBytes(), "text/html", maxTestSize)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "MIME type not allowed")
	})

	t.Run("Should reject truncated files too small for magic bytes", func(t *testing.T) {
		result := security.ValidateResume("cv.pdf", []byte("%P"), "application/pdf", maxTestSize)
		assert.False(t, result.Valid)
	})
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, security.ValidateFileExtension("a.pdf"))
	assert.NoError(t, security.ValidateFileExtension("a.DOCX"))
	assert.Error(t, security.ValidateFileExtension("a.txt"))
	assert.Error(t, security.ValidateFileExtension("noext"))
}

func TestGetAllowedExtensions(t *testing.T) {
	exts := security.GetAllowedExtensions()
	assert.ElementsMatch(t, []string{".pdf", ".docx"}, exts)
}
