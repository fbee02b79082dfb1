package security

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of resume file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed resume types
// Maps lowercase extension to possible magic byte prefixes
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},             // %PDF
	".docx": {{0x50, 0x4B, 0x03, 0x04}},             // ZIP (PK..)
}

// Allowed resume extensions (strict whitelist)
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// Strict MIME types - DO NOT include application/octet-stream
var strictMIMETypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateResume performs layered resume validation:
// 1. Extension whitelist check
// 2. Size cap
// 3. Magic byte verification (content matches extension)
// 4. MIME type whitelist (application/octet-stream rejected except DOCX)
func ValidateResume(filename string, data []byte, detectedMIME string, maxSize int64) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: detectedMIME,
	}

	// Sanitize and extract extension
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedExtensions[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: Size cap
	if int64(len(data)) > maxSize {
		result.Error = fmt.Sprintf("file exceeds maximum size of %d bytes", maxSize)
		return result
	}

	// Layer 3: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	// Layer 4: MIME type whitelist
	if detectedMIME == "application/octet-stream" || detectedMIME == "" {
		// DOCX files are sometimes detected as octet-stream; the magic byte
		// check above already vouched for the content
		if ext != ".docx" {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !strictMIMETypes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false // Unknown extension
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if !allowedExtensions[ext] {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// GetAllowedExtensions returns a list of allowed extensions for error messages
func GetAllowedExtensions() []string {
	extensions := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		extensions = append(extensions, ext)
	}
	return extensions
}
