package storage

import (
	"errors"
	"net/http"
	"strings"
)

// MaxImageSize is the largest accepted attachment, 5 MB.
const MaxImageSize int64 = 5 * 1024 * 1024

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
)

// AllowedImageTypes lists the content types a booking attachment may have.
// image/jpg is not registered but browsers still send it.
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// AcceptImage checks the declared content type first, then the size.
// A maxSize <= 0 falls back to MaxImageSize.
func AcceptImage(contentType string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}

	if !IsAllowedImage(contentType) {
		return ErrInvalidMimeType
	}

	if size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// IsAllowedImage reports whether contentType is one of AllowedImageTypes
func IsAllowedImage(contentType string) bool {
	mimeType := NormalizeMimeType(contentType)
	for _, t := range AllowedImageTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// NormalizeMimeType lowercases and strips parameters
// ("image/PNG; charset=binary" -> "image/png").
func NormalizeMimeType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// DetectMimeType sniffs the content type from the leading bytes.
func DetectMimeType(head []byte) string {
	return NormalizeMimeType(http.DetectContentType(head))
}

// GetExtensionForMime returns the file extension for a MIME type
func GetExtensionForMime(mimeType string) string {
	switch NormalizeMimeType(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
