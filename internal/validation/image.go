package validation

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
)

// MaxImageBytes is the hard ceiling for submitted images.
const MaxImageBytes = 5 << 20

// AllowedImageMimeTypes are the formats accepted on submission forms.
var AllowedImageMimeTypes = []string{"image/png", "image/jpeg", "image/webp"}

func allowedMimeSet() map[string]bool {
	m := make(map[string]bool, len(AllowedImageMimeTypes))
	for _, t := range AllowedImageMimeTypes {
		m[t] = true
	}
	// Browsers occasionally send the legacy alias.
	m["image/jpg"] = true
	return m
}

// DetectMimeType resolves a file's MIME type from its multipart header,
// falling back to the filename extension for generic content types.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detected := mime.TypeByExtension(ext); detected != "" {
			mimeType = detected
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	return mimeType, nil
}

// ValidateImageHeader checks an optional submission image before it is read:
// allowed type, under the hard size ceiling. Returns the resolved MIME type.
func ValidateImageHeader(fileHeader *multipart.FileHeader) (string, error) {
	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		return "", err
	}

	if !allowedMimeSet()[mimeType] {
		return "", fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}

	if fileHeader.Size > MaxImageBytes {
		return "", fmt.Errorf("%w: %.1f MB exceeds the %d MB limit",
			ErrImageTooLarge, FormatSizeMB(fileHeader.Size), MaxImageBytes>>20)
	}

	return mimeType, nil
}
