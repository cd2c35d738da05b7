package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oshilens/backend/internal/domain"
)

const defaultImageMIMEType = "image/jpeg"

// acceptedImageTypes are the MIME types the vision model accepts
var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DecodeImage decodes a base64 image (optionally a data URL) and checks its size and type.
// An empty mimeType defaults to image/jpeg; a sniffed supported type replaces the declared
// one. maxBytes <= 0 disables the size check.
func DecodeImage(encoded, mimeType string, maxBytes int64) (*domain.ImageInput, error) {
	encoded = strings.TrimSpace(encoded)

	// Strip "data:image/png;base64," and take the MIME type from it when none was given
	if strings.HasPrefix(encoded, "data:") {
		header, payload, found := strings.Cut(encoded, ",")
		if !found {
			return nil, fmt.Errorf("%w: malformed data URL", domain.ErrInvalidRequest)
		}
		if mimeType == "" {
			mimeType, _, _ = strings.Cut(strings.TrimPrefix(header, "data:"), ";")
		}
		encoded = payload
	}

	if encoded == "" {
		return nil, fmt.Errorf("%w: image data is required", domain.ErrInvalidRequest)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: image must be a base64 encoded string", domain.ErrInvalidRequest)
		}
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: image size must be less than %d MB", domain.ErrInvalidRequest, maxBytes/(1024*1024))
	}

	mimeType = normalizeImageMIMEType(mimeType)
	if !acceptedImageTypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidRequest, mimeType)
	}

	detected := mimetype.Detect(data).String()
	if !strings.HasPrefix(detected, "image/") {
		return nil, fmt.Errorf("%w: payload is not an image (detected %s)", domain.ErrInvalidRequest, detected)
	}
	// The payload's own signature beats a mislabelled declaration
	if acceptedImageTypes[detected] {
		mimeType = detected
	}

	return &domain.ImageInput{Data: data, MIMEType: mimeType}, nil
}

func normalizeImageMIMEType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	switch mimeType {
	case "":
		return defaultImageMIMEType
	case "image/jpg":
		return "image/jpeg"
	}
	return mimeType
}
