package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ImagePayload is a decoded-and-validated inline image: the content type and
// the still-encoded base64 body, ready for a provider inline_data part.
type ImagePayload struct {
	ContentType string
	Base64Data  string
}

// ParseImageDataURI splits and validates a "data:<mime>;base64,<data>" URI.
// Images are stored and transported inline; this is the only shape accepted.
func ParseImageDataURI(uri string) (*ImagePayload, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, fmt.Errorf("not an image data URI")
	}

	parts := strings.SplitN(uri, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URI")
	}
	meta, data := parts[0], parts[1]

	mediaType := strings.TrimPrefix(meta, "data:")
	if !strings.HasSuffix(mediaType, ";base64") {
		return nil, fmt.Errorf("data URI is not base64-encoded")
	}
	contentType := strings.TrimSuffix(mediaType, ";base64")

	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	return &ImagePayload{ContentType: contentType, Base64Data: data}, nil
}
