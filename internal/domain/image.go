package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeImage re-expresses raw image bytes as a self-describing data URI for
// client consumption. Returns nil when there is no image.
func EncodeImage(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	s := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	return &s
}

// DecodeImage converts an incoming image value back to raw bytes. Accepts a
// full data URI or a bare base64 payload; an empty string clears the image.
func DecodeImage(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}

	payload := value
	if strings.HasPrefix(value, "data:") {
		_, rest, found := strings.Cut(value, ",")
		if !found || rest == "" {
			return nil, fmt.Errorf("%w: malformed image data URI", ErrInvalidInput)
		}
		payload = rest
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: image is not valid base64", ErrInvalidInput)
	}
	return raw, nil
}
