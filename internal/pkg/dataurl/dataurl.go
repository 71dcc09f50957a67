// Package dataurl converts uploaded images between their data URL form
// ("data:<mime>;base64,<payload>") and a decoded media type + base64 payload.
package dataurl

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalid = errors.New("dataurl: not a valid base64 data URL")
var ErrUnsupportedType = errors.New("dataurl: unsupported media type")

// allowedTypes is the accepted image media-type set.
var allowedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// Decode splits a data URL into its media type and raw base64 payload.
// The payload is validated but returned still encoded, so callers forward it
// to the backend as-is.
func Decode(s string) (mimeType, data string, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", "", ErrInvalid
	}
	mimeType, data, ok = strings.Cut(rest, ";base64,")
	if !ok || mimeType == "" || data == "" {
		return "", "", ErrInvalid
	}
	if _, ok := allowedTypes[mimeType]; !ok {
		return "", "", ErrUnsupportedType
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return "", "", ErrInvalid
	}
	return mimeType, data, nil
}

// Encode builds a data URL from a media type and raw image bytes.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
