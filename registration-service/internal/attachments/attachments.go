// Package attachments validates the inline file a couple of forms
// accept. Files ride inside the JSON payload as data URLs; there is no
// upload step or blob store behind this.
package attachments

import (
	"encoding/base64"
	"errors"
	"strings"
)

const MaxSizeBytes = 3 << 20 // 3MB

var allowedMIME = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

var (
	ErrNotDataURL     = errors.New("attachment is not a data url")
	ErrTypeNotAllowed = errors.New("attachment type not allowed")
	ErrTooLarge       = errors.New("attachment exceeds size limit")
)

// Check rejects an attachment before any network call. An empty
// attachment is fine.
func Check(dataURL string) error {
	if dataURL == "" {
		return nil
	}
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ErrNotDataURL
	}
	mime, _, _ := strings.Cut(meta, ";")
	if !allowedMIME[mime] {
		return ErrTypeNotAllowed
	}
	// size of the decoded payload, without decoding it
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxSizeBytes {
		return ErrTooLarge
	}
	return nil
}
