// Package images rewrites CDN image URLs. The CDN reads quality and
// width directives from the query string; the portal lowers quality for
// clients on data-saver connections and derives a blurred low-res
// placeholder for progressive loading.
package images

import (
	"net/url"
	"strconv"
)

const (
	qualityDefault  = 75
	qualitySaveData = 40

	placeholderQuality = 10
	placeholderWidth   = 24
	placeholderBlur    = 200
)

// Variant rewrites the quality/width directives on a CDN image URL.
// A malformed URL comes back unchanged; images degrade, they never fail.
func Variant(rawURL string, width int, saveData bool) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	quality := qualityDefault
	if saveData {
		quality = qualitySaveData
	}
	q.Set("q", strconv.Itoa(quality))
	if width > 0 {
		q.Set("w", strconv.Itoa(width))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Placeholder derives the tiny blurred preview shown while the full
// image loads.
func Placeholder(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("q", strconv.Itoa(placeholderQuality))
	q.Set("w", strconv.Itoa(placeholderWidth))
	q.Set("blur", strconv.Itoa(placeholderBlur))
	u.RawQuery = q.Encode()
	return u.String()
}
