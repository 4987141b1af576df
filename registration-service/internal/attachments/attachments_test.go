package attachments

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyAttachmentAllowed(t *testing.T) {
	assert.NoError(t, Check(""))
}

func TestAllowedTypes(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("contenido"))
	for _, mime := range []string{"image/jpeg", "image/png", "application/pdf"} {
		assert.NoError(t, Check("data:"+mime+";base64,"+payload))
	}
}

func TestRejectedTypes(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("contenido"))
	for _, mime := range []string{"image/gif", "application/zip", "text/html"} {
		assert.ErrorIs(t, Check("data:"+mime+";base64,"+payload), ErrTypeNotAllowed)
	}
}

func TestNotADataURL(t *testing.T) {
	assert.ErrorIs(t, Check("https://example.com/file.pdf"), ErrNotDataURL)
	assert.ErrorIs(t, Check("data:image/png;base64"), ErrNotDataURL)
}

func TestSizeLimit(t *testing.T) {
	under := strings.Repeat("A", base64.StdEncoding.EncodedLen(MaxSizeBytes-4))
	assert.NoError(t, Check("data:image/png;base64,"+under))

	over := strings.Repeat("A", base64.StdEncoding.EncodedLen(MaxSizeBytes+1024))
	assert.ErrorIs(t, Check("data:image/png;base64,"+over), ErrTooLarge)
}
