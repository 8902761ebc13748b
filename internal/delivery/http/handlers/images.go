package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const maxImageBytes = 8 << 20

// imageFrom returns the uploaded image from the multipart part named field,
// or decodes dataURI. It returns nil when neither is present.
func imageFrom(c *gin.Context, field, dataURI string) (io.Reader, error) {
	if fh, err := c.FormFile(field); err == nil {
		if fh.Size > maxImageBytes {
			return nil, domain.NewValidationError("image is too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, domain.NewValidationError("unreadable image upload")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
		if err != nil {
			return nil, domain.NewValidationError("unreadable image upload")
		}
		return bytes.NewReader(data), nil
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return nil, domain.NewValidationError("unreadable image upload")
	}

	if dataURI == "" {
		return nil, nil
	}
	return decodeDataURI(dataURI)
}

func decodeDataURI(uri string) (io.Reader, error) {
	payload := uri
	if strings.HasPrefix(uri, "data:") {
		_, after, found := strings.Cut(uri, ";base64,")
		if !found {
			return nil, domain.NewValidationError("image must be base64 encoded")
		}
		payload = after
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewValidationError("image must be base64 encoded")
	}
	if len(data) > maxImageBytes {
		return nil, domain.NewValidationError("image is too large")
	}
	return bytes.NewReader(data), nil
}
