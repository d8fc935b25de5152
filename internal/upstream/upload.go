package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadImage posts a file as multipart form data and returns the URL
// the backend stored it under. The upload endpoints answer with an
// object carrying url or imageUrl (either casing); a 2xx response
// without one is a malformed upload and reported as an error rather
// than handed downstream as a record with no image.
func (c *Client) UploadImage(ctx context.Context, path, fieldName, fileName string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	body, err := c.doRaw(ctx, http.MethodPost, path, nil, buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	for _, key := range []string{"url", "imageUrl"} {
		if u := stringKey(raw, key); u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("upload response missing image url")
}
