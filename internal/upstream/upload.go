package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type uploadResp struct {
	ImageURL string `json:"imageUrl"`
}

// UploadPhoto sends a photo as multipart form data and returns the URL the
// backend stored it under. Submissions attach photos through this call
// first; the dependent review write must not be issued unless it succeeds.
func (c *Client) UploadPhoto(ctx context.Context, token, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResp
	if err := c.send(req, token, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}
