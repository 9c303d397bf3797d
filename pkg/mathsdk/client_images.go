package mathsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// imageTypeProfile selects the avatar slot on the image endpoints.
const imageTypeProfile = "PROFILE"

// UploadProfileImage uploads a new avatar as a multipart form. This is the
// only non-JSON request the client issues.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, content io.Reader) (*DefaultResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.WriteField("type", imageTypeProfile); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/images/upload"), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// DownloadProfileImage retrieves the avatar as raw bytes.
func (c *Client) DownloadProfileImage(ctx context.Context) ([]byte, error) {
	path := appendQuery("/api/images/download", map[string]string{"type": imageTypeProfile})

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp, bodyBytes)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image content: %w", err)
	}

	return content, nil
}

// DeleteProfileImage removes the avatar.
func (c *Client) DeleteProfileImage(ctx context.Context) (*DefaultResponse, error) {
	path := appendQuery("/api/images/delete", map[string]string{"type": imageTypeProfile})

	resp, err := c.doJSON(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
