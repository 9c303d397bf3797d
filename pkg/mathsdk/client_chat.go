package mathsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Chat sends a prompt to the assistant endpoint and returns its reply as
// plain text.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	path := appendQuery("/ollama/chat", map[string]string{"prompt": prompt})

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseErrorResponse(resp, bodyBytes)
	}

	return string(bodyBytes), nil
}
