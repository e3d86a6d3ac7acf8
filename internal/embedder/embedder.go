// Package embedder provides implementations of the retrieval.Embedder
// interface for converting text into dense vector embeddings. Each backend
// (Ollama, OpenAI, Azure OpenAI) is a thin client over a single HTTP
// endpoint — no SDK dependencies are required.
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// postJSON posts in as JSON to url with the given extra headers and decodes
// the response body into out. It returns the HTTP status code; the body is
// decoded even for non-2xx responses so backend error messages survive into
// the caller's error.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, in, out any) (int, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// ok reports whether an HTTP status code is a success.
func ok(status int) bool {
	return status >= 200 && status < 300
}
