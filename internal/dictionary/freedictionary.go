package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FreeDictionaryClient implements Client using the Free Dictionary API.
// API docs: https://dictionaryapi.dev/
type FreeDictionaryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFreeDictionaryClient creates a new Free Dictionary API client. The
// timeout bounds the whole call; a timed-out lookup surfaces as an
// UpstreamError, it is never retried.
func NewFreeDictionaryClient(baseURL string, timeout time.Duration) *FreeDictionaryClient {
	return &FreeDictionaryClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *FreeDictionaryClient) Name() string {
	return "freedictionary"
}

// Lookup fetches the raw definition payload for a word. Returns ErrNotFound
// for a 404 or a successful-but-empty response, and an *UpstreamError for
// every other failure.
func (c *FreeDictionaryClient) Lookup(ctx context.Context, word string) (json.RawMessage, error) {
	word = strings.TrimSpace(strings.ToLower(word))
	if word == "" {
		return nil, ErrNotFound
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "DictionaryAPI/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("read response: %w", err)}
	}

	if emptyPayload(payload) {
		return nil, ErrNotFound
	}
	if !json.Valid(payload) {
		return nil, &UpstreamError{Err: fmt.Errorf("invalid JSON for word %q", word)}
	}

	return payload, nil
}

// emptyPayload reports whether the upstream answered with nothing usable:
// an empty body, an empty array, or JSON null.
func emptyPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return true
	}
	return bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null"))
}
