package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound indicates the upstream dictionary has no entry for the word.
// A 200 response carrying an empty array counts as not found too, since the
// upstream answers that way for some unknown words.
var ErrNotFound = errors.New("word not found")

// UpstreamError reports a failed upstream call. StatusCode is the upstream's
// HTTP status for non-2xx/non-404 responses, or 0 for network and timeout
// failures.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream dictionary returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream dictionary unreachable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client defines the interface for dictionary API providers. The payload is
// the provider's response passed through verbatim; the API proxies it without
// reshaping.
type Client interface {
	Lookup(ctx context.Context, word string) (json.RawMessage, error)
	Name() string
}
