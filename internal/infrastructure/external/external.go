package external

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const clientTimeout = 15 * time.Second

// CommentPoster pushes a helpdesk comment to an external tracker. The
// sync worker retries transient failures and marks the link broken on
// permanent ones.
type CommentPoster interface {
	Platform() string
	PostComment(ctx context.Context, externalKey, body string) error
}

// APIError is returned when the tracker answers with a non-2xx status.
type APIError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Platform, e.StatusCode, e.Body)
}

// Permanent reports whether retrying the request cannot succeed.
// Client errors are permanent except for rate limiting; everything
// else (5xx, network failures) is worth another attempt.
func Permanent(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: clientTimeout}
}
