package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// UpstreamError is returned when the GitHub API answers with a non-success status.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GitHub API error: %d %s", e.StatusCode, e.Message)
}

func newUpstreamError(statusCode int, message string) *UpstreamError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

// asUpstreamError converts go-github status errors into an *UpstreamError.
// Any other error is returned unchanged.
func asUpstreamError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return newUpstreamError(rateErr.Response.StatusCode, rateErr.Message)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return newUpstreamError(abuseErr.Response.StatusCode, abuseErr.Message)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return newUpstreamError(respErr.Response.StatusCode, respErr.Message)
	}
	return err
}
