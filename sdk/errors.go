package sdk

import (
	"errors"
	"fmt"
)

// ErrSeedance is the root of every error returned by this package.
var ErrSeedance = errors.New("seedance")

var (
	ErrMissingCredential    = fmt.Errorf("%w: api key not found; set the ARK_API_KEY environment variable, add ARK_API_KEY to a .env file in the current directory, or pass --api-key", ErrSeedance)
	ErrAuthenticationFailed = fmt.Errorf("%w: invalid api key or authentication failed", ErrSeedance)
	ErrTaskNotFound         = fmt.Errorf("%w: task not found", ErrSeedance)
	ErrRateLimited          = fmt.Errorf("%w: rate limit exceeded, wait and retry", ErrSeedance)
	ErrInvalidRequest       = fmt.Errorf("%w: invalid request", ErrSeedance)
	ErrServerError          = fmt.Errorf("%w: server error", ErrSeedance)
	ErrUnexpectedStatus     = fmt.Errorf("%w: unexpected status", ErrSeedance)
	ErrNetwork              = fmt.Errorf("%w: network error", ErrSeedance)
	ErrTimeout              = fmt.Errorf("%w: request timeout", ErrSeedance)
	ErrPollTimeout          = fmt.Errorf("%w: task did not complete in time", ErrSeedance)
	ErrMalformedResponse    = fmt.Errorf("%w: malformed response", ErrSeedance)
)

// APIError is a classified non-200 HTTP response. Kind is one of the sentinels
// above and is what errors.Is matches against.
type APIError struct {
	Kind       error
	StatusCode int
	Code       string
	Message    string
	Body       map[string]any
	RawBody    []byte
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s (status %d): %s: %s", kindText(e.Kind), e.StatusCode, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s (status %d): %s", kindText(e.Kind), e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s (status %d)", kindText(e.Kind), e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func kindText(kind error) string {
	if kind == nil {
		return ErrUnexpectedStatus.Error()
	}
	return kind.Error()
}

// AsAPIError is a convenience around errors.As.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
