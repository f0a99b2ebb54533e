package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/Oudwins/seedance/internals/auth"
	"github.com/Oudwins/seedance/internals/backoff"
	"github.com/Oudwins/seedance/internals/env"
	"github.com/Oudwins/seedance/internals/timeouts"
	"github.com/Oudwins/seedance/internals/version"
)

const DefaultBaseURL = env.DefaultBaseURL

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the content generation task API. All configuration is fixed
// once NewClient returns; the client is not meant for concurrent use.
type Client struct {
	baseURL                string
	apiKey                 string
	dotEnvPath             string
	timeout                time.Duration
	maxRetries             int
	retryDelays            []time.Duration
	serviceTierUnsupported []string
	httpClient             *http.Client
	logger                 *slog.Logger
	userAgent              string
}

type Option func(*Client)

// WithAPIKey takes precedence over ARK_API_KEY and the .env file.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(apiKey)
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetry configures transport-timeout retries. With no delays the current
// schedule is kept.
func WithRetry(maxRetries int, delays ...time.Duration) Option {
	return func(c *Client) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		c.maxRetries = maxRetries
		if len(delays) > 0 {
			c.retryDelays = append([]time.Duration(nil), delays...)
		}
	}
}

// WithServiceTierUnsupported adds model prefixes whose create requests must not
// carry service_tier.
func WithServiceTierUnsupported(prefixes ...string) Option {
	return func(c *Client) {
		c.serviceTierUnsupported = append(c.serviceTierUnsupported, prefixes...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDotEnvPath changes which dotenv file is consulted for the API key.
func WithDotEnvPath(path string) Option {
	return func(c *Client) {
		c.dotEnvPath = path
	}
}

// NewClient resolves the API key and base URL up front so a missing credential
// is reported before any request is attempted.
func NewClient(opts ...Option) (*Client, error) {
	envs, err := env.Load()
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:                envs.ARK_BASE_URL,
		dotEnvPath:             auth.DotEnvFile,
		timeout:                timeouts.Request,
		maxRetries:             timeouts.MaxRetries,
		retryDelays:            append([]time.Duration(nil), timeouts.RetryDelays...),
		serviceTierUnsupported: append([]string(nil), ServiceTierUnsupportedPrefixes...),
		httpClient:             &http.Client{},
		logger:                 slog.New(slog.DiscardHandler),
		userAgent:              version.UserAgent(),
	}
	for _, opt := range opts {
		opt(client)
	}

	credential, err := auth.Resolve(client.apiKey, client.dotEnvPath)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, ErrMissingCredential
		}
		return nil, fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}
	client.apiKey = credential.APIKey
	client.logger.Debug("resolved api key", "source", credential.Source, "base_url", client.baseURL)

	return client, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// execute sends one API call, retrying only when the transport times out.
func (c *Client) execute(ctx context.Context, method, endpoint string, body any, query url.Values) (map[string]any, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request body: %w", ErrInvalidRequest, err)
		}
		payload = encoded
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := uuid.NewString()
	logger := c.logger.With("method", method, "endpoint", endpoint, "request_id", requestID)

	var result map[string]any
	attempts := 0
	policy := backoff.Retry(c.maxRetries, backoff.Schedule(c.retryDelays))
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		attempts++
		started := time.Now()
		data, err := c.roundTrip(ctx, method, target, payload, requestID)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				logger.Debug("request timed out", "attempt", attempts, "timeout", c.timeout)
				return retry.RetryableError(err)
			}
			logger.Debug("request failed", "attempt", attempts, "error", err)
			return err
		}
		logger.Debug("request done", "attempt", attempts, "elapsed", time.Since(started))
		result = data
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			return nil, fmt.Errorf("%w after %s (%d attempts)", ErrTimeout, c.timeout, attempts)
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte, requestID string) (map[string]any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Client-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	return classify(resp.StatusCode, raw)
}

// transportError maps a failed exchange onto the error taxonomy. Cancellation
// of the caller's context is passed through untouched.
func transportError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: connection error: %v", ErrNetwork, err)
	}
	return fmt.Errorf("%w: request error: %v", ErrNetwork, err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// classify turns a status code and body into either the decoded object or an
// *APIError.
func classify(status int, raw []byte) (map[string]any, error) {
	data := decodeObject(raw)
	if status == http.StatusOK {
		return data, nil
	}

	apiErr := &APIError{StatusCode: status, Body: data, RawBody: raw}
	if details, ok := data["error"].(map[string]any); ok {
		apiErr.Code = stringField(details, "code")
		apiErr.Message = stringField(details, "message")
	}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = ErrAuthenticationFailed
	case status == http.StatusNotFound:
		apiErr.Kind = ErrTaskNotFound
	case status == http.StatusTooManyRequests:
		apiErr.Kind = ErrRateLimited
	case status >= 400 && status < 500:
		apiErr.Kind = ErrInvalidRequest
		if apiErr.Message == "" {
			apiErr.Message = "Invalid request"
		}
	case status >= 500 && status < 600:
		apiErr.Kind = ErrServerError
	default:
		apiErr.Kind = ErrUnexpectedStatus
	}
	return nil, apiErr
}

// decodeObject yields an empty map for anything that is not a JSON object.
func decodeObject(raw []byte) map[string]any {
	data := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}
