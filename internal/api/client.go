package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/PantryBook_Go/internal/domain"
	"github.com/osse101/PantryBook_Go/internal/logger"
	"github.com/osse101/PantryBook_Go/internal/metrics"
)

// APIClient handles communication with the pantry backend API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	Tokens     TokenSource
	MaxRetries int
	RetryDelay time.Duration
}

// Option customizes an APIClient
type Option func(*APIClient)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.Client = hc }
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) { c.Client.Timeout = d }
}

// WithRetries sets the retry count and base delay
func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(c *APIClient) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string, tokens TokenSource, opts ...Option) *APIClient {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
		Tokens:     tokens,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dataEnvelope is the {data: ...} wrapper the backend uses for list reads
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// retryable reports whether a call may be repeated without side effects.
// Nutrition computation is a pure function of its input.
func retryable(method, path string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodPut:
		return true
	}
	return path == domain.PathNutrition
}

// doRequest performs an HTTP request with retry logic and returns the
// response of the final attempt. Non-2xx statuses are turned into *domain.APIError.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	log := logger.FromContext(ctx)
	endpoint := strings.SplitN(path, "?", 2)[0]

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	token, err := c.Tokens.GetToken(ctx)
	if err != nil {
		log.Warn(LogMsgTokenLookupErr, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	url := c.BaseURL + path
	attempts := 1
	if retryable(method, endpoint) {
		attempts += c.MaxRetries
	}

	start := time.Now()
	defer func() {
		metrics.BackendRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			metrics.BackendRetries.WithLabelValues(endpoint).Inc()
			log.Info(LogMsgRetrying, "attempt", attempt, "path", endpoint, "delay", delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set(HeaderContentType, ContentTypeJSON)
		}
		if token != "" {
			req.Header.Set(HeaderAuthorization, BearerPrefix+token)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			metrics.BackendRequestsTotal.WithLabelValues(method, endpoint, "error").Inc()
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", endpoint)
			continue
		}

		metrics.BackendRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Debug(LogMsgRequestDone, "method", method, "path", endpoint, "status", resp.StatusCode)
			return resp, nil
		}

		apiErr := readAPIError(resp, method, endpoint)
		if resp.StatusCode < 500 {
			return nil, apiErr
		}

		lastErr = apiErr
		log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt, "path", endpoint)
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, lastErr)
}

// backoff returns the exponential delay for an attempt with up to 20% jitter
func (c *APIClient) backoff(attempt int) time.Duration {
	delay := c.RetryDelay * time.Duration(1<<uint(attempt-1))
	if delay <= 0 {
		return 0
	}
	return delay + time.Duration(rand.Int63n(int64(delay)/5+1))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// readAPIError drains and closes the body, extracting the backend's message if any
func readAPIError(resp *http.Response, method, path string) *domain.APIError {
	defer resp.Body.Close()

	apiErr := &domain.APIError{Method: method, Path: path, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &errResp); err == nil {
		if errResp.Error != "" {
			apiErr.Message = errResp.Error
		} else {
			apiErr.Message = errResp.Message
		}
	}
	return apiErr
}

// getJSON performs a request and decodes the JSON response body into out
func (c *APIClient) getJSON(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
