// Package fetch provides the rate-limited HTTP client the pipeline and the
// seed expander share, plus the crawl admission policy.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrBadStatus marks a response outside the 2xx range. These are never
// retried.
var ErrBadStatus = errors.New("unexpected status")

// StatusError carries the status code of a non-2xx response so callers can
// react to specific codes. errors.Is(err, ErrBadStatus) matches it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected status: %d", e.Code) }

func (e *StatusError) Unwrap() error { return ErrBadStatus }

const (
	defaultRetries = 3
	defaultBackoff = time.Second
	maxBodyBytes   = 5 << 20
)

// Config holds the client knobs.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	Retries   int
}

// Client issues GET and POST requests through a shared RateLimiter. GETs
// retry transient transport failures with linear backoff; POSTs get a
// single attempt.
type Client struct {
	http      *http.Client
	limiter   *RateLimiter
	logger    *zap.Logger
	userAgent string
	retries   int
	backoff   time.Duration
}

// NewClient builds a Client around the given limiter.
func NewClient(cfg Config, limiter *RateLimiter, logger *zap.Logger) *Client {
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   limiter,
		logger:    logger,
		userAgent: cfg.UserAgent,
		retries:   retries,
		backoff:   defaultBackoff,
	}
}

// Get fetches url and returns the body. Non-2xx responses fail immediately;
// transport errors are retried with backoff base×attempt before giving up.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		body, err := c.doGet(ctx, url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrBadStatus) {
			c.logger.Debug("non-2xx response", zap.String("url", url), zap.Error(err))
			return nil, err
		}
		lastErr = err
		c.logger.Debug("fetch attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("retries", c.retries),
			zap.Error(err),
		)
		if attempt < c.retries {
			if err := sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Warn("fetch failed after retries",
		zap.String("url", url),
		zap.Int("retries", c.retries),
		zap.Error(lastErr),
	)
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", url, c.retries, lastErr)
}

// Post sends payload as JSON and returns the response body. There is no
// retry; a failed attempt is final.
func (c *Client) Post(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("post failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("non-2xx post response", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("post %s: %w", url, &StatusError{Code: resp.StatusCode})
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Debug("close response body", zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("backoff interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
