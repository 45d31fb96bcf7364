// Package metadata fetches package metadata from the remote port registry.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"github.com/guttosm/badge-service/internal/circuitbreaker"
	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/metrics"
)

var (
	// ErrNotFound is returned when the registry has no usable answer for a package.
	ErrNotFound = errors.New("package metadata not found")
	// ErrInvalidMetadata is returned when the registry answer is not a valid manifest.
	ErrInvalidMetadata = errors.New("invalid package metadata")
)

// StatusError is a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: upstream returned %d", e.URL, e.StatusCode)
}

// Config controls timeouts and retries of metadata requests.
type Config struct {
	// Timeout bounds a single attempt. Zero means no per-attempt limit.
	Timeout time.Duration
	// MaxAttempts is the total number of attempts, the first one included.
	MaxAttempts int
	// InitialDelay is the first backoff delay; later delays grow exponentially.
	InitialDelay time.Duration
	// MaxDelay caps a single backoff delay.
	MaxDelay time.Duration
	// MaxBodyBytes limits the accepted response size.
	MaxBodyBytes int64
}

// DefaultConfig returns the default request configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      5 * time.Second,
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

// Client fetches package manifests over HTTP with retries and an optional
// circuit breaker. It is safe for concurrent use.
type Client struct {
	template   URLTemplate
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	config     Config
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCircuitBreaker guards every fetch with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithConfig sets timeouts and retry behaviour.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the given URL template.
func NewClient(template URLTemplate, opts ...Option) *Client {
	c := &Client{
		template:   template,
		httpClient: &http.Client{},
		config:     DefaultConfig(),
		userAgent:  "badge-service",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.config.MaxAttempts < 1 {
		c.config.MaxAttempts = 1
	}
	if c.config.MaxBodyBytes <= 0 {
		c.config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	return c
}

// IsClientError reports whether err means the package has no usable
// metadata, as opposed to the registry being unhealthy. Breakers use it to
// avoid tripping on answers from a healthy upstream.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidMetadata)
}

// Fetch returns the metadata for packageName. Transient failures (network
// errors, 429 and 5xx answers) are retried with exponential backoff; other
// non-2xx answers yield ErrNotFound and malformed bodies ErrInvalidMetadata.
// Cancellation of ctx stops the fetch and is returned as the context error.
func (c *Client) Fetch(ctx context.Context, packageName string) (*model.PackageMetadata, error) {
	start := time.Now()
	target := c.template.Format(packageName)
	log.Info().Str("package", packageName).Str("url", target).Msg("Fetching package metadata")

	var meta *model.PackageMetadata
	attempts := 0
	fetch := func() error {
		return retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
			attempts++
			m, err := c.fetchOnce(ctx, target)
			if err != nil {
				return err
			}
			meta = m
			return nil
		})
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, fetch)
	} else {
		err = fetch()
	}

	result := fetchResult(err)
	metrics.RecordMetadataFetch(time.Since(start), result)
	if err != nil {
		log.Warn().Err(err).
			Str("package", packageName).
			Int("attempts", attempts).
			Str("result", result).
			Msg("Package metadata fetch failed")
		return nil, err
	}
	return meta, nil
}

func (c *Client) fetchOnce(ctx context.Context, target string) (*model.PackageMetadata, error) {
	attemptCtx := ctx
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrNotFound, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, retry.RetryableError(fmt.Errorf("GET %s: %w", target, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.config.MaxBodyBytes))
		return nil, retry.RetryableError(&StatusError{URL: target, StatusCode: resp.StatusCode})
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, &StatusError{URL: target, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, retry.RetryableError(fmt.Errorf("reading %s: %w", target, err))
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrInvalidMetadata, c.config.MaxBodyBytes)
	}

	return Decode(body)
}

func (c *Client) backoff() retry.Backoff {
	base := c.config.InitialDelay
	if base <= 0 {
		base = time.Millisecond
	}
	var b retry.Backoff = retry.NewExponential(base)
	if jitter := base / 10; jitter > 0 {
		b = retry.WithJitter(jitter, b)
	}
	if c.config.MaxDelay > 0 {
		b = retry.WithCappedDuration(c.config.MaxDelay, b)
	}
	return retry.WithMaxRetries(uint64(c.config.MaxAttempts-1), b)
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidMetadata):
		return "invalid"
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
