package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/logger"
)

// Ensure HTTPSubmitter implements the interface.
var _ driven.ResponseSubmitter = (*HTTPSubmitter)(nil)

// HTTPSubmitter posts form responses as url-encoded bodies.
type HTTPSubmitter struct {
	client    *http.Client
	limiter   *RateLimiter
	userAgent string
}

// NewHTTPSubmitter creates a submitter with a per-request timeout and a
// request rate ceiling.
func NewHTTPSubmitter(timeout time.Duration, perSecond float64, userAgent string) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultSubmitTimeoutSeconds) * time.Second
	}
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	return &HTTPSubmitter{
		client:    &http.Client{Timeout: timeout},
		limiter:   NewRateLimiter(perSecond),
		userAgent: userAgent,
	}
}

// Submit posts values to endpoint and returns the response status.
func (s *HTTPSubmitter) Submit(ctx context.Context, endpoint string, values url.Values) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting response: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := retryAfter(resp.Header.Get("Retry-After"))
		logger.Warn("Endpoint is rate limiting, backing off %s", wait)
		s.limiter.Backoff(wait)
	}

	return resp.StatusCode, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || secs <= 0 {
		return defaultBackoff
	}
	return time.Duration(secs) * time.Second
}
