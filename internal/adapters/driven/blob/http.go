package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/logger"
)

const (
	// MaxBodySize caps the fetched page size.
	MaxBodySize = 10 << 20

	maxRedirects = 10
)

// Ensure HTTPProvider implements the interface.
var _ driven.BlobProvider = (*HTTPProvider)(nil)

// HTTPProvider fetches a public viewform page and extracts the embedded
// form data from its scripts.
type HTTPProvider struct {
	client    *http.Client
	userAgent string
}

// NewHTTPProvider creates an HTTP provider.
func NewHTTPProvider(timeout time.Duration, userAgent string) *HTTPProvider {
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultFetchTimeoutSeconds) * time.Second
	}
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	return &HTTPProvider{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
	}
}

// Load fetches ref and decodes the form data it embeds.
func (p *HTTPProvider) Load(ctx context.Context, ref string) (domain.Node, error) {
	target, err := domain.NormalizeURL(ref)
	if err != nil {
		return domain.Null(), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: building request: %v", domain.ErrMissingInput, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	logger.Debug("Fetching %s", target)
	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: fetching %s: %v", domain.ErrMissingInput, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Null(), fmt.Errorf("%w: fetching %s: HTTP %d", domain.ErrMissingInput, target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: reading %s: %v", domain.ErrMissingInput, target, err)
	}
	logger.Debug("Fetched %d bytes", len(body))

	return DecodeDocument(body)
}
