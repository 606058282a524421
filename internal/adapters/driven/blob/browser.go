package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/logger"
)

// Ensure BrowserProvider implements the interface.
var _ driven.BlobProvider = (*BrowserProvider)(nil)

// BrowserProvider renders the form page in headless Chrome and reads the
// form data global from the live page. It is slower than HTTPProvider but
// sees pages that build their data client-side.
type BrowserProvider struct {
	timeout time.Duration

	// ControlURL connects to an existing browser instead of launching one.
	ControlURL string
}

// NewBrowserProvider creates a browser provider.
func NewBrowserProvider(timeout time.Duration) *BrowserProvider {
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultFetchTimeoutSeconds) * time.Second
	}
	return &BrowserProvider{timeout: timeout}
}

// Load navigates to ref and decodes the form data.
func (p *BrowserProvider) Load(ctx context.Context, ref string) (domain.Node, error) {
	target, err := domain.NormalizeURL(ref)
	if err != nil {
		return domain.Null(), err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	browser, closeBrowser, err := p.connect()
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: starting browser: %v", domain.ErrMissingInput, err)
	}
	defer closeBrowser()

	page, err := stealth.Page(browser)
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: creating tab: %v", domain.ErrMissingInput, err)
	}
	defer page.Close()

	logger.Debug("Rendering %s", target)
	if err := page.Context(ctx).Navigate(target); err != nil {
		return domain.Null(), fmt.Errorf("%w: navigating to %s: %v", domain.ErrMissingInput, target, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		logger.Warn("Page load did not settle: %v", err)
	}

	return decodeRendered(ctx, &rodPage{page: page})
}

// renderedPage is the part of a live tab the decoder needs.
type renderedPage interface {
	// FormData returns the form global as JSON, or "" when it is unset.
	FormData(ctx context.Context) (string, error)
	// HTML returns the serialised document.
	HTML(ctx context.Context) (string, error)
}

// decodeRendered prefers the form global and falls back to scanning the
// rendered markup.
func decodeRendered(ctx context.Context, page renderedPage) (domain.Node, error) {
	data, err := page.FormData(ctx)
	if err != nil {
		logger.Debug("Reading form data global failed: %v", err)
	}
	if err == nil && data != "" {
		return DecodeJSON([]byte(data))
	}

	logger.Debug("Form data global not set, scanning rendered page")
	html, err := page.HTML(ctx)
	if err != nil {
		return domain.Null(), fmt.Errorf("%w: reading page: %v", domain.ErrMissingInput, err)
	}
	return DecodeDocument([]byte(html))
}

type rodPage struct {
	page *rod.Page
}

func (r *rodPage) FormData(ctx context.Context) (string, error) {
	res, err := r.page.Context(ctx).Eval(`() => {
		const d = window.` + GlobalName + `;
		return d === undefined ? "" : JSON.stringify(d);
	}`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (r *rodPage) HTML(ctx context.Context) (string, error) {
	res, err := r.page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *BrowserProvider) connect() (*rod.Browser, func(), error) {
	wsURL := p.ControlURL
	var lnch *launcher.Launcher
	if wsURL == "" {
		lnch = launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := lnch.Launch()
		if err != nil {
			return nil, nil, err
		}
		wsURL = u
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if lnch != nil {
			lnch.Kill()
		}
		return nil, nil, err
	}

	return b, func() {
		_ = b.Close()
		if lnch != nil {
			lnch.Kill()
		}
	}, nil
}
