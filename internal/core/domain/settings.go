package domain

import "fmt"

const unknownDescription = "Unknown"

// FetchProvider selects how remote form pages are retrieved.
type FetchProvider string

// Available fetch providers.
const (
	// FetchProviderHTTP downloads the page and scans its scripts.
	FetchProviderHTTP FetchProvider = "http"

	// FetchProviderBrowser renders the page in headless Chrome and reads
	// the form data global directly.
	FetchProviderBrowser FetchProvider = "browser"
)

// IsValid returns true if the provider is recognised.
func (p FetchProvider) IsValid() bool {
	return p == FetchProviderHTTP || p == FetchProviderBrowser
}

// String returns the string representation.
func (p FetchProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p FetchProvider) Description() string {
	switch p {
	case FetchProviderHTTP:
		return "HTTP (download page, scan scripts)"
	case FetchProviderBrowser:
		return "Browser (headless Chrome)"
	default:
		return unknownDescription
	}
}

// FetchSettings configures page retrieval.
type FetchSettings struct {
	Provider       FetchProvider
	TimeoutSeconds int
	UserAgent      string
}

// ExtractSettings configures classification.
type ExtractSettings struct {
	// PlaceholderPatterns are extra regular expressions for option labels
	// to drop, on top of the built-in English "choose" placeholder.
	PlaceholderPatterns []string
}

// SubmitSettings configures response submission.
type SubmitSettings struct {
	RatePerSecond  float64
	TimeoutSeconds int
}

// HistorySettings configures extraction history.
type HistorySettings struct {
	Enabled bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Fetch   FetchSettings
	Extract ExtractSettings
	Submit  SubmitSettings
	History HistorySettings
}

// Default values.
const (
	DefaultFetchTimeoutSeconds  = 30
	DefaultUserAgent            = "formmap/1.0"
	DefaultSubmitRatePerSecond  = 1.0
	DefaultSubmitTimeoutSeconds = 10
)

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Fetch: FetchSettings{
			Provider:       FetchProviderHTTP,
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
			UserAgent:      DefaultUserAgent,
		},
		Submit: SubmitSettings{
			RatePerSecond:  DefaultSubmitRatePerSecond,
			TimeoutSeconds: DefaultSubmitTimeoutSeconds,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// Validate checks settings for consistency.
func (s *AppSettings) Validate() error {
	if !s.Fetch.Provider.IsValid() {
		return fmt.Errorf("%w: unknown fetch provider %q", ErrInvalidInput, s.Fetch.Provider)
	}
	if s.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", ErrInvalidInput)
	}
	if s.Submit.RatePerSecond <= 0 {
		return fmt.Errorf("%w: submit rate must be positive", ErrInvalidInput)
	}
	if s.Submit.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: submit timeout must be positive", ErrInvalidInput)
	}
	return nil
}
