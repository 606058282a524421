package services

import (
	"fmt"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFetchProvider       = "fetch.provider"
	keyFetchTimeout        = "fetch.timeout_seconds"
	keyFetchUserAgent      = "fetch.user_agent"
	keyPlaceholderPatterns = "extract.placeholder_patterns"
	keySubmitRate          = "submit.rate_per_second"
	keySubmitTimeout       = "submit.timeout_seconds"
	keyHistoryEnabled      = "history.enabled"
)

// SettingsKeys lists every recognised config key.
var SettingsKeys = []string{
	keyFetchProvider,
	keyFetchTimeout,
	keyFetchUserAgent,
	keyPlaceholderPatterns,
	keySubmitRate,
	keySubmitTimeout,
	keyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Fetch: domain.FetchSettings{
			Provider:       s.getFetchProvider(defaults.Fetch.Provider),
			TimeoutSeconds: s.getInt(keyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			UserAgent:      s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
		},
		Extract: domain.ExtractSettings{
			PlaceholderPatterns: s.configStore.GetStringSlice(keyPlaceholderPatterns),
		},
		Submit: domain.SubmitSettings{
			RatePerSecond:  s.getFloat(keySubmitRate, defaults.Submit.RatePerSecond),
			TimeoutSeconds: s.getInt(keySubmitTimeout, defaults.Submit.TimeoutSeconds),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyFetchProvider, settings.Fetch.Provider.String()},
		{keyFetchTimeout, settings.Fetch.TimeoutSeconds},
		{keyFetchUserAgent, settings.Fetch.UserAgent},
		{keySubmitRate, settings.Submit.RatePerSecond},
		{keySubmitTimeout, settings.Submit.TimeoutSeconds},
		{keyHistoryEnabled, settings.History.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	patterns := settings.Extract.PlaceholderPatterns
	if patterns == nil {
		patterns = []string{}
	}
	if err := s.configStore.Set(keyPlaceholderPatterns, patterns); err != nil {
		return fmt.Errorf("save %s: %w", keyPlaceholderPatterns, err)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFetchProvider(defaultVal domain.FetchProvider) domain.FetchProvider {
	val := s.configStore.GetString(keyFetchProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.FetchProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
