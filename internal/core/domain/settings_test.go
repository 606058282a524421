package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider FetchProvider
		want     bool
	}{
		{FetchProviderHTTP, true},
		{FetchProviderBrowser, true},
		{FetchProvider(""), false},
		{FetchProvider("curl"), false},
		{FetchProvider("HTTP"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.provider.IsValid())
		})
	}
}

func TestFetchProvider_String(t *testing.T) {
	assert.Equal(t, "http", FetchProviderHTTP.String())
	assert.Equal(t, "browser", FetchProviderBrowser.String())
}

func TestFetchProvider_Description(t *testing.T) {
	assert.Contains(t, FetchProviderHTTP.Description(), "HTTP")
	assert.Contains(t, FetchProviderBrowser.Description(), "Chrome")
	assert.Equal(t, unknownDescription, FetchProvider("ftp").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, FetchProviderHTTP, s.Fetch.Provider)
	assert.Equal(t, DefaultFetchTimeoutSeconds, s.Fetch.TimeoutSeconds)
	assert.Equal(t, DefaultUserAgent, s.Fetch.UserAgent)
	assert.Equal(t, DefaultSubmitRatePerSecond, s.Submit.RatePerSecond)
	assert.Equal(t, DefaultSubmitTimeoutSeconds, s.Submit.TimeoutSeconds)
	assert.True(t, s.History.Enabled)
	assert.Empty(t, s.Extract.PlaceholderPatterns)

	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"unknown provider", func(s *AppSettings) { s.Fetch.Provider = "ftp" }},
		{"empty provider", func(s *AppSettings) { s.Fetch.Provider = "" }},
		{"zero fetch timeout", func(s *AppSettings) { s.Fetch.TimeoutSeconds = 0 }},
		{"negative fetch timeout", func(s *AppSettings) { s.Fetch.TimeoutSeconds = -5 }},
		{"zero submit rate", func(s *AppSettings) { s.Submit.RatePerSecond = 0 }},
		{"negative submit rate", func(s *AppSettings) { s.Submit.RatePerSecond = -1 }},
		{"zero submit timeout", func(s *AppSettings) { s.Submit.TimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAppSettings_Validate_AcceptsBrowserAndFractionalRate(t *testing.T) {
	s := DefaultAppSettings()
	s.Fetch.Provider = FetchProviderBrowser
	s.Submit.RatePerSecond = 0.5
	s.History.Enabled = false
	s.Extract.PlaceholderPatterns = []string{`(?i)^select`}

	assert.NoError(t, s.Validate())
}
