package config

import (
	"strings"
	"time"
)

// ProviderConfig contains external ranking data vendor configuration.
// When the API key is empty no provider is wired and rank fetch jobs fail
// with an upstream error.
type ProviderConfig struct {
	// BaseURL is the vendor API endpoint.
	BaseURL string `env:"RANK_PROVIDER_BASE_URL" envDefault:"https://api.semrush.com"`

	// APIKey authenticates requests to the vendor.
	APIKey string `env:"RANK_PROVIDER_API_KEY"`

	// Database selects the vendor's regional database when a keyword has no
	// country of its own.
	Database string `env:"RANK_PROVIDER_DATABASE" envDefault:"us"`

	// Timeout bounds a single vendor request.
	Timeout time.Duration `env:"RANK_PROVIDER_TIMEOUT" envDefault:"10s"`

	// RetryLimit is the number of retries after a failed vendor request.
	RetryLimit int `env:"RANK_PROVIDER_RETRY_LIMIT" envDefault:"2"`
}

// Sanitize applies guardrails to provider configuration values.
func (p *ProviderConfig) Sanitize() {
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	p.APIKey = strings.TrimSpace(p.APIKey)
	p.Database = strings.ToLower(strings.TrimSpace(p.Database))
	if p.Database == "" {
		p.Database = "us"
	}
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	if p.RetryLimit < 0 {
		p.RetryLimit = 0
	}
}

// IsConfigured returns true when the provider can be wired.
func (p *ProviderConfig) IsConfigured() bool {
	return p.APIKey != ""
}
