// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "compscout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the competitor discovery stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Engine is the search engine passed to the provider (default "google").
	Engine string `json:"engine" yaml:"engine"`

	// MaxResults is the maximum number of candidates to return (default 6).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AIConfig holds shared settings for stages that call the text-generation API.
type AIConfig struct {
	// Model is the model identifier routed through the provider
	// (e.g. "deepseek/deepseek-chat").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the text-generation API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CompareConfig holds settings for the comparison stage.
type CompareConfig struct {
	AIConfig `yaml:",inline"`

	// Aspects lists the product dimensions the analyst prompt asks the
	// model to compare. Empty means the default set (features, pricing,
	// user interface).
	Aspects []string `json:"aspects,omitempty" yaml:"aspects,omitempty"`
}

// ReportConfig holds settings for the report rendering stage.
type ReportConfig struct {
	// OutputDir is the directory for locally saved reports (e.g. "output/reports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DeliveryConfig holds settings for the mail delivery stage.
type DeliveryConfig struct {
	// Host is the SMTP relay hostname (default "smtp.gmail.com").
	Host string `json:"host" yaml:"host"`

	// Port is the SMTP relay port (default 465).
	Port int `json:"port" yaml:"port"`

	// Username authenticates against the relay. Defaults to Sender.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`

	// Password authenticates against the relay.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Sender is the From address on outgoing reports.
	Sender string `json:"sender" yaml:"sender"`

	// SSL selects implicit TLS (SMTPS) rather than STARTTLS.
	SSL bool `json:"ssl" yaml:"ssl"`

	// Timeout bounds the SMTP dial and send (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// TrackingConfig holds settings for the subscription registry.
type TrackingConfig struct {
	// StoreDir is the directory holding the registry database (default "track").
	StoreDir string `json:"store_dir" yaml:"store_dir"`

	// Cadence is the interval between recurring runs for a subscription
	// (default one week).
	Cadence time.Duration `json:"cadence" yaml:"cadence"`
}

// PipelineConfig groups all stage configurations for one report run.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Compare  CompareConfig  `json:"compare" yaml:"compare"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`
	Tracking TrackingConfig `json:"tracking" yaml:"tracking"`
}
