package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search orchestrator and its source
// adapters. It is built once by the CLI and passed in at construction.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the per-source result cap (default 5, hard cap 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Retries is the number of retry attempts after a transient request
	// failure (default 2).
	Retries int `json:"retries" yaml:"retries"`

	// PoolSize bounds how many adapter invocations run concurrently
	// (default 5).
	PoolSize int `json:"pool_size" yaml:"pool_size"`

	// GitHubToken is an optional bearer token for higher GitHub rate limits.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`

	// StackExchangeKey is an optional Stack Exchange application key.
	StackExchangeKey string `json:"stackexchange_key,omitempty" yaml:"stackexchange_key,omitempty"`
}
