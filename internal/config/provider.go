// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config.cue when set
	// (the --config flag). The lookup chain is skipped entirely.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration on demand from explicit options, without
// reading or mutating the cached package-level state. Command wiring
// injects one so tests can substitute their own.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// cueProvider is the production Provider, backed by the config.cue lookup
// chain: explicit path, then the platform config directory, then the
// working directory, then defaults.
type cueProvider struct{}

// NewProvider creates the production configuration provider.
func NewProvider() Provider {
	return &cueProvider{}
}

// Load resolves and validates configuration for the requested source.
func (p *cueProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
