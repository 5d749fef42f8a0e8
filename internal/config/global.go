// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// globalConfig caches the loaded configuration for the process lifetime.
	globalConfig *Config
	// configPath remembers which file globalConfig was loaded from ("" for defaults).
	configPath string
	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the process-wide configuration, loading it on first use.
// Subsequent calls return the cached value until Reset or
// SetConfigFilePathOverride clears it.
func Load(ctx context.Context) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(ctx, LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	return cfg, nil
}

// Path returns the file the cached configuration was loaded from, or ""
// when defaults are in effect or nothing has been loaded yet.
func Path() string {
	return configPath
}

// SetConfigFilePathOverride sets a custom config file path and clears the
// cache so the next Load reads from it.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	globalConfig = nil
	configPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the cache and all overrides. Call from test cleanup to
// restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	configFilePathOverride = ""
	configDirOverride = ""
}
