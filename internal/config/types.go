// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidFileExt is the sentinel error wrapped by InvalidFileExtError.
	ErrInvalidFileExt = errors.New("invalid file extension")
	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidIngestConfig is the sentinel error wrapped by InvalidIngestConfigError.
	ErrInvalidIngestConfig = errors.New("invalid ingest config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// FileExt is a filename extension including the leading dot (e.g. ".dex").
	FileExt string

	// InvalidFileExtError is returned when a FileExt value does not start
	// with a dot or is only a dot. It wraps ErrInvalidFileExt for errors.Is().
	InvalidFileExtError struct {
		Value FileExt
	}

	// Config holds the application configuration.
	Config struct {
		// Ingest controls discovery of container and metadata files.
		Ingest IngestConfig `json:"ingest" mapstructure:"ingest"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures the scan --watch loop.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// Optimizer is handed through to the reachability stage without
		// interpretation. Ingestion never reads individual keys.
		Optimizer map[string]any `json:"optimizer" mapstructure:"optimizer"`
	}

	// IngestConfig controls discovery of container and metadata files.
	IngestConfig struct {
		// ContainerExt is the filename extension that marks container files.
		ContainerExt FileExt `json:"container_ext" mapstructure:"container_ext"`
		// MetadataExt is the filename extension of module metadata files.
		MetadataExt FileExt `json:"metadata_ext" mapstructure:"metadata_ext"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures the scan --watch loop.
	WatchConfig struct {
		// DebounceMs is the quiet period before a rescan, in milliseconds.
		DebounceMs int `json:"debounce_ms" mapstructure:"debounce_ms"`
	}

	// InvalidIngestConfigError is returned when an IngestConfig has invalid fields.
	// It wraps ErrInvalidIngestConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidIngestConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidWatchConfigError is returned when a WatchConfig has invalid fields.
	// It wraps ErrInvalidWatchConfig for errors.Is() compatibility.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the FileExt.
func (x FileExt) String() string { return string(x) }

// IsValid returns whether the FileExt is a dot followed by at least one
// non-dot, non-whitespace character.
func (x FileExt) IsValid() (bool, []error) {
	s := string(x)
	if len(s) < 2 || !strings.HasPrefix(s, ".") {
		return false, []error{&InvalidFileExtError{Value: x}}
	}
	if strings.ContainsAny(s[1:], ". \t") {
		return false, []error{&InvalidFileExtError{Value: x}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFileExtError.
func (e *InvalidFileExtError) Error() string {
	return fmt.Sprintf("invalid file extension %q: must be a dot followed by a name (e.g. \".dex\")", e.Value)
}

// Unwrap returns ErrInvalidFileExt for errors.Is() compatibility.
func (e *InvalidFileExtError) Unwrap() error { return ErrInvalidFileExt }

// IsValid returns whether the IngestConfig has valid fields.
// It delegates to ContainerExt.IsValid() and MetadataExt.IsValid().
func (c IngestConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ContainerExt.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.MetadataExt.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidIngestConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidIngestConfigError.
func (e *InvalidIngestConfigError) Error() string {
	return fmt.Sprintf("invalid ingest config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidIngestConfig for errors.Is() compatibility.
func (e *InvalidIngestConfigError) Unwrap() error { return ErrInvalidIngestConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the WatchConfig has valid fields.
func (c WatchConfig) IsValid() (bool, []error) {
	if c.DebounceMs < 0 {
		return false, []error{&InvalidWatchConfigError{
			FieldErrors: []error{fmt.Errorf("debounce_ms must be >= 0, got %d", c.DebounceMs)},
		}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWatchConfigError.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Ingest.IsValid(), UI.IsValid(), and Watch.IsValid().
// The optimizer section is schema-open and never validated here.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Ingest.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			ContainerExt: ".dex",
			MetadataExt:  ".json",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Optimizer: map[string]any{},
	}
}
