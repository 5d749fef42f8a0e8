// SPDX-License-Identifier: MPL-2.0

// Package config manages dexboot configuration loading and validation.
//
// Configuration is read from a CUE file in the platform config directory
// (or a path given via --config), validated against a CUE schema
// (config_schema.cue), and merged over defaults via Viper. The optimizer
// section is deliberately schema-open: it is passed through untouched to
// the reachability stage.
package config
