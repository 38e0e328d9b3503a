// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/ctrun/config.cue (default
// ~/.config/ctrun/config.cue) or from an explicit path, validated against the
// embedded CUE schema (config_schema.cue), and overridden by CTRUN_* environment
// variables. Nested keys use underscores: ui.verbose is CTRUN_UI_VERBOSE.
// List values in the environment are comma-separated.
package config
