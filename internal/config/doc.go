// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/opsfill/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/opsfill/config.cue on macOS, %APPDATA%\opsfill\config.cue
// on Windows), or from the file named by --config. Values can be overridden through
// OPSFILL_* environment variables; the external command additionally honors OPS_CMD.
//
// Configuration files are validated against an embedded CUE schema (config_schema.cue).
package config
