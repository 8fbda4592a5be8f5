// SPDX-License-Identifier: MPL-2.0

// Package output renders the result of a fill run as a JSON, YAML or TOML
// document on stdout. Documents keep their entries in schema order; TOML is
// the exception because its encoder sorts table keys.
package output
