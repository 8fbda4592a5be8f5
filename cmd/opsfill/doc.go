// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the opsfill CLI.
//
// The root command takes a JSON configuration schema, asks the external ops
// tool which keys it already knows, prompts for the rest and prints the
// answers. Subcommands inspect the opsfill configuration and explain
// diagnostics.
package cmd
