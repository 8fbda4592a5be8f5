// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. The issue catalog holds a markdown guide per diagnostic,
// rendered with glamour by 'opsfill explain'.
package issue
