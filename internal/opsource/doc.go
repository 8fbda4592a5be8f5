// SPDX-License-Identifier: MPL-2.0

// Package opsource queries the external ops tool for the configuration keys
// it already resolves.
//
// The adapter runs "<command> -config -d" exactly once per FetchKnownKeys call,
// with no retry and no caching. A non-zero exit is reported as a
// *FailureError carrying the tool's stderr verbatim; a zero exit whose stdout
// is not a JSON object is a *FailureError as well. The command name is always
// passed in by the caller so tests can inject a fake tool.
package opsource
