// SPDX-License-Identifier: MPL-2.0

// Package schema models the configuration schema document that drives an
// opsfill run and validates raw JSON documents against its structural rules.
//
// A schema document is a non-empty JSON object mapping each configuration key
// to a field object whose "type" attribute is either one of the scalar literals
// (string, int, float, bool, password) or a non-empty array of strings that
// enumerates the permitted values:
//
//	{
//	  "APP_NAME": {"type": "string"},
//	  "REPLICAS": {"type": "int"},
//	  "REGION":   {"type": ["eu-west-1", "us-east-1"]}
//	}
//
// The structural rules live in an embedded JSON Schema (config_schema.json).
// A document that does not decode as JSON fails with ErrMalformedDocument; a
// document that decodes but breaks a rule fails with ErrInvalidSchema. Both
// errors report a single fixed message.
package schema
