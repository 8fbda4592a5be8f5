// SPDX-License-Identifier: MPL-2.0

// Package fill runs the opsfill pipeline: validate the schema, query the
// external config source, diff the two and ask the operator for whatever is
// still missing. Stages run strictly in sequence and the first error ends
// the run.
package fill
