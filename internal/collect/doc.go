// SPDX-License-Identifier: MPL-2.0

// Package collect asks the operator for every configuration key that the
// external source does not resolve yet.
//
// Rendering is delegated to a Prompter; this package only decides which kind
// of prompt each FieldSpec gets and enforces the value constraints:
//
//   - string and password take free text (password input is not echoed);
//   - int and float take text that parses as that number type, and anything
//     else is asked again rather than defaulted;
//   - bool is a yes/no choice;
//   - enums are a closed choice over the declared literals.
//
// Cancelling any prompt aborts the whole collection with ErrCancelled and no
// partial answers are returned.
package collect
