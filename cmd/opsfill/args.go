// SPDX-License-Identifier: MPL-2.0

package cmd

import "errors"

const (
	// NoConfigFileProvidedMsg is printed when no schema path is given.
	NoConfigFileProvidedMsg = "No configuration file provided"
	// AdditionalArgsMsg warns that only the first positional argument is used.
	AdditionalArgsMsg = "Additional arguments will be ignored."
	// OperationCancelledMsg is printed when the operator cancels a prompt.
	OperationCancelledMsg = "Operation cancelled"
)

// ErrNoConfigFile is returned when no schema path is given.
var ErrNoConfigFile = errors.New(NoConfigFileProvidedMsg)

// schemaArg returns the schema path from the positional arguments and
// whether further arguments were given and will be ignored.
func schemaArg(args []string) (path string, extra bool, err error) {
	if len(args) == 0 {
		return "", false, ErrNoConfigFile
	}
	return args[0], len(args) > 1, nil
}
