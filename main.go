// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/opsfill/opsfill/cmd/opsfill"

func main() {
	cmd.Execute()
}
