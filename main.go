// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/ctrun/cmd/ctrun"

func main() {
	cmd.Execute()
}
