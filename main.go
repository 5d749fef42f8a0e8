// SPDX-License-Identifier: MPL-2.0

package main

import cmd "dexboot-cli/cmd/dexboot"

func main() {
	cmd.Execute()
}
