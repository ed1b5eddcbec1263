// The main package for the leadscout executable.
package main

import (
	"github.com/leadscout/leadscout/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
