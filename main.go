// gitconf is a CLI for reading and writing layered git configuration.
package main

import (
	"fmt"
	"os"

	"gitconf/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
