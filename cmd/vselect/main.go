// cmd/vselect/main.go
package main

import (
	"fmt"
	"os"

	"github.com/willibrandon/vselect/cmd/vselect/commands"
)

// Version information (set via ldflags during build)
var version = "0.0.0-dev"

func main() {
	commands.Version = version

	if err := commands.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
