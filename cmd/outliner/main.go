// Package main implements the outliner CLI.
// It moves a region of a C function into a new function described by an
// interchange document produced by an upstream analysis pass.
package main

import (
	"fmt"
	"os"

	"github.com/mamysa/CFunctionOutliner/cmd/outliner/commands"
)

var (
	version   = "dev"
	buildTime = ""
)

func main() {
	commands.RootCmd.Version = version
	if buildTime != "" {
		commands.RootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
	}
	commands.RootCmd.SetVersionTemplate("outliner version {{.Version}}\n")

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
