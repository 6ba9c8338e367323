// Package main is the entry point for warpctl, the inspector CLI for a
// warp scheduler's declarative job config.
package main

import (
	"fmt"
	"os"

	"github.com/jholhewres/warp/cmd/warpctl/commands"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	rootCmd := commands.NewRootCmd(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
