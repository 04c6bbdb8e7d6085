// Package main is the entry point for the coinctl CLI.
package main

import (
	"os"

	"github.com/mojomint/coinctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
