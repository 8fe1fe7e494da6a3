// Package main is the entry point for the bbx-pricing CLI.
package main

import (
	"os"

	"broadbandx-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
