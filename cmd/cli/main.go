// Package main is the entry point for the consulting-quote CLI.
package main

import (
	"os"

	"github.com/gedeza/business-consulting/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
