// Package main is the entry point for the htmlmd CLI.
package main

import (
	"os"

	"github.com/kamjin3086/html-content-processor/cmd/htmlmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
