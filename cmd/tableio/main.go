// Package main provides the tableio CLI tool for converting and inspecting
// tabular files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
