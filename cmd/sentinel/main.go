// Package main is the sentinel CLI entry point.
//
// Usage:
//
//	go run ./cmd/sentinel run
//	go run ./cmd/sentinel schedule
//	go run ./cmd/sentinel levels
package main

import (
	"os"

	"PortfolioSentinel/cmd/sentinel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
