package main

import (
	"os"

	"github.com/wonny/midas/cmd/midas/commands"
)

// main is the entry point for the Midas CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/midas [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
