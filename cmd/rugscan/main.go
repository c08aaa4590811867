package main

import (
	"os"

	"github.com/wonny/rugscan/cmd/rugscan/commands"
)

// main is the entry point for the rugscan CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/rugscan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
