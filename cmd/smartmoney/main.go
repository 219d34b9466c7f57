package main

import (
	"os"

	"github.com/wonny/smartmoney/cmd/smartmoney/commands"
)

// main is the entry point for the smartmoney CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/smartmoney [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
