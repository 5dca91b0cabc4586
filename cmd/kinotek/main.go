// Package main provides the kinotek CLI entry point.
package main

import (
	"os"

	"github.com/kinotek/kinotek/internal/cli"

	// Register database adapters.
	_ "github.com/kinotek/kinotek/pkg/adapters/postgres"
	_ "github.com/kinotek/kinotek/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
