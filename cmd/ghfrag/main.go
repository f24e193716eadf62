package main

import (
	"os"

	"github.com/promptpack/ghfrag/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
