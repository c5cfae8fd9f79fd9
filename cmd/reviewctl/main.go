package main

import (
	"os"

	"github.com/akg580/review-insights/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
