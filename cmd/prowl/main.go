package main

import (
	"os"

	"github.com/prowl-osint/prowl-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
