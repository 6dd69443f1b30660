package main

import (
	"os"

	"github.com/terra-clan/content-engine/cmd/contentctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
