package main

import (
	"os"

	"github.com/studiomezzo/studio-site-backend/cleanup"
)

func main() {
	if err := cleanup.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
