package main

import (
	"os"

	"github.com/repoguide/repoguide/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
