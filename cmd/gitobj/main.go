package main

import (
	"os"

	"github.com/jmgilman/gitobj/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
