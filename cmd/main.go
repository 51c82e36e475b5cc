package main

import (
	"os"

	"github.com/LKAC-Leander/boardReview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
