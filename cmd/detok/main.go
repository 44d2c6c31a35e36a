package main

import (
	"os"

	"github.com/qbtools/detok/cmd/detok/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
