package main

import (
	"os"

	"github.com/acourtel/stackgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
