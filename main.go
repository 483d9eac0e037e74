package main

import (
	"os"

	"github.com/oledtools/monopack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
