package main

import (
	"os"

	"github.com/Stasshe/Latexium-sub002/cmd/latexium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
