package main

import (
	"os"

	"github.com/siglang/sanetaka/cmd/sanetaka/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
