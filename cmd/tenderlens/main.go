package main

import (
	"os"

	"github.com/mfenderov/tenderlens/cmd/tenderlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
