package main

import (
	"os"

	"github.com/mfaivrep/planif/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
