package main

import (
	"os"

	"github.com/abhisek/lingoflip/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
