package main

import (
	"os"

	"github.com/ingdiba-reader/ingdiba/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
