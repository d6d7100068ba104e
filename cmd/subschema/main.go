package main

import (
	"os"

	"github.com/reoring/subschema/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
