package main

import (
	"os"

	"github.com/dshills/bindkit/cmd/bindkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
