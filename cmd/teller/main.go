package main

import (
	"os"

	"teller/cmd/teller/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
