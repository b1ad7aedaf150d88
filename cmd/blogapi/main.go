package main

import (
	"os"

	"blogapi/cmd/blogapi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
