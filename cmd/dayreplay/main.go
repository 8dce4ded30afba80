package main

import (
	"os"

	"github.com/rustyeddy/dayreplay/cmd/dayreplay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
