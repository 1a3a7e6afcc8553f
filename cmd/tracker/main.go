package main

import (
	"os"

	"tradetrack/cmd/tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
