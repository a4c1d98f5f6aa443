package main

import (
	"os"

	"github.com/Rahik-516/Noor-Web/cmd/noor/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
