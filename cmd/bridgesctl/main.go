package main

import (
	"os"

	"github.com/gogotex/bridges/cmd/bridgesctl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
