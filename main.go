package main

import (
	"os"

	"github.com/yeremiapane/pos-ledger/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
