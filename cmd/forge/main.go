// cmd/forge is the command-line interface to FORGE, a DRAM fault-injection fuzzer.
package main

import (
	"context"
	"os"

	"github.com/dramsec/forge/internal/cli"
	"github.com/dramsec/forge/internal/cli/cmd"
)

var (
	commands = []cli.Command{
		cmd.Fuzzer(),
		cmd.Replayer(),
	}
)

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
