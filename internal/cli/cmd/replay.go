package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dramsec/forge/internal/cli"
	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/log"
)

// Replayer returns the replay command.
func Replayer() cli.Command {
	return &replay{}
}

type replay struct {
	cfg runConfig
}

var _ cli.Command = (*replay)(nil)

func (replay) Description() string {
	return "re-hammer archived patterns and profile their effectiveness"
}

func (replay) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `replay -load-json raw_data.json [-replay-patterns ID,...] [options]

Loads a pattern archive, picks each pattern's most effective address
mapping and re-hammers it, then probes execution parameters and sweeps
nearby rows to build an effectiveness profile.`)

	return err
}

func (r *replay) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	r.cfg.registerFlags(fs)

	return fs
}

func (r *replay) Run(_ context.Context, _ []string, _ io.Writer, logger *log.Logger) int {
	if r.cfg.loadJSON == "" {
		logger.Error("replay requires -load-json")
		return 1
	}

	state, err := r.cfg.setup(logger)
	if err != nil {
		logger.Error("Startup failed", "err", err)
		return 1
	}
	defer state.close()

	records, err := fuzzer.LoadArchive(r.cfg.loadJSON)
	if err != nil {
		logger.Error("Cannot load archive", "err", err)
		return 1
	}

	if err := state.forge.Replay(records, r.cfg.patternIDs()); err != nil {
		logger.Error("Replay failed", "err", err)
		return 1
	}

	return 0
}
