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

// Fuzzer returns the fuzz command: the default program mode.
func Fuzzer() cli.Command {
	return &fuzz{}
}

type fuzz struct {
	cfg runConfig
}

var _ cli.Command = (*fuzz)(nil)

func (fuzz) Description() string {
	return "calibrate and run the pattern fuzzer"
}

func (fuzz) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `fuzz -dimm-id N -uarch UARCH -geometry R,BG,B -fence-type FENCE [options]

Discovers bank conflicts and the refresh budget, then fuzzes hammering
patterns against the DIMM until the runtime limit passes. Findings are
persisted to raw_data.json. With -load-json, replays archived patterns
instead.`)

	return err
}

func (f *fuzz) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("fuzz", flag.ExitOnError)
	f.cfg.registerFlags(fs)

	return fs
}

func (f *fuzz) Run(_ context.Context, _ []string, _ io.Writer, logger *log.Logger) int {
	state, err := f.cfg.setup(logger)
	if err != nil {
		logger.Error("Startup failed", "err", err)
		return 1
	}
	defer state.close()

	if f.cfg.loadJSON != "" {
		records, err := fuzzer.LoadArchive(f.cfg.loadJSON)
		if err != nil {
			logger.Error("Cannot load archive", "err", err)
			return 1
		}

		if err := state.forge.Replay(records, f.cfg.patternIDs()); err != nil {
			logger.Error("Replay failed", "err", err)
			return 1
		}

		return 0
	}

	if !f.cfg.sync {
		logger.Error("Fuzzing is only supported with synchronized hammering")
		return 1
	}

	if err := state.forge.Run(); err != nil {
		logger.Error("Fuzzing failed", "err", err)
		return 1
	}

	if err := fuzzer.WriteArchive(fuzzer.ArchiveFilename, state.forge.Records()); err != nil {
		logger.Error("Cannot persist archive", "err", err)
		return 1
	}

	logger.Info("Archive written", "path", fuzzer.ArchiveFilename,
		"patterns", len(state.forge.Records()))

	return 0
}
