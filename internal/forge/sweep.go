package forge

import (
	"errors"
	"fmt"

	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/hammer"
)

// sweepBytes is the span of memory a sweep walks the pattern across.
const sweepBytes = 256 << 20

// SweepPattern shifts a mapping down one row at a time across sweepBytes
// of memory, hammering at every position, to see where else the pattern
// works. Flips found while sweeping are logged but not recorded into the
// mapping. Each position is hammered numReps times, stopping early at the
// first flip.
func (f *Forge) SweepPattern(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping, numReps int) error {
	rowOffset := f.Model.RowToRowOffset()
	numRows := uint64(sweepBytes) / rowOffset

	f.Log.Info("Sweeping pattern over memory",
		"bytes", sweepBytes, "rows", numRows, "reps_per_position", numReps)
	f.Log.Info("Sweep columns: offset, min_row, max_row, flips, flipped_rows")

	totalBits := 0
	var allFlips []fuzzer.BitFlip

	for r := uint64(1); r <= numRows; r++ {
		mapping.Shift(pattern, 1, nil)
		f.releaseJitter()

		bits, flips, err := f.hammerAndScanOnce(pattern, mapping, numReps)
		if err != nil {
			return err
		}

		totalBits += bits
		allFlips = append(allFlips, flips...)

		f.Log.Info("Sweep position",
			"offset", r, "min_row", mapping.MinRow, "max_row", mapping.MaxRow,
			"flips", bits, "flipped_rows", flippedRows(flips))
	}

	z2o, o2z := 0, 0
	for _, flip := range allFlips {
		z2o += flip.ZeroToOne()
		o2z += flip.OneToZero()
	}

	f.Log.Info("Sweep summary", "total_corruptions", totalBits,
		"zero_to_one", z2o, "one_to_zero", o2z)

	return nil
}

// hammerAndScanOnce hammers a mapping up to numReps times in
// reproducibility mode, stopping at the first rep that flips. Sync
// timeouts abort the position, not the sweep.
func (f *Forge) hammerAndScanOnce(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping,
	numReps int,
) (int, []fuzzer.BitFlip, error) {
	accesses, _, err := mapping.Export(pattern, f.Model, f.Policy)
	if err != nil {
		f.Log.Error("Position not exportable", "mapping", mapping.ID, "err", err)
		return 0, nil, nil
	}

	params := f.hammerParams(mapping)
	syncRefs := f.syncAddresses(mapping)

	for rep := 0; rep < numReps; rep++ {
		if _, err := f.Hammerer.Hammer(accesses, syncRefs, params); err != nil {
			if errors.Is(err, hammer.ErrSyncTimeout) {
				f.Log.Warn("Sync timeout while sweeping", "mapping", mapping.ID)
				f.releaseJitter()
				return 0, nil, nil
			}

			return 0, nil, fmt.Errorf("sweep hammering: %w", err)
		}

		if bits, flips := f.scanMapping(mapping, true); bits > 0 {
			f.releaseJitter()
			return bits, flips, nil
		}
	}

	f.releaseJitter()

	return 0, nil, nil
}

func flippedRows(flips []fuzzer.BitFlip) string {
	seen := make(map[uint64]bool)
	out := ""

	for _, flip := range flips {
		if seen[flip.Address.Row] {
			continue
		}
		seen[flip.Address.Row] = true

		if out != "" {
			out += ","
		}
		out += fmt.Sprint(flip.Address.Row)
	}

	return out
}
