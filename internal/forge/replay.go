package forge

import (
	"math"

	"github.com/dramsec/forge/internal/fuzzer"
)

// initialReplayReps is how many times a replayed mapping is hammered when
// its archived reproducibility score gives no better estimate.
const initialReplayReps = 10

// replayActivationSteps is the stepped total-activation range the
// execution probing walks through.
var replayActivationSteps = []int{2500000, 5000000, 10000000}

// Replay re-hammers archived patterns. For every selected record the
// mapping that triggered the most flips is rebuilt and re-run, followed by
// systematic probes over the execution parameters and a small ±row sweep,
// yielding an effectiveness profile of the pattern on the current module.
//
// With an empty id set only the overall best pattern is replayed.
func (f *Forge) Replay(records []*fuzzer.PatternRecord, patternIDs map[string]bool) error {
	selected := selectRecords(records, patternIDs)
	if len(selected) == 0 {
		f.Log.Warn("No archived pattern matches the requested ids")
		return nil
	}

	for _, record := range selected {
		mapping := record.BestMapping()
		if mapping == nil {
			f.Log.Warn("Archived pattern has no mappings", "pattern", record.ID)
			continue
		}

		f.rebuildMapping(record.HammeringPattern, mapping)

		reps := initialReplayReps
		if mapping.ReproducibilityScore > 0 {
			reps = int(math.Ceil(1 / mapping.ReproducibilityScore * 2))
		}

		f.Log.Info("Replaying pattern",
			"pattern", record.ID, "mapping", mapping.ID,
			"archived_flips", mapping.CountBitFlips(), "reps", reps)

		bits, _, err := f.hammerAndScanOnce(record.HammeringPattern, mapping, reps)
		if err != nil {
			return err
		}

		f.Log.Info("1:1 replay result", "pattern", record.ID, "flips", bits)

		if err := f.probeExecutionParameters(record.HammeringPattern, mapping); err != nil {
			return err
		}

		if err := f.miniSweep(record.HammeringPattern, mapping, reps); err != nil {
			return err
		}
	}

	return nil
}

// selectRecords filters the archive by pattern id; an empty filter keeps
// only the record with the most flips.
func selectRecords(records []*fuzzer.PatternRecord, ids map[string]bool) []*fuzzer.PatternRecord {
	if len(ids) == 0 {
		var best *fuzzer.PatternRecord
		for _, rec := range records {
			if best == nil || rec.CountBitFlips() > best.CountBitFlips() {
				best = rec
			}
		}

		if best == nil {
			return nil
		}

		return []*fuzzer.PatternRecord{best}
	}

	var out []*fuzzer.PatternRecord
	for _, rec := range records {
		if ids[rec.ID] {
			out = append(out, rec)
		}
	}

	return out
}

// rebuildMapping restores the runtime state the archive does not carry:
// bank number, row bounds, victim rows and execution defaults.
func (f *Forge) rebuildMapping(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping) {
	for _, addr := range mapping.AggressorToAddr {
		mapping.BankNo = int(addr.Bank)
		break
	}

	mapping.Shift(pattern, 0, nil) // recomputes bounds and victims

	if mapping.TotalActivations == 0 {
		mapping.TotalActivations = f.Params.TotalNumActivations
	}
	if mapping.AggsForSync == 0 {
		mapping.AggsForSync = 2
	}
}

// probeExecutionParameters systematically varies how the pattern is
// executed: sync granularity, sync aggressor count, and the total
// activation budget.
func (f *Forge) probeExecutionParameters(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping) error {
	f.Log.Info("Probing execution parameters", "pattern", pattern.ID)

	restore := *mapping
	defer func() {
		mapping.SyncEachRef = restore.SyncEachRef
		mapping.AggsForSync = restore.AggsForSync
		mapping.TotalActivations = restore.TotalActivations
	}()

	for _, syncEachRef := range []bool{false, true} {
		for _, aggsForSync := range []int{1, 2} {
			mapping.SyncEachRef = syncEachRef
			mapping.AggsForSync = aggsForSync

			bits, _, err := f.hammerAndScanOnce(pattern, mapping, 1)
			if err != nil {
				return err
			}

			f.Log.Info("Execution probe",
				"sync_each_ref", syncEachRef, "aggs_for_sync", aggsForSync, "flips", bits)
		}
	}

	for _, total := range replayActivationSteps {
		mapping.TotalActivations = total

		bits, _, err := f.hammerAndScanOnce(pattern, mapping, 1)
		if err != nil {
			return err
		}

		f.Log.Info("Execution probe", "total_activations", total, "flips", bits)
	}

	return nil
}

// miniSweepRadius is how many rows the replay sweep walks in each
// direction.
const miniSweepRadius = 10

// miniSweep shifts the mapping across ±miniSweepRadius rows and hammers
// at every offset, charting where around the original location the
// pattern still flips.
func (f *Forge) miniSweep(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping, reps int) error {
	mapping.Shift(pattern, -miniSweepRadius-1, nil)

	for offset := -miniSweepRadius; offset <= miniSweepRadius; offset++ {
		mapping.Shift(pattern, 1, nil)
		f.releaseJitter()

		bits, _, err := f.hammerAndScanOnce(pattern, mapping, reps)
		if err != nil {
			return err
		}

		f.Log.Info("Row sweep", "offset", offset, "flips", bits)
	}

	// Back to the original position.
	mapping.Shift(pattern, -miniSweepRadius, nil)

	return nil
}
