package forge

import (
	"errors"
	"fmt"
	"time"

	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/hammer"
)

// Run executes the main fuzzing loop until the runtime limit passes:
// randomize parameters, build a pattern, probe it with several address
// mappings, scan for flips, and track the best pattern. Findings are
// persisted by the caller via Records.
//
// The limit is only checked between iterations; there is no mid-pattern
// cancellation by design, since interrupting a REF-synchronized
// measurement leaves nothing worth keeping.
func (f *Forge) Run() error {
	f.Log.Info("Starting frequency-based fuzzing",
		"runtime_limit", f.RuntimeLimit, "probes_per_pattern", f.ProbesPerPattern)

	f.Params.LogStatic(f.Log)

	deadline := time.Now().Add(f.RuntimeLimit)

	var (
		bestRecord *fuzzer.PatternRecord
		bestFlips  int
		round      int
	)

	for time.Now().Before(deadline) {
		round++

		f.Params.RandomizeParameters()
		f.Log.Info("Generating hammering pattern", "round", round)
		f.Params.LogSemiDynamic(f.Log)

		pattern := fuzzer.NewHammeringPattern(f.Params.BasePeriod)
		builder := fuzzer.NewBuilder(pattern, f.RNG)

		if err := builder.Generate(f.Params); err != nil {
			if errors.Is(err, fuzzer.ErrPatternFillStuck) {
				f.Log.Warn("Abandoning unfillable pattern", "pattern", pattern.ID, "err", err)
				continue
			}

			return err
		}

		record := &fuzzer.PatternRecord{HammeringPattern: pattern, DIMMID: f.DIMMID}

		for probe := 0; probe < f.ProbesPerPattern; probe++ {
			mapping := fuzzer.NewAddressMapping(pattern)

			f.Log.Info("Probing pattern",
				"round", round, "pattern", pattern.ID, "probe", probe, "mapping", mapping.ID)

			if err := f.probeMappingAndScan(pattern, mapping); err != nil {
				return err
			}

			record.AddressMappings = append(record.AddressMappings, mapping)
		}

		f.records = append(f.records, record)

		if flips := record.CountBitFlips(); flips > bestFlips {
			bestRecord, bestFlips = record, flips
		}
	}

	f.logOverallStatistics(round, bestRecord, bestFlips)

	if f.SweepBestPattern && bestRecord != nil && bestFlips > 0 {
		best := bestRecord.BestMapping()
		f.Log.Info("Sweeping best pattern",
			"pattern", bestRecord.ID, "mapping", best.ID, "flips", best.CountBitFlips())

		if err := f.SweepPattern(bestRecord.HammeringPattern, best, 3); err != nil {
			return err
		}
	}

	return nil
}

// probeMappingAndScan runs one mapping of a pattern: bind addresses,
// hammer, scan, and measure reproducibility when flips show up. Local
// failures abort the mapping only.
func (f *Forge) probeMappingAndScan(pattern *fuzzer.HammeringPattern, mapping *fuzzer.AddressMapping) error {
	mapping.Randomize(pattern, f.Params, f.RNG, f.HammerMappingID, f.Log)

	accesses, skipped, err := mapping.Export(pattern, f.Model, f.Policy)
	if err != nil {
		f.Log.Error("Pattern not exportable; skipping mapping",
			"pattern", pattern.ID, "mapping", mapping.ID, "err", err)
		return nil
	}
	if skipped > 0 {
		f.Log.Warn("Skipped unmapped accesses", "mapping", mapping.ID, "skipped", skipped)
	}

	mapping.SyncEachRef = f.Params.RandomSyncEachRef()
	mapping.AggsForSync = f.Params.RandomAggsForSync()
	mapping.TotalActivations = f.Params.TotalNumActivations

	params := f.hammerParams(mapping)
	syncRefs := f.syncAddresses(mapping)

	// Filler accesses reset the in-DRAM sampler and randomize which REF
	// the pattern starts at. Rows that fall outside the region (possible
	// when the superpage fallback produced an unaligned mapping) must
	// not be touched.
	waitUS := f.Params.RandomWaitBeforeHammeringUS()
	fillerRows := mapping.RandomNonAccessedRows(f.Model, f.Params.MaxRow, 16, f.RNG, f.HammerMappingID)

	kept := fillerRows[:0]
	for _, addr := range fillerRows {
		if f.Memory.Contains(addr) {
			kept = append(kept, addr)
		}
	}
	fillerRows = kept

	if waitUS > 0 && len(fillerRows) > 0 {
		doRandomAccesses(fillerRows, time.Duration(waitUS)*time.Microsecond)
	}

	reproducibilityRuns := 0
	runsWithFlips := 0

	for round := 0; ; round++ {
		reproducibility := round > 0

		data, err := f.Hammerer.Hammer(accesses, syncRefs, params)
		if err != nil {
			if errors.Is(err, hammer.ErrSyncTimeout) {
				f.Log.Warn("REF sync timed out; aborting mapping",
					"pattern", pattern.ID, "mapping", mapping.ID, "bank", mapping.BankNo)
				f.releaseJitter()
				return nil
			}

			return fmt.Errorf("hammering mapping %s: %w", mapping.ID, err)
		}

		f.Log.Debug("Hammered pattern", "mapping", mapping.ID,
			"acts", data.TotalActivations, "sync_acts", data.SyncActivations,
			"cycles", data.ElapsedCycles)

		flippedBits, _ := f.scanMapping(mapping, reproducibility)

		if round == 0 {
			if flippedBits == 0 {
				break
			}

			f.Log.Info("Testing bit flip reproducibility", "mapping", mapping.ID)
		}

		if reproducibility {
			reproducibilityRuns++
			if flippedBits > 0 {
				runsWithFlips++
			}

			if reproducibilityRuns >= reproducibilityRounds {
				break
			}
		}

		// One retention window of unrelated traffic between runs.
		if len(fillerRows) > 0 {
			doRandomAccesses(fillerRows, 64*time.Millisecond)
		}
	}

	if reproducibilityRuns > 0 {
		mapping.ReproducibilityScore = float64(runsWithFlips) / float64(reproducibilityRuns)
		f.Log.Info("Reproducibility measured",
			"mapping", mapping.ID, "score", mapping.ReproducibilityScore,
			"runs", reproducibilityRuns, "runs_with_flips", runsWithFlips)
	}

	f.releaseJitter()

	return nil
}

// hammerParams assembles the hammer contract parameters for a mapping.
func (f *Forge) hammerParams(mapping *fuzzer.AddressMapping) hammer.Params {
	return hammer.Params{
		Flushing:         hammer.FlushEarliest,
		Fencing:          hammer.FenceLatest,
		Fence:            f.Fence,
		ActsPerTREFI:     f.Params.ActsPerTREFI,
		RefThreshold:     f.Model.Config().SyncRefThreshold,
		SyncEachRef:      mapping.SyncEachRef,
		AggsForSync:      mapping.AggsForSync,
		TotalActivations: mapping.TotalActivations,
	}
}

// releaseJitter frees the emitted function between mappings, keeping the
// one-live-function invariant of the JIT backend.
func (f *Forge) releaseJitter() {
	if j, ok := f.Hammerer.(*hammer.Jitter); ok {
		j.Release()
	}
}

func (f *Forge) logOverallStatistics(rounds int, best *fuzzer.PatternRecord, bestFlips int) {
	effective := 0
	for _, rec := range f.records {
		if rec.CountBitFlips() > 0 {
			effective++
		}
	}

	f.Log.Info("Fuzzing run finished; closing statistics",
		"tested_patterns", rounds,
		"probes_per_pattern", f.ProbesPerPattern,
		"effective_patterns", effective)

	if best != nil {
		f.Log.Info("Best pattern", "pattern", best.ID, "total_flips", bestFlips)
	} else {
		f.Log.Info("No pattern triggered bit flips")
	}
}
