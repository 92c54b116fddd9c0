// Package forge drives fuzzing runs: generate a pattern, bind it to
// addresses, hammer, scan for flips, test reproducibility, persist, and
// optionally sweep or replay the best findings.
package forge

import (
	"math/rand"
	"time"

	"github.com/dramsec/forge/internal/dram"
	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/hammer"
	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/memory"
	"github.com/dramsec/forge/internal/timing"
)

// Forge wires the components of a run together. Everything runs on the
// calling goroutine; the only shared state is the read-only model.
type Forge struct {
	Model    *dram.Model
	Memory   *memory.Region
	Hammerer hammer.Hammerer
	Params   *fuzzer.ParameterSet

	Policy fuzzer.SchedulingPolicy
	Fence  hammer.FenceType

	// HammerMappingID and SyncMappingID name the region the pattern
	// hammers and the region REF synchronization observes.
	HammerMappingID int
	SyncMappingID   int

	DIMMID           int
	ProbesPerPattern int
	RuntimeLimit     time.Duration
	SweepBestPattern bool

	RNG *rand.Rand
	Log *log.Logger

	records []*fuzzer.PatternRecord
}

// syncRefRows is how many distinct rows the REF-sync loops rotate
// through.
const syncRefRows = 64

// reproducibilityRounds is how many times a flipping mapping is re-run to
// compute its reproducibility score.
const reproducibilityRounds = 50

// Records returns the archived pattern records accumulated so far.
func (f *Forge) Records() []*fuzzer.PatternRecord { return f.records }

// syncAddresses builds the sync address set for a mapping: rows in the
// sync region, on the bank corresponding to the mapping's bank, disjoint
// from anything the pattern touches.
func (f *Forge) syncAddresses(m *fuzzer.AddressMapping) []uintptr {
	bank := f.Model.TranslateBank(f.HammerMappingID, f.SyncMappingID, uint64(m.BankNo))

	startRow := uint64(f.RNG.Intn(f.Params.MaxRow))
	out := make([]uintptr, 0, syncRefRows)

	for i := uint64(0); i < syncRefRows; i++ {
		out = append(out, f.Model.ToVirt(dram.Addr{
			Bank:      bank,
			Row:       startRow + 2*i,
			MappingID: f.SyncMappingID,
		}))
	}

	return out
}

// doRandomAccesses touches the given rows in a loop for the duration.
// Used to reset in-DRAM sampler state between hammering runs and to jitter
// at which REF a pattern starts.
func doRandomAccesses(rows []uintptr, d time.Duration) {
	deadline := time.Now().Add(d)

	for time.Now().Before(deadline) {
		for _, addr := range rows {
			timing.Access(addr)
			timing.Flush(addr)
		}
		timing.FenceFull()
	}
}

// scanMapping checks the victim rows of a mapping against the reference
// fill. Flips are appended to the mapping unless reproducibility mode is
// on; either way they are returned to the caller together with the total
// number of corrupted bits.
func (f *Forge) scanMapping(m *fuzzer.AddressMapping, reproducibility bool) (int, []fuzzer.BitFlip) {
	cfg := f.Model.Config()
	rowBytes := uintptr(cfg.ColumnsCount())

	var flips []fuzzer.BitFlip
	totalBits := 0

	for _, row := range m.VictimRows {
		start := f.Model.ToVirt(dram.Addr{
			Bank:      uint64(m.BankNo),
			Row:       row,
			MappingID: f.HammerMappingID,
		})

		bits := f.Memory.CheckRange(start, start+rowBytes, memory.PatternRandom,
			func(addr uintptr, mask, observed byte) {
				flip := fuzzer.BitFlip{
					Address:  f.Model.FromVirt(addr),
					BitMask:  mask,
					Observed: observed,
				}
				flips = append(flips, flip)

				f.Log.Warn("Bit flip detected",
					"addr", flip.Address.String(), "mask", mask, "observed", observed)
			})

		totalBits += bits
	}

	if !reproducibility {
		m.BitFlips = append(m.BitFlips, flips...)
	}

	return totalBits, flips
}
