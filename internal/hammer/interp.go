package hammer

import (
	"fmt"

	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/timing"
)

// Interpreter walks the access list in software, inlining the timing
// primitives. It trades roughly a fifth of the JIT's throughput for
// needing no executable memory, and it is the only backend on non-amd64
// hosts.
type Interpreter struct {
	log *log.Logger
}

// NewInterpreter returns an interpreter hammerer.
func NewInterpreter(logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Interpreter{log: logger}
}

// Hammer streams through the accesses until the activation budget is
// spent, synchronizing with REF like the JIT path does.
func (in *Interpreter) Hammer(accesses []fuzzer.ScheduledAccess, syncRefs []uintptr, p Params) (Data, error) {
	if len(accesses) == 0 || len(syncRefs) < 2 {
		return Data{}, fmt.Errorf("hammer: need accesses and at least two sync addresses")
	}

	var data Data

	start := timing.Timestamp()

	// Warm the address slices themselves while evicting the lines they
	// point to, so the loop below only misses on DRAM.
	for _, ref := range syncRefs {
		timing.Access(ref)
		timing.Flush(ref)
	}
	for _, acc := range accesses {
		timing.Access(acc.Addr)
		timing.Flush(acc.Addr)
	}
	timing.FenceFull()

	syncIdx := 0

	syncRef := func() bool {
		bound := syncLoopFactor * p.ActsPerTREFI
		aggs := p.AggsForSync
		if aggs < 1 {
			aggs = 2
		}

		after := timing.TimestampSerializing()
		timing.FenceLoad()

		for round := 0; round < bound; round++ {
			before := after

			for i := 0; i < aggs; i++ {
				ref := syncRefs[syncIdx]
				syncIdx = (syncIdx + 1) % len(syncRefs)

				timing.Access(ref)
				timing.Flush(ref)
				data.SyncActivations++
			}

			timing.FenceLoad()
			after = timing.TimestampSerializing()

			delta := after - before

			// Exit on a REF-lengthened round; deltas far above the
			// threshold are interrupts, not REF, and are ignored.
			if delta > p.RefThreshold && delta < 2*p.RefThreshold {
				return true
			}
		}

		return false
	}

	// Align with the start of a refresh interval.
	if !syncRef() {
		data.ElapsedCycles = timing.Timestamp() - start
		return data, fmt.Errorf("%w: initial sync exceeded %d rounds",
			ErrSyncTimeout, syncLoopFactor*p.ActsPerTREFI)
	}

	remaining := p.TotalActivations
	sinceSync := 0

	for remaining > 0 {
		for _, acc := range accesses {
			timing.Access(acc.Addr)
			data.TotalActivations++
			remaining--

			switch p.Flushing {
			case FlushEarliest, FlushLatest:
				// The interpreter re-accesses each address once per
				// iteration, so flushing now and flushing just before
				// the next access coincide.
				timing.Flush(acc.Addr)
			}

			if acc.FenceAfter {
				switch p.Fence {
				case FenceMemory:
					timing.FenceFull()
				case FenceLoad:
					timing.FenceLoad()
				case FenceStore:
					timing.FenceStore()
				}
			}

			sinceSync++
			if p.SyncEachRef && sinceSync >= p.ActsPerTREFI {
				timing.FenceLoad()
				if !syncRef() {
					data.ElapsedCycles = timing.Timestamp() - start
					return data, fmt.Errorf("%w: mid-pattern sync exceeded bound", ErrSyncTimeout)
				}
				sinceSync = 0
			}
		}

		if p.Flushing == FlushBatched {
			for _, acc := range accesses {
				timing.Flush(acc.Addr)
			}
		}

		if p.Fencing == FenceLatest {
			timing.FenceFull()
		}

		if !p.SyncEachRef {
			if !syncRef() {
				data.ElapsedCycles = timing.Timestamp() - start
				return data, fmt.Errorf("%w: end-of-pattern sync exceeded bound", ErrSyncTimeout)
			}
		}
	}

	data.ElapsedCycles = timing.Timestamp() - start

	return data, nil
}
