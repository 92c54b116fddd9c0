// Package hammer executes hammering patterns against DRAM, synchronized
// with the memory controller's REFRESH interval. Two interchangeable
// implementations are provided: a JIT emitter that assembles the unrolled
// access loop into executable memory, and an interpreter that walks the
// access list in software. Both satisfy the same contract and report the
// same HammeringData.
package hammer

import (
	"errors"

	"github.com/dramsec/forge/internal/fuzzer"
)

// Errors of the hammerers.
var (
	// ErrSyncTimeout reports a REF-sync loop that exceeded its iteration
	// bound. The current mapping is aborted; fuzzing continues.
	ErrSyncTimeout = errors.New("hammer: REF sync timed out")

	// ErrJitFailed reports that machine code could not be emitted or made
	// executable. Fatal: without a working emitter the run cannot
	// continue as configured.
	ErrJitFailed = errors.New("hammer: jit failed")
)

// FlushingStrategy says when a hammered line is flushed again.
type FlushingStrategy int

//go:generate go run golang.org/x/tools/cmd/stringer -type=FlushingStrategy,FencingStrategy,FenceType -output=strategy_string.go
const (
	// FlushEarliest flushes immediately after the access.
	FlushEarliest FlushingStrategy = iota
	// FlushBatched flushes all lines after a full pattern iteration.
	FlushBatched
	// FlushLatest flushes just before the line's next access.
	FlushLatest
)

// FencingStrategy says when ordering fences are inserted.
type FencingStrategy int

const (
	// FenceLatest fences only before re-access of a previously flushed
	// address.
	FenceLatest FencingStrategy = iota
	// FenceOmit never fences.
	FenceOmit
)

// FenceType selects the fence instruction used for scheduling-policy
// fences.
type FenceType int

const (
	FenceNone FenceType = iota
	FenceMemory
	FenceLoad
	FenceStore
)

// ParseFenceType maps the CLI fence names onto FenceType values.
func ParseFenceType(s string) (FenceType, bool) {
	switch s {
	case "none":
		return FenceNone, true
	case "mfence":
		return FenceMemory, true
	case "lfence":
		return FenceLoad, true
	case "sfence":
		return FenceStore, true
	default:
		return 0, false
	}
}

// syncLoopFactor bounds a REF-sync loop to this multiple of the
// activation budget, preventing livelock under a mis-calibrated
// threshold.
const syncLoopFactor = 16

// Params collects everything a hammerer needs besides the access list.
type Params struct {
	Flushing FlushingStrategy
	Fencing  FencingStrategy
	Fence    FenceType

	// ActsPerTREFI is the measured activation budget per refresh
	// interval; re-syncs happen on this granularity.
	ActsPerTREFI int

	// RefThreshold is the cycle count that identifies a REF-lengthened
	// access pair.
	RefThreshold uint64

	// SyncEachRef re-synchronizes after every ActsPerTREFI accesses
	// instead of once per pattern iteration.
	SyncEachRef bool

	// AggsForSync is how many sync addresses one timed sync round
	// touches.
	AggsForSync int

	// TotalActivations is the overall activation budget of one hammer
	// call.
	TotalActivations int
}

// Data reports what one hammer call did.
type Data struct {
	// TotalActivations counts the hammering accesses issued by the
	// interpreter; the JIT backend reports the activation budget it was
	// called with.
	TotalActivations uint64

	// SyncActivations counts the accesses spent inside sync loops.
	SyncActivations uint64

	// ElapsedCycles is the wall time of the call in TSC cycles.
	ElapsedCycles uint64
}

// Hammerer executes one bound pattern. SyncRefs are addresses disjoint
// from the pattern, in the same or a translated bank, used to observe
// REF.
type Hammerer interface {
	Hammer(accesses []fuzzer.ScheduledAccess, syncRefs []uintptr, p Params) (Data, error)
}
