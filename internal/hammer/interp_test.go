package hammer

import (
	"errors"
	"io"
	"testing"

	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/memory"
)

func interpRegion(tt *testing.T) *memory.Region {
	tt.Helper()

	region, err := memory.Allocate(64*memory.PageSize, false, log.NewFormattedLogger(io.Discard))
	if err != nil {
		tt.Fatal(err)
	}
	tt.Cleanup(func() { _ = region.Close() })

	return region
}

func TestInterpreterRejectsEmptyInput(tt *testing.T) {
	tt.Parallel()

	in := NewInterpreter(log.NewFormattedLogger(io.Discard))

	if _, err := in.Hammer(nil, []uintptr{1, 2}, Params{}); err == nil {
		tt.Error("empty access list accepted")
	}

	if _, err := in.Hammer([]fuzzer.ScheduledAccess{{Addr: 1}}, []uintptr{1}, Params{}); err == nil {
		tt.Error("single sync address accepted")
	}
}

func TestInterpreterSyncTimeout(tt *testing.T) {
	tt.Parallel()

	region := interpRegion(tt)
	in := NewInterpreter(log.NewFormattedLogger(io.Discard))

	accesses := []fuzzer.ScheduledAccess{
		{Addr: region.Base()},
		{Addr: region.Base() + memory.PageSize},
	}
	syncRefs := []uintptr{
		region.Base() + 2*memory.PageSize,
		region.Base() + 3*memory.PageSize,
	}

	// An unreachable threshold makes the initial sync loop burn its
	// bound and give up with the tagged error instead of hanging.
	params := Params{
		ActsPerTREFI:     10,
		RefThreshold:     ^uint64(0) - 1,
		AggsForSync:      2,
		TotalActivations: 100,
	}

	data, err := in.Hammer(accesses, syncRefs, params)

	if !errors.Is(err, ErrSyncTimeout) {
		tt.Fatalf("want ErrSyncTimeout, got %v", err)
	}
	if data.TotalActivations != 0 {
		tt.Errorf("hammered %d activations before a failed initial sync", data.TotalActivations)
	}
	if data.SyncActivations == 0 {
		tt.Error("no sync activations counted on the way to the timeout")
	}
}

func TestJitterLifecycle(tt *testing.T) {
	tt.Parallel()

	if !jitAvailable {
		tt.Skip("no JIT backend on this architecture")
	}

	region := interpRegion(tt)
	j := NewJitter(log.NewFormattedLogger(io.Discard))

	accesses := []fuzzer.ScheduledAccess{
		{Addr: region.Base()},
		{Addr: region.Base() + memory.PageSize},
	}
	syncRefs := []uintptr{
		region.Base() + 2*memory.PageSize,
		region.Base() + 3*memory.PageSize,
	}

	params := Params{
		ActsPerTREFI:     10,
		RefThreshold:     100,
		AggsForSync:      2,
		TotalActivations: 100,
	}

	if err := j.Emit(accesses, syncRefs, params); err != nil {
		tt.Fatal(err)
	}
	if !j.Emitted() {
		tt.Error("Emitted() false after Emit")
	}

	// Emitting over a live function leaks executable memory and is
	// refused.
	if err := j.Emit(accesses, syncRefs, params); !errors.Is(err, ErrJitFailed) {
		tt.Errorf("second Emit: want ErrJitFailed, got %v", err)
	}

	if lines, err := Disassemble(nil); err != nil || lines != nil {
		tt.Errorf("disassembling nothing: %v, %v", lines, err)
	}

	j.Release()
	if j.Emitted() {
		tt.Error("Emitted() true after Release")
	}

	// Release is idempotent and a fresh Emit works again.
	j.Release()
	if err := j.Emit(accesses, syncRefs, params); err != nil {
		tt.Fatal(err)
	}
	j.Release()
}
