package hammer

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/timing"
)

// Jitter assembles the unrolled hammer loop into executable memory and
// runs it natively. Every emitted function must be Released before the
// next Emit on the same instance.
type Jitter struct {
	log *log.Logger

	code []byte // executable mapping; nil when no function is emitted

	params Params
}

// NewJitter returns an empty jitter.
func NewJitter(logger *log.Logger) *Jitter {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Jitter{log: logger}
}

// Emitted reports whether a function is currently emitted.
func (j *Jitter) Emitted() bool { return j.code != nil }

// Release frees the emitted function. Safe to call when nothing is
// emitted.
func (j *Jitter) Release() {
	if j.code == nil {
		return
	}

	_ = unix.Munmap(j.code)
	j.code = nil
}

// Emit assembles the synchronized hammer loop for the given accesses and
// sync addresses. Emitting over a live function is refused: releasing is
// the caller's responsibility, anything else leaks executable mappings.
func (j *Jitter) Emit(accesses []fuzzer.ScheduledAccess, syncRefs []uintptr, p Params) error {
	if !jitAvailable {
		return fmt.Errorf("%w: no JIT backend for this architecture", ErrJitFailed)
	}
	if j.code != nil {
		return fmt.Errorf("%w: emit over live function; Release first", ErrJitFailed)
	}
	if len(accesses) == 0 || len(syncRefs) < 2 {
		return fmt.Errorf("%w: need accesses and at least two sync addresses", ErrJitFailed)
	}

	j.params = p

	program, err := assembleHammerLoop(accesses, syncRefs, p)
	if err != nil {
		return err
	}

	buf, err := unix.Mmap(-1, 0, len(program),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return fmt.Errorf("%w: mmap code page: %v", ErrJitFailed, err)
	}

	copy(buf, program)

	if err := unix.Mprotect(buf, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(buf)
		return fmt.Errorf("%w: mprotect code page: %v", ErrJitFailed, err)
	}

	j.code = buf
	j.log.Debug("Emitted hammer loop", "bytes", len(program), "accesses", len(accesses))

	return nil
}

// Hammer runs the emitted loop, emitting it first when none is live. A
// changed access list requires Release followed by a fresh Emit; the
// arguments only feed that first emission.
func (j *Jitter) Hammer(accesses []fuzzer.ScheduledAccess, syncRefs []uintptr, p Params) (Data, error) {
	if j.code == nil {
		if err := j.Emit(accesses, syncRefs, p); err != nil {
			return Data{}, err
		}
	}

	start := timing.Timestamp()
	syncActs := callJIT(jitEntry(j.code))
	elapsed := timing.Timestamp() - start

	return Data{
		TotalActivations: uint64(p.TotalActivations),
		SyncActivations:  syncActs,
		ElapsedCycles:    elapsed,
	}, nil
}

// assembleHammerLoop builds the machine code for one synchronized
// hammering run:
//
//	part 1  sync with the start of a refresh interval
//	part 2  the unrolled pattern, flushed and fenced per strategy
//	part 3  re-sync, then loop until the activation budget is spent
//
// Register use: rax scratch address, rcx load sink, rbx timestamp,
// rsi remaining activations, edx sync-access counter (returned in eax),
// edi sync-loop bound.
func assembleHammerLoop(accesses []fuzzer.ScheduledAccess, syncRefs []uintptr, p Params) ([]byte, error) {
	a := &asm{}

	syncIdx := 0
	nextSyncRef := func() uintptr {
		addr := syncRefs[syncIdx%(len(syncRefs)-1)]
		syncIdx++
		return addr
	}

	emitFence := func(ft FenceType) {
		switch ft {
		case FenceMemory:
			a.mfence()
		case FenceLoad:
			a.lfence()
		case FenceStore:
			a.sfence()
		}
	}

	// The emitted function is called through an ABI0 trampoline; rbx is
	// callee-saved there, everything else we touch is scratch.
	a.push(rbx)

	// ---- part 1: synchronize with the beginning of an interval.
	syncStart := a.newLabel()
	syncDone := a.newLabel()

	a.xorReg32(rdx) // sync-access counter
	a.xorReg32(rdi) // sync-loop rounds

	a.bind(syncStart)
	a.incReg32(rdi)
	for _, ref := range syncRefs {
		a.movRegImm64(rax, uint64(ref))
		a.clflushopt(rax)
	}

	a.push(rdx)
	a.rdtscp()
	a.lfence()
	a.movRegReg32(rbx, rax)
	a.pop(rdx)

	for i := 0; i < 2; i++ {
		a.movRegImm64(rax, uint64(nextSyncRef()))
		a.movRegMem(rcx, rax)
	}

	a.lfence()
	a.push(rdx)
	a.rdtscp()
	a.pop(rdx)
	a.subRegReg32(rax, rbx)
	a.cmpEaxImm32(uint32(p.RefThreshold))
	a.jg(syncDone)
	a.movRegReg32(rax, rdi)
	a.cmpEaxImm32(uint32(syncLoopFactor * p.ActsPerTREFI))
	a.jge(syncDone)
	a.jmp(syncStart)
	a.bind(syncDone)

	// ---- part 2: hammer.
	a.movRegImm64(rsi, uint64(p.TotalActivations))

	loopStart := a.newLabel()
	loopEnd := a.newLabel()

	a.bind(loopStart)
	a.cmpRegImm8(rsi, 0)
	a.jle(loopEnd)

	accessedBefore := make(map[uintptr]bool)
	sinceSync := 0

	emitSync := func() {
		emitSyncRef(a, syncRefs, nextSyncRef, p)
	}

	for _, acc := range accesses {
		addrInRax := false

		if accessedBefore[acc.Addr] {
			if p.Flushing == FlushLatest {
				a.movRegImm64(rax, uint64(acc.Addr))
				addrInRax = true
				a.clflushopt(rax)
				accessedBefore[acc.Addr] = false
			}
			if p.Fencing == FenceLatest {
				a.mfence()
				accessedBefore[acc.Addr] = false
			}
		}

		if !addrInRax {
			a.movRegImm64(rax, uint64(acc.Addr))
		}
		a.movRegMem(rcx, rax)
		accessedBefore[acc.Addr] = true

		a.decReg64(rsi)

		if p.Flushing == FlushEarliest {
			a.clflushopt(rax)
		}

		if acc.FenceAfter {
			emitFence(p.Fence)
		}

		sinceSync++
		if p.SyncEachRef && sinceSync >= p.ActsPerTREFI {
			a.mfence()
			emitSync()
			sinceSync = 0
		}
	}

	if p.Flushing == FlushBatched {
		for _, acc := range accesses {
			a.movRegImm64(rax, uint64(acc.Addr))
			a.clflushopt(rax)
		}
	}

	// Keep iterations apart so aggressor order never interleaves.
	a.mfence()

	// ---- part 3: synchronize with the end of the interval.
	emitSync()

	a.jmp(loopStart)
	a.bind(loopEnd)

	a.movRegReg32(rax, rdx)
	a.pop(rbx)
	a.ret()

	return a.finalize()
}

// emitSyncRef emits one bounded REF-sync loop: timed pairs of sync
// accesses until the delta exceeds the threshold, giving up after
// syncLoopFactor·ActsPerTREFI rounds.
func emitSyncRef(a *asm, syncRefs []uintptr, nextSyncRef func() uintptr, p Params) {
	begin := a.newLabel()
	done := a.newLabel()

	bound := uint32(syncLoopFactor * p.ActsPerTREFI)

	a.xorReg32(rdi)

	a.bind(begin)
	a.incReg32(rdi)

	a.push(rdx)
	a.rdtscp()
	a.movRegReg32(rbx, rax)
	a.pop(rdx)

	aggs := p.AggsForSync
	if aggs < 1 {
		aggs = 2
	}

	for i := 0; i < aggs; i++ {
		a.movRegImm64(rax, uint64(nextSyncRef()))
		a.movRegMem(rcx, rax)
		a.clflushopt(rax)
		a.incReg32(rdx)
	}

	a.lfence()
	a.push(rdx)
	a.rdtscp()
	a.pop(rdx)

	a.subRegReg32(rax, rbx)
	a.cmpEaxImm32(uint32(p.RefThreshold))
	a.jg(done)

	// Bail out when the threshold was never hit; the caller sees the
	// blown sync budget in the activation counter.
	a.movRegReg32(rax, rdi)
	a.cmpEaxImm32(bound)
	a.jge(done)

	a.jmp(begin)
	a.bind(done)
}
