package hammer

import (
	"strings"
	"testing"

	"golang.org/x/arch/x86/x86asm"

	"github.com/dramsec/forge/internal/fuzzer"
)

// decodeAll decodes a code buffer instruction by instruction, failing the
// test on the first undecodable byte sequence.
func decodeAll(tt *testing.T, code []byte) []x86asm.Inst {
	tt.Helper()

	var out []x86asm.Inst

	for pc := 0; pc < len(code); {
		inst, err := x86asm.Decode(code[pc:], 64)
		if err != nil {
			tt.Fatalf("undecodable bytes at +%#x: %v (% x)", pc, err, code[pc:min(pc+8, len(code))])
		}

		out = append(out, inst)
		pc += inst.Len
	}

	return out
}

func TestEncoderPrimitives(tt *testing.T) {
	tt.Parallel()

	a := &asm{}
	a.movRegImm64(rax, 0x2000000040)
	a.movRegMem(rcx, rax)
	a.clflushopt(rax)
	a.mfence()
	a.lfence()
	a.sfence()
	a.rdtscp()
	a.movRegReg32(rbx, rax)
	a.subRegReg32(rax, rbx)
	a.cmpEaxImm32(430)
	a.decReg64(rsi)
	a.incReg32(rdx)
	a.xorReg32(rdx)
	a.push(rbx)
	a.pop(rbx)
	a.ret()

	code, err := a.finalize()
	if err != nil {
		tt.Fatal(err)
	}

	insts := decodeAll(tt, code)

	// The decoder has no distinct CLFLUSHOPT op; the 66-prefixed form
	// folds into CLFLUSH.
	want := []x86asm.Op{
		x86asm.MOV, x86asm.MOV, x86asm.CLFLUSH,
		x86asm.MFENCE, x86asm.LFENCE, x86asm.SFENCE,
		x86asm.RDTSCP,
		x86asm.MOV, x86asm.SUB, x86asm.CMP,
		x86asm.DEC, x86asm.INC, x86asm.XOR,
		x86asm.PUSH, x86asm.POP, x86asm.RET,
	}

	if len(insts) != len(want) {
		tt.Fatalf("decoded %d instructions, want %d", len(insts), len(want))
	}

	for i, inst := range insts {
		if inst.Op != want[i] {
			tt.Errorf("instruction %d is %v, want %v", i, inst.Op, want[i])
		}
	}
}

func TestEncoderBranches(tt *testing.T) {
	tt.Parallel()

	a := &asm{}
	top := a.newLabel()
	out := a.newLabel()

	a.bind(top)
	a.cmpEaxImm32(1)
	a.jg(out)
	a.jmp(top)
	a.bind(out)
	a.ret()

	code, err := a.finalize()
	if err != nil {
		tt.Fatal(err)
	}

	insts := decodeAll(tt, code)

	// cmp, jg, jmp, ret
	if len(insts) != 4 {
		tt.Fatalf("decoded %d instructions, want 4", len(insts))
	}

	// The jg lands on the ret, the jmp goes back to the cmp.
	jg := insts[1]
	if rel, ok := jg.Args[0].(x86asm.Rel); !ok || int(rel) != 5 {
		tt.Errorf("jg target %v, want rel +5 (over the jmp)", jg.Args[0])
	}

	jmp := insts[2]
	if rel, ok := jmp.Args[0].(x86asm.Rel); !ok || int(rel) != -16 {
		tt.Errorf("jmp target %v, want rel -16 (back to cmp)", jmp.Args[0])
	}
}

func TestEncoderUnboundLabel(tt *testing.T) {
	tt.Parallel()

	a := &asm{}
	a.jmp(a.newLabel())

	if _, err := a.finalize(); err == nil {
		tt.Error("finalize accepted an unbound label")
	}
}

func TestAssembleHammerLoopDecodes(tt *testing.T) {
	tt.Parallel()

	accesses := []fuzzer.ScheduledAccess{
		{Addr: 0x2000000000},
		{Addr: 0x2000002000, FenceAfter: true},
		{Addr: 0x2000000000},
		{Addr: 0x2000004000},
	}
	syncRefs := []uintptr{0x2100000000, 0x2100002000, 0x2100004000}

	params := Params{
		Flushing:         FlushEarliest,
		Fencing:          FenceLatest,
		Fence:            FenceMemory,
		ActsPerTREFI:     100,
		RefThreshold:     430,
		AggsForSync:      2,
		TotalActivations: 1000,
	}

	code, err := assembleHammerLoop(accesses, syncRefs, params)
	if err != nil {
		tt.Fatal(err)
	}

	insts := decodeAll(tt, code)

	if insts[len(insts)-1].Op != x86asm.RET {
		tt.Errorf("last instruction is %v, want RET", insts[len(insts)-1].Op)
	}

	counts := make(map[x86asm.Op]int)
	for _, inst := range insts {
		counts[inst.Op]++
	}

	// Every access is loaded and flushed; rdtscp appears in both sync
	// loops; the loop branches are present.
	if counts[x86asm.CLFLUSH] < len(accesses)+len(syncRefs) {
		tt.Errorf("only %d flushes emitted", counts[x86asm.CLFLUSH])
	}
	if counts[x86asm.RDTSCP] < 4 {
		tt.Errorf("only %d rdtscp emitted", counts[x86asm.RDTSCP])
	}
	if counts[x86asm.JG] < 2 || counts[x86asm.JMP] < 2 {
		tt.Errorf("missing loop branches: jg=%d jmp=%d", counts[x86asm.JG], counts[x86asm.JMP])
	}

	// One FenceAfter access with FenceMemory, plus the iteration fence
	// and the FenceLatest re-access fence.
	if counts[x86asm.MFENCE] < 3 {
		tt.Errorf("only %d mfence emitted", counts[x86asm.MFENCE])
	}
}

func TestSyncEachRefEmitsMidPatternSyncs(tt *testing.T) {
	tt.Parallel()

	accesses := make([]fuzzer.ScheduledAccess, 8)
	for i := range accesses {
		accesses[i].Addr = 0x2000000000 + uintptr(i)*0x2000
	}
	syncRefs := []uintptr{0x2100000000, 0x2100002000}

	base := Params{
		ActsPerTREFI:     4,
		RefThreshold:     430,
		AggsForSync:      2,
		TotalActivations: 100,
	}

	withSync := base
	withSync.SyncEachRef = true

	plain, err := assembleHammerLoop(accesses, syncRefs, base)
	if err != nil {
		tt.Fatal(err)
	}

	synced, err := assembleHammerLoop(accesses, syncRefs, withSync)
	if err != nil {
		tt.Fatal(err)
	}

	if len(synced) <= len(plain) {
		tt.Errorf("sync-each-ref code (%d bytes) not larger than plain (%d bytes)",
			len(synced), len(plain))
	}
}

func TestDisassemble(tt *testing.T) {
	tt.Parallel()

	a := &asm{}
	a.movRegImm64(rax, 0x42)
	a.ret()

	code, err := a.finalize()
	if err != nil {
		tt.Fatal(err)
	}

	lines, err := Disassemble(code)
	if err != nil {
		tt.Fatal(err)
	}

	if len(lines) != 2 {
		tt.Fatalf("disassembled %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "mov") {
		tt.Errorf("first line %q does not mention mov", lines[0])
	}
	if !strings.Contains(lines[1], "ret") {
		tt.Errorf("second line %q does not mention ret", lines[1])
	}
}
