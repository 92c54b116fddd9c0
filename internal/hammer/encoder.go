package hammer

import "fmt"

// asm is a minimal x86-64 instruction encoder, just big enough for the
// unrolled hammer loops: absolute-address loads, cache flushes, fences,
// timestamp reads, counter arithmetic and rel32 branches.
type asm struct {
	code   []byte
	labels []int    // label -> bound offset, -1 while unbound
	fixups []asmFix // rel32 slots to patch at finalize
}

type asmFix struct {
	offset int // position of the rel32 immediate
	label  int
}

// Register encodings. Only the low eight registers are needed.
type reg byte

const (
	rax reg = 0
	rcx reg = 1
	rdx reg = 2
	rbx reg = 3
	rsi reg = 6
	rdi reg = 7
)

func (a *asm) emit(bs ...byte) { a.code = append(a.code, bs...) }

func (a *asm) imm32(v uint32) {
	a.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (a *asm) imm64(v uint64) {
	a.imm32(uint32(v))
	a.imm32(uint32(v >> 32))
}

// movRegImm64 emits movabs r64, imm64.
func (a *asm) movRegImm64(r reg, v uint64) {
	a.emit(0x48, 0xB8+byte(r))
	a.imm64(v)
}

// movRegMem emits mov r64, [base].
func (a *asm) movRegMem(dst, base reg) {
	a.emit(0x48, 0x8B, byte(dst)<<3|byte(base))
}

// movRegReg32 emits mov r32dst, r32src.
func (a *asm) movRegReg32(dst, src reg) {
	a.emit(0x89, 0xC0|byte(src)<<3|byte(dst))
}

// subRegReg32 emits sub r32dst, r32src.
func (a *asm) subRegReg32(dst, src reg) {
	a.emit(0x29, 0xC0|byte(src)<<3|byte(dst))
}

// cmpEaxImm32 emits cmp eax, imm32.
func (a *asm) cmpEaxImm32(v uint32) {
	a.emit(0x3D)
	a.imm32(v)
}

// cmpRegImm8 emits cmp r64, imm8.
func (a *asm) cmpRegImm8(r reg, v int8) {
	a.emit(0x48, 0x83, 0xF8|byte(r), byte(v))
}

// incReg32 emits inc r32.
func (a *asm) incReg32(r reg) { a.emit(0xFF, 0xC0|byte(r)) }

// decReg64 emits dec r64.
func (a *asm) decReg64(r reg) { a.emit(0x48, 0xFF, 0xC8|byte(r)) }

// xorReg32 emits xor r32, r32 (zeroing idiom).
func (a *asm) xorReg32(r reg) { a.emit(0x31, 0xC0|byte(r)<<3|byte(r)) }

func (a *asm) push(r reg) { a.emit(0x50 + byte(r)) }
func (a *asm) pop(r reg)  { a.emit(0x58 + byte(r)) }

// clflushopt emits clflushopt [base].
func (a *asm) clflushopt(base reg) {
	a.emit(0x66, 0x0F, 0xAE, 0x38|byte(base))
}

func (a *asm) mfence() { a.emit(0x0F, 0xAE, 0xF0) }
func (a *asm) lfence() { a.emit(0x0F, 0xAE, 0xE8) }
func (a *asm) sfence() { a.emit(0x0F, 0xAE, 0xF8) }

// rdtscp emits rdtscp; result in edx:eax, aux in ecx.
func (a *asm) rdtscp() { a.emit(0x0F, 0x01, 0xF9) }

func (a *asm) ret() { a.emit(0xC3) }

// newLabel allocates an unbound label.
func (a *asm) newLabel() int {
	a.labels = append(a.labels, -1)
	return len(a.labels) - 1
}

// bind attaches a label to the current offset.
func (a *asm) bind(label int) {
	a.labels[label] = len(a.code)
}

func (a *asm) branch(opcode []byte, label int) {
	a.emit(opcode...)
	a.fixups = append(a.fixups, asmFix{offset: len(a.code), label: label})
	a.imm32(0)
}

// jmp emits an unconditional rel32 jump to label.
func (a *asm) jmp(label int) { a.branch([]byte{0xE9}, label) }

// jg emits a signed greater rel32 jump to label.
func (a *asm) jg(label int) { a.branch([]byte{0x0F, 0x8F}, label) }

// jle emits a signed less-or-equal rel32 jump to label.
func (a *asm) jle(label int) { a.branch([]byte{0x0F, 0x8E}, label) }

// jge emits a signed greater-or-equal rel32 jump to label.
func (a *asm) jge(label int) { a.branch([]byte{0x0F, 0x8D}, label) }

// finalize patches all branch fixups and returns the code.
func (a *asm) finalize() ([]byte, error) {
	for _, fix := range a.fixups {
		target := a.labels[fix.label]
		if target < 0 {
			return nil, fmt.Errorf("%w: unbound label %d", ErrJitFailed, fix.label)
		}

		rel := int32(target - (fix.offset + 4))
		a.code[fix.offset] = byte(rel)
		a.code[fix.offset+1] = byte(rel >> 8)
		a.code[fix.offset+2] = byte(rel >> 16)
		a.code[fix.offset+3] = byte(rel >> 24)
	}

	return a.code, nil
}
