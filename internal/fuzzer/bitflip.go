package fuzzer

import (
	"math/bits"

	"github.com/dramsec/forge/internal/dram"
)

// BitFlip records one corrupted byte: where it sits in DRAM, which bits
// changed, and what was read back.
type BitFlip struct {
	Address  dram.Addr `json:"dram_addr"`
	BitMask  byte      `json:"bitmask"`
	Observed byte      `json:"data"`
}

// CorruptedBits returns how many bits flipped.
func (f BitFlip) CorruptedBits() int {
	return bits.OnesCount8(f.BitMask)
}

// ZeroToOne returns how many bits flipped from 0 to 1.
func (f BitFlip) ZeroToOne() int {
	return bits.OnesCount8(f.BitMask & f.Observed)
}

// OneToZero returns how many bits flipped from 1 to 0.
func (f BitFlip) OneToZero() int {
	return bits.OnesCount8(f.BitMask &^ f.Observed)
}
