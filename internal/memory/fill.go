package memory

import (
	"encoding/binary"
	"fmt"
)

// Pattern selects the fill written by Initialize.
type Pattern int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Pattern -output=pattern_string.go
const (
	// PatternRandom fills memory with the reproducible pseudorandom
	// sequence the scanner checks against.
	PatternRandom Pattern = iota
	// PatternZeroes fills every word with 0, exposing 0→1 flips only.
	PatternZeroes
	// PatternOnes fills every word with all-ones, exposing 1→0 flips only.
	PatternOnes
)

// RefSequence is the reproducible reference generator. It is a 64-bit
// linear congruential generator reseeded per page:
//
//	state_{n+1} = state_n · 6364136223846793005 + 1442695040888963407  (mod 2^64)
//	word_n     = uint32(state_{n+1} >> 32)
//
// with state_0 = PageSeed(page). Scanners from any version of this tool
// must use exactly this recurrence or they will disagree about what a
// "flip" is.
type RefSequence struct {
	state uint64
}

const (
	lcgMul = 6364136223846793005
	lcgAdd = 1442695040888963407
)

// PageSeed returns the generator seed for the page with the given index
// within a region: pageIndex · PageSize.
func PageSeed(pageIndex int) uint64 {
	return uint64(pageIndex) * PageSize
}

// NewRefSequence returns a generator seeded with seed.
func NewRefSequence(seed uint64) RefSequence {
	return RefSequence{state: seed}
}

// Next returns the next 32-bit word of the sequence.
func (s *RefSequence) Next() uint32 {
	s.state = s.state*lcgMul + lcgAdd
	return uint32(s.state >> 32)
}

// FillPage writes one page worth of reference words into dst, which must be
// PageSize bytes long.
func FillPage(dst []byte, seed uint64, pattern Pattern) {
	seq := NewRefSequence(seed)

	for i := 0; i < PageSize; i += 4 {
		var word uint32

		switch pattern {
		case PatternRandom:
			word = seq.Next()
		case PatternZeroes:
			word = 0
		case PatternOnes:
			word = ^uint32(0)
		}

		binary.LittleEndian.PutUint32(dst[i:], word)
	}
}

// Initialize writes the reproducible fill over every byte of the region.
// After it returns, the 4-byte word at page p, offset j, equals the
// (j/4)-th word of the sequence seeded with PageSeed(p).
func (r *Region) Initialize(pattern Pattern) error {
	if r.buf == nil {
		return fmt.Errorf("memory: initialize on closed region")
	}

	r.log.Info("Initializing memory with reproducible fill", "pattern", pattern, "bytes", len(r.buf))

	for page := 0; page*PageSize < len(r.buf); page++ {
		FillPage(r.buf[page*PageSize:(page+1)*PageSize], PageSeed(page), pattern)
	}

	return nil
}
