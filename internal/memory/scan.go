package memory

import (
	"bytes"
	"math/bits"

	"github.com/dramsec/forge/internal/timing"
)

// FlipFunc receives one corrupted byte: its virtual address, the XOR of
// expected and observed value, and the observed value.
type FlipFunc func(addr uintptr, mask, observed byte)

// CheckRange compares [start, end) against the reference fill and reports
// every corrupted byte through onFlip. The range is widened to page
// boundaries. Corrupted bytes are restored to their expected value before
// returning, so a second scan of an unhammered region finds the same
// memory it would have found before and reports nothing new.
//
// The return value is the total number of corrupted bits.
func (r *Region) CheckRange(start, end uintptr, pattern Pattern, onFlip FlipFunc) int {
	if r.buf == nil || start >= end {
		return 0
	}

	base := r.Base()
	limit := base + uintptr(len(r.buf))

	if start < base {
		start = base
	}
	if end > limit {
		end = limit
	}
	if start >= end {
		return 0
	}

	firstPage := int(start-base) / PageSize
	lastPage := int(end-base+PageSize-1) / PageSize

	var expected [PageSize]byte
	flippedBits := 0

	for page := firstPage; page < lastPage; page++ {
		off := page * PageSize
		if off+PageSize > len(r.buf) {
			break
		}

		FillPage(expected[:], PageSeed(page), pattern)

		actual := r.buf[off : off+PageSize]

		// Evict the page so we compare DRAM contents, not cache lines.
		for line := 0; line < PageSize; line += timing.CachelineSize {
			timing.Flush(base + uintptr(off+line))
		}
		timing.FenceFull()

		if bytes.Equal(actual, expected[:]) {
			continue
		}

		for j := 0; j < PageSize; j++ {
			if actual[j] == expected[j] {
				continue
			}

			mask := actual[j] ^ expected[j]
			if onFlip != nil {
				onFlip(base+uintptr(off+j), mask, actual[j])
			}
			flippedBits += bits.OnesCount8(mask)

			// Restore so subsequent scans and aggressors see the
			// reference value again.
			actual[j] = expected[j]
		}

		for line := 0; line < PageSize; line += timing.CachelineSize {
			timing.Flush(base + uintptr(off+line))
		}
		timing.FenceFull()
	}

	return flippedBits
}
