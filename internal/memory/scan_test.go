package memory

import (
	"os"
	"testing"

	"github.com/dramsec/forge/internal/log"
)

func testLogger(tt *testing.T) *log.Logger {
	tt.Helper()
	return log.NewFormattedLogger(os.Stderr)
}

func TestCheckRangeDetectsSingleFlip(tt *testing.T) {
	tt.Parallel()

	region, err := Allocate(4*PageSize, false, testLogger(tt))
	if err != nil {
		tt.Fatal(err)
	}
	defer region.Close()

	if err := region.Initialize(PatternRandom); err != nil {
		tt.Fatal(err)
	}

	// Invert one byte at offset 2048 of the page seeded with 0x1000
	// (page index 1).
	const victim = 1*PageSize + 2048

	buf := region.Bytes()
	original := buf[victim]
	buf[victim] = ^original

	type flip struct {
		addr           uintptr
		mask, observed byte
	}
	var flips []flip

	bits := region.CheckRange(region.Base()+1*PageSize, region.Base()+2*PageSize, PatternRandom,
		func(addr uintptr, mask, observed byte) {
			flips = append(flips, flip{addr, mask, observed})
		})

	if len(flips) != 1 {
		tt.Fatalf("got %d flips, want exactly 1", len(flips))
	}

	got := flips[0]

	if got.addr != region.Base()+victim {
		tt.Errorf("flip address %#x, want %#x", got.addr, region.Base()+victim)
	}
	if got.mask != 0xFF {
		// A full inversion flips every bit of the byte.
		tt.Errorf("flip mask %#08b, want 0b11111111", got.mask)
	}
	if got.observed != ^original {
		tt.Errorf("observed %#x, want %#x", got.observed, ^original)
	}
	if bits != 8 {
		tt.Errorf("corrupted bits %d, want 8", bits)
	}

	// The byte is restored for subsequent scans.
	if buf[victim] != original {
		tt.Errorf("byte not restored: %#x, want %#x", buf[victim], original)
	}
}

func TestCheckRangeIdempotent(tt *testing.T) {
	tt.Parallel()

	region, err := Allocate(4*PageSize, false, testLogger(tt))
	if err != nil {
		tt.Fatal(err)
	}
	defer region.Close()

	if err := region.Initialize(PatternRandom); err != nil {
		tt.Fatal(err)
	}

	region.Bytes()[2*PageSize+7] ^= 0x10

	first := region.CheckRange(region.Base(), region.Base()+uintptr(region.Size()), PatternRandom, nil)
	if first != 1 {
		tt.Fatalf("first scan found %d corrupted bits, want 1", first)
	}

	// A second scan of the untouched region finds nothing and changes
	// nothing.
	snapshot := append([]byte(nil), region.Bytes()...)

	second := region.CheckRange(region.Base(), region.Base()+uintptr(region.Size()), PatternRandom, nil)
	if second != 0 {
		tt.Errorf("second scan found %d corrupted bits, want 0", second)
	}

	for i := range snapshot {
		if region.Bytes()[i] != snapshot[i] {
			tt.Fatalf("scan mutated byte %d", i)
		}
	}
}

func TestCheckRangeClampsToRegion(tt *testing.T) {
	tt.Parallel()

	region, err := Allocate(2*PageSize, false, testLogger(tt))
	if err != nil {
		tt.Fatal(err)
	}
	defer region.Close()

	if err := region.Initialize(PatternRandom); err != nil {
		tt.Fatal(err)
	}

	bits := region.CheckRange(region.Base()-PageSize, region.Base()+uintptr(region.Size())+PageSize,
		PatternRandom, nil)
	if bits != 0 {
		tt.Errorf("clamped scan of pristine region found %d corrupted bits", bits)
	}

	if got := region.CheckRange(5, 4, PatternRandom, nil); got != 0 {
		tt.Errorf("inverted range scanned %d bits", got)
	}
}
