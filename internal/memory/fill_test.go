package memory

import (
	"bytes"
	"testing"
)

func TestRefSequenceDeterminism(tt *testing.T) {
	tt.Parallel()

	a := NewRefSequence(0x1000)
	b := NewRefSequence(0x1000)

	for i := 0; i < 4096; i++ {
		if av, bv := a.Next(), b.Next(); av != bv {
			tt.Fatalf("sequence diverged at word %d: %#x != %#x", i, av, bv)
		}
	}

	x := NewRefSequence(0x1000)
	y := NewRefSequence(0x2000)

	if x.Next() == y.Next() {
		tt.Error("different seeds produced the same first word")
	}
}

func TestFillPagePatterns(tt *testing.T) {
	tt.Parallel()

	var random, zeroes, ones [PageSize]byte

	FillPage(random[:], PageSeed(3), PatternRandom)
	FillPage(zeroes[:], PageSeed(3), PatternZeroes)
	FillPage(ones[:], PageSeed(3), PatternOnes)

	if bytes.Equal(random[:], zeroes[:]) {
		tt.Error("random fill is all zeroes")
	}

	for i, b := range zeroes {
		if b != 0 {
			tt.Fatalf("zero fill has %#x at %d", b, i)
		}
	}

	for i, b := range ones {
		if b != 0xFF {
			tt.Fatalf("ones fill has %#x at %d", b, i)
		}
	}
}

func TestInitializeInvariant(tt *testing.T) {
	tt.Parallel()

	region, err := Allocate(8*PageSize, false, testLogger(tt))
	if err != nil {
		tt.Fatal(err)
	}
	defer region.Close()

	if err := region.Initialize(PatternRandom); err != nil {
		tt.Fatal(err)
	}

	// Every word at page p, offset j equals the (j/4)-th word of the
	// sequence seeded with PageSeed(p).
	buf := region.Bytes()
	for page := 0; page < 8; page++ {
		seq := NewRefSequence(PageSeed(page))

		for j := 0; j < PageSize; j += 4 {
			want := seq.Next()
			got := uint32(buf[page*PageSize+j]) |
				uint32(buf[page*PageSize+j+1])<<8 |
				uint32(buf[page*PageSize+j+2])<<16 |
				uint32(buf[page*PageSize+j+3])<<24

			if got != want {
				tt.Fatalf("page %d offset %d: got %#x, want %#x", page, j, got, want)
			}
		}
	}
}
