package fuzzer

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/dramsec/forge/internal/dram"
)

func TestArchiveRoundTrip(tt *testing.T) {
	tt.Parallel()

	rng := rand.New(rand.NewSource(29))
	params := NewParameterSet(100, rng)

	pattern := NewHammeringPattern(params.BasePeriod)
	if err := NewBuilder(pattern, rng).Generate(params); err != nil {
		tt.Fatal(err)
	}

	mapping := NewAddressMapping(pattern)
	mapping.AggressorToAddr[1] = dram.Addr{Bank: 3, Row: 128, Col: 0, MappingID: 0}
	mapping.AggressorToAddr[2] = dram.Addr{Bank: 3, Row: 130, Col: 0, MappingID: 0}
	mapping.BitFlips = append(mapping.BitFlips, BitFlip{
		Address:  dram.Addr{Bank: 3, Row: 129},
		BitMask:  0x20,
		Observed: 0x00,
	})
	mapping.ReproducibilityScore = 0.42

	records := []*PatternRecord{{
		HammeringPattern: pattern,
		DIMMID:           7,
		AddressMappings:  []*AddressMapping{mapping},
	}}

	path := filepath.Join(tt.TempDir(), ArchiveFilename)

	if err := WriteArchive(path, records); err != nil {
		tt.Fatal(err)
	}

	loaded, err := LoadArchive(path)
	if err != nil {
		tt.Fatal(err)
	}

	if len(loaded) != 1 {
		tt.Fatalf("loaded %d records, want 1", len(loaded))
	}

	got := loaded[0]

	if got.DIMMID != 7 {
		tt.Errorf("dimm id %d, want 7", got.DIMMID)
	}
	if diff := deep.Equal(got.Accesses, pattern.Accesses); diff != nil {
		tt.Errorf("access ids: %v", diff)
	}
	if diff := deep.Equal(got.AccessPatterns, pattern.AccessPatterns); diff != nil {
		tt.Errorf("access patterns: %v", diff)
	}

	gotMapping := got.AddressMappings[0]

	if gotMapping.PatternID != pattern.ID {
		tt.Errorf("pattern id not restored: %q", gotMapping.PatternID)
	}
	if diff := deep.Equal(gotMapping.AggressorToAddr, mapping.AggressorToAddr); diff != nil {
		tt.Errorf("aggressor addresses: %v", diff)
	}
	if diff := deep.Equal(gotMapping.BitFlips, mapping.BitFlips); diff != nil {
		tt.Errorf("bit flips: %v", diff)
	}
	if gotMapping.ReproducibilityScore != 0.42 {
		tt.Errorf("reproducibility %f, want 0.42", gotMapping.ReproducibilityScore)
	}
}

func TestBestMapping(tt *testing.T) {
	tt.Parallel()

	flips := func(n int) []BitFlip {
		out := make([]BitFlip, n)
		for i := range out {
			out[i] = BitFlip{BitMask: 1}
		}
		return out
	}

	record := &PatternRecord{
		HammeringPattern: NewHammeringPattern(10),
		AddressMappings: []*AddressMapping{
			{ID: "one", BitFlips: flips(1)},
			{ID: "three", BitFlips: flips(3)},
			{ID: "two", BitFlips: flips(2)},
		},
	}

	if best := record.BestMapping(); best.ID != "three" {
		tt.Errorf("best mapping %q, want %q", best.ID, "three")
	}
	if record.CountBitFlips() != 6 {
		tt.Errorf("record flips %d, want 6", record.CountBitFlips())
	}

	empty := &PatternRecord{HammeringPattern: NewHammeringPattern(10)}
	if empty.BestMapping() != nil {
		tt.Error("best mapping of empty record is not nil")
	}
}

func TestReproducibilityScoreRange(tt *testing.T) {
	tt.Parallel()

	mapping := NewAddressMapping(NewHammeringPattern(10))

	if mapping.ReproducibilityScore != -1 {
		tt.Errorf("initial score %f, want -1 (unmeasured)", mapping.ReproducibilityScore)
	}

	for runs := 1; runs <= 50; runs++ {
		for withFlips := 0; withFlips <= runs; withFlips++ {
			score := float64(withFlips) / float64(runs)
			if score < 0 || score > 1 {
				tt.Fatalf("score %f out of [0,1]", score)
			}
		}
	}
}

func TestBitFlipCounts(tt *testing.T) {
	tt.Parallel()

	flip := BitFlip{BitMask: 0b1010_0001, Observed: 0b1000_0001}

	if flip.CorruptedBits() != 3 {
		tt.Errorf("corrupted %d, want 3", flip.CorruptedBits())
	}
	if flip.ZeroToOne() != 2 {
		tt.Errorf("0->1 %d, want 2", flip.ZeroToOne())
	}
	if flip.OneToZero() != 1 {
		tt.Errorf("1->0 %d, want 1", flip.OneToZero())
	}
}
