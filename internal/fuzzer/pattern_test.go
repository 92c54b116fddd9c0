package fuzzer

import (
	"math/rand"
	"testing"

	"github.com/go-test/deep"
)

func TestFillSlotsBounds(tt *testing.T) {
	tt.Parallel()

	const (
		startPeriod   = 4
		periodLength  = 16
		amplitude     = 3
		patternLength = 64
	)

	accesses := make([]AggressorID, patternLength)
	for i := range accesses {
		accesses[i] = Placeholder
	}

	fillSlots(startPeriod, periodLength, amplitude, []AggressorID{1, 2}, accesses, patternLength)

	want := map[int]bool{
		4: true, 5: true, 6: true, 7: true, 8: true, 9: true,
		20: true, 21: true, 22: true, 23: true, 24: true, 25: true,
		36: true, 37: true, 38: true, 39: true, 40: true, 41: true,
		52: true, 53: true, 54: true, 55: true, 56: true, 57: true,
	}

	for i, id := range accesses {
		if want[i] && id == Placeholder {
			tt.Errorf("slot %d should be filled", i)
		}
		if !want[i] && id != Placeholder {
			tt.Errorf("slot %d should be PLACEHOLDER, holds %d", i, id)
		}
	}

	// Groups alternate their two members in order.
	for _, start := range []int{4, 20, 36, 52} {
		for k := 0; k < 2*amplitude; k += 2 {
			if accesses[start+k] != 1 || accesses[start+k+1] != 2 {
				tt.Errorf("slots %d,%d hold %d,%d; want 1,2",
					start+k, start+k+1, accesses[start+k], accesses[start+k+1])
			}
		}
	}
}

func buildPattern(tt *testing.T, seed int64, acts int) (*HammeringPattern, *ParameterSet) {
	tt.Helper()

	rng := rand.New(rand.NewSource(seed))
	params := NewParameterSet(acts, rng)

	pattern := NewHammeringPattern(params.BasePeriod)
	builder := NewBuilder(pattern, rng)

	if err := builder.Generate(params); err != nil {
		tt.Fatal(err)
	}

	return pattern, params
}

func TestGenerateDeterministic(tt *testing.T) {
	tt.Parallel()

	const seed = 0xDEADBEEF

	first, params := buildPattern(tt, seed, 100)
	second, _ := buildPattern(tt, seed, 100)

	first.ID, second.ID = "", ""
	if diff := deep.Equal(first, second); diff != nil {
		tt.Errorf("same seed, different patterns: %v", diff)
	}

	// Base period is a random even divisor of acts_per_trefi above the
	// minimum.
	if 100%params.BasePeriod != 0 || params.BasePeriod%2 != 0 || params.BasePeriod < 16 {
		tt.Errorf("base period %d is not an even divisor of 100 >= 16", params.BasePeriod)
	}

	k := params.NumRefreshIntervals
	if k&(k-1) != 0 || k > 16 {
		tt.Errorf("num refresh intervals %d is not a power of two in [1,16]", k)
	}

	if first.TotalActivations != 100*k {
		tt.Errorf("total activations %d, want %d", first.TotalActivations, 100*k)
	}
}

func TestGenerateFillsEverySlot(tt *testing.T) {
	tt.Parallel()

	for seed := int64(1); seed <= 20; seed++ {
		pattern, params := buildPattern(tt, seed, 100)

		for i, id := range pattern.Accesses {
			if id == Placeholder {
				tt.Fatalf("seed %d: slot %d left PLACEHOLDER", seed, i)
			}
		}

		// Every slot is accounted for by exactly one access pattern that
		// places its ID there.
		rebuilt := make([]AggressorID, len(pattern.Accesses))
		for i := range rebuilt {
			rebuilt[i] = Placeholder
		}
		for _, ap := range pattern.AccessPatterns {
			fillSlots(ap.StartOffset, ap.Frequency, ap.Amplitude, ap.Aggressors,
				rebuilt, len(rebuilt))
		}

		if diff := deep.Equal(pattern.Accesses, rebuilt); diff != nil {
			tt.Fatalf("seed %d: access patterns do not reproduce the slot vector: %v", seed, diff)
		}

		// Frequency closure: every frequency is a power-of-two multiple
		// of the base period, at most K.
		for _, ap := range pattern.AccessPatterns {
			if ap.Frequency%pattern.BasePeriod != 0 {
				tt.Fatalf("seed %d: frequency %d not a multiple of base period %d",
					seed, ap.Frequency, pattern.BasePeriod)
			}

			m := ap.Frequency / pattern.BasePeriod
			if m&(m-1) != 0 || m > params.NumRefreshIntervals {
				tt.Fatalf("seed %d: multiplicator %d not a power of two <= %d",
					seed, m, params.NumRefreshIntervals)
			}

			// Access-pattern invariants. Offsets are absolute slot
			// indices; the phase within the base period plus the group
			// must fit the period.
			if ap.StartOffset >= pattern.TotalActivations {
				tt.Fatalf("seed %d: start offset %d outside pattern of %d slots",
					seed, ap.StartOffset, pattern.TotalActivations)
			}

			phase := ap.StartOffset % pattern.BasePeriod
			if phase+ap.Amplitude*len(ap.Aggressors) > pattern.BasePeriod {
				tt.Fatalf("seed %d: group (amp %d, n %d, phase %d) overflows base period %d",
					seed, ap.Amplitude, len(ap.Aggressors), phase, pattern.BasePeriod)
			}
		}
	}
}

func TestPrefillKeepsFixedGroups(tt *testing.T) {
	tt.Parallel()

	rng := rand.New(rand.NewSource(42))
	params := NewParameterSet(100, rng)

	fixed := []AccessPattern{
		{Frequency: params.BasePeriod, Amplitude: 1, StartOffset: 0,
			Aggressors: make([]AggressorID, 2)},
	}

	pattern := NewHammeringPattern(params.BasePeriod)
	builder := NewBuilder(pattern, rng)
	builder.Prefill(params.TotalActsPattern, fixed)

	prefilledFirst := pattern.Accesses[0]
	prefilledSecond := pattern.Accesses[1]

	if prefilledFirst == Placeholder || prefilledSecond == Placeholder {
		tt.Fatal("prefill left its own slots empty")
	}

	if err := builder.Generate(params); err != nil {
		tt.Fatal(err)
	}

	if pattern.Accesses[0] != prefilledFirst || pattern.Accesses[1] != prefilledSecond {
		tt.Error("generate overwrote prefilled slots")
	}

	for i, id := range pattern.Accesses {
		if id == Placeholder {
			tt.Fatalf("slot %d left PLACEHOLDER after generate", i)
		}
	}
}

func TestAvailableMultiplicators(tt *testing.T) {
	tt.Parallel()

	got := availableMultiplicators(16)
	want := []int{1, 2, 4, 8, 16}

	if diff := deep.Equal(got, want); diff != nil {
		tt.Errorf("multiplicators: %v", diff)
	}
}
