package dram

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/memory"
	"github.com/dramsec/forge/internal/timing"
)

func measureHW(a, b uintptr) uint64 { return timing.MeasureConflict(a, b) }

func TestStats(tt *testing.T) {
	tt.Parallel()

	st := newStats([]uint64{4, 2, 8, 6, 10})

	if st.mean != 6 {
		tt.Errorf("mean: got %d, want 6", st.mean)
	}
	if st.median != 6 {
		tt.Errorf("median: got %d, want 6", st.median)
	}
	if st.min != 2 || st.max != 10 {
		tt.Errorf("min/max: got %d/%d, want 2/10", st.min, st.max)
	}
	if st.std < 2.8 || st.std > 2.9 {
		tt.Errorf("std: got %f, want ~2.83", st.std)
	}
}

// simulatedAnalyzer returns an analyzer whose measurement function models
// an ideal DIMM: pairs in the same matrix-defined bank conflict at 500
// cycles, everything else sits on a 300-cycle floor.
func simulatedAnalyzer(tt *testing.T, seed int64) (*Analyzer, *Model) {
	tt.Helper()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)

	const base = uintptr(0x2000000000)
	model.InitializeMapping(0, base)
	model.InitializeMapping(1, base+uintptr(cfg.MemorySize()))

	analyzer := NewAnalyzer(model, base, int(cfg.MemorySize()),
		rand.New(rand.NewSource(seed)), testLogger())

	analyzer.measure = func(a, b uintptr) uint64 {
		x, y := model.FromVirt(a), model.FromVirt(b)
		if x.Bank == y.Bank && x.Row != y.Row {
			return 500
		}
		return 300
	}

	return analyzer, model
}

func TestFindThresholdSplitsBimodal(tt *testing.T) {
	tt.Parallel()

	analyzer, _ := simulatedAnalyzer(tt, 7)

	threshold := analyzer.FindThreshold()
	if threshold <= 300 || threshold >= 500 {
		tt.Errorf("threshold %d outside the (300,500) gap", threshold)
	}
}

func TestFindBankConflicts(tt *testing.T) {
	tt.Parallel()

	tt.Run("buckets are consistent", func(t *testing.T) {
		t.Parallel()

		analyzer, model := simulatedAnalyzer(t, 11)
		analyzer.SetThreshold(400)

		if err := analyzer.FindBankConflicts(); err != nil {
			t.Fatal(err)
		}

		for i, bucket := range analyzer.Banks() {
			if len(bucket) < NumTargets {
				t.Fatalf("bank %d has %d targets, want >= %d", i, len(bucket), NumTargets)
			}

			want := model.FromVirt(bucket[0]).Bank
			for _, addr := range bucket[1:] {
				if got := model.FromVirt(addr).Bank; got != want {
					t.Errorf("bank %d bucket mixes banks %d and %d", i, want, got)
				}
			}
		}
	})

	tt.Run("budget exhaustion fails", func(t *testing.T) {
		t.Parallel()

		analyzer, _ := simulatedAnalyzer(t, 13)

		// With an absurd threshold nothing ever conflicts: discovery
		// must burn its budget and fail instead of spinning.
		analyzer.SetThreshold(^uint64(0) - 1)

		if err := analyzer.FindBankConflicts(); !errors.Is(err, ErrBankDiscoveryFailed) {
			t.Errorf("want ErrBankDiscoveryFailed, got %v", err)
		}
	})
}

func TestCorrespondingBanks(tt *testing.T) {
	tt.Parallel()

	analyzer, model := simulatedAnalyzer(tt, 17)
	analyzer.SetThreshold(400)

	if err := analyzer.FindBankConflicts(); err != nil {
		tt.Fatal(err)
	}

	table, err := analyzer.CorrespondingBanks(1)
	if err != nil {
		tt.Fatal(err)
	}

	// The simulated DIMM maps both regions identically, so the table is
	// the identity on the buckets' own banks.
	for b, bucket := range analyzer.Banks() {
		want := model.FromVirt(bucket[0]).Bank
		if table[b] != want {
			tt.Errorf("bank %d translates to %d, want %d", b, table[b], want)
		}
	}
}

// The remaining analyzer behavior depends on real DRAM timing. These run
// only on a prepared machine.
func TestAnalyzerOnHardware(tt *testing.T) {
	if os.Getenv("FORGE_HW_TESTS") == "" {
		tt.Skip("set FORGE_HW_TESTS to run timing-dependent tests")
	}

	region, err := memory.Allocate(memory.DefaultSize, true, testLogger())
	if err != nil {
		tt.Fatalf("superpage required: %v", err)
	}
	defer region.Close()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)
	model.InitializeMapping(0, region.Base())

	analyzer := NewAnalyzer(model, region.Base(), region.Size(),
		rand.New(rand.NewSource(1)), testLogger())

	// Conflict self-consistency: two addresses from one bucket measure
	// above the threshold, addresses from different buckets below.
	const thresh = 430
	analyzer.SetThreshold(thresh)

	if err := analyzer.FindBankConflicts(); err != nil {
		tt.Fatal(err)
	}

	banks := analyzer.Banks()

	if got := measureHW(banks[0][0], banks[0][1]); got <= thresh {
		tt.Errorf("same-bank pair measured %d, want > %d", got, thresh)
	}
	if got := measureHW(banks[0][0], banks[1][0]); got > thresh {
		tt.Errorf("cross-bank pair measured %d, want <= %d", got, thresh)
	}

	acts, err := analyzer.CountActsPerRefresh()
	if err != nil {
		tt.Fatal(err)
	}
	if acts < 10 {
		tt.Errorf("implausible acts/tREFI: %d", acts)
	}
}

func testLogger() *log.Logger {
	return log.NewFormattedLogger(os.Stderr)
}
