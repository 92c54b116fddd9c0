package fuzzer

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/dramsec/forge/internal/log"
)

// Range is an inclusive integer interval to sample from.
type Range struct {
	Min, Max int
}

// Sample draws a uniform value from the range.
func (r Range) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}

	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d]", r.Min, r.Max) }

// ParameterSet holds every knob of a fuzzing run, split the way the
// fuzzer redraws them: semi-dynamic values are redrawn once per pattern by
// RandomizeParameters, dynamic values are redrawn per use, and static
// values are fixed for the whole run.
type ParameterSet struct {
	rng *rand.Rand

	// ActsPerTREFI is the measured (or overridden) activation budget per
	// refresh interval, rounded down to an even value.
	ActsPerTREFI int

	// Semi-dynamic: redrawn by RandomizeParameters.
	NumAggressors       int
	NumRefreshIntervals int
	TotalActsPattern    int
	BasePeriod          int
	startRow            Range

	// Dynamic: sampled per use.
	bankNo        Range
	useSequential Range
	amplitude     Range
	nSided        Range
	nSidedWeights map[int]int
	interDistance Range
	syncEachRef   Range
	aggsForSync   Range
	waitBeforeUS  Range

	// Static.
	AggIntraDistance    int
	TotalNumActivations int

	// MaxRow bounds row numbers drawn for aggressors and filler accesses.
	MaxRow int
}

// NewParameterSet builds a parameter set around a measured
// activations-per-tREFI value. Pattern generation needs an even number of
// activations, so odd measurements are rounded down.
func NewParameterSet(actsPerTREFI int, rng *rand.Rand) *ParameterSet {
	p := &ParameterSet{
		rng:          rng,
		ActsPerTREFI: (actsPerTREFI / 2) * 2,
		MaxRow:       8192,
	}
	p.RandomizeParameters()

	return p
}

// RandomizeParameters redraws the semi-dynamic parameters for the next
// pattern and resets the dynamic sampling ranges. The bank range set by
// SetBankCount is kept.
func (p *ParameterSet) RandomizeParameters() {
	p.NumAggressors = Range{4, 64}.Sample(p.rng)

	// Power of two, or aggressors would not respect their frequencies.
	p.NumRefreshIntervals = 1 << Range{0, 4}.Sample(p.rng)

	p.TotalActsPattern = p.ActsPerTREFI * p.NumRefreshIntervals
	p.BasePeriod = p.randomEvenDivisor(p.ActsPerTREFI, p.ActsPerTREFI/6)

	p.startRow = Range{0, p.MaxRow}

	p.useSequential = Range{0, 1}
	p.amplitude = Range{1, 8}
	p.nSided = Range{2, 2}
	p.nSidedWeights = map[int]int{2: 100}
	p.interDistance = Range{2, 16}
	p.syncEachRef = Range{0, 0}
	p.aggsForSync = Range{1, 2}
	p.waitBeforeUS = Range{0, 64000}

	p.AggIntraDistance = 2
	// tREFI ≈ 7.8 µs and a 64 ms retention window give ~8k REFs per
	// window at ~100 ACTs each; about six windows worth of hammering.
	p.TotalNumActivations = 5000000
}

// SetBankCount widens the bank sampling range to the discovered geometry.
func (p *ParameterSet) SetBankCount(banks int) {
	p.bankNo = Range{0, banks - 1}
}

// SetNSidedDistribution installs the sampling weights for N-sidedness.
func (p *ParameterSet) SetNSidedDistribution(r Range, weights map[int]int) {
	p.nSided = r
	p.nSidedWeights = weights
}

// NumBasePeriods returns how many base periods one pattern spans.
func (p *ParameterSet) NumBasePeriods() int {
	return p.TotalActsPattern / p.BasePeriod
}

// randomEvenDivisor returns a random even divisor of n that is at least
// min, or -1 if none exists.
func (p *ParameterSet) randomEvenDivisor(n, min int) int {
	var divisors []int

	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}

		if i%2 == 0 {
			divisors = append(divisors, i)
		}
		if other := n / i; other != i && other%2 == 0 {
			divisors = append(divisors, other)
		}
	}

	sort.Ints(divisors)
	p.rng.Shuffle(len(divisors), func(i, j int) {
		divisors[i], divisors[j] = divisors[j], divisors[i]
	})

	for _, d := range divisors {
		if d >= min {
			return d
		}
	}

	return -1
}

// RandomBankNo draws the bank a mapping hammers.
func (p *ParameterSet) RandomBankNo() int { return p.bankNo.Sample(p.rng) }

// RandomStartRow draws the first aggressor row of a mapping.
func (p *ParameterSet) RandomStartRow() int { return p.startRow.Sample(p.rng) }

// RandomUseSequential draws whether aggressors are placed sequentially.
func (p *ParameterSet) RandomUseSequential() bool { return p.useSequential.Sample(p.rng) == 1 }

// RandomAmplitude draws an amplitude bounded by max.
func (p *ParameterSet) RandomAmplitude(max int) int {
	upper := p.amplitude.Max
	if max < upper {
		upper = max
	}

	return Range{p.amplitude.Min, upper}.Sample(p.rng)
}

// RandomNSided draws an N-sidedness from the configured distribution,
// truncated to fit the remaining slots.
func (p *ParameterSet) RandomNSided(remaining int) int {
	if p.nSided.Max > remaining {
		return Range{p.nSided.Min, remaining}.Sample(p.rng)
	}

	total := 0
	for _, w := range p.nSidedWeights {
		total += w
	}

	draw := p.rng.Intn(total)
	for n := p.nSided.Min; n <= p.nSided.Max; n++ {
		draw -= p.nSidedWeights[n]
		if draw < 0 {
			return n
		}
	}

	return p.nSided.Max
}

// RandomInterDistance draws the row gap put before a fresh aggressor
// group.
func (p *ParameterSet) RandomInterDistance() int { return p.interDistance.Sample(p.rng) }

// RandomSyncEachRef draws whether the hammerer re-syncs at every REF.
func (p *ParameterSet) RandomSyncEachRef() bool { return p.syncEachRef.Sample(p.rng) == 1 }

// RandomAggsForSync draws how many sync aggressors a sync round touches.
func (p *ParameterSet) RandomAggsForSync() int { return p.aggsForSync.Sample(p.rng) }

// RandomWaitBeforeHammeringUS draws the filler-access interval before a
// hammering run.
func (p *ParameterSet) RandomWaitBeforeHammeringUS() int { return p.waitBeforeUS.Sample(p.rng) }

// LogStatic writes the run-constant parameters to the log.
func (p *ParameterSet) LogStatic(logger *log.Logger) {
	logger.Info("Static hammering parameters",
		"agg_intra_distance", p.AggIntraDistance,
		"total_num_activations", p.TotalNumActivations,
		"n_sided", p.nSided.String())
}

// LogSemiDynamic writes the per-pattern parameters to the log.
func (p *ParameterSet) LogSemiDynamic(logger *log.Logger) {
	logger.Info("Pattern parameters",
		"num_aggressors", p.NumAggressors,
		"num_refresh_intervals", p.NumRefreshIntervals,
		"total_acts_pattern", p.TotalActsPattern,
		"base_period", p.BasePeriod)
}
