package fuzzer

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrPatternFillStuck reports that the builder could not fill the
// remaining slots under the drawn constraints. The pattern is abandoned
// and fuzzing continues with a fresh one.
var ErrPatternFillStuck = errors.New("fuzzer: pattern fill stuck")

// AccessPattern describes one aggressor group inside a pattern: the group
// is accessed amplitude times in a row, at every frequency-th slot,
// starting at StartOffset, an absolute slot index into the pattern.
type AccessPattern struct {
	Frequency   int           `json:"frequency"`
	Amplitude   int           `json:"amplitude"`
	StartOffset int           `json:"start_offset"`
	Aggressors  []AggressorID `json:"aggressors"`
}

// HammeringPattern is an abstract hammering template: a flat slot vector
// of aggressor IDs plus the access patterns that produced it. It carries
// no addresses; any number of AddressMappings can bind it.
type HammeringPattern struct {
	ID string `json:"id"`

	BasePeriod          int `json:"base_period"`
	MaxPeriod           int `json:"max_period"`
	TotalActivations    int `json:"total_activations"`
	NumRefreshIntervals int `json:"num_refresh_intervals"`

	Accesses       []AggressorID   `json:"access_ids"`
	AccessPatterns []AccessPattern `json:"agg_access_patterns"`
}

// NewHammeringPattern returns an empty pattern with a fresh instance id.
func NewHammeringPattern(basePeriod int) *HammeringPattern {
	return &HammeringPattern{ID: newInstanceID(), BasePeriod: basePeriod}
}

// AccessPatternByAggressor returns the access pattern that owns id.
func (hp *HammeringPattern) AccessPatternByAggressor(id AggressorID) (AccessPattern, bool) {
	for _, ap := range hp.AccessPatterns {
		for _, agg := range ap.Aggressors {
			if agg == id {
				return ap, true
			}
		}
	}

	return AccessPattern{}, false
}

// AggressorIDs returns the distinct IDs used in the pattern, in first-use
// order.
func (hp *HammeringPattern) AggressorIDs() []AggressorID {
	seen := make(map[AggressorID]bool)
	var ids []AggressorID

	for _, ap := range hp.AccessPatterns {
		for _, id := range ap.Aggressors {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return ids
}

// Builder fills a HammeringPattern with frequency-based aggressor
// accesses.
type Builder struct {
	pattern *HammeringPattern
	rng     *rand.Rand

	idCounter AggressorID
}

// NewBuilder returns a builder writing into pattern. The rng drives every
// random draw of the builder itself; pass a seeded source for
// reproducible patterns.
func NewBuilder(pattern *HammeringPattern, rng *rand.Rand) *Builder {
	return &Builder{pattern: pattern, rng: rng, idCounter: 1}
}

// randomGaussianIndex draws an index into a list of length n from a
// normal distribution centered on the middle element.
func (b *Builder) randomGaussianIndex(n int) int {
	mean := n / 2
	if n%2 == 0 {
		mean = n/2 - 1
	}

	for {
		idx := int(b.rng.NormFloat64() + float64(mean) + 0.5)
		if idx >= 0 && idx < n {
			return idx
		}
	}
}

func removeSmallerThan(list []int, n int) []int {
	kept := list[:0]
	for _, v := range list {
		if v >= n {
			kept = append(kept, v)
		}
	}

	return kept
}

// firstEmptySlot returns the index of the first placeholder among the
// slots at offset + i·basePeriod, or -1 if all are claimed.
func firstEmptySlot(offset, basePeriod, patternLength int, accesses []AggressorID) int {
	for i := 0; offset+i*basePeriod < patternLength; i++ {
		idx := offset + i*basePeriod
		if accesses[idx] == Placeholder {
			return idx
		}
	}

	return -1
}

// fillSlots writes the aggressor group into every slot it owns: in each
// period starting at startPeriod, amplitude consecutive repetitions of the
// group, truncated at patternLength.
func fillSlots(startPeriod, periodLength, amplitude int, aggressors []AggressorID,
	accesses []AggressorID, patternLength int,
) {
	for period := startPeriod; period < patternLength; period += periodLength {
		for amp := 0; amp < amplitude; amp++ {
			if period+len(aggressors)*amp >= patternLength {
				break
			}

			for i, agg := range aggressors {
				target := period + len(aggressors)*amp + i
				if target >= patternLength {
					break
				}

				accesses[target] = agg
			}
		}
	}
}

// nextAggressors hands out n aggressor IDs, cycling through the
// parameter-bounded ID space.
func (b *Builder) nextAggressors(n, maxAggressors int) []AggressorID {
	aggs := make([]AggressorID, 0, n)

	for len(aggs) < n {
		aggs = append(aggs, b.idCounter)
		b.idCounter = (b.idCounter + 1) % AggressorID(maxAggressors)
	}

	return aggs
}

// availableMultiplicators lists the frequency multiplicators valid for a
// pattern spanning numRefreshIntervals: the powers of two up to that count.
func availableMultiplicators(numRefreshIntervals int) []int {
	var out []int
	for m := 1; m <= numRefreshIntervals; m *= 2 {
		out = append(out, m)
	}

	return out
}

// Generate fills the pattern according to params. Patterns that already
// contain accesses (prefilled by Prefill) keep them; only placeholder
// slots are populated.
func (b *Builder) Generate(params *ParameterSet) error {
	return b.generate(params, params.TotalActsPattern, params.BasePeriod)
}

func (b *Builder) generate(params *ParameterSet, patternLength, basePeriod int) error {
	hp := b.pattern

	// Prefilled patterns keep their slots; record where the prefilled
	// runs start so fresh groups are sized to stop in front of them.
	var prefilledStarts []int

	if len(hp.Accesses) == 0 {
		hp.Accesses = make([]AggressorID, patternLength)
		for i := range hp.Accesses {
			hp.Accesses[i] = Placeholder
		}
	} else {
		inRun := false
		for i := 0; i < basePeriod; i++ {
			if hp.Accesses[i] != Placeholder {
				if !inRun {
					inRun = true
					prefilledStarts = append(prefilledStarts, i)
				}
			} else {
				inRun = false
			}
		}
	}

	nextPrefilled := func(cur int) int {
		for _, s := range prefilledStarts {
			if s > cur {
				return s
			}
		}

		return basePeriod
	}

	allowed := availableMultiplicators(params.NumRefreshIntervals)
	hp.MaxPeriod = allowed[len(allowed)-1] * basePeriod

	numAggressors := -1
	amplitude := -1

	for k := 0; k < basePeriod; k += numAggressors * amplitude {
		var aggressors []AggressorID

		multiplicators := append([]int(nil), allowed...)

		if hp.Accesses[k] == Placeholder {
			m := multiplicators[b.randomGaussianIndex(len(multiplicators))]
			multiplicators = removeSmallerThan(multiplicators, m)
			period := basePeriod * m

			bound := nextPrefilled(k)

			if bound-k == 1 {
				numAggressors = 1
			} else {
				numAggressors = params.RandomNSided(bound - k)
			}
			amplitude = params.RandomAmplitude((bound - k) / numAggressors)

			if numAggressors < 1 || amplitude < 1 {
				return fmt.Errorf("%w: %d aggressors, amplitude %d at slot %d",
					ErrPatternFillStuck, numAggressors, amplitude, k)
			}

			aggressors = b.nextAggressors(numAggressors, params.NumAggressors)

			hp.AccessPatterns = append(hp.AccessPatterns, AccessPattern{
				Frequency:   period,
				Amplitude:   amplitude,
				StartOffset: k,
				Aggressors:  aggressors,
			})
			fillSlots(k, period, amplitude, aggressors, hp.Accesses, patternLength)
		} else {
			ap, ok := hp.AccessPatternByAggressor(hp.Accesses[k])
			if !ok {
				return fmt.Errorf("%w: prefilled slot %d has no access pattern", ErrPatternFillStuck, k)
			}

			multiplicators = removeSmallerThan(multiplicators, ap.Frequency/basePeriod)
			numAggressors = len(ap.Aggressors)
			amplitude = ap.Amplitude
		}

		// Slots at this offset in later base periods may still be empty
		// when the frequency above was below the maximum; fill them with
		// fresh groups at the remaining lower multiplicators.
		for {
			slot := firstEmptySlot(k, basePeriod, patternLength, hp.Accesses)
			if slot == -1 {
				break
			}

			m := multiplicators[b.randomGaussianIndex(len(multiplicators))]
			multiplicators = removeSmallerThan(multiplicators, m)
			period := basePeriod * m

			aggressors = b.nextAggressors(numAggressors, params.NumAggressors)

			hp.AccessPatterns = append(hp.AccessPatterns, AccessPattern{
				Frequency:   period,
				Amplitude:   amplitude,
				StartOffset: slot,
				Aggressors:  aggressors,
			})
			fillSlots(slot, period, amplitude, aggressors, hp.Accesses, patternLength)
		}
	}

	hp.TotalActivations = len(hp.Accesses)
	hp.NumRefreshIntervals = params.NumRefreshIntervals

	return nil
}

// Prefill seeds the pattern with fixed access patterns before Generate
// fills the gaps. Used by replay analysis to rebuild a pattern around the
// groups known to be effective.
func (b *Builder) Prefill(totalActs int, fixed []AccessPattern) {
	hp := b.pattern

	b.idCounter = 1

	hp.Accesses = make([]AggressorID, totalActs)
	for i := range hp.Accesses {
		hp.Accesses[i] = Placeholder
	}

	hp.AccessPatterns = hp.AccessPatterns[:0]

	for _, ap := range fixed {
		relabeled := make([]AggressorID, len(ap.Aggressors))
		for i := range relabeled {
			relabeled[i] = b.idCounter
			b.idCounter++
		}
		ap.Aggressors = relabeled

		fillSlots(ap.StartOffset, ap.Frequency, ap.Amplitude, ap.Aggressors, hp.Accesses, totalActs)
		hp.AccessPatterns = append(hp.AccessPatterns, ap)
	}
}
