package dram

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/timing"
)

// ErrBankDiscoveryFailed reports that timing-based bank classification
// exhausted its retry budget. Usually the configured geometry is wrong or
// the measured threshold is off; the user must recalibrate.
var ErrBankDiscoveryFailed = errors.New("dram: bank discovery failed")

// Analyzer knobs. Timing-based discovery is intrinsically flaky, so each
// primitive retries within a fixed budget and only then gives up.
const (
	// NumTargets is the number of same-bank addresses collected per bank.
	NumTargets = 10

	// conflictTriesPerBank bounds the random-pair budget of
	// FindBankConflicts, multiplied by the bank count.
	conflictTriesPerBank = 256

	// thresholdSamples is the number of random pairs measured to find the
	// conflict threshold.
	thresholdSamples = 2000

	// actsMeasureRounds is the number of timed access pairs per run of
	// CountActsPerRefresh.
	actsMeasureRounds = 500000

	// actsMeasurePairs is how many independent address pairs
	// CountActsPerRefresh averages over.
	actsMeasurePairs = 5
)

// Analyzer discovers the runtime parameters of the DRAM under test: the
// bank-conflict threshold, per-bank address sets, the activations-per-tREFI
// budget and the REF-sync threshold.
type Analyzer struct {
	model *Model
	base  uintptr
	size  int

	rng *rand.Rand
	log *log.Logger

	// measure times one address pair; swapped out in tests to model a
	// DRAM without owning one.
	measure func(a, b uintptr) uint64

	threshold uint64
	banks     [][]uintptr

	refThreshold uint64
}

// NewAnalyzer returns an analyzer working on the region at base. The rng
// is owned by the caller so calibration runs can be made reproducible.
func NewAnalyzer(model *Model, base uintptr, size int, rng *rand.Rand, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Analyzer{
		model:   model,
		base:    base,
		size:    size,
		rng:     rng,
		log:     logger,
		measure: timing.MeasureConflict,
		banks:   make([][]uintptr, model.Config().BanksCount()),
	}
}

// Threshold returns the measured bank-conflict threshold in cycles.
func (a *Analyzer) Threshold() uint64 { return a.threshold }

// SetThreshold overrides the measured threshold; used by tests and by runs
// that reuse a known-good calibration.
func (a *Analyzer) SetThreshold(t uint64) { a.threshold = t }

// Banks returns the per-bank conflict sets found by FindBankConflicts.
func (a *Analyzer) Banks() [][]uintptr { return a.banks }

func (a *Analyzer) randomAddress() uintptr {
	return a.base + uintptr(a.rng.Intn(a.size/timing.CachelineSize))*timing.CachelineSize
}

// FindThreshold measures the access time of many random address pairs and
// splits the resulting bimodal distribution: most pairs hit different
// banks (row-buffer hit floor), roughly 1/banks hit the same bank and pay
// the conflict penalty. The threshold is placed in the widest gap of the
// upper half of the distribution.
func (a *Analyzer) FindThreshold() uint64 {
	a.log.Info("Measuring bank-conflict threshold", "samples", thresholdSamples)

	samples := make([]uint64, 0, thresholdSamples)
	for i := 0; i < thresholdSamples; i++ {
		samples = append(samples, a.measure(a.randomAddress(), a.randomAddress()))
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	// The conflict cluster lives in the top quarter at most (1/banks of
	// the mass, banks >= 16). Find the widest gap above the median.
	bestGap, bestAt := uint64(0), len(samples)-1
	for i := len(samples) / 2; i < len(samples)-1; i++ {
		if gap := samples[i+1] - samples[i]; gap > bestGap {
			bestGap, bestAt = gap, i
		}
	}

	a.threshold = samples[bestAt] + bestGap/2
	a.log.Info("Bank-conflict threshold found", "threshold", a.threshold,
		"floor", samples[len(samples)/2], "ceiling", samples[len(samples)-1])

	return a.threshold
}

// FindBankConflicts greedily partitions random addresses into bank
// buckets: a pair measuring above threshold twice in a row seeds a new
// bucket, provided neither address conflicts with any already-seeded
// bucket's representative. Afterwards every bucket is grown to NumTargets
// addresses.
func (a *Analyzer) FindBankConflicts() error {
	banksCount := len(a.banks)
	remaining := banksCount * conflictTriesPerBank
	seeded := 0

next:
	for seeded < banksCount && remaining > 0 {
		remaining--

		a1, a2 := a.randomAddress(), a.randomAddress()
		if a.measure(a1, a2) <= a.threshold || a.measure(a1, a2) <= a.threshold {
			continue
		}

		allSet := true

		for i := 0; i < banksCount; i++ {
			if len(a.banks[i]) == 0 {
				allSet = false
				continue
			}

			rep := a.banks[i][0]
			if a.measure(a1, rep) > a.threshold || a.measure(a2, rep) > a.threshold {
				// The pair aliases an already-seeded bank, or it is
				// noise; either way it cannot seed a new bucket.
				continue next
			}
		}

		if allSet {
			break
		}

		a.banks[seeded] = append(a.banks[seeded], a1, a2)
		seeded++
		a.log.Debug("Seeded bank bucket", "bank", seeded-1, "remaining_tries", remaining)
	}

	if seeded < banksCount {
		return fmt.Errorf("%w: seeded %d of %d banks; is the geometry correct?",
			ErrBankDiscoveryFailed, seeded, banksCount)
	}

	a.log.Info("Found bank conflict sets", "banks", banksCount)

	for i := range a.banks {
		if err := a.findTargets(i); err != nil {
			return err
		}
	}

	a.log.Info("Populated addresses for all banks", "targets_per_bank", NumTargets)

	return nil
}

// findTargets grows bucket bank to NumTargets addresses, retaining a
// candidate when its conflict time against the current bucket, averaged
// over five repetitions, exceeds the threshold.
func (a *Analyzer) findTargets(bank int) error {
	const repetitions = 5

	bucket := a.banks[bank]
	have := make(map[uintptr]bool, len(bucket))
	for _, addr := range bucket {
		have[addr] = true
	}

	budget := conflictTriesPerBank * NumTargets

	for len(bucket) < NumTargets && budget > 0 {
		budget--

		candidate := a.randomAddress()
		if have[candidate] {
			continue
		}

		var cumulative uint64
		for rep := 0; rep < repetitions; rep++ {
			for _, addr := range bucket {
				cumulative += a.measure(candidate, addr)
			}
		}
		cumulative /= repetitions

		if cumulative/uint64(len(bucket)) > a.threshold {
			bucket = append(bucket, candidate)
			have[candidate] = true
		}
	}

	if len(bucket) < NumTargets {
		return fmt.Errorf("%w: bank %d stuck at %d of %d targets",
			ErrBankDiscoveryFailed, bank, len(bucket), NumTargets)
	}

	a.banks[bank] = bucket

	return nil
}

// CountActsPerRefresh measures how many row activations fit between two
// REF commands. It streams access pairs from one bank in a tight loop;
// whenever the controller issues a REF, the in-flight pair stalls and its
// latency spikes above mean·1.15 (the spike heuristic this implementation
// commits to). The number of accesses between spikes is recorded and the
// mode over all rounds is the activation budget.
//
// As a side effect the REF threshold is derived and kept for
// FindSyncRefThreshold: the midpoint between the median of sub-peak
// latencies and the smallest peak latency.
func (a *Analyzer) CountActsPerRefresh() (int, error) {
	a.log.Info("Determining activations per tREFI")

	counts := make(map[int]int)
	peaksByCount := make(map[int][]uint64)

	var all []uint64

	for pair := 0; pair < actsMeasurePairs; pair++ {
		bucket := a.banks[pair%len(a.banks)]
		if len(bucket) < 2 {
			return 0, fmt.Errorf("%w: no conflict set to measure on", ErrBankDiscoveryFailed)
		}

		addrs := bucket[:2]
		timings := make([]uint64, actsMeasureRounds)

		for _, addr := range addrs {
			timing.Access(addr)
			timing.Flush(addr)
		}
		timing.FenceStore()

		after := timing.TimestampSerializing()
		timing.FenceLoad()

		for i := 0; i < actsMeasureRounds; i++ {
			before := after

			timing.FenceStore()
			timing.Access(addrs[0])
			timing.Flush(addrs[0])
			timing.Access(addrs[1])
			timing.Flush(addrs[1])
			timing.FenceLoad()

			after = timing.TimestampSerializing()
			timings[i] = after - before
		}

		st := newStats(timings)
		spike := uint64(float64(st.mean) * 1.15)

		actCount := 0
		for _, t := range timings {
			// Reject outliers more than one deviation above the spike
			// threshold; those are interrupts, not REFs.
			if t > spike && t < spike+uint64(st.std) {
				peaksByCount[actCount] = append(peaksByCount[actCount], t)
				counts[actCount]++
				actCount = 0
			} else {
				actCount += 2
			}
		}

		all = append(all, timings...)
	}

	mode, modeCount := 0, 0
	for acts, n := range counts {
		// Single-digit activation counts are measurement debris.
		if acts < 10 {
			continue
		}
		if n > modeCount {
			mode, modeCount = acts, n
		}
	}

	if modeCount == 0 {
		return 0, fmt.Errorf("%w: no REF spikes observed", ErrBankDiscoveryFailed)
	}

	peaks := newStats(peaksByCount[mode])

	var below []uint64
	for _, t := range all {
		if t < peaks.median {
			below = append(below, t)
		}
	}

	a.refThreshold = (newStats(below).median + peaks.min) / 2

	a.log.Info("Activation budget measured", "acts_per_trefi", mode, "ref_threshold", a.refThreshold)

	return mode, nil
}

// FindSyncRefThreshold returns the REF threshold derived by
// CountActsPerRefresh, refined against the observed non-REF floor, for
// installation into the Config.
func (a *Analyzer) FindSyncRefThreshold() uint64 {
	if a.refThreshold == 0 {
		// Calibration was skipped (fixed acts-per-ref given); fall back
		// to the conflict threshold scaled to a timed pair.
		a.refThreshold = a.threshold * 2
	}

	return a.refThreshold
}

// CheckSyncRefThreshold verifies that a sync loop using the given
// threshold terminates: it times pairs from bank 0 and requires at least
// one spike above the threshold within an activation budget.
func (a *Analyzer) CheckSyncRefThreshold(threshold uint64) error {
	const rounds = 100000

	bucket := a.banks[0]
	if len(bucket) < 2 {
		return fmt.Errorf("%w: no conflict set for threshold check", ErrBankDiscoveryFailed)
	}

	spikes := 0

	for i := 0; i < rounds; i++ {
		before := timing.Timestamp()
		timing.Access(bucket[0])
		timing.Access(bucket[1])
		timing.FenceLoad()
		after := timing.TimestampSerializing()

		timing.Flush(bucket[0])
		timing.Flush(bucket[1])

		if after-before > threshold {
			spikes++
		}
	}

	if spikes == 0 {
		return fmt.Errorf("%w: sync threshold %d never exceeded in %d rounds",
			ErrBankDiscoveryFailed, threshold, rounds)
	}

	a.log.Info("Sync threshold verified", "threshold", threshold, "spike_rate",
		float64(spikes)/float64(rounds))

	return nil
}

// CorrespondingBanks determines, for every bank of this analyzer's region,
// which bank of the region behind otherID holds the physically same bank:
// the one whose same-column representative produces a conflict with this
// region's representative. The result is installed into the model with
// InitializeBankTranslation.
//
// The measurement is agnostic to logical row remapping; see DESIGN.md on
// Samsung remapping across mappings.
func (a *Analyzer) CorrespondingBanks(otherID int) ([]uint64, error) {
	banksCount := uint64(len(a.banks))
	table := make([]uint64, banksCount)

	for b := range a.banks {
		rep := a.banks[b][0]
		coord := a.model.FromVirt(rep)

		found := false
		var bestBank, bestTime uint64

		for ob := uint64(0); ob < banksCount; ob++ {
			// Same column, neighboring row: a same-bank pick conflicts, a
			// same-row pick would hit the open row buffer instead.
			other := a.model.ToVirt(Addr{Bank: ob, Row: coord.Row + 1, Col: coord.Col, MappingID: otherID})

			t := a.measure(rep, other)
			if t > bestTime {
				bestBank, bestTime = ob, t
			}
			if t > a.threshold {
				found = true
			}
		}

		if !found {
			return nil, fmt.Errorf("%w: no corresponding bank for bank %d in mapping %d",
				ErrBankDiscoveryFailed, b, otherID)
		}

		table[b] = bestBank
	}

	return table, nil
}

type stats struct {
	mean   uint64
	median uint64
	std    float64
	min    uint64
	max    uint64
}

func newStats(values []uint64) stats {
	if len(values) == 0 {
		return stats{}
	}

	sorted := make([]uint64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum uint64
	for _, v := range sorted {
		sum += v
	}

	mean := sum / uint64(len(sorted))

	var variance float64
	for _, v := range sorted {
		d := float64(v) - float64(mean)
		variance += d * d
	}
	variance /= float64(len(sorted))

	return stats{
		mean:   mean,
		median: sorted[len(sorted)/2],
		std:    math.Sqrt(variance),
		min:    sorted[0],
		max:    sorted[len(sorted)-1],
	}
}
