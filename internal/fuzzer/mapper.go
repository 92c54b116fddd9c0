package fuzzer

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dramsec/forge/internal/dram"
	"github.com/dramsec/forge/internal/log"
)

// ErrUnknownAggressor reports an aggressor ID without an address binding
// during export. The access is skipped; the pattern keeps running.
var ErrUnknownAggressor = errors.New("fuzzer: unknown aggressor in pattern")

// victimRadius is how many rows to each side of an aggressor are
// considered potential victims.
const victimRadius = 5

// assignRetries bounds how often a colliding random row is redrawn before
// the collision is accepted.
const assignRetries = 7

// SchedulingPolicy selects where memory fences go in an exported access
// sequence.
type SchedulingPolicy int

//go:generate go run golang.org/x/tools/cmd/stringer -type=SchedulingPolicy -trimprefix=Policy -output=policy_string.go
const (
	// PolicyDefault resolves to the microarchitecture-specific default.
	PolicyDefault SchedulingPolicy = iota
	// PolicyNone inserts no extra fences.
	PolicyNone
	// PolicyFull fences between every access.
	PolicyFull
	// PolicyBasePeriod fences at the end of each base period.
	PolicyBasePeriod
	// PolicyHalfBasePeriod fences twice per base period.
	PolicyHalfBasePeriod
	// PolicyPair fences between 2-aggressor groups.
	PolicyPair
	// PolicyRep fences between amplitude repetitions.
	PolicyRep
)

// ParseSchedulingPolicy maps a CLI policy name onto its value.
func ParseSchedulingPolicy(s string) (SchedulingPolicy, error) {
	switch s {
	case "default":
		return PolicyDefault, nil
	case "none":
		return PolicyNone, nil
	case "full":
		return PolicyFull, nil
	case "base_period":
		return PolicyBasePeriod, nil
	case "half_base_period":
		return PolicyHalfBasePeriod, nil
	case "pair":
		return PolicyPair, nil
	case "rep":
		return PolicyRep, nil
	default:
		return 0, fmt.Errorf("fuzzer: unknown scheduling policy %q", s)
	}
}

// ResolveDefaultPolicy returns the policy PolicyDefault stands for on the
// given microarchitecture: the Zen memory controllers reorder aggressively
// enough that per-base-period fencing pays off, Coffee Lake does not.
func ResolveDefaultPolicy(uarch dram.Microarch) SchedulingPolicy {
	switch uarch {
	case dram.Zen1Plus, dram.Zen2, dram.Zen3, dram.Zen4:
		return PolicyBasePeriod
	default:
		return PolicyNone
	}
}

// ScheduledAccess is one element of an exported access sequence: the
// virtual address to hit and whether a fence follows it.
type ScheduledAccess struct {
	Addr       uintptr
	FenceAfter bool
}

// AddressMapping binds the abstract aggressors of one HammeringPattern to
// concrete DRAM rows. It owns the bit flips observed while hammering with
// this binding; the pattern itself is referenced by id only.
type AddressMapping struct {
	ID        string `json:"id"`
	PatternID string `json:"-"`

	BankNo int    `json:"-"`
	MinRow uint64 `json:"-"`
	MaxRow uint64 `json:"-"`

	AggressorToAddr map[AggressorID]dram.Addr `json:"aggressor_to_addr"`

	// VictimRows holds the row numbers around the aggressors that the
	// scanner checks, deduplicated.
	VictimRows []uint64 `json:"-"`

	BitFlips []BitFlip `json:"bit_flips"`

	// ReproducibilityScore is the fraction of reproducibility runs that
	// triggered at least one flip; -1 before any run.
	ReproducibilityScore float64 `json:"reproducibility_score"`

	// Execution parameters chosen for this mapping, kept so replay can
	// re-run it the way it originally ran.
	SyncEachRef      bool `json:"-"`
	AggsForSync      int  `json:"-"`
	TotalActivations int  `json:"-"`
}

// NewAddressMapping returns an empty mapping for the given pattern.
func NewAddressMapping(pattern *HammeringPattern) *AddressMapping {
	return &AddressMapping{
		ID:                   newInstanceID(),
		PatternID:            pattern.ID,
		AggressorToAddr:      make(map[AggressorID]dram.Addr),
		ReproducibilityScore: -1,
	}
}

// Randomize chooses fresh DRAM rows for every aggressor of the pattern.
// Access patterns are walked in shuffled order so low aggressor IDs do not
// correlate with low rows. Within a group, members sit AggIntraDistance
// rows apart; a fresh group either continues InterDistance rows below the
// previous one or, when sequential placement is off, jumps to a random row
// in the window.
func (m *AddressMapping) Randomize(pattern *HammeringPattern, params *ParameterSet,
	rng *rand.Rand, mappingID int, logger *log.Logger,
) {
	for id := range m.AggressorToAddr {
		delete(m.AggressorToAddr, id)
	}

	m.BankNo = params.RandomBankNo()
	useSequential := params.RandomUseSequential()
	startRow := params.RandomStartRow()

	logger.Info("Randomizing address mapping",
		"mapping", m.ID, "bank", m.BankNo, "sequential", useSequential, "start_row", startRow)

	maxRow := uint64(params.MaxRow)
	curRow := uint64(startRow)
	occupied := make(map[uint64]bool)

	order := rng.Perm(len(pattern.AccessPatterns))

	for _, apIdx := range order {
		ap := pattern.AccessPatterns[apIdx]

		for i, agg := range ap.Aggressors {
			if _, known := m.AggressorToAddr[agg]; known {
				continue
			}

			var row uint64

			if i > 0 {
				// Group members keep the fixed intra distance; their row
				// follows from the previous member.
				prev := m.AggressorToAddr[ap.Aggressors[i-1]]
				curRow = (prev.Row + uint64(params.AggIntraDistance)) % maxRow
				row = curRow
			} else {
				curRow = (curRow + uint64(params.RandomInterDistance())) % maxRow

				for trial := 0; ; trial++ {
					if useSequential {
						row = curRow
						break
					}

					row = (curRow + uint64(rng.Intn(int(maxRow)))) % maxRow
					if !occupied[row] {
						break
					}

					if trial >= assignRetries {
						logger.Warn("Unique row assignment failed; accepting collision",
							"aggressor", agg, "row", row)
						break
					}
				}
			}

			occupied[row] = true
			m.AggressorToAddr[agg] = dram.Addr{
				Bank:      uint64(m.BankNo),
				Row:       row,
				MappingID: mappingID,
			}
		}
	}

	m.updateRowBounds()
	m.DetermineVictims(pattern)
}

func (m *AddressMapping) updateRowBounds() {
	first := true

	for _, addr := range m.AggressorToAddr {
		if first || addr.Row < m.MinRow {
			m.MinRow = addr.Row
		}
		if first || addr.Row > m.MaxRow {
			m.MaxRow = addr.Row
		}
		first = false
	}
}

// DetermineVictims recomputes the victim row set: every row within
// victimRadius of an aggressor, the aggressor's own row excluded,
// deduplicated.
func (m *AddressMapping) DetermineVictims(pattern *HammeringPattern) {
	seen := make(map[uint64]bool)
	m.VictimRows = m.VictimRows[:0]

	aggRows := make(map[uint64]bool, len(m.AggressorToAddr))
	for _, addr := range m.AggressorToAddr {
		aggRows[addr.Row] = true
	}

	for _, addr := range m.AggressorToAddr {
		for d := -victimRadius; d <= victimRadius; d++ {
			if d == 0 {
				continue
			}

			row := int64(addr.Row) + int64(d)
			if row < 0 {
				continue
			}

			candidate := uint64(row)
			if seen[candidate] || aggRows[candidate] {
				continue
			}

			seen[candidate] = true
			m.VictimRows = append(m.VictimRows, candidate)
		}
	}
}

// CountBitFlips returns the number of recorded flips.
func (m *AddressMapping) CountBitFlips() int { return len(m.BitFlips) }

// Export materializes the pattern's slot vector as virtual addresses in
// access order, with fences placed per policy. Aggressors without a
// binding are skipped and counted; an entirely unexportable pattern is an
// error.
func (m *AddressMapping) Export(pattern *HammeringPattern, model *dram.Model,
	policy SchedulingPolicy,
) ([]ScheduledAccess, int, error) {
	if policy == PolicyDefault {
		policy = ResolveDefaultPolicy(model.Config().Uarch)
	}

	// Slot ownership and group geometry, needed by PolicyRep.
	owner := make([]int, len(pattern.Accesses))
	for i := range owner {
		owner[i] = -1
	}
	for apIdx, ap := range pattern.AccessPatterns {
		for period := ap.StartOffset; period < len(pattern.Accesses); period += ap.Frequency {
			for amp := 0; amp < ap.Amplitude; amp++ {
				for i := range ap.Aggressors {
					slot := period + len(ap.Aggressors)*amp + i
					if slot >= len(pattern.Accesses) {
						break
					}
					owner[slot] = apIdx
				}
			}
		}
	}

	out := make([]ScheduledAccess, 0, len(pattern.Accesses))
	skipped := 0

	for slot, id := range pattern.Accesses {
		if id == Placeholder {
			skipped++
			continue
		}

		addr, ok := m.AggressorToAddr[id]
		if !ok {
			skipped++
			continue
		}

		access := ScheduledAccess{Addr: model.ToVirt(addr)}

		switch policy {
		case PolicyNone:
		case PolicyFull:
			access.FenceAfter = true
		case PolicyBasePeriod:
			access.FenceAfter = (slot+1)%pattern.BasePeriod == 0
		case PolicyHalfBasePeriod:
			access.FenceAfter = (slot+1)%(pattern.BasePeriod/2) == 0
		case PolicyPair:
			access.FenceAfter = len(out)%2 == 1
		case PolicyRep:
			access.FenceAfter = endsRepetition(pattern, owner, slot)
		}

		out = append(out, access)
	}

	if len(out) == 0 {
		return nil, skipped, fmt.Errorf("%w: no aggressor of pattern %s is mapped",
			ErrUnknownAggressor, pattern.ID)
	}

	return out, skipped, nil
}

// endsRepetition reports whether slot is the last access of one amplitude
// repetition of its owning group.
func endsRepetition(pattern *HammeringPattern, owner []int, slot int) bool {
	apIdx := owner[slot]
	if apIdx < 0 {
		return false
	}

	ap := pattern.AccessPatterns[apIdx]

	within := (slot - ap.StartOffset) % ap.Frequency
	return (within+1)%len(ap.Aggressors) == 0
}

// Shift moves the aggressors of the given access patterns by delta rows;
// with an empty subset the whole mapping moves. Row bounds and victims are
// recomputed from the pattern afterwards.
func (m *AddressMapping) Shift(pattern *HammeringPattern, delta int64, subset []AccessPattern) {
	move := func(id AggressorID) {
		addr, ok := m.AggressorToAddr[id]
		if !ok {
			return
		}

		addr.Row = uint64(int64(addr.Row) + delta)
		m.AggressorToAddr[id] = addr
	}

	if len(subset) == 0 {
		for id := range m.AggressorToAddr {
			move(id)
		}
	} else {
		for _, ap := range subset {
			for _, id := range ap.Aggressors {
				move(id)
			}
		}
	}

	m.updateRowBounds()
	m.DetermineVictims(pattern)
}

// RandomNonAccessedRows returns count row-start addresses on the mapping's
// bank that are neither aggressors nor victims, for the filler accesses
// between hammering runs.
func (m *AddressMapping) RandomNonAccessedRows(model *dram.Model, maxRow, count int,
	rng *rand.Rand, mappingID int,
) []uintptr {
	used := make(map[uint64]bool)
	for _, addr := range m.AggressorToAddr {
		used[addr.Row] = true
	}
	for _, row := range m.VictimRows {
		used[row] = true
	}

	out := make([]uintptr, 0, count)
	for len(out) < count {
		row := uint64(rng.Intn(maxRow))
		if used[row] {
			continue
		}

		out = append(out, model.ToVirt(dram.Addr{
			Bank:      uint64(m.BankNo),
			Row:       row,
			MappingID: mappingID,
		}))
	}

	return out
}
