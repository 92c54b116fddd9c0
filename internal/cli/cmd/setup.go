package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/dramsec/forge/internal/cli"
	"github.com/dramsec/forge/internal/dram"
	"github.com/dramsec/forge/internal/forge"
	"github.com/dramsec/forge/internal/fuzzer"
	"github.com/dramsec/forge/internal/hammer"
	"github.com/dramsec/forge/internal/log"
	"github.com/dramsec/forge/internal/memory"
)

// runConfig carries the flags shared by the fuzz and replay commands and
// performs the calibration sequence both need.
type runConfig struct {
	dimmID       int
	uarchName    string
	geometry     string
	samsung      bool
	sync         bool
	sweeping     bool
	runtimeLimit int
	actsPerRef   int
	probes       int
	schedPolicy  string
	fenceType    string
	interpreter  bool

	replayPatterns string
	loadJSON       string
}

func (rc *runConfig) registerFlags(fs *cli.FlagSet) {
	fs.IntVar(&rc.dimmID, "dimm-id", -1, "internal identifier of the inserted DIMM (required)")
	fs.StringVar(&rc.uarchName, "uarch", "", "microarchitecture: coffeelake, zen1plus, zen2, zen3, zen4 (required)")
	fs.StringVar(&rc.geometry, "geometry", "", "DRAM geometry as ranks,bank_groups,banks (required)")
	fs.BoolVar(&rc.samsung, "samsung", false, "use Samsung logical-to-physical row mapping")
	fs.BoolVar(&rc.sync, "sync", true, "synchronize hammering with REFRESH")
	fs.BoolVar(&rc.sweeping, "sweeping", false, "sweep the best pattern over memory afterwards")
	fs.IntVar(&rc.runtimeLimit, "runtime-limit", 120, "runtime limit in `seconds`")
	fs.IntVar(&rc.actsPerRef, "acts-per-ref", 0, "activations per tREFI; 0 measures")
	fs.IntVar(&rc.probes, "probes", 0, "address mappings probed per pattern; 0 means banks/4")
	fs.StringVar(&rc.schedPolicy, "sched-policy", "default",
		"fence scheduling `policy`: default, none, full, base_period, half_base_period, pair, rep")
	fs.StringVar(&rc.fenceType, "fence-type", "", "fence instruction: none, mfence, lfence, sfence (required)")
	fs.BoolVar(&rc.interpreter, "interpreter", false, "hammer in software instead of emitting machine code")
	fs.StringVar(&rc.replayPatterns, "replay-patterns", "", "comma-separated pattern `ids` to replay")
	fs.StringVar(&rc.loadJSON, "load-json", "", "archive `path` to replay patterns from")
}

func (rc *runConfig) parseGeometry() (ranks, bankGroups, banks int, err error) {
	parts := strings.Split(rc.geometry, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("geometry must be ranks,bank_groups,banks; got %q", rc.geometry)
	}

	values := make([]int, 3)
	for i, part := range parts {
		values[i], err = strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("geometry component %q: %w", part, err)
		}
	}

	return values[0], values[1], values[2], nil
}

func (rc *runConfig) patternIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, id := range strings.Split(rc.replayPatterns, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = true
		}
	}

	return ids
}

// runState is a fully calibrated run: regions allocated and filled, bank
// conflicts discovered, thresholds installed, translation tables built.
type runState struct {
	forge  *forge.Forge
	hammer *memory.Region
	sync   *memory.Region
}

func (rs *runState) close() {
	if rs.hammer != nil {
		_ = rs.hammer.Close()
	}
	if rs.sync != nil {
		_ = rs.sync.Close()
	}
}

// setup performs the startup sequence: argument validation, config
// selection, memory allocation, and timing calibration. Fatal errors are
// returned; the caller exits non-zero.
func (rc *runConfig) setup(logger *log.Logger) (*runState, error) {
	if rc.dimmID < 0 {
		return nil, errors.New("missing required flag --dimm-id")
	}
	if rc.uarchName == "" {
		return nil, errors.New("missing required flag --uarch")
	}
	if rc.geometry == "" {
		return nil, errors.New("missing required flag --geometry")
	}

	fence, ok := hammer.ParseFenceType(rc.fenceType)
	if !ok {
		return nil, fmt.Errorf("missing or invalid --fence-type %q", rc.fenceType)
	}

	policy, err := fuzzer.ParseSchedulingPolicy(rc.schedPolicy)
	if err != nil {
		return nil, err
	}

	uarch, err := dram.ParseMicroarch(rc.uarchName)
	if err != nil {
		return nil, err
	}

	ranks, bankGroups, banks, err := rc.parseGeometry()
	if err != nil {
		return nil, err
	}

	// Hammering tolerates no preemption it can avoid: claim the highest
	// priority before calibrating.
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, -20); err != nil {
		logger.Warn("Could not raise process priority", "err", err)
	}

	if err := dram.CheckCPUModel(uarch); err != nil {
		return nil, err
	}

	cfg, err := dram.SelectConfig(uarch, ranks, bankGroups, banks, rc.samsung)
	if err != nil {
		return nil, err
	}

	logger.Info("Selected DRAM configuration",
		"uarch", cfg.Uarch, "ranks", cfg.Ranks, "bank_groups", cfg.BankGroups,
		"banks", cfg.Banks, "samsung", cfg.SamsungRowMapping,
		"memory_size", cfg.MemorySize())

	size := int(cfg.MemorySize())

	state := &runState{}

	state.hammer, err = memory.Allocate(size, true, logger)
	if err != nil {
		state.close()
		return nil, fmt.Errorf("hammering region: %w", err)
	}

	state.sync, err = memory.Allocate(size, true, logger)
	if err != nil {
		state.close()
		return nil, fmt.Errorf("REF-sync region: %w", err)
	}

	if err := state.hammer.Initialize(memory.PatternRandom); err != nil {
		state.close()
		return nil, err
	}
	if err := state.sync.Initialize(memory.PatternRandom); err != nil {
		state.close()
		return nil, err
	}

	model := dram.NewModel(cfg)
	model.InitializeMapping(0, state.hammer.Base())
	model.InitializeMapping(1, state.sync.Base())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	analyzer := dram.NewAnalyzer(model, state.hammer.Base(), state.hammer.Size(), rng, logger)
	analyzer.FindThreshold()

	if err := analyzer.FindBankConflicts(); err != nil {
		state.close()
		return nil, err
	}

	acts := rc.actsPerRef
	if acts == 0 {
		acts, err = analyzer.CountActsPerRefresh()
		if err != nil {
			state.close()
			return nil, err
		}
	}

	cfg.SyncRefThreshold = analyzer.FindSyncRefThreshold()
	if err := analyzer.CheckSyncRefThreshold(cfg.SyncRefThreshold); err != nil {
		logger.Warn("Sync threshold verification failed; continuing", "err", err)
	}

	table, err := analyzer.CorrespondingBanks(1)
	if err != nil {
		state.close()
		return nil, err
	}
	model.InitializeBankTranslation(0, 1, table)

	params := fuzzer.NewParameterSet(acts, rng)
	params.SetBankCount(int(cfg.BanksCount()))
	params.MaxRow = int(cfg.RowsCount())

	probes := rc.probes
	if probes == 0 {
		probes = int(cfg.BanksCount()) / 4
	}

	var hammerer hammer.Hammerer
	if rc.interpreter || !rc.sync {
		hammerer = hammer.NewInterpreter(logger)
	} else {
		hammerer = hammer.NewJitter(logger)
	}

	state.forge = &forge.Forge{
		Model:            model,
		Memory:           state.hammer,
		Hammerer:         hammerer,
		Params:           params,
		Policy:           policy,
		Fence:            fence,
		HammerMappingID:  0,
		SyncMappingID:    1,
		DIMMID:           rc.dimmID,
		ProbesPerPattern: probes,
		RuntimeLimit:     time.Duration(rc.runtimeLimit) * time.Second,
		SweepBestPattern: rc.sweeping,
		RNG:              rng,
		Log:              logger,
	}

	return state, nil
}
