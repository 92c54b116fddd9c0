package dram

import (
	"math/rand"
	"testing"
)

func TestRoundTripLiteral(tt *testing.T) {
	tt.Parallel()

	// Coffee Lake, single rank, 4 bank groups, 4 banks, sequential rows.
	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)

	const v = uintptr(0x20000DEADBEE0)

	model.InitializeMapping(0, v)

	addr := model.FromVirt(v)
	back := model.ToVirt(addr)

	if back != v {
		tt.Errorf("round trip: %#x -> %v -> %#x", v, addr, back)
	}
}

func TestRoundTripAllConfigs(tt *testing.T) {
	tt.Parallel()

	rng := rand.New(rand.NewSource(0x5eed))

	for _, builtin := range builtinConfigs {
		cfg, err := SelectConfig(builtin.Uarch, builtin.Ranks, builtin.BankGroups,
			builtin.Banks, builtin.SamsungRowMapping)
		if err != nil {
			tt.Fatal(err)
		}

		model := NewModel(cfg)

		base := uintptr(0x2000000000)
		model.InitializeMapping(0, base)

		for i := 0; i < 256; i++ {
			v := base + uintptr(rng.Int63n(int64(cfg.MemorySize())))

			addr := model.FromVirt(v)
			back := model.ToVirt(addr)

			if back != v {
				tt.Fatalf("%v samsung=%v: round trip %#x -> %v -> %#x",
					cfg.Uarch, cfg.SamsungRowMapping, v, addr, back)
			}
		}
	}
}

func TestComponentWrap(tt *testing.T) {
	tt.Parallel()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)
	model.InitializeMapping(0, 0x2000000000)

	plain := model.ToVirt(Addr{Bank: 3, Row: 7})
	wrapped := model.ToVirt(Addr{
		Bank: 3 + cfg.BanksCount(),
		Row:  7 + cfg.RowsCount(),
	})

	if plain != wrapped {
		tt.Errorf("overflowing components do not wrap: %#x != %#x", plain, wrapped)
	}
}

func TestMappingIDRecovery(tt *testing.T) {
	tt.Parallel()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)
	model.InitializeMapping(0, 0x2000000000)
	model.InitializeMapping(1, 0x3000000000)

	a := model.FromVirt(0x3000000040)
	if a.MappingID != 1 {
		tt.Errorf("mapping id: got %d, want 1", a.MappingID)
	}

	if back := model.ToVirt(a); back != 0x3000000040 {
		tt.Errorf("cross-mapping round trip broken: %#x", back)
	}
}

func TestTranslateBank(tt *testing.T) {
	tt.Parallel()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	model := NewModel(cfg)

	if got := model.TranslateBank(0, 0, 5); got != 5 {
		tt.Errorf("identity translation: got %d", got)
	}

	table := make([]uint64, cfg.BanksCount())
	for i := range table {
		table[i] = uint64(len(table) - 1 - i)
	}
	model.InitializeBankTranslation(0, 1, table)

	if got := model.TranslateBank(0, 1, 0); got != uint64(len(table)-1) {
		tt.Errorf("translation: got %d, want %d", got, len(table)-1)
	}
}
