package dram

import (
	"errors"
	"math/bits"
	"testing"
)

func TestBuiltinConfigsValid(tt *testing.T) {
	tt.Parallel()

	if len(builtinConfigs) == 0 {
		tt.Fatal("no builtin configs")
	}

	for _, cfg := range builtinConfigs {
		cfg := cfg
		name := cfg.Uarch.String()
		if cfg.SamsungRowMapping {
			name += "/samsung"
		}

		tt.Run(name, func(t *testing.T) {
			t.Parallel()

			if err := cfg.Validate(); err != nil {
				t.Fatalf("config %v ranks=%d bg=%d banks=%d: %v",
					cfg.Uarch, cfg.Ranks, cfg.BankGroups, cfg.Banks, err)
			}
		})
	}
}

func TestMaskCover(tt *testing.T) {
	tt.Parallel()

	for _, cfg := range builtinConfigs {
		combined := (cfg.BankMask << cfg.BankShift) |
			(cfg.RowMask << cfg.RowShift) |
			(cfg.ColumnMask << cfg.ColumnShift)

		want := uint64(1)<<cfg.MatrixSize - 1

		if combined != want {
			tt.Errorf("%v: masks cover %030b, want %030b", cfg.Uarch, combined, want)
		}

		overlap := bits.OnesCount64(cfg.BankMask<<cfg.BankShift) +
			bits.OnesCount64(cfg.RowMask<<cfg.RowShift) +
			bits.OnesCount64(cfg.ColumnMask<<cfg.ColumnShift)

		if overlap != int(cfg.MatrixSize) {
			tt.Errorf("%v: masks overlap: %d bits set, want %d", cfg.Uarch, overlap, cfg.MatrixSize)
		}
	}
}

func TestValidateRejectsBrokenMatrix(tt *testing.T) {
	tt.Parallel()

	cfg, err := SelectConfig(CoffeeLake, 1, 4, 4, false)
	if err != nil {
		tt.Fatal(err)
	}

	broken := *cfg
	broken.DRAMMatrix = append([]uint64(nil), cfg.DRAMMatrix...)
	broken.DRAMMatrix[0] ^= 1

	if err := broken.Validate(); !errors.Is(err, ErrConfigMatrixInvalid) {
		tt.Errorf("tampered matrix validated: %v", err)
	}
}

func TestSelectConfig(tt *testing.T) {
	tt.Parallel()

	tt.Run("known", func(t *testing.T) {
		cfg, err := SelectConfig(Zen3, 1, 4, 4, true)
		if err != nil {
			t.Fatal(err)
		}

		if !cfg.SamsungRowMapping {
			t.Error("samsung flag lost")
		}

		// The returned config is a copy: installing a threshold must not
		// leak into later selections.
		cfg.SyncRefThreshold = 999

		again, err := SelectConfig(Zen3, 1, 4, 4, true)
		if err != nil {
			t.Fatal(err)
		}

		if again.SyncRefThreshold != 0 {
			t.Errorf("SyncRefThreshold leaked across selections: %d", again.SyncRefThreshold)
		}
	})

	tt.Run("unsupported", func(t *testing.T) {
		if _, err := SelectConfig(CoffeeLake, 8, 8, 8, false); !errors.Is(err, ErrUnsupportedGeometry) {
			t.Errorf("want ErrUnsupportedGeometry, got %v", err)
		}
	})

	tt.Run("samsung on coffeelake", func(t *testing.T) {
		if _, err := SelectConfig(CoffeeLake, 1, 4, 4, true); !errors.Is(err, ErrUnsupportedGeometry) {
			t.Errorf("want ErrUnsupportedGeometry, got %v", err)
		}
	})
}

func TestParseMicroarch(tt *testing.T) {
	tt.Parallel()

	for name, want := range map[string]Microarch{
		"coffeelake": CoffeeLake,
		"zen1plus":   Zen1Plus,
		"zen2":       Zen2,
		"zen3":       Zen3,
		"zen4":       Zen4,
	} {
		got, err := ParseMicroarch(name)
		if err != nil {
			tt.Errorf("%s: %v", name, err)
		}
		if got != want {
			tt.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	if _, err := ParseMicroarch("skylake"); err == nil {
		tt.Error("unknown microarchitecture accepted")
	}
}

func TestRowToRowOffset(tt *testing.T) {
	tt.Parallel()

	for _, cfg := range builtinConfigs {
		offset := cfg.RowToRowOffset()

		if offset == 0 {
			tt.Errorf("%v: zero row offset", cfg.Uarch)
			continue
		}

		if offset >= cfg.MemorySize() {
			tt.Errorf("%v: row offset %#x outside matrix domain", cfg.Uarch, offset)
		}

		// The offset is the address-bit function of the least significant
		// row bit: applying the mapping to it must flip that row bit.
		_, row, _ := cfg.Delinearize(cfg.ApplyDRAMMatrix(offset))
		if row&1 != 1 {
			tt.Errorf("%v: row offset %#x does not flip the LSB row bit", cfg.Uarch, offset)
		}
	}
}
