// Package dram models the physical-address to DRAM-coordinate mapping of
// one memory controller and provides the timing-based analyzer that
// recovers its runtime parameters.
//
// The mapping is bit-linear over GF(2): a physical address is multiplied
// with a precompiled binary matrix to obtain the linearized DRAM
// coordinate, and with the inverse matrix to get back. Coordinates are
// split into (bank, row, column) by per-configuration shifts and masks,
// where "bank" lumps together rank, bank group and bank bits.
package dram

import (
	"errors"
	"fmt"
	"math/bits"
)

// Microarch identifies the memory controller family a configuration was
// recovered on.
type Microarch int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Microarch -output=microarch_string.go
const (
	CoffeeLake Microarch = iota
	Zen1Plus
	Zen2
	Zen3
	Zen4
)

// Errors of the address model.
var (
	// ErrUnsupportedGeometry reports that no configuration exists for the
	// requested microarchitecture and DIMM geometry.
	ErrUnsupportedGeometry = errors.New("dram: unsupported geometry")

	// ErrConfigMatrixInvalid reports a configuration that fails its own
	// consistency checks. A shipped configuration never does; the error
	// exists for configurations loaded or edited by hand.
	ErrConfigMatrixInvalid = errors.New("dram: config matrix invalid")
)

// ParseMicroarch maps the CLI identification strings onto Microarch values.
func ParseMicroarch(s string) (Microarch, error) {
	switch s {
	case "coffeelake":
		return CoffeeLake, nil
	case "zen1plus":
		return Zen1Plus, nil
	case "zen2":
		return Zen2, nil
	case "zen3":
		return Zen3, nil
	case "zen4":
		return Zen4, nil
	default:
		return 0, fmt.Errorf("%w: unknown microarchitecture %q", ErrUnsupportedGeometry, s)
	}
}

// Config describes the address mapping of one memory controller and DIMM
// geometry. It is created once at startup and immutable afterwards, except
// for SyncRefThreshold which calibration installs.
type Config struct {
	Uarch             Microarch
	Ranks             int
	BankGroups        int
	Banks             int
	SamsungRowMapping bool

	// SyncRefThreshold is the cycle count above which a timed same-bank
	// access pair is taken to have hit a REF. Installed by the analyzer.
	SyncRefThreshold uint64

	// PhysDRAMOffset is subtracted from a physical address before the
	// matrix applies. It only affects bits above the matrix domain.
	PhysDRAMOffset uint64

	BankShift uint
	BankMask  uint64

	RowShift uint
	RowMask  uint64

	ColumnShift uint
	ColumnMask  uint64

	// MatrixSize is the edge length N of the two matrices; the matrix
	// domain is the low N bits of an address.
	MatrixSize uint

	// DRAMMatrix maps physical address bits to the linearized DRAM
	// coordinate; AddrMatrix is its inverse over GF(2).
	DRAMMatrix []uint64
	AddrMatrix []uint64
}

// SelectConfig picks the precompiled configuration for the given
// microarchitecture and geometry. It returns ErrUnsupportedGeometry if none
// matches and ErrConfigMatrixInvalid if the matched configuration fails
// validation.
func SelectConfig(uarch Microarch, ranks, bankGroups, banks int, samsungRowMapping bool) (*Config, error) {
	for _, cfg := range builtinConfigs {
		if cfg.Uarch == uarch && cfg.Ranks == ranks && cfg.BankGroups == bankGroups &&
			cfg.Banks == banks && cfg.SamsungRowMapping == samsungRowMapping {
			if err := cfg.Validate(); err != nil {
				return nil, err
			}

			// Hand out a copy: SyncRefThreshold is per-run state.
			dup := *cfg
			return &dup, nil
		}
	}

	return nil, fmt.Errorf("%w: %v ranks=%d bankgroups=%d banks=%d samsung=%v",
		ErrUnsupportedGeometry, uarch, ranks, bankGroups, banks, samsungRowMapping)
}

// MemorySize returns the number of bytes the matrix domain covers.
func (c *Config) MemorySize() uint64 { return 1 << c.MatrixSize }

// BankBits returns the number of bank bits (rank + bank group + bank).
func (c *Config) BankBits() int { return bits.OnesCount64(c.BankMask) }

// RowBits returns the number of row bits inside the matrix domain.
func (c *Config) RowBits() int { return bits.OnesCount64(c.RowMask) }

// ColumnBits returns the number of column bits.
func (c *Config) ColumnBits() int { return bits.OnesCount64(c.ColumnMask) }

// BanksCount returns the number of addressable banks.
func (c *Config) BanksCount() uint64 { return 1 << c.BankBits() }

// RowsCount returns the number of addressable rows in the matrix domain.
func (c *Config) RowsCount() uint64 { return 1 << c.RowBits() }

// ColumnsCount returns the number of addressable columns.
func (c *Config) ColumnsCount() uint64 { return 1 << c.ColumnBits() }

// RowToRowOffset returns the byte delta that moves a virtual address by
// exactly one row: the address-bit function of the least significant row
// bit.
func (c *Config) RowToRowOffset() uint64 {
	return c.DRAMMatrix[c.MatrixSize-c.RowShift-1]
}

// ApplyDRAMMatrix maps (the low MatrixSize bits of) a physical address to
// the linearized DRAM coordinate.
func (c *Config) ApplyDRAMMatrix(addr uint64) uint64 {
	return applyMatrix(c.DRAMMatrix, addr)
}

// ApplyAddrMatrix maps a linearized DRAM coordinate back to address bits.
func (c *Config) ApplyAddrMatrix(linear uint64) uint64 {
	return applyMatrix(c.AddrMatrix, linear)
}

// Linearize packs (bank, row, column) into the linearized coordinate.
// Components larger than the geometry wrap modulo the respective count, so
// callers may use unbounded row arithmetic.
func (c *Config) Linearize(bank, row, col uint64) uint64 {
	return ((bank & c.BankMask) << c.BankShift) |
		((row & c.RowMask) << c.RowShift) |
		((col & c.ColumnMask) << c.ColumnShift)
}

// Delinearize splits a linearized coordinate into (bank, row, column).
func (c *Config) Delinearize(linear uint64) (bank, row, col uint64) {
	bank = (linear >> c.BankShift) & c.BankMask
	row = (linear >> c.RowShift) & c.RowMask
	col = (linear >> c.ColumnShift) & c.ColumnMask

	return bank, row, col
}

// Validate checks the configuration invariants: matrix sizes match
// MatrixSize, the three masks partition the low MatrixSize bits with no
// overlap and no gap, PhysDRAMOffset only touches bits above the matrix
// domain, and the two matrices are inverses over GF(2).
func (c *Config) Validate() error {
	if uint(c.BankBits()+c.RowBits()+c.ColumnBits()) != c.MatrixSize {
		return fmt.Errorf("%w: bank+row+column bits != matrix size", ErrConfigMatrixInvalid)
	}

	if uint(len(c.DRAMMatrix)) != c.MatrixSize || uint(len(c.AddrMatrix)) != c.MatrixSize {
		return fmt.Errorf("%w: matrix rows != matrix size", ErrConfigMatrixInvalid)
	}

	combined := (c.BankMask << c.BankShift) | (c.RowMask << c.RowShift) | (c.ColumnMask << c.ColumnShift)
	xored := (c.BankMask << c.BankShift) ^ (c.RowMask << c.RowShift) ^ (c.ColumnMask << c.ColumnShift)
	required := uint64(1)<<c.MatrixSize - 1

	if combined != required || xored != required {
		return fmt.Errorf("%w: masks are not a disjoint cover of the matrix domain", ErrConfigMatrixInvalid)
	}

	if c.PhysDRAMOffset%c.MemorySize() != 0 {
		return fmt.Errorf("%w: phys DRAM offset reaches into the matrix domain", ErrConfigMatrixInvalid)
	}

	if !productIsIdentity(c.DRAMMatrix, c.AddrMatrix, c.MatrixSize) {
		return fmt.Errorf("%w: dram_matrix · addr_matrix != identity", ErrConfigMatrixInvalid)
	}

	return nil
}

func applyMatrix(matrix []uint64, addr uint64) uint64 {
	var result uint64

	for _, row := range matrix {
		result <<= 1
		result |= uint64(bits.OnesCount64(row&addr) & 1)
	}

	return result
}

// productIsIdentity multiplies two square bit matrices over GF(2) and
// checks the result against the identity. Column 0 of a matrix row is its
// most significant used bit.
func productIsIdentity(a, b []uint64, size uint) bool {
	for i := uint(0); i < size; i++ {
		var row uint64

		for j := uint(0); j < size; j++ {
			var sum uint64

			for k := uint(0); k < size; k++ {
				opA := (a[i] >> (size - k - 1)) & 1
				opB := (b[k] >> (size - j - 1)) & 1
				sum ^= opA & opB
			}

			row |= sum << (size - j - 1)
		}

		if row != 1<<(size-i-1) {
			return false
		}
	}

	return true
}
