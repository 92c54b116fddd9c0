package dram

import "fmt"

// Addr is a DRAM coordinate. The components may overflow their geometry;
// they are interpreted modulo the bank/row/column count when the address
// is materialized, so callers can use unbounded row arithmetic.
//
// MappingID names the memory region whose mapping the coordinate is
// relative to.
type Addr struct {
	Bank uint64 `json:"bank"`
	Row  uint64 `json:"row"`
	Col  uint64 `json:"col"`

	MappingID int `json:"mapping_id"`
}

// Add returns the address shifted by the given component deltas.
func (a Addr) Add(bank, row, col uint64) Addr {
	return Addr{
		Bank:      a.Bank + bank,
		Row:       a.Row + row,
		Col:       a.Col + col,
		MappingID: a.MappingID,
	}
}

// Sub returns the address with row decreased by rows.
func (a Addr) Sub(rows uint64) Addr {
	dup := a
	dup.Row -= rows

	return dup
}

func (a Addr) String() string {
	return fmt.Sprintf("(b:%d, r:%d, c:%d, m:%d)", a.Bank, a.Row, a.Col, a.MappingID)
}

// Model binds a Config to the memory regions of a run. It records, per
// mapping id, the virtual-address bits above the matrix domain so
// coordinates round-trip to virtual addresses, and it holds the measured
// bank-translation tables between mappings.
//
// A Model is built during startup and read-only afterwards; every
// component that needs address translation carries a reference.
type Model struct {
	cfg *Config

	bases   map[int]uintptr
	baseIDs map[uintptr]int

	translations map[[2]int][]uint64
}

// NewModel returns a Model for cfg with no mappings installed.
func NewModel(cfg *Config) *Model {
	return &Model{
		cfg:          cfg,
		bases:        make(map[int]uintptr),
		baseIDs:      make(map[uintptr]int),
		translations: make(map[[2]int][]uint64),
	}
}

// Config returns the model's configuration.
func (m *Model) Config() *Config { return m.cfg }

// InitializeMapping records the base virtual address of the region that
// mapping id refers to. The bits above the matrix domain are kept so
// ToVirt and FromVirt round-trip for any address inside the region.
func (m *Model) InitializeMapping(id int, base uintptr) {
	msb := base &^ uintptr(m.cfg.MemorySize()-1)
	m.bases[id] = msb
	m.baseIDs[msb] = id
}

// InitializeBankTranslation installs the measured table mapping bank
// indices of mapping `from` onto the banks of mapping `to`.
func (m *Model) InitializeBankTranslation(from, to int, table []uint64) {
	m.translations[[2]int{from, to}] = table
}

// TranslateBank maps a bank index of mapping `from` to the corresponding
// bank of mapping `to`. Identity if from == to; panics if no table was
// installed, which is a startup-order bug.
func (m *Model) TranslateBank(from, to int, bank uint64) uint64 {
	if from == to {
		return bank
	}

	table, ok := m.translations[[2]int{from, to}]
	if !ok {
		panic(fmt.Sprintf("dram: no bank translation installed for %d->%d", from, to))
	}

	return table[bank%uint64(len(table))]
}

// FromVirt inverts a virtual address inside an initialized region to its
// DRAM coordinate. The mapping id is recovered from the address bits above
// the matrix domain; addresses outside any initialized region resolve with
// mapping id 0.
func (m *Model) FromVirt(vaddr uintptr) Addr {
	msb := vaddr &^ uintptr(m.cfg.MemorySize()-1)
	id := m.baseIDs[msb]

	linear := m.cfg.ApplyDRAMMatrix(uint64(vaddr) & (m.cfg.MemorySize() - 1))
	bank, row, col := m.cfg.Delinearize(linear)

	return Addr{Bank: bank, Row: row, Col: col, MappingID: id}
}

// ToVirt materializes a DRAM coordinate as a virtual address within the
// region its mapping id was initialized with. Out-of-range components wrap
// modulo the geometry.
func (m *Model) ToVirt(a Addr) uintptr {
	linear := m.cfg.Linearize(a.Bank, a.Row, a.Col)

	return m.bases[a.MappingID] | uintptr(m.cfg.ApplyAddrMatrix(linear))
}

// RowToRowOffset returns the byte delta between vertically adjacent rows.
func (m *Model) RowToRowOffset() uint64 { return m.cfg.RowToRowOffset() }
