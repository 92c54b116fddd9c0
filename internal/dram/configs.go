// Precompiled address-function tables. Each entry carries the two GF(2)
// matrices recovered for one memory controller and DIMM geometry:
// DRAMMatrix maps a physical address to the linearized DRAM coordinate,
// AddrMatrix is its inverse. SelectConfig verifies the inverse property at
// startup.

package dram

var builtinConfigs = []*Config{
	{
		Uarch:             CoffeeLake,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0,
		BankShift:         26,
		BankMask:          0b1111,
		RowShift:          0,
		RowMask:           0b1111111111111,
		ColumnShift:       13,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b000000000000000010000001000000,
			0b000000000000100100000000000000,
			0b000000000001001000000000000000,
			0b000000000010010000000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
		},
		AddrMatrix: []uint64{
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
			0b000100000000000000000000000100,
			0b001000000000000000000000000010,
			0b010000000000000000000000000001,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b100010000000000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
		},
	},
	{
		Uarch:             CoffeeLake,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0,
		BankShift:         25,
		BankMask:          0b11111,
		RowShift:          0,
		RowMask:           0b111111111111,
		ColumnShift:       12,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b000000000000000010000001000000,
			0b000000000001000100000000000000,
			0b000000000010001000000000000000,
			0b000000000100010000000000000000,
			0b000000001000100000000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
		},
		AddrMatrix: []uint64{
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
			0b000010000000000000000000001000,
			0b000100000000000000000000000100,
			0b001000000000000000000000000010,
			0b010000000000000000000000000001,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b100001000000000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
		},
	},
	{
		Uarch:             Zen1Plus,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x40000000,
		BankShift:         25,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111100000000000000000,
			0b100010001000000100000000000000,
			0b000100010001001000000000000000,
			0b001000100010010000000000000000,
			0b010001000100000011111111000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000001100000000000000000000,
			0b000000001010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000011000000000000000,
			0b000000000000010100000000000000,
			0b000000000000000010000000000000,
			0b100001111111111110000000000000,
			0b000100010001010100000000000000,
			0b001000001000100010000000000000,
			0b010001000100010000000000000000,
			0b000010100010011001111111000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen1Plus,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x40000000,
		BankShift:         25,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111100000000000000000,
			0b100010001000000100000000000000,
			0b000100010001001000000000000000,
			0b001000100010010000000000000000,
			0b010001000100000011111111000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b100001111111111110000000000000,
			0b000100010001000100000000000000,
			0b001000001000100010000000000000,
			0b010001000100010000000000000000,
			0b000010100010001001111111000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen1Plus,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x40000000,
		BankShift:         26,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b1111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b100010001000101000000000000000,
			0b000100010001010000000000000000,
			0b001000100010000011111111000000,
			0b010001000100000100000000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000110000000000000000000,
			0b000000000101000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000011000000000000000,
			0b000000000000010100000000000000,
			0b000000000000000010000000000000,
			0b010000010001010100000000000000,
			0b100010001000100010000000000000,
			0b000101000100010000000000000000,
			0b001000100010011001111111000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen1Plus,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x40000000,
		BankShift:         26,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b1111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b100010001000101000000000000000,
			0b000100010001010000000000000000,
			0b001000100010000011111111000000,
			0b010001000100000100000000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b010000010001000100000000000000,
			0b100010001000100010000000000000,
			0b000101000100010000000000000000,
			0b001000100010001001111111000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000000000000000000000001000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen2,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x20000000,
		BankShift:         24,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        29,
		DRAMMatrix: []uint64{
			0b11111111111100000000000000000,
			0b00100010001001000000000000000,
			0b00010001000000100000000000000,
			0b10001000100000011111111000000,
			0b01000100010010000000000000000,
			0b10000000000000000000000000000,
			0b01000000000000000000000000000,
			0b00100000000000000000000000000,
			0b00010000000000000000000000000,
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000001100000000000000000000,
			0b00000001010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000010000000000000000,
			0b00000000000011000000000000000,
			0b00000000000010100000000000000,
			0b00000000000000010000000000000,
			0b10000111111111110000000000000,
			0b00001010001010100000000000000,
			0b01000001000100010000000000000,
			0b00100000100010000000000000000,
			0b00010100010011001111111000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen2,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x20000000,
		BankShift:         24,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        29,
		DRAMMatrix: []uint64{
			0b11111111111100000000000000000,
			0b00100010001001000000000000000,
			0b00010001000000100000000000000,
			0b10001000100000011111111000000,
			0b01000100010010000000000000000,
			0b10000000000000000000000000000,
			0b01000000000000000000000000000,
			0b00100000000000000000000000000,
			0b00010000000000000000000000000,
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000010000000000000000,
			0b00000000000001000000000000000,
			0b00000000000000100000000000000,
			0b00000000000000010000000000000,
			0b10000111111111110000000000000,
			0b00001010001000100000000000000,
			0b01000001000100010000000000000,
			0b00100000100010000000000000000,
			0b00010100010001001111111000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen2,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x20000000,
		BankShift:         25,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        29,
		DRAMMatrix: []uint64{
			0b00100010001010000000000000000,
			0b00010001000101000000000000000,
			0b10001000100000100000000000000,
			0b01000100010000011111111000000,
			0b10000000000000000000000000000,
			0b01000000000000000000000000000,
			0b00100000000000000000000000000,
			0b00010000000000000000000000000,
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000110000000000000000000,
			0b00000000101000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000010000000000000000,
			0b00000000000011000000000000000,
			0b00000000000010100000000000000,
			0b00000000000000010000000000000,
			0b10000010001010100000000000000,
			0b01000001000100010000000000000,
			0b00101000100010000000000000000,
			0b00010100010011001111111000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen2,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x20000000,
		BankShift:         25,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        29,
		DRAMMatrix: []uint64{
			0b00100010001010000000000000000,
			0b00010001000101000000000000000,
			0b10001000100000100000000000000,
			0b01000100010000011111111000000,
			0b10000000000000000000000000000,
			0b01000000000000000000000000000,
			0b00100000000000000000000000000,
			0b00010000000000000000000000000,
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b00001000000000000000000000000,
			0b00000100000000000000000000000,
			0b00000010000000000000000000000,
			0b00000001000000000000000000000,
			0b00000000100000000000000000000,
			0b00000000010000000000000000000,
			0b00000000001000000000000000000,
			0b00000000000100000000000000000,
			0b00000000000010000000000000000,
			0b00000000000001000000000000000,
			0b00000000000000100000000000000,
			0b00000000000000010000000000000,
			0b10000010001000100000000000000,
			0b01000001000100010000000000000,
			0b00101000100010000000000000000,
			0b00010100010001001111111000000,
			0b00000000000000001000000000000,
			0b00000000000000000100000000000,
			0b00000000000000000010000000000,
			0b00000000000000000001000000000,
			0b00000000000000000000100000000,
			0b00000000000000000000010000000,
			0b00000000000000000000001000000,
			0b00000000000000000000000100000,
			0b00000000000000000000000010000,
			0b00000000000000000000000001000,
			0b00000000000000000000000000100,
			0b00000000000000000000000000010,
			0b00000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen3,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x30000000,
		BankShift:         23,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b1111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        28,
		DRAMMatrix: []uint64{
			0b1111111111100000000000000000,
			0b0100010001000000000100000000,
			0b1000100010000000001000000000,
			0b0001000100000000010000000000,
			0b0010001000000000100000000000,
			0b1000000000000000000000000000,
			0b0100000000000000000000000000,
			0b0010000000000000000000000000,
			0b0001000000000000000000000000,
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000001100000000000000000000,
			0b0000001010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000011000000000000000,
			0b0000000000010100000000000000,
			0b0000000000000010000000000000,
			0b1000011111111110000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000100000000000,
			0b0000000000000000010000000000,
			0b0000000000000000001000000000,
			0b0000000000000000000100000000,
			0b0000100100010000000000000000,
			0b0001000010011000000000000000,
			0b0010010001010100000000000000,
			0b0100001000100010000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen3,
		Ranks:             2,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x30000000,
		BankShift:         23,
		BankMask:          0b11111,
		RowShift:          13,
		RowMask:           0b1111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        28,
		DRAMMatrix: []uint64{
			0b1111111111100000000000000000,
			0b0100010001000000000100000000,
			0b1000100010000000001000000000,
			0b0001000100000000010000000000,
			0b0010001000000000100000000000,
			0b1000000000000000000000000000,
			0b0100000000000000000000000000,
			0b0010000000000000000000000000,
			0b0001000000000000000000000000,
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b1000011111111110000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000100000000000,
			0b0000000000000000010000000000,
			0b0000000000000000001000000000,
			0b0000000000000000000100000000,
			0b0000100100010000000000000000,
			0b0001000010001000000000000000,
			0b0010010001000100000000000000,
			0b0100001000100010000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen3,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x30000000,
		BankShift:         24,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        28,
		DRAMMatrix: []uint64{
			0b0010001000100000000100000000,
			0b0100010001000000001000000000,
			0b1000100010000000010000000000,
			0b0001000100000000100000000000,
			0b1000000000000000000000000000,
			0b0100000000000000000000000000,
			0b0010000000000000000000000000,
			0b0001000000000000000000000000,
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000110000000000000000000,
			0b0000000101000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000011000000000000000,
			0b0000000000010100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000100000000000,
			0b0000000000000000010000000000,
			0b0000000000000000001000000000,
			0b0000000000000000000100000000,
			0b0001000100010000000000000000,
			0b0010100010011000000000000000,
			0b0100010001010100000000000000,
			0b1000001000100010000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen3,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x30000000,
		BankShift:         24,
		BankMask:          0b1111,
		RowShift:          13,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b1111111111111,
		MatrixSize:        28,
		DRAMMatrix: []uint64{
			0b0010001000100000000100000000,
			0b0100010001000000001000000000,
			0b1000100010000000010000000000,
			0b0001000100000000100000000000,
			0b1000000000000000000000000000,
			0b0100000000000000000000000000,
			0b0010000000000000000000000000,
			0b0001000000000000000000000000,
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b0000100000000000000000000000,
			0b0000010000000000000000000000,
			0b0000001000000000000000000000,
			0b0000000100000000000000000000,
			0b0000000010000000000000000000,
			0b0000000001000000000000000000,
			0b0000000000100000000000000000,
			0b0000000000010000000000000000,
			0b0000000000001000000000000000,
			0b0000000000000100000000000000,
			0b0000000000000010000000000000,
			0b0000000000000001000000000000,
			0b0000000000000000100000000000,
			0b0000000000000000010000000000,
			0b0000000000000000001000000000,
			0b0000000000000000000100000000,
			0b0001000100010000000000000000,
			0b0010100010001000000000000000,
			0b0100010001000100000000000000,
			0b1000001000100010000000000000,
			0b0000000000000000000010000000,
			0b0000000000000000000001000000,
			0b0000000000000000000000100000,
			0b0000000000000000000000010000,
			0b0000000000000000000000001000,
			0b0000000000000000000000000100,
			0b0000000000000000000000000010,
			0b0000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             1,
		BankGroups:        8,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x80000000,
		BankShift:         24,
		BankMask:          0b111111,
		RowShift:          12,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111000000000001000000,
			0b001000010000000001000000000000,
			0b000100001000000000001000000000,
			0b000010000100000000000100000000,
			0b100001000010000000100000000000,
			0b010000100001000000010000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000001100000000000000000000,
			0b000000001010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000001100000000000000,
			0b000000000000001010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b010000001000010000000000000000,
			0b000010100001001010000000000000,
			0b000001010000100001000000000000,
			0b001000000100001000000000000000,
			0b000100000010001100000000000000,
			0b000000000000000000000001000000,
			0b100000111111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             1,
		BankGroups:        8,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x80000000,
		BankShift:         24,
		BankMask:          0b111111,
		RowShift:          12,
		RowMask:           0b111111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111000000000001000000,
			0b001000010000000001000000000000,
			0b000100001000000000001000000000,
			0b000010000100000000000100000000,
			0b100001000010000000100000000000,
			0b010000100001000000010000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b010000001000010000000000000000,
			0b000010100001000010000000000000,
			0b000001010000100001000000000000,
			0b001000000100001000000000000000,
			0b000100000010000100000000000000,
			0b000000000000000000000001000000,
			0b100000111111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x80000000,
		BankShift:         25,
		BankMask:          0b11111,
		RowShift:          12,
		RowMask:           0b1111111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111100000000001000000,
			0b010001000100000000001000000000,
			0b001000100010000000000100000000,
			0b000100010001000000100000000000,
			0b100010001000100000010000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000110000000000000000000,
			0b000000000101000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000001100000000000000,
			0b000000000000001010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000100001000101010000000000000,
			0b000011000100010001000000000000,
			0b010000100010001000000000000000,
			0b001000010001001100000000000000,
			0b000000000000000000000001000000,
			0b100001111111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             1,
		BankGroups:        4,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x80000000,
		BankShift:         25,
		BankMask:          0b11111,
		RowShift:          12,
		RowMask:           0b1111111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111111100000000001000000,
			0b001000100010000000000100000000,
			0b010001000100000000001000000000,
			0b100010001000100000010000000000,
			0b000100010001000000100000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000010001000100010000000000000,
			0b000101000100010001000000000000,
			0b001000100010001000000000000000,
			0b010000010001000100000000000000,
			0b000000000000000000000001000000,
			0b100001111111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             2,
		BankGroups:        8,
		Banks:             4,
		SamsungRowMapping: true,
		PhysDRAMOffset:    0x80000000,
		BankShift:         23,
		BankMask:          0b1111111,
		RowShift:          12,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111110000000000001000000,
			0b000000000001000000000000000000,
			0b010000100000000001000000000000,
			0b001000010000000000001000000000,
			0b000100001000000000000100000000,
			0b000010000100000000100000000000,
			0b100001000010000000010000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000011000000000000000000000,
			0b000000010100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000001100000000000000,
			0b000000000000001010000000000000,
			0b000000000000000001000000000000,
			0b010000000000000000000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b001000001000010000000000000000,
			0b000001000001001010000000000000,
			0b000000110000100001000000000000,
			0b000100000100001000000000000000,
			0b000010000010001100000000000000,
			0b000000000000000000000001000000,
			0b100000011111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
	{
		Uarch:             Zen4,
		Ranks:             2,
		BankGroups:        8,
		Banks:             4,
		SamsungRowMapping: false,
		PhysDRAMOffset:    0x80000000,
		BankShift:         23,
		BankMask:          0b1111111,
		RowShift:          12,
		RowMask:           0b11111111111,
		ColumnShift:       0,
		ColumnMask:        0b111111111111,
		MatrixSize:        30,
		DRAMMatrix: []uint64{
			0b111111111110000000000001000000,
			0b000000000001000000000000000000,
			0b000100001000000000000100000000,
			0b001000010000000000001000000000,
			0b010000100000000001000000000000,
			0b100001000010000000010000000000,
			0b000010000100000000100000000000,
			0b100000000000000000000000000000,
			0b010000000000000000000000000000,
			0b001000000000000000000000000000,
			0b000100000000000000000000000000,
			0b000010000000000000000000000000,
			0b000001000000000000000000000000,
			0b000000100000000000000000000000,
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000000000010000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
		AddrMatrix: []uint64{
			0b000000010000000000000000000000,
			0b000000001000000000000000000000,
			0b000000000100000000000000000000,
			0b000000000010000000000000000000,
			0b000000000001000000000000000000,
			0b000000000000100000000000000000,
			0b000000000000010000000000000000,
			0b000000000000001000000000000000,
			0b000000000000000100000000000000,
			0b000000000000000010000000000000,
			0b000000000000000001000000000000,
			0b010000000000000000000000000000,
			0b000000000000000000100000000000,
			0b000000000000000000010000000000,
			0b000000000000000000001000000000,
			0b000000000000000000000100000000,
			0b000000000000000000000010000000,
			0b000010001000010000000000000000,
			0b000000100001000010000000000000,
			0b000001010000100001000000000000,
			0b000100000100001000000000000000,
			0b001000000010000100000000000000,
			0b000000000000000000000001000000,
			0b100000011111111111000000000000,
			0b000000000000000000000000100000,
			0b000000000000000000000000010000,
			0b000000000000000000000000001000,
			0b000000000000000000000000000100,
			0b000000000000000000000000000010,
			0b000000000000000000000000000001,
		},
	},
}
