package mappers

import (
	"famicore/hw/snapshot"
	"famicore/ines"
)

var UxROM = MapperDesc{
	Name: "UxROM",
	Load: func(rom *ines.Rom) Mapper {
		return &uxrom{base: newbase(rom, 2)}
	},
}

type uxrom struct {
	base

	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU 0x8000-0xBFFF
	prgbank uint8
}

func (m *uxrom) Reset() {
	m.resetBase()
	m.prgbank = 0
}

func (m *uxrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0xC000:
		return m.readPRG16(m.lastPRG16(), addr)
	case addr >= 0x8000:
		return m.readPRG16(int(m.prgbank), addr)
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *uxrom) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgbank = val & 0x0F
	case addr >= 0x6000:
		m.writeRAM(addr, val)
	}
}

func (m *uxrom) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
	state.Regs = []uint8{m.prgbank}
}

func (m *uxrom) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 1); err != nil {
		return err
	}
	if err := m.setBase(state); err != nil {
		return err
	}
	m.prgbank = state.Regs[0]
	return nil
}
