package mappers

import (
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
	"famicore/ines"
)

var AxROM = MapperDesc{
	Name: "AxROM",
	Load: func(rom *ines.Rom) Mapper {
		return &axrom{base: newbase(rom, 7)}
	},
}

type axrom struct {
	base

	// 7  bit  0
	// ---- ----
	// xxxM xPPP
	//    |  |||
	//    |  +++- Select 32 KB PRG ROM bank for CPU 0x8000-0xFFFF
	//    +------ Select 1 KB VRAM page for all 4 nametables
	prgbank uint8
}

func (m *axrom) Reset() {
	m.resetBase()
	m.prgbank = 0
	m.mirror = hwdefs.OneScreenLower
}

func (m *axrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.readPRG32(int(m.prgbank), addr)
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *axrom) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgbank = val & 0x07
		if val&0x10 != 0 {
			m.mirror = hwdefs.OneScreenUpper
		} else {
			m.mirror = hwdefs.OneScreenLower
		}
	case addr >= 0x6000:
		m.writeRAM(addr, val)
	}
}

func (m *axrom) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
	state.Regs = []uint8{m.prgbank}
}

func (m *axrom) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 1); err != nil {
		return err
	}
	if err := m.setBase(state); err != nil {
		return err
	}
	m.prgbank = state.Regs[0]
	return nil
}
