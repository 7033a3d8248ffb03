package mappers

import (
	"famicore/hw/snapshot"
	"famicore/ines"
)

var CNROM = MapperDesc{
	Name: "CNROM",
	Load: func(rom *ines.Rom) Mapper {
		return &cnrom{base: newbase(rom, 3)}
	},
}

type cnrom struct {
	base

	// 7  bit  0
	// ---- ----
	// xxxx xxCC
	//        ||
	//        ++- Select 8 KB CHR ROM bank for PPU 0x0000-0x1FFF
	chrbank uint8
}

func (m *cnrom) Reset() {
	m.resetBase()
	m.chrbank = 0
}

func (m *cnrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *cnrom) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.chrbank = val & 0x03
	case addr >= 0x6000:
		m.writeRAM(addr, val)
	}
}

func (m *cnrom) ReadCHR(addr uint16) uint8 {
	return m.chr[m.chrOffset(int(m.chrbank), 0x2000, addr)]
}

func (m *cnrom) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
	state.Regs = []uint8{m.chrbank}
}

func (m *cnrom) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 1); err != nil {
		return err
	}
	if err := m.setBase(state); err != nil {
		return err
	}
	m.chrbank = state.Regs[0]
	return nil
}
