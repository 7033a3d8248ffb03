package mappers

import (
	"famicore/hw/snapshot"
	"famicore/ines"
)

var GxROM = MapperDesc{
	Name: "GxROM",
	Load: func(rom *ines.Rom) Mapper {
		return &gxrom{base: newbase(rom, 66)}
	},
}

type gxrom struct {
	base

	// 7  bit  0
	// ---- ----
	// xxPP xxCC
	//   ||   ||
	//   ||   ++- Select 8 KB CHR ROM bank for PPU 0x0000-0x1FFF
	//   ++------ Select 32 KB PRG ROM bank for CPU 0x8000-0xFFFF
	prgbank uint8
	chrbank uint8
}

func (m *gxrom) Reset() {
	m.resetBase()
	m.prgbank = 0
	m.chrbank = 0
}

func (m *gxrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.readPRG32(int(m.prgbank), addr)
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *gxrom) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.prgbank = (val >> 4) & 0x03
		m.chrbank = val & 0x03
	case addr >= 0x6000:
		m.writeRAM(addr, val)
	}
}

func (m *gxrom) ReadCHR(addr uint16) uint8 {
	return m.chr[m.chrOffset(int(m.chrbank), 0x2000, addr)]
}

func (m *gxrom) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
	state.Regs = []uint8{m.prgbank, m.chrbank}
}

func (m *gxrom) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 2); err != nil {
		return err
	}
	if err := m.setBase(state); err != nil {
		return err
	}
	m.prgbank = state.Regs[0]
	m.chrbank = state.Regs[1]
	return nil
}
