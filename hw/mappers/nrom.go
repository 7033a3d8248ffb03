package mappers

import (
	"famicore/hw/snapshot"
	"famicore/ines"
)

var NROM = MapperDesc{
	Name: "NROM",
	Load: func(rom *ines.Rom) Mapper {
		return &nrom{base: newbase(rom, 0)}
	},
}

// nrom has no banking at all: 16KB carts see their single PRG bank mirrored
// at 0x8000 and 0xC000, 32KB carts map it straight.
type nrom struct {
	base
}

func (m *nrom) Reset() {
	m.resetBase()
}

func (m *nrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *nrom) WritePRG(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writeRAM(addr, val)
	}
}

func (m *nrom) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
}

func (m *nrom) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 0); err != nil {
		return err
	}
	return m.setBase(state)
}
