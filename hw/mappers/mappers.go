// Package mappers implements the cartridge-side banking hardware. A mapper
// variant is selected once at load time from the rom's mapper id; the bus
// delegates every access in cartridge space to it.
package mappers

import (
	"errors"
	"fmt"

	"famicore/emu/log"
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
	"famicore/ines"
)

// ErrUnsupportedMapper reports a rom whose mapper id has no implemented
// variant. The load fails, it is never approximated.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Mapper is the fixed capability set the bus relies on. PRG methods cover
// CPU space 0x4020-0xFFFF, CHR methods cover PPU pattern space
// 0x0000-0x1FFF.
type Mapper interface {
	Reset()

	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	// Mirroring returns the current nametable arrangement. Some variants
	// override the header value at runtime.
	Mirroring() hwdefs.Mirroring

	// NotifyVRAMAddr observes PPU address bus transitions; variants with a
	// scanline counter clock it on A12 rising edges.
	NotifyVRAMAddr(addr uint16)

	// PendingIRQ reports whether the mapper asserts its IRQ line. AckIRQ
	// lowers it.
	PendingIRQ() bool
	AckIRQ()

	SaveState(state *snapshot.Mapper)
	SetState(state *snapshot.Mapper) error
}

type MapperDesc struct {
	Name string
	Load func(rom *ines.Rom) Mapper
}

var All = map[uint16]MapperDesc{
	0:  NROM,
	2:  UxROM,
	3:  CNROM,
	4:  MMC3,
	7:  AxROM,
	66: GxROM,
}

// Name returns the human-readable name for a mapper id, or "unknown".
func Name(id uint16) string {
	if desc, ok := All[id]; ok {
		return desc.Name
	}
	return "unknown"
}

// Load selects and initializes the mapper variant for rom.
func Load(rom *ines.Rom) (Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, rom.Mapper())
	}
	m := desc.Load(rom)
	m.Reset()

	log.ModMapper.InfoZ("loaded mapper").
		String("name", desc.Name).
		Uint16("id", rom.Mapper()).
		Int("prg banks", rom.PRGBanks()).
		Int("chr banks", rom.CHRBanks()).
		Stringer("mirroring", m.Mirroring()).
		End()
	return m, nil
}
