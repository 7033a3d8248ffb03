package mappers

import (
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
	"famicore/ines"
)

var MMC3 = MapperDesc{
	Name: "MMC3",
	Load: func(rom *ines.Rom) Mapper {
		return &mmc3{base: newbase(rom, 4)}
	},
}

// mmc3 switches PRG in 8KB windows and CHR in a 2x2KB + 4x1KB arrangement,
// and counts scanlines by watching A12 rise on the PPU address bus. Games
// use its IRQ for raster effects, so the counter semantics (latch, reload,
// enable/acknowledge) matter.
type mmc3 struct {
	base

	target       uint8 // bank register targeted by the next data write
	prgMode      bool
	chrInversion bool
	regs         [8]uint8

	prgbank [4]int // 8KB PRG windows
	chrbank [8]int // 1KB CHR windows

	lastA12 bool

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqReload  bool
	irqPending bool
}

func (m *mmc3) Reset() {
	m.resetBase()

	m.target = 0
	m.prgMode = false
	m.chrInversion = false
	m.regs = [8]uint8{}
	m.lastA12 = false

	m.irqLatch = 0
	m.irqCounter = 0
	m.irqEnabled = false
	m.irqReload = false
	m.irqPending = false

	m.updateBanks()
}

// updateBanks recomputes the PRG/CHR windows from the bank registers and
// the current mode bits.
func (m *mmc3) updateBanks() {
	last := len(m.prg)>>13 - 1
	if m.prgMode {
		m.prgbank[0] = last - 1
		m.prgbank[2] = int(m.regs[6] & 0x3F)
	} else {
		m.prgbank[0] = int(m.regs[6] & 0x3F)
		m.prgbank[2] = last - 1
	}
	m.prgbank[1] = int(m.regs[7] & 0x3F)
	m.prgbank[3] = last

	if m.chrInversion {
		m.chrbank[0] = int(m.regs[2])
		m.chrbank[1] = int(m.regs[3])
		m.chrbank[2] = int(m.regs[4])
		m.chrbank[3] = int(m.regs[5])
		m.chrbank[4] = int(m.regs[0] & 0xFE)
		m.chrbank[5] = int(m.regs[0] | 0x01)
		m.chrbank[6] = int(m.regs[1] & 0xFE)
		m.chrbank[7] = int(m.regs[1] | 0x01)
	} else {
		m.chrbank[0] = int(m.regs[0] & 0xFE)
		m.chrbank[1] = int(m.regs[0] | 0x01)
		m.chrbank[2] = int(m.regs[1] & 0xFE)
		m.chrbank[3] = int(m.regs[1] | 0x01)
		m.chrbank[4] = int(m.regs[2])
		m.chrbank[5] = int(m.regs[3])
		m.chrbank[6] = int(m.regs[4])
		m.chrbank[7] = int(m.regs[5])
	}
}

func (m *mmc3) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.readPRG8(m.prgbank[(addr>>13)&0x03], addr)
	case addr >= 0x6000:
		return m.readRAM(addr)
	}
	return 0
}

func (m *mmc3) WritePRG(addr uint16, val uint8) {
	switch {
	case addr < 0x6000:
	case addr < 0x8000:
		m.writeRAM(addr, val)
	case addr < 0xA000:
		if addr&0x01 == 0 {
			// Bank select.
			m.target = val & 0x07
			m.prgMode = val&0x40 != 0
			m.chrInversion = val&0x80 != 0
		} else {
			// Bank data.
			m.regs[m.target] = val
		}
		m.updateBanks()
	case addr < 0xC000:
		if addr&0x01 == 0 {
			// Mirroring, unless the cartridge hardwires four-screen.
			if m.mirror != hwdefs.FourScreen {
				if val&0x01 != 0 {
					m.mirror = hwdefs.Horizontal
				} else {
					m.mirror = hwdefs.Vertical
				}
			}
		}
		// Odd registers control PRG RAM protection, not emulated.
	case addr < 0xE000:
		if addr&0x01 == 0 {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	default:
		if addr&0x01 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8 {
	return m.chr[m.chrOffset(m.chrbank[(addr>>10)&0x07], 0x0400, addr)]
}

func (m *mmc3) WriteCHR(addr uint16, val uint8) {
	if m.chrRAM {
		m.chr[m.chrOffset(m.chrbank[(addr>>10)&0x07], 0x0400, addr)] = val
	}
}

// NotifyVRAMAddr clocks the scanline counter on each A12 rising edge.
// During rendering the PPU alternates between pattern table halves once per
// scanline, which is what makes this count scanlines.
func (m *mmc3) NotifyVRAMAddr(addr uint16) {
	a12 := addr&0x1000 != 0
	if !m.lastA12 && a12 {
		if m.irqCounter == 0 || m.irqReload {
			m.irqCounter = m.irqLatch
			m.irqReload = false
		} else {
			m.irqCounter--
		}
		if m.irqCounter == 0 && m.irqEnabled {
			m.irqPending = true
		}
	}
	m.lastA12 = a12
}

func (m *mmc3) PendingIRQ() bool { return m.irqPending }
func (m *mmc3) AckIRQ()          { m.irqPending = false }

func (m *mmc3) SaveState(state *snapshot.Mapper) {
	m.saveBase(state)
	state.Regs = make([]uint8, 0, 11)
	state.Regs = append(state.Regs, m.regs[:]...)
	state.Regs = append(state.Regs, m.target, boolu8(m.prgMode), boolu8(m.chrInversion))
	state.IRQCounter = m.irqCounter
	state.IRQLatch = m.irqLatch
	state.IRQEnabled = m.irqEnabled
	state.IRQReload = m.irqReload
	state.IRQPending = m.irqPending
}

func (m *mmc3) SetState(state *snapshot.Mapper) error {
	if err := checkRegs(state, 11); err != nil {
		return err
	}
	if err := m.setBase(state); err != nil {
		return err
	}
	copy(m.regs[:], state.Regs[:8])
	m.target = state.Regs[8]
	m.prgMode = state.Regs[9] != 0
	m.chrInversion = state.Regs[10] != 0
	m.irqCounter = state.IRQCounter
	m.irqLatch = state.IRQLatch
	m.irqEnabled = state.IRQEnabled
	m.irqReload = state.IRQReload
	m.irqPending = state.IRQPending
	m.updateBanks()
	return nil
}

func boolu8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
