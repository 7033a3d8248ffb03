package mappers

import (
	"fmt"

	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
	"famicore/ines"
)

// base carries the state common to all variants: the rom images, 8KB of
// PRG RAM at 0x6000-0x7FFF, CHR RAM when the cartridge has no CHR ROM, and
// the current mirroring.
type base struct {
	id     uint16
	prg    []byte
	chr    []byte
	chrRAM bool
	prgRAM []byte
	mirror hwdefs.Mirroring
}

func newbase(rom *ines.Rom, id uint16) base {
	b := base{
		id:     id,
		prg:    rom.PRG,
		mirror: rom.Mirroring(),
		prgRAM: make([]byte, 0x2000),
	}
	if rom.HasCHRRAM() {
		b.chr = make([]byte, 0x2000)
		b.chrRAM = true
	} else {
		b.chr = rom.CHR
	}
	// A trainer loads at 0x7000.
	if len(rom.Trainer) == 512 {
		copy(b.prgRAM[0x1000:], rom.Trainer)
	}
	return b
}

// readPRG16 reads through a 16KB bank window. The bank index is reduced
// modulo the bank count, it can never address out of bounds.
func (b *base) readPRG16(bank int, addr uint16) uint8 {
	bank %= len(b.prg) >> 14
	return b.prg[bank<<14|int(addr&0x3FFF)]
}

// readPRG8 reads through an 8KB bank window.
func (b *base) readPRG8(bank int, addr uint16) uint8 {
	bank %= len(b.prg) >> 13
	return b.prg[bank<<13|int(addr&0x1FFF)]
}

// readPRG32 reads through a 32KB bank window.
func (b *base) readPRG32(bank int, addr uint16) uint8 {
	nbanks := len(b.prg) >> 15
	if nbanks == 0 {
		// 16KB carts mirror their single bank.
		return b.prg[int(addr)%len(b.prg)]
	}
	bank %= nbanks
	return b.prg[bank<<15|int(addr&0x7FFF)]
}

// lastPRG16 is the index of the last 16KB bank.
func (b *base) lastPRG16() int {
	return len(b.prg)>>14 - 1
}

// chrOffset reduces a CHR bank/window pair to an offset into the CHR image.
func (b *base) chrOffset(bank, banksz int, addr uint16) int {
	return (bank*banksz + int(addr)%banksz) % len(b.chr)
}

// Default behaviors, overridden per variant where the hardware differs.

func (b *base) readRAM(addr uint16) uint8 {
	return b.prgRAM[addr&0x1FFF]
}

func (b *base) writeRAM(addr uint16, val uint8) {
	b.prgRAM[addr&0x1FFF] = val
}

func (b *base) ReadCHR(addr uint16) uint8 {
	return b.chr[int(addr)%len(b.chr)]
}

func (b *base) WriteCHR(addr uint16, val uint8) {
	if b.chrRAM {
		b.chr[int(addr)%len(b.chr)] = val
	}
}

func (b *base) Mirroring() hwdefs.Mirroring { return b.mirror }
func (b *base) NotifyVRAMAddr(addr uint16)  {}
func (b *base) PendingIRQ() bool            { return false }
func (b *base) AckIRQ()                     {}

func (b *base) resetBase() {
	clear(b.prgRAM)
	if b.chrRAM {
		clear(b.chr)
	}
}

func (b *base) saveBase(state *snapshot.Mapper) {
	state.ID = b.id
	state.Mirroring = uint8(b.mirror)
	state.PRGRAM = append([]byte(nil), b.prgRAM...)
	if b.chrRAM {
		state.CHRRAM = append([]byte(nil), b.chr...)
	}
}

func (b *base) setBase(state *snapshot.Mapper) error {
	if state.ID != b.id {
		return fmt.Errorf("mapper id mismatch: got %d, want %d", state.ID, b.id)
	}
	if len(state.PRGRAM) != len(b.prgRAM) {
		return fmt.Errorf("bad PRG RAM size: got %d, want %d", len(state.PRGRAM), len(b.prgRAM))
	}
	if b.chrRAM && len(state.CHRRAM) != len(b.chr) {
		return fmt.Errorf("bad CHR RAM size: got %d, want %d", len(state.CHRRAM), len(b.chr))
	}
	b.mirror = hwdefs.Mirroring(state.Mirroring)
	copy(b.prgRAM, state.PRGRAM)
	if b.chrRAM {
		copy(b.chr, state.CHRRAM)
	}
	return nil
}

// checkRegs validates the register count of a restored state.
func checkRegs(state *snapshot.Mapper, want int) error {
	if len(state.Regs) != want {
		return fmt.Errorf("bad register count: got %d, want %d", len(state.Regs), want)
	}
	return nil
}
