package hw

import (
	"famicore/hw/mappers"
	"famicore/hw/snapshot"
)

// Bus is the CPU address space: 2KB of work RAM mirrored up to 0x2000, the
// PPU and APU register windows, the controller ports and the cartridge.
type Bus struct {
	RAM    [0x800]uint8
	PPU    *PPU
	APU    *APU
	Mapper mappers.Mapper
	Pads   [2]Controller

	cpu     *CPU
	openBus uint8
	stall   int
}

func NewBus(ppu *PPU, apu *APU, mapper mappers.Mapper) *Bus {
	return &Bus{
		PPU:    ppu,
		APU:    apu,
		Mapper: mapper,
	}
}

// AttachCPU gives the bus access to the cycle counter, needed for the OAM
// DMA alignment penalty.
func (b *Bus) AttachCPU(cpu *CPU) { b.cpu = cpu }

func (b *Bus) Reset() {
	b.RAM = [0x800]uint8{}
	b.Pads[0].Reset()
	b.Pads[1].Reset()
	b.openBus = 0
	b.stall = 0
}

func (b *Bus) Read8(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		b.openBus = b.RAM[addr&0x07FF]
	case addr < 0x4000:
		b.openBus = b.PPU.ReadReg(addr)
	case addr == 0x4015:
		b.openBus = b.APU.ReadStatus()
	case addr == 0x4016 || addr == 0x4017:
		// Only D0 is driven by the pad, the rest floats.
		b.openBus = b.Pads[addr&0x01].Read() | b.openBus&0xE0
	case addr >= 0x4020:
		b.openBus = b.Mapper.ReadPRG(addr)
	}
	return b.openBus
}

func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteReg(addr, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		strobe := val&0x01 != 0
		b.Pads[0].Strobe(strobe)
		b.Pads[1].Strobe(strobe)
	case addr <= 0x4013 || addr == 0x4015 || addr == 0x4017:
		b.APU.WriteReg(addr, val)
	case addr >= 0x4020:
		b.Mapper.WritePRG(addr, val)
	}
}

// oamDMA copies one page into sprite memory. The CPU is suspended for 513
// cycles, 514 when the write lands on an odd cycle.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.PPU.WriteOAM(b.Read8(base + i))
	}
	b.stall += 513
	if b.cpu != nil && b.cpu.Cycles&0x01 != 0 {
		b.stall++
	}
}

// AddStall suspends the CPU for n extra cycles (DMC sample fetches).
func (b *Bus) AddStall(n int) { b.stall += n }

// TakeStall returns and clears the pending CPU suspension.
func (b *Bus) TakeStall() int {
	n := b.stall
	b.stall = 0
	return n
}

func (b *Bus) SaveState(state *snapshot.Console) {
	state.RAM = append(state.RAM[:0], b.RAM[:]...)
	b.Pads[0].SaveState(&state.Pads[0])
	b.Pads[1].SaveState(&state.Pads[1])
}

func (b *Bus) SetState(state *snapshot.Console) {
	copy(b.RAM[:], state.RAM)
	b.Pads[0].SetState(&state.Pads[0])
	b.Pads[1].SetState(&state.Pads[1])
	b.stall = 0
}
