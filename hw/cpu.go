package hw

import (
	"famicore/emu/log"
	"famicore/hw/snapshot"
)

// Interrupt vectors.
const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

// Memory is the address space the CPU executes against. The console wires
// in the full Bus; tests wire in flat RAM.
type Memory interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// CPU is the Ricoh 2A03 core (a 6502 without decimal mode, though the D
// flag itself still exists). It holds no reference to the rest of the
// machine: the bus is threaded into each call.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       P

	// Cycles is the total number of CPU cycles elapsed since power-up.
	Cycles uint64

	// halted is latched by a JAM opcode. A real 2A03 deadlocks; we idle
	// instead so the frame loop keeps running.
	halted bool

	// extra cycles accumulated by the executing instruction (branches).
	extra int
}

func NewCPU() *CPU {
	return &CPU{}
}

// Reset puts the CPU in its power-up state and loads PC from the reset
// vector. The 7 cycles it takes are accounted for.
func (c *CPU) Reset(bus Memory) {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = 1<<pbitI | 1<<pbitU
	c.PC = c.read16(bus, ResetVector)
	c.Cycles += 7
	c.halted = false

	log.ModCPU.InfoZ("cpu reset").Hex16("pc", c.PC).End()
}

// Step executes one instruction and returns the cycles it consumed.
func (c *CPU) Step(bus Memory) int {
	if c.halted {
		c.Cycles += 2
		return 2
	}

	opcode := bus.Read8(c.PC)
	c.PC++

	inst := &ops[opcode]
	addr, crossed := c.operand(bus, inst.mode)

	cycles := int(inst.cycles)
	if crossed && inst.pageCycle {
		cycles++
	}

	c.extra = 0
	inst.fn(c, bus, addr, inst.mode)
	cycles += c.extra

	c.Cycles += uint64(cycles)
	return cycles
}

// NMI services a non-maskable interrupt and returns the cycles consumed.
func (c *CPU) NMI(bus Memory) int {
	c.interrupt(bus, NMIVector)
	return 7
}

// IRQ services a maskable interrupt. It returns 0 when the interrupt is
// inhibited by the I flag.
func (c *CPU) IRQ(bus Memory) int {
	if c.P.I() {
		return 0
	}
	c.interrupt(bus, IRQVector)
	return 7
}

func (c *CPU) interrupt(bus Memory, vector uint16) {
	c.push16(bus, c.PC)
	// B clear, U set on the pushed copy.
	c.push8(bus, uint8(c.P)&^(1<<pbitB)|1<<pbitU)
	c.P.setI(true)
	c.PC = c.read16(bus, vector)
	c.Cycles += 7
}

// Halted reports whether a JAM opcode stopped the core.
func (c *CPU) Halted() bool { return c.halted }

// read16 reads a little-endian word.
func (c *CPU) read16(bus Memory, addr uint16) uint16 {
	lo := uint16(bus.Read8(addr))
	hi := uint16(bus.Read8(addr + 1))
	return hi<<8 | lo
}

// read16bug reads a little-endian word without carry propagation into the
// high address byte, reproducing the JMP (indirect) page-boundary bug.
func (c *CPU) read16bug(bus Memory, addr uint16) uint16 {
	lo := uint16(bus.Read8(addr))
	hiaddr := addr&0xFF00 | uint16(uint8(addr)+1)
	hi := uint16(bus.Read8(hiaddr))
	return hi<<8 | lo
}

func (c *CPU) push8(bus Memory, val uint8) {
	bus.Write8(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(bus Memory, val uint16) {
	c.push8(bus, uint8(val>>8))
	c.push8(bus, uint8(val))
}

func (c *CPU) pull8(bus Memory) uint8 {
	c.SP++
	return bus.Read8(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16(bus Memory) uint16 {
	lo := uint16(c.pull8(bus))
	hi := uint16(c.pull8(bus))
	return hi<<8 | lo
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operand computes the effective address for the current instruction and
// reports whether an indexed access crossed a page boundary.
func (c *CPU) operand(bus Memory, mode addrMode) (addr uint16, crossed bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false
	case modeImmediate:
		addr = c.PC
		c.PC++
		return addr, false
	case modeZeroPage:
		addr = uint16(bus.Read8(c.PC))
		c.PC++
		return addr, false
	case modeZeroPageX:
		addr = uint16(bus.Read8(c.PC) + c.X)
		c.PC++
		return addr, false
	case modeZeroPageY:
		addr = uint16(bus.Read8(c.PC) + c.Y)
		c.PC++
		return addr, false
	case modeRelative:
		off := bus.Read8(c.PC)
		c.PC++
		return c.PC + uint16(int8(off)), false
	case modeAbsolute:
		addr = c.read16(bus, c.PC)
		c.PC += 2
		return addr, false
	case modeAbsoluteX:
		base := c.read16(bus, c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		return addr, pageCrossed(base, addr)
	case modeAbsoluteY:
		base := c.read16(bus, c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	case modeIndirect:
		ptr := c.read16(bus, c.PC)
		c.PC += 2
		return c.read16bug(bus, ptr), false
	case modeIndexedIndirect:
		zp := bus.Read8(c.PC) + c.X
		c.PC++
		lo := uint16(bus.Read8(uint16(zp)))
		hi := uint16(bus.Read8(uint16(zp + 1)))
		return hi<<8 | lo, false
	case modeIndirectIndexed:
		zp := bus.Read8(c.PC)
		c.PC++
		lo := uint16(bus.Read8(uint16(zp)))
		hi := uint16(bus.Read8(uint16(zp + 1)))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		return addr, pageCrossed(base, addr)
	}
	return 0, false
}

func (c *CPU) SaveState(state *snapshot.CPU) {
	state.PC = c.PC
	state.SP = c.SP
	state.A = c.A
	state.X = c.X
	state.Y = c.Y
	state.P = uint8(c.P)
	state.Cycles = c.Cycles
	state.Halted = c.halted
}

func (c *CPU) SetState(state *snapshot.CPU) {
	c.PC = state.PC
	c.SP = state.SP
	c.A = state.A
	c.X = state.X
	c.Y = state.Y
	c.P = P(state.P)
	c.Cycles = state.Cycles
	c.halted = state.Halted
}
