package hw

// Addressing modes.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
)

type opcode struct {
	name      string
	mode      addrMode
	cycles    uint8
	pageCycle bool // +1 cycle when an indexed access crosses a page
	fn        func(c *CPU, bus Memory, addr uint16, mode addrMode)
}

// ops is the flat dispatch table, indexed by opcode byte. Every entry is
// populated: slots without an official instruction carry the documented
// behavior of their unofficial opcode.
var ops = [256]opcode{
	0x00: {"BRK", modeImplied, 7, false, (*CPU).brk},
	0x01: {"ORA", modeIndexedIndirect, 6, false, (*CPU).ora},
	0x02: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x03: {"SLO", modeIndexedIndirect, 8, false, (*CPU).slo},
	0x04: {"NOP", modeZeroPage, 3, false, (*CPU).nop},
	0x05: {"ORA", modeZeroPage, 3, false, (*CPU).ora},
	0x06: {"ASL", modeZeroPage, 5, false, (*CPU).asl},
	0x07: {"SLO", modeZeroPage, 5, false, (*CPU).slo},
	0x08: {"PHP", modeImplied, 3, false, (*CPU).php},
	0x09: {"ORA", modeImmediate, 2, false, (*CPU).ora},
	0x0A: {"ASL", modeAccumulator, 2, false, (*CPU).asl},
	0x0B: {"ANC", modeImmediate, 2, false, (*CPU).anc},
	0x0C: {"NOP", modeAbsolute, 4, false, (*CPU).nop},
	0x0D: {"ORA", modeAbsolute, 4, false, (*CPU).ora},
	0x0E: {"ASL", modeAbsolute, 6, false, (*CPU).asl},
	0x0F: {"SLO", modeAbsolute, 6, false, (*CPU).slo},
	0x10: {"BPL", modeRelative, 2, false, (*CPU).bpl},
	0x11: {"ORA", modeIndirectIndexed, 5, true, (*CPU).ora},
	0x12: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x13: {"SLO", modeIndirectIndexed, 8, false, (*CPU).slo},
	0x14: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0x15: {"ORA", modeZeroPageX, 4, false, (*CPU).ora},
	0x16: {"ASL", modeZeroPageX, 6, false, (*CPU).asl},
	0x17: {"SLO", modeZeroPageX, 6, false, (*CPU).slo},
	0x18: {"CLC", modeImplied, 2, false, (*CPU).clc},
	0x19: {"ORA", modeAbsoluteY, 4, true, (*CPU).ora},
	0x1A: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0x1B: {"SLO", modeAbsoluteY, 7, false, (*CPU).slo},
	0x1C: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0x1D: {"ORA", modeAbsoluteX, 4, true, (*CPU).ora},
	0x1E: {"ASL", modeAbsoluteX, 7, false, (*CPU).asl},
	0x1F: {"SLO", modeAbsoluteX, 7, false, (*CPU).slo},
	0x20: {"JSR", modeAbsolute, 6, false, (*CPU).jsr},
	0x21: {"AND", modeIndexedIndirect, 6, false, (*CPU).and},
	0x22: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x23: {"RLA", modeIndexedIndirect, 8, false, (*CPU).rla},
	0x24: {"BIT", modeZeroPage, 3, false, (*CPU).bit},
	0x25: {"AND", modeZeroPage, 3, false, (*CPU).and},
	0x26: {"ROL", modeZeroPage, 5, false, (*CPU).rol},
	0x27: {"RLA", modeZeroPage, 5, false, (*CPU).rla},
	0x28: {"PLP", modeImplied, 4, false, (*CPU).plp},
	0x29: {"AND", modeImmediate, 2, false, (*CPU).and},
	0x2A: {"ROL", modeAccumulator, 2, false, (*CPU).rol},
	0x2B: {"ANC", modeImmediate, 2, false, (*CPU).anc},
	0x2C: {"BIT", modeAbsolute, 4, false, (*CPU).bit},
	0x2D: {"AND", modeAbsolute, 4, false, (*CPU).and},
	0x2E: {"ROL", modeAbsolute, 6, false, (*CPU).rol},
	0x2F: {"RLA", modeAbsolute, 6, false, (*CPU).rla},
	0x30: {"BMI", modeRelative, 2, false, (*CPU).bmi},
	0x31: {"AND", modeIndirectIndexed, 5, true, (*CPU).and},
	0x32: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x33: {"RLA", modeIndirectIndexed, 8, false, (*CPU).rla},
	0x34: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0x35: {"AND", modeZeroPageX, 4, false, (*CPU).and},
	0x36: {"ROL", modeZeroPageX, 6, false, (*CPU).rol},
	0x37: {"RLA", modeZeroPageX, 6, false, (*CPU).rla},
	0x38: {"SEC", modeImplied, 2, false, (*CPU).sec},
	0x39: {"AND", modeAbsoluteY, 4, true, (*CPU).and},
	0x3A: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0x3B: {"RLA", modeAbsoluteY, 7, false, (*CPU).rla},
	0x3C: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0x3D: {"AND", modeAbsoluteX, 4, true, (*CPU).and},
	0x3E: {"ROL", modeAbsoluteX, 7, false, (*CPU).rol},
	0x3F: {"RLA", modeAbsoluteX, 7, false, (*CPU).rla},
	0x40: {"RTI", modeImplied, 6, false, (*CPU).rti},
	0x41: {"EOR", modeIndexedIndirect, 6, false, (*CPU).eor},
	0x42: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x43: {"SRE", modeIndexedIndirect, 8, false, (*CPU).sre},
	0x44: {"NOP", modeZeroPage, 3, false, (*CPU).nop},
	0x45: {"EOR", modeZeroPage, 3, false, (*CPU).eor},
	0x46: {"LSR", modeZeroPage, 5, false, (*CPU).lsr},
	0x47: {"SRE", modeZeroPage, 5, false, (*CPU).sre},
	0x48: {"PHA", modeImplied, 3, false, (*CPU).pha},
	0x49: {"EOR", modeImmediate, 2, false, (*CPU).eor},
	0x4A: {"LSR", modeAccumulator, 2, false, (*CPU).lsr},
	0x4B: {"ALR", modeImmediate, 2, false, (*CPU).alr},
	0x4C: {"JMP", modeAbsolute, 3, false, (*CPU).jmp},
	0x4D: {"EOR", modeAbsolute, 4, false, (*CPU).eor},
	0x4E: {"LSR", modeAbsolute, 6, false, (*CPU).lsr},
	0x4F: {"SRE", modeAbsolute, 6, false, (*CPU).sre},
	0x50: {"BVC", modeRelative, 2, false, (*CPU).bvc},
	0x51: {"EOR", modeIndirectIndexed, 5, true, (*CPU).eor},
	0x52: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x53: {"SRE", modeIndirectIndexed, 8, false, (*CPU).sre},
	0x54: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0x55: {"EOR", modeZeroPageX, 4, false, (*CPU).eor},
	0x56: {"LSR", modeZeroPageX, 6, false, (*CPU).lsr},
	0x57: {"SRE", modeZeroPageX, 6, false, (*CPU).sre},
	0x58: {"CLI", modeImplied, 2, false, (*CPU).cli},
	0x59: {"EOR", modeAbsoluteY, 4, true, (*CPU).eor},
	0x5A: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0x5B: {"SRE", modeAbsoluteY, 7, false, (*CPU).sre},
	0x5C: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0x5D: {"EOR", modeAbsoluteX, 4, true, (*CPU).eor},
	0x5E: {"LSR", modeAbsoluteX, 7, false, (*CPU).lsr},
	0x5F: {"SRE", modeAbsoluteX, 7, false, (*CPU).sre},
	0x60: {"RTS", modeImplied, 6, false, (*CPU).rts},
	0x61: {"ADC", modeIndexedIndirect, 6, false, (*CPU).adc},
	0x62: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x63: {"RRA", modeIndexedIndirect, 8, false, (*CPU).rra},
	0x64: {"NOP", modeZeroPage, 3, false, (*CPU).nop},
	0x65: {"ADC", modeZeroPage, 3, false, (*CPU).adc},
	0x66: {"ROR", modeZeroPage, 5, false, (*CPU).ror},
	0x67: {"RRA", modeZeroPage, 5, false, (*CPU).rra},
	0x68: {"PLA", modeImplied, 4, false, (*CPU).pla},
	0x69: {"ADC", modeImmediate, 2, false, (*CPU).adc},
	0x6A: {"ROR", modeAccumulator, 2, false, (*CPU).ror},
	0x6B: {"ARR", modeImmediate, 2, false, (*CPU).arr},
	0x6C: {"JMP", modeIndirect, 5, false, (*CPU).jmp},
	0x6D: {"ADC", modeAbsolute, 4, false, (*CPU).adc},
	0x6E: {"ROR", modeAbsolute, 6, false, (*CPU).ror},
	0x6F: {"RRA", modeAbsolute, 6, false, (*CPU).rra},
	0x70: {"BVS", modeRelative, 2, false, (*CPU).bvs},
	0x71: {"ADC", modeIndirectIndexed, 5, true, (*CPU).adc},
	0x72: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x73: {"RRA", modeIndirectIndexed, 8, false, (*CPU).rra},
	0x74: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0x75: {"ADC", modeZeroPageX, 4, false, (*CPU).adc},
	0x76: {"ROR", modeZeroPageX, 6, false, (*CPU).ror},
	0x77: {"RRA", modeZeroPageX, 6, false, (*CPU).rra},
	0x78: {"SEI", modeImplied, 2, false, (*CPU).sei},
	0x79: {"ADC", modeAbsoluteY, 4, true, (*CPU).adc},
	0x7A: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0x7B: {"RRA", modeAbsoluteY, 7, false, (*CPU).rra},
	0x7C: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0x7D: {"ADC", modeAbsoluteX, 4, true, (*CPU).adc},
	0x7E: {"ROR", modeAbsoluteX, 7, false, (*CPU).ror},
	0x7F: {"RRA", modeAbsoluteX, 7, false, (*CPU).rra},
	0x80: {"NOP", modeImmediate, 2, false, (*CPU).nop},
	0x81: {"STA", modeIndexedIndirect, 6, false, (*CPU).sta},
	0x82: {"NOP", modeImmediate, 2, false, (*CPU).nop},
	0x83: {"SAX", modeIndexedIndirect, 6, false, (*CPU).sax},
	0x84: {"STY", modeZeroPage, 3, false, (*CPU).sty},
	0x85: {"STA", modeZeroPage, 3, false, (*CPU).sta},
	0x86: {"STX", modeZeroPage, 3, false, (*CPU).stx},
	0x87: {"SAX", modeZeroPage, 3, false, (*CPU).sax},
	0x88: {"DEY", modeImplied, 2, false, (*CPU).dey},
	0x89: {"NOP", modeImmediate, 2, false, (*CPU).nop},
	0x8A: {"TXA", modeImplied, 2, false, (*CPU).txa},
	0x8B: {"XAA", modeImmediate, 2, false, (*CPU).xaa},
	0x8C: {"STY", modeAbsolute, 4, false, (*CPU).sty},
	0x8D: {"STA", modeAbsolute, 4, false, (*CPU).sta},
	0x8E: {"STX", modeAbsolute, 4, false, (*CPU).stx},
	0x8F: {"SAX", modeAbsolute, 4, false, (*CPU).sax},
	0x90: {"BCC", modeRelative, 2, false, (*CPU).bcc},
	0x91: {"STA", modeIndirectIndexed, 6, false, (*CPU).sta},
	0x92: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0x93: {"SHA", modeIndirectIndexed, 6, false, (*CPU).sha},
	0x94: {"STY", modeZeroPageX, 4, false, (*CPU).sty},
	0x95: {"STA", modeZeroPageX, 4, false, (*CPU).sta},
	0x96: {"STX", modeZeroPageY, 4, false, (*CPU).stx},
	0x97: {"SAX", modeZeroPageY, 4, false, (*CPU).sax},
	0x98: {"TYA", modeImplied, 2, false, (*CPU).tya},
	0x99: {"STA", modeAbsoluteY, 5, false, (*CPU).sta},
	0x9A: {"TXS", modeImplied, 2, false, (*CPU).txs},
	0x9B: {"TAS", modeAbsoluteY, 5, false, (*CPU).tas},
	0x9C: {"SHY", modeAbsoluteX, 5, false, (*CPU).shy},
	0x9D: {"STA", modeAbsoluteX, 5, false, (*CPU).sta},
	0x9E: {"SHX", modeAbsoluteY, 5, false, (*CPU).shx},
	0x9F: {"SHA", modeAbsoluteY, 5, false, (*CPU).sha},
	0xA0: {"LDY", modeImmediate, 2, false, (*CPU).ldy},
	0xA1: {"LDA", modeIndexedIndirect, 6, false, (*CPU).lda},
	0xA2: {"LDX", modeImmediate, 2, false, (*CPU).ldx},
	0xA3: {"LAX", modeIndexedIndirect, 6, false, (*CPU).lax},
	0xA4: {"LDY", modeZeroPage, 3, false, (*CPU).ldy},
	0xA5: {"LDA", modeZeroPage, 3, false, (*CPU).lda},
	0xA6: {"LDX", modeZeroPage, 3, false, (*CPU).ldx},
	0xA7: {"LAX", modeZeroPage, 3, false, (*CPU).lax},
	0xA8: {"TAY", modeImplied, 2, false, (*CPU).tay},
	0xA9: {"LDA", modeImmediate, 2, false, (*CPU).lda},
	0xAA: {"TAX", modeImplied, 2, false, (*CPU).tax},
	0xAB: {"LAX", modeImmediate, 2, false, (*CPU).lax},
	0xAC: {"LDY", modeAbsolute, 4, false, (*CPU).ldy},
	0xAD: {"LDA", modeAbsolute, 4, false, (*CPU).lda},
	0xAE: {"LDX", modeAbsolute, 4, false, (*CPU).ldx},
	0xAF: {"LAX", modeAbsolute, 4, false, (*CPU).lax},
	0xB0: {"BCS", modeRelative, 2, false, (*CPU).bcs},
	0xB1: {"LDA", modeIndirectIndexed, 5, true, (*CPU).lda},
	0xB2: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0xB3: {"LAX", modeIndirectIndexed, 5, true, (*CPU).lax},
	0xB4: {"LDY", modeZeroPageX, 4, false, (*CPU).ldy},
	0xB5: {"LDA", modeZeroPageX, 4, false, (*CPU).lda},
	0xB6: {"LDX", modeZeroPageY, 4, false, (*CPU).ldx},
	0xB7: {"LAX", modeZeroPageY, 4, false, (*CPU).lax},
	0xB8: {"CLV", modeImplied, 2, false, (*CPU).clv},
	0xB9: {"LDA", modeAbsoluteY, 4, true, (*CPU).lda},
	0xBA: {"TSX", modeImplied, 2, false, (*CPU).tsx},
	0xBB: {"LAS", modeAbsoluteY, 4, true, (*CPU).las},
	0xBC: {"LDY", modeAbsoluteX, 4, true, (*CPU).ldy},
	0xBD: {"LDA", modeAbsoluteX, 4, true, (*CPU).lda},
	0xBE: {"LDX", modeAbsoluteY, 4, true, (*CPU).ldx},
	0xBF: {"LAX", modeAbsoluteY, 4, true, (*CPU).lax},
	0xC0: {"CPY", modeImmediate, 2, false, (*CPU).cpy},
	0xC1: {"CMP", modeIndexedIndirect, 6, false, (*CPU).cmp},
	0xC2: {"NOP", modeImmediate, 2, false, (*CPU).nop},
	0xC3: {"DCP", modeIndexedIndirect, 8, false, (*CPU).dcp},
	0xC4: {"CPY", modeZeroPage, 3, false, (*CPU).cpy},
	0xC5: {"CMP", modeZeroPage, 3, false, (*CPU).cmp},
	0xC6: {"DEC", modeZeroPage, 5, false, (*CPU).dec},
	0xC7: {"DCP", modeZeroPage, 5, false, (*CPU).dcp},
	0xC8: {"INY", modeImplied, 2, false, (*CPU).iny},
	0xC9: {"CMP", modeImmediate, 2, false, (*CPU).cmp},
	0xCA: {"DEX", modeImplied, 2, false, (*CPU).dex},
	0xCB: {"AXS", modeImmediate, 2, false, (*CPU).axs},
	0xCC: {"CPY", modeAbsolute, 4, false, (*CPU).cpy},
	0xCD: {"CMP", modeAbsolute, 4, false, (*CPU).cmp},
	0xCE: {"DEC", modeAbsolute, 6, false, (*CPU).dec},
	0xCF: {"DCP", modeAbsolute, 6, false, (*CPU).dcp},
	0xD0: {"BNE", modeRelative, 2, false, (*CPU).bne},
	0xD1: {"CMP", modeIndirectIndexed, 5, true, (*CPU).cmp},
	0xD2: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0xD3: {"DCP", modeIndirectIndexed, 8, false, (*CPU).dcp},
	0xD4: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0xD5: {"CMP", modeZeroPageX, 4, false, (*CPU).cmp},
	0xD6: {"DEC", modeZeroPageX, 6, false, (*CPU).dec},
	0xD7: {"DCP", modeZeroPageX, 6, false, (*CPU).dcp},
	0xD8: {"CLD", modeImplied, 2, false, (*CPU).cld},
	0xD9: {"CMP", modeAbsoluteY, 4, true, (*CPU).cmp},
	0xDA: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0xDB: {"DCP", modeAbsoluteY, 7, false, (*CPU).dcp},
	0xDC: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0xDD: {"CMP", modeAbsoluteX, 4, true, (*CPU).cmp},
	0xDE: {"DEC", modeAbsoluteX, 7, false, (*CPU).dec},
	0xDF: {"DCP", modeAbsoluteX, 7, false, (*CPU).dcp},
	0xE0: {"CPX", modeImmediate, 2, false, (*CPU).cpx},
	0xE1: {"SBC", modeIndexedIndirect, 6, false, (*CPU).sbc},
	0xE2: {"NOP", modeImmediate, 2, false, (*CPU).nop},
	0xE3: {"ISB", modeIndexedIndirect, 8, false, (*CPU).isb},
	0xE4: {"CPX", modeZeroPage, 3, false, (*CPU).cpx},
	0xE5: {"SBC", modeZeroPage, 3, false, (*CPU).sbc},
	0xE6: {"INC", modeZeroPage, 5, false, (*CPU).inc},
	0xE7: {"ISB", modeZeroPage, 5, false, (*CPU).isb},
	0xE8: {"INX", modeImplied, 2, false, (*CPU).inx},
	0xE9: {"SBC", modeImmediate, 2, false, (*CPU).sbc},
	0xEA: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0xEB: {"SBC", modeImmediate, 2, false, (*CPU).sbc},
	0xEC: {"CPX", modeAbsolute, 4, false, (*CPU).cpx},
	0xED: {"SBC", modeAbsolute, 4, false, (*CPU).sbc},
	0xEE: {"INC", modeAbsolute, 6, false, (*CPU).inc},
	0xEF: {"ISB", modeAbsolute, 6, false, (*CPU).isb},
	0xF0: {"BEQ", modeRelative, 2, false, (*CPU).beq},
	0xF1: {"SBC", modeIndirectIndexed, 5, true, (*CPU).sbc},
	0xF2: {"JAM", modeImplied, 2, false, (*CPU).jam},
	0xF3: {"ISB", modeIndirectIndexed, 8, false, (*CPU).isb},
	0xF4: {"NOP", modeZeroPageX, 4, false, (*CPU).nop},
	0xF5: {"SBC", modeZeroPageX, 4, false, (*CPU).sbc},
	0xF6: {"INC", modeZeroPageX, 6, false, (*CPU).inc},
	0xF7: {"ISB", modeZeroPageX, 6, false, (*CPU).isb},
	0xF8: {"SED", modeImplied, 2, false, (*CPU).sed},
	0xF9: {"SBC", modeAbsoluteY, 4, true, (*CPU).sbc},
	0xFA: {"NOP", modeImplied, 2, false, (*CPU).nop},
	0xFB: {"ISB", modeAbsoluteY, 7, false, (*CPU).isb},
	0xFC: {"NOP", modeAbsoluteX, 4, true, (*CPU).nop},
	0xFD: {"SBC", modeAbsoluteX, 4, true, (*CPU).sbc},
	0xFE: {"INC", modeAbsoluteX, 7, false, (*CPU).inc},
	0xFF: {"ISB", modeAbsoluteX, 7, false, (*CPU).isb},
}

// branch applies the taken/page-cross cycle penalties and jumps.
func (c *CPU) branch(target uint16, cond bool) {
	if !cond {
		return
	}
	c.extra++
	if pageCrossed(c.PC, target) {
		c.extra++
	}
	c.PC = target
}

// Loads and stores.

func (c *CPU) lda(bus Memory, addr uint16, _ addrMode) {
	c.A = bus.Read8(addr)
	c.P.checkNZ(c.A)
}

func (c *CPU) ldx(bus Memory, addr uint16, _ addrMode) {
	c.X = bus.Read8(addr)
	c.P.checkNZ(c.X)
}

func (c *CPU) ldy(bus Memory, addr uint16, _ addrMode) {
	c.Y = bus.Read8(addr)
	c.P.checkNZ(c.Y)
}

func (c *CPU) sta(bus Memory, addr uint16, _ addrMode) { bus.Write8(addr, c.A) }
func (c *CPU) stx(bus Memory, addr uint16, _ addrMode) { bus.Write8(addr, c.X) }
func (c *CPU) sty(bus Memory, addr uint16, _ addrMode) { bus.Write8(addr, c.Y) }

// Transfers.

func (c *CPU) tax(_ Memory, _ uint16, _ addrMode) { c.X = c.A; c.P.checkNZ(c.X) }
func (c *CPU) tay(_ Memory, _ uint16, _ addrMode) { c.Y = c.A; c.P.checkNZ(c.Y) }
func (c *CPU) txa(_ Memory, _ uint16, _ addrMode) { c.A = c.X; c.P.checkNZ(c.A) }
func (c *CPU) tya(_ Memory, _ uint16, _ addrMode) { c.A = c.Y; c.P.checkNZ(c.A) }
func (c *CPU) tsx(_ Memory, _ uint16, _ addrMode) { c.X = c.SP; c.P.checkNZ(c.X) }
func (c *CPU) txs(_ Memory, _ uint16, _ addrMode) { c.SP = c.X }

// Arithmetic.

func (c *CPU) addWithCarry(val uint8) {
	carry := uint16(0)
	if c.P.C() {
		carry = 1
	}
	res := uint16(c.A) + uint16(val) + carry
	c.P.checkCV(c.A, val, res)
	c.A = uint8(res)
	c.P.checkNZ(c.A)
}

func (c *CPU) adc(bus Memory, addr uint16, _ addrMode) {
	c.addWithCarry(bus.Read8(addr))
}

func (c *CPU) sbc(bus Memory, addr uint16, _ addrMode) {
	c.addWithCarry(^bus.Read8(addr))
}

func (c *CPU) compare(reg, val uint8) {
	c.P.setC(reg >= val)
	c.P.checkNZ(reg - val)
}

func (c *CPU) cmp(bus Memory, addr uint16, _ addrMode) { c.compare(c.A, bus.Read8(addr)) }
func (c *CPU) cpx(bus Memory, addr uint16, _ addrMode) { c.compare(c.X, bus.Read8(addr)) }
func (c *CPU) cpy(bus Memory, addr uint16, _ addrMode) { c.compare(c.Y, bus.Read8(addr)) }

// Logic.

func (c *CPU) ora(bus Memory, addr uint16, _ addrMode) {
	c.A |= bus.Read8(addr)
	c.P.checkNZ(c.A)
}

func (c *CPU) and(bus Memory, addr uint16, _ addrMode) {
	c.A &= bus.Read8(addr)
	c.P.checkNZ(c.A)
}

func (c *CPU) eor(bus Memory, addr uint16, _ addrMode) {
	c.A ^= bus.Read8(addr)
	c.P.checkNZ(c.A)
}

func (c *CPU) bit(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr)
	c.P.setZ(c.A&val == 0)
	c.P.setN(val&0x80 != 0)
	c.P.setV(val&0x40 != 0)
}

// Shifts and rotates, on the accumulator or on memory depending on the
// addressing mode.

func (c *CPU) shiftLeft(val uint8, withCarry bool) uint8 {
	carryIn := uint8(0)
	if withCarry && c.P.C() {
		carryIn = 1
	}
	c.P.setC(val&0x80 != 0)
	val = val<<1 | carryIn
	c.P.checkNZ(val)
	return val
}

func (c *CPU) shiftRight(val uint8, withCarry bool) uint8 {
	carryIn := uint8(0)
	if withCarry && c.P.C() {
		carryIn = 0x80
	}
	c.P.setC(val&0x01 != 0)
	val = val>>1 | carryIn
	c.P.checkNZ(val)
	return val
}

func (c *CPU) asl(bus Memory, addr uint16, mode addrMode) {
	if mode == modeAccumulator {
		c.A = c.shiftLeft(c.A, false)
		return
	}
	bus.Write8(addr, c.shiftLeft(bus.Read8(addr), false))
}

func (c *CPU) lsr(bus Memory, addr uint16, mode addrMode) {
	if mode == modeAccumulator {
		c.A = c.shiftRight(c.A, false)
		return
	}
	bus.Write8(addr, c.shiftRight(bus.Read8(addr), false))
}

func (c *CPU) rol(bus Memory, addr uint16, mode addrMode) {
	if mode == modeAccumulator {
		c.A = c.shiftLeft(c.A, true)
		return
	}
	bus.Write8(addr, c.shiftLeft(bus.Read8(addr), true))
}

func (c *CPU) ror(bus Memory, addr uint16, mode addrMode) {
	if mode == modeAccumulator {
		c.A = c.shiftRight(c.A, true)
		return
	}
	bus.Write8(addr, c.shiftRight(bus.Read8(addr), true))
}

// Increments and decrements.

func (c *CPU) inc(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr) + 1
	bus.Write8(addr, val)
	c.P.checkNZ(val)
}

func (c *CPU) dec(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr) - 1
	bus.Write8(addr, val)
	c.P.checkNZ(val)
}

func (c *CPU) inx(_ Memory, _ uint16, _ addrMode) { c.X++; c.P.checkNZ(c.X) }
func (c *CPU) iny(_ Memory, _ uint16, _ addrMode) { c.Y++; c.P.checkNZ(c.Y) }
func (c *CPU) dex(_ Memory, _ uint16, _ addrMode) { c.X--; c.P.checkNZ(c.X) }
func (c *CPU) dey(_ Memory, _ uint16, _ addrMode) { c.Y--; c.P.checkNZ(c.Y) }

// Jumps, calls and returns.

func (c *CPU) jmp(_ Memory, addr uint16, _ addrMode) { c.PC = addr }

func (c *CPU) jsr(bus Memory, addr uint16, _ addrMode) {
	c.push16(bus, c.PC-1)
	c.PC = addr
}

func (c *CPU) rts(bus Memory, _ uint16, _ addrMode) {
	c.PC = c.pull16(bus) + 1
}

func (c *CPU) rti(bus Memory, _ uint16, _ addrMode) {
	c.P = P(c.pull8(bus))&^(1<<pbitB) | 1<<pbitU
	c.PC = c.pull16(bus)
}

func (c *CPU) brk(bus Memory, _ uint16, _ addrMode) {
	// BRK has a padding byte.
	c.PC++
	c.push16(bus, c.PC)
	c.push8(bus, uint8(c.P)|1<<pbitB|1<<pbitU)
	c.P.setI(true)
	c.PC = c.read16(bus, IRQVector)
}

// Branches.

func (c *CPU) bpl(_ Memory, addr uint16, _ addrMode) { c.branch(addr, !c.P.N()) }
func (c *CPU) bmi(_ Memory, addr uint16, _ addrMode) { c.branch(addr, c.P.N()) }
func (c *CPU) bvc(_ Memory, addr uint16, _ addrMode) { c.branch(addr, !c.P.V()) }
func (c *CPU) bvs(_ Memory, addr uint16, _ addrMode) { c.branch(addr, c.P.V()) }
func (c *CPU) bcc(_ Memory, addr uint16, _ addrMode) { c.branch(addr, !c.P.C()) }
func (c *CPU) bcs(_ Memory, addr uint16, _ addrMode) { c.branch(addr, c.P.C()) }
func (c *CPU) bne(_ Memory, addr uint16, _ addrMode) { c.branch(addr, !c.P.Z()) }
func (c *CPU) beq(_ Memory, addr uint16, _ addrMode) { c.branch(addr, c.P.Z()) }

// Stack.

func (c *CPU) pha(bus Memory, _ uint16, _ addrMode) { c.push8(bus, c.A) }

func (c *CPU) pla(bus Memory, _ uint16, _ addrMode) {
	c.A = c.pull8(bus)
	c.P.checkNZ(c.A)
}

func (c *CPU) php(bus Memory, _ uint16, _ addrMode) {
	// B and U read as 1 on the pushed copy.
	c.push8(bus, uint8(c.P)|1<<pbitB|1<<pbitU)
}

func (c *CPU) plp(bus Memory, _ uint16, _ addrMode) {
	c.P = P(c.pull8(bus))&^(1<<pbitB) | 1<<pbitU
}

// Flags.

func (c *CPU) clc(_ Memory, _ uint16, _ addrMode) { c.P.clearBit(pbitC) }
func (c *CPU) sec(_ Memory, _ uint16, _ addrMode) { c.P.setBit(pbitC) }
func (c *CPU) cli(_ Memory, _ uint16, _ addrMode) { c.P.clearBit(pbitI) }
func (c *CPU) sei(_ Memory, _ uint16, _ addrMode) { c.P.setBit(pbitI) }
func (c *CPU) clv(_ Memory, _ uint16, _ addrMode) { c.P.clearBit(pbitV) }
func (c *CPU) cld(_ Memory, _ uint16, _ addrMode) { c.P.clearBit(pbitD) }
func (c *CPU) sed(_ Memory, _ uint16, _ addrMode) { c.P.setBit(pbitD) }

// nop still performs the operand read so that side-effectful addresses
// behave as on hardware.
func (c *CPU) nop(bus Memory, addr uint16, mode addrMode) {
	if mode != modeImplied {
		bus.Read8(addr)
	}
}

// jam latches the halted state. A real 2A03 stops responding; the frame
// loop keeps ticking an idle core instead.
func (c *CPU) jam(_ Memory, _ uint16, _ addrMode) {
	c.halted = true
	c.PC--
}

// Unofficial opcodes. Only the stable behaviors are reproduced.

func (c *CPU) lax(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr)
	c.A = val
	c.X = val
	c.P.checkNZ(val)
}

func (c *CPU) sax(bus Memory, addr uint16, _ addrMode) {
	bus.Write8(addr, c.A&c.X)
}

func (c *CPU) dcp(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr) - 1
	bus.Write8(addr, val)
	c.compare(c.A, val)
}

func (c *CPU) isb(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr) + 1
	bus.Write8(addr, val)
	c.addWithCarry(^val)
}

func (c *CPU) slo(bus Memory, addr uint16, _ addrMode) {
	val := c.shiftLeft(bus.Read8(addr), false)
	bus.Write8(addr, val)
	c.A |= val
	c.P.checkNZ(c.A)
}

func (c *CPU) rla(bus Memory, addr uint16, _ addrMode) {
	val := c.shiftLeft(bus.Read8(addr), true)
	bus.Write8(addr, val)
	c.A &= val
	c.P.checkNZ(c.A)
}

func (c *CPU) sre(bus Memory, addr uint16, _ addrMode) {
	val := c.shiftRight(bus.Read8(addr), false)
	bus.Write8(addr, val)
	c.A ^= val
	c.P.checkNZ(c.A)
}

func (c *CPU) rra(bus Memory, addr uint16, _ addrMode) {
	val := c.shiftRight(bus.Read8(addr), true)
	bus.Write8(addr, val)
	c.addWithCarry(val)
}

func (c *CPU) anc(bus Memory, addr uint16, _ addrMode) {
	c.A &= bus.Read8(addr)
	c.P.checkNZ(c.A)
	c.P.setC(c.A&0x80 != 0)
}

func (c *CPU) alr(bus Memory, addr uint16, _ addrMode) {
	c.A &= bus.Read8(addr)
	c.A = c.shiftRight(c.A, false)
}

func (c *CPU) arr(bus Memory, addr uint16, _ addrMode) {
	c.A &= bus.Read8(addr)
	carryIn := uint8(0)
	if c.P.C() {
		carryIn = 0x80
	}
	c.A = c.A>>1 | carryIn
	c.P.checkNZ(c.A)
	c.P.setC(c.A&0x40 != 0)
	c.P.setV((c.A>>6^c.A>>5)&0x01 != 0)
}

func (c *CPU) axs(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr)
	anded := c.A & c.X
	c.P.setC(anded >= val)
	c.X = anded - val
	c.P.checkNZ(c.X)
}

func (c *CPU) xaa(bus Memory, addr uint16, _ addrMode) {
	c.A = c.X & bus.Read8(addr)
	c.P.checkNZ(c.A)
}

func (c *CPU) las(bus Memory, addr uint16, _ addrMode) {
	val := bus.Read8(addr) & c.SP
	c.A = val
	c.X = val
	c.SP = val
	c.P.checkNZ(val)
}

// The SH* group stores a register ANDed with the high byte of the target
// address plus one.

func (c *CPU) sha(bus Memory, addr uint16, _ addrMode) {
	bus.Write8(addr, c.A&c.X&(uint8(addr>>8)+1))
}

func (c *CPU) shx(bus Memory, addr uint16, _ addrMode) {
	bus.Write8(addr, c.X&(uint8(addr>>8)+1))
}

func (c *CPU) shy(bus Memory, addr uint16, _ addrMode) {
	bus.Write8(addr, c.Y&(uint8(addr>>8)+1))
}

func (c *CPU) tas(bus Memory, addr uint16, _ addrMode) {
	c.SP = c.A & c.X
	bus.Write8(addr, c.SP&(uint8(addr>>8)+1))
}
