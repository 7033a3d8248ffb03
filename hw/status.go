package hw

// P is the 6502 status register.
type P uint8

// Status register bits, from high to low:
//
//	N V U B D I Z C
const (
	pbitN = 7 - iota // negative
	pbitV            // overflow
	pbitU            // unused, reads as 1
	pbitB            // break, only exists on the stack
	pbitD            // decimal (no effect on the 2A03)
	pbitI            // interrupt disable
	pbitZ            // zero
	pbitC            // carry
)

func (p P) N() bool { return p&(1<<pbitN) != 0 }
func (p P) V() bool { return p&(1<<pbitV) != 0 }
func (p P) D() bool { return p&(1<<pbitD) != 0 }
func (p P) I() bool { return p&(1<<pbitI) != 0 }
func (p P) Z() bool { return p&(1<<pbitZ) != 0 }
func (p P) C() bool { return p&(1<<pbitC) != 0 }

func (p *P) setBit(bit int)   { *p |= 1 << bit }
func (p *P) clearBit(bit int) { *p &^= 1 << bit }

func (p *P) writeBit(bit int, cond bool) {
	if cond {
		p.setBit(bit)
	} else {
		p.clearBit(bit)
	}
}

func (p *P) setN(cond bool) { p.writeBit(pbitN, cond) }
func (p *P) setV(cond bool) { p.writeBit(pbitV, cond) }
func (p *P) setI(cond bool) { p.writeBit(pbitI, cond) }
func (p *P) setZ(cond bool) { p.writeBit(pbitZ, cond) }
func (p *P) setC(cond bool) { p.writeBit(pbitC, cond) }

// checkNZ sets the negative and zero flags from val.
func (p *P) checkNZ(val uint8) {
	p.setN(val&0x80 != 0)
	p.setZ(val == 0)
}

// checkCV sets the carry and overflow flags after an addition
// res16 = a + b + carry.
func (p *P) checkCV(a, b uint8, res16 uint16) {
	p.setC(res16 > 0xFF)
	res := uint8(res16)
	p.setV((a^res)&(b^res)&0x80 != 0)
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"
	var buf [8]byte
	for i := range 8 {
		bit := (p >> (7 - i)) & 1
		buf[i] = bits[int(bit)*8+i]
	}
	return string(buf[:])
}
