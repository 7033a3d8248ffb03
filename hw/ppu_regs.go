package hw

// ReadReg handles CPU reads in the $2000-$3FFF window. Registers repeat
// every 8 bytes. Write-only registers return the decaying open bus value.
func (p *PPU) ReadReg(addr uint16) uint8 {
	switch addr & 0x2007 {
	case 0x2002:
		// Reading PPUSTATUS clears vblank and resets the write toggle.
		// The low 5 bits are open bus.
		res := p.status&0xE0 | p.openBus&0x1F
		p.status &^= statusVBlank
		p.w = false
		p.openBus = res
	case 0x2004:
		p.openBus = p.oam[p.oamAddr]
	case 0x2007:
		val := p.readVRAM(p.v)
		if p.v&0x3FFF < 0x3F00 {
			// Buffered read: the CPU sees the previous fetch.
			val, p.readBuf = p.readBuf, val
		} else {
			// Palette reads are immediate, the buffer is filled with
			// the nametable byte underneath.
			p.readBuf = p.nametables[p.ntOffset(p.v)]
		}
		p.incrementVRAMAddr()
		p.openBus = val
	}
	return p.openBus
}

// WriteReg handles CPU writes in the $2000-$3FFF window.
func (p *PPU) WriteReg(addr uint16, val uint8) {
	p.openBus = val
	switch addr & 0x2007 {
	case 0x2000:
		wasEnabled := p.ctrl&ctrlNMIEnabled != 0
		p.ctrl = val
		p.t = p.t&^0x0C00 | uint16(val&0x03)<<10
		// Enabling NMI while vblank is already set raises one right away.
		if !wasEnabled && val&ctrlNMIEnabled != 0 && p.status&statusVBlank != 0 {
			p.nmiPending = true
		}
	case 0x2001:
		p.mask = val
	case 0x2003:
		p.oamAddr = val
	case 0x2004:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 0x2005:
		if !p.w {
			p.t = p.t&^0x001F | uint16(val)>>3
			p.x = val & 0x07
		} else {
			p.t = p.t &^ 0x73E0
			p.t |= uint16(val&0x07) << 12
			p.t |= uint16(val&0xF8) << 2
		}
		p.w = !p.w
	case 0x2006:
		if !p.w {
			p.t = p.t&0x00FF | uint16(val&0x3F)<<8
		} else {
			p.t = p.t&0xFF00 | uint16(val)
			p.v = p.t
			p.mapper.NotifyVRAMAddr(p.v)
		}
		p.w = !p.w
	case 0x2007:
		p.writeVRAM(p.v, val)
		p.incrementVRAMAddr()
	}
}

// WriteOAM stores one byte at the current OAM address, used by the $4014
// DMA transfer.
func (p *PPU) WriteOAM(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

func (p *PPU) incrementVRAMAddr() {
	if p.ctrl&ctrlVRAMInc32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.mapper.NotifyVRAMAddr(p.v & 0x3FFF)
}
