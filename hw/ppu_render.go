package hw

// renderDot performs the memory fetches and pixel output of the current
// (scanline, dot) position.
func (p *PPU) renderDot() {
	visibleLine := p.scanline >= 0 && p.scanline < FrameHeight
	visibleDot := p.dot >= 1 && p.dot <= FrameWidth

	if !p.renderingEnabled() {
		// Forced blank: the screen shows the backdrop color, or the
		// palette entry the VRAM address happens to point at.
		if visibleLine && visibleDot {
			idx := uint16(0x3F00)
			if p.v&0x3FFF >= 0x3F00 {
				idx = p.v
			}
			p.putPixel(p.dot-1, p.scanline, p.palette[paletteIdx(idx)])
		}
		return
	}

	preLine := p.scanline == -1
	renderLine := preLine || visibleLine
	fetchDot := visibleDot || (p.dot >= 321 && p.dot <= 336)

	if visibleLine && visibleDot {
		p.renderPixel()
	}

	if renderLine && fetchDot {
		p.shiftBGLo <<= 1
		p.shiftBGHi <<= 1
		p.shiftATLo <<= 1
		p.shiftATHi <<= 1

		switch p.dot % 8 {
		case 1:
			p.ntLatch = p.readVRAM(0x2000 | p.v&0x0FFF)
		case 3:
			p.fetchAttribute()
		case 5:
			p.bgLoLatch = p.readVRAM(p.bgPatternAddr())
		case 7:
			p.bgHiLatch = p.readVRAM(p.bgPatternAddr() + 8)
		case 0:
			p.reloadShifters()
			p.incrementX()
		}
	}

	if renderLine {
		if p.dot == 256 {
			p.incrementY()
		}
		if p.dot == 257 {
			p.copyX()
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.spriteCount = 0
				p.sprite0Line = false
			}
		}
	}

	if preLine && p.dot >= 280 && p.dot <= 304 {
		p.copyY()
	}
}

func (p *PPU) putPixel(x, y int, idx uint8) {
	if p.mask&maskGrayscale != 0 {
		idx &= 0x30
	}
	p.frame[y*FrameWidth+x] = idx & 0x3F
}

// bgPatternAddr computes the pattern table address of the tile in ntLatch
// at the current fine y scroll.
func (p *PPU) bgPatternAddr() uint16 {
	fineY := (p.v >> 12) & 0x07
	table := uint16(0)
	if p.ctrl&ctrlBGTable != 0 {
		table = 0x1000
	}
	return table | uint16(p.ntLatch)<<4 | fineY
}

// fetchAttribute loads the 2-bit palette selector of the current tile.
func (p *PPU) fetchAttribute() {
	addr := 0x23C0 | p.v&0x0C00 | (p.v>>4)&0x38 | (p.v>>2)&0x07
	shift := (p.v>>4)&0x04 | p.v&0x02
	p.atLatch = (p.readVRAM(addr) >> shift) & 0x03
}

// reloadShifters feeds the latched tile into the low byte of the shift
// registers, the high byte still holds the previous tile.
func (p *PPU) reloadShifters() {
	p.shiftBGLo = p.shiftBGLo&0xFF00 | uint16(p.bgLoLatch)
	p.shiftBGHi = p.shiftBGHi&0xFF00 | uint16(p.bgHiLatch)

	atLo, atHi := uint16(0), uint16(0)
	if p.atLatch&0x01 != 0 {
		atLo = 0x00FF
	}
	if p.atLatch&0x02 != 0 {
		atHi = 0x00FF
	}
	p.shiftATLo = p.shiftATLo&0xFF00 | atLo
	p.shiftATHi = p.shiftATHi&0xFF00 | atHi
}

// Scroll address arithmetic.

func (p *PPU) incrementX() {
	if p.v&0x001F == 0x001F {
		// Coarse x wraps into the neighboring horizontal nametable.
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v >> 5) & 0x1F
	switch coarseY {
	case 29:
		// Row 29 is the last of the visible area, wrap into the
		// neighboring vertical nametable.
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		// Rows 30-31 are the attribute area, wrap without switching.
		coarseY = 0
	default:
		coarseY++
	}
	p.v = p.v&^0x03E0 | coarseY<<5
}

func (p *PPU) copyX() {
	p.v = p.v&^0x041F | p.t&0x041F
}

func (p *PPU) copyY() {
	p.v = p.v&^0x7BE0 | p.t&0x7BE0
}

// backgroundPixel returns the 2-bit pattern value and palette selector of
// the background at the current dot.
func (p *PPU) backgroundPixel() (pattern, attr uint8) {
	x := p.dot - 1
	if p.mask&maskShowBG == 0 || (x < 8 && p.mask&maskBGLeft == 0) {
		return 0, 0
	}
	bit := 15 - p.x
	lo := uint8(p.shiftBGLo>>bit) & 0x01
	hi := uint8(p.shiftBGHi>>bit) & 0x01
	aLo := uint8(p.shiftATLo>>bit) & 0x01
	aHi := uint8(p.shiftATHi>>bit) & 0x01
	return hi<<1 | lo, aHi<<1 | aLo
}

// spritePixel returns the first opaque sprite pixel at the current dot
// along with the unit that produced it.
func (p *PPU) spritePixel() (pattern uint8, unit *spriteUnit) {
	x := p.dot - 1
	if p.mask&maskShowSpr == 0 || (x < 8 && p.mask&maskSprLeft == 0) {
		return 0, nil
	}
	for i := 0; i < int(p.spriteCount); i++ {
		sp := &p.sprites[i]
		off := x - int(sp.x)
		if off < 0 || off > 7 {
			continue
		}
		bit := 7 - off
		lo := (sp.patternLo >> bit) & 0x01
		hi := (sp.patternHi >> bit) & 0x01
		if pix := hi<<1 | lo; pix != 0 {
			return pix, sp
		}
	}
	return 0, nil
}

func (p *PPU) renderPixel() {
	x := p.dot - 1
	bg, bgAttr := p.backgroundPixel()
	spr, unit := p.spritePixel()

	var palAddr uint16
	switch {
	case bg == 0 && spr == 0:
		palAddr = 0x3F00
	case bg == 0:
		palAddr = 0x3F10 | uint16(unit.attr&0x03)<<2 | uint16(spr)
	case spr == 0:
		palAddr = 0x3F00 | uint16(bgAttr)<<2 | uint16(bg)
	default:
		// Both opaque: sprite 0 hit, then priority decides.
		if p.sprite0Line && unit.index == 0 && x < 255 {
			p.status |= statusSprite0Hit
		}
		if unit.attr&0x20 != 0 {
			palAddr = 0x3F00 | uint16(bgAttr)<<2 | uint16(bg)
		} else {
			palAddr = 0x3F10 | uint16(unit.attr&0x03)<<2 | uint16(spr)
		}
	}

	p.putPixel(x, p.scanline, p.palette[paletteIdx(palAddr)])
}

// spriteHeight returns 8 or 16 depending on PPUCTRL.
func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSprHeight != 0 {
		return 16
	}
	return 8
}

// evaluateSprites scans OAM for the sprites visible on the next scanline,
// loads up to eight output units with their pattern data and applies the
// overflow flag, including the hardware's buggy scan past the eighth hit.
func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()
	count := 0
	p.sprite0Next = false

	n := 0
	for ; n < 64 && count < 8; n++ {
		y := p.oam[n*4]
		row := p.scanline - int(y)
		if row < 0 || row >= height {
			continue
		}
		sp := &p.sprites[count]
		sp.index = uint8(n)
		sp.attr = p.oam[n*4+2]
		sp.x = p.oam[n*4+3]
		sp.patternLo, sp.patternHi = p.fetchSpritePattern(p.oam[n*4+1], sp.attr, row)
		copy(p.secondaryOAM[count*4:], p.oam[n*4:n*4+4])
		if n == 0 {
			p.sprite0Next = true
		}
		count++
	}

	if count == 8 {
		// Nine or more sprites in range set the overflow flag. Once
		// eight are found the hardware scans the remaining entries
		// diagonally, misreading attribute and position bytes as y
		// coordinates.
		m := 0
		for ; n < 64; n++ {
			y := p.oam[n*4+m]
			row := p.scanline - int(y)
			if row >= 0 && row < height {
				p.status |= statusOverflow
				break
			}
			m = (m + 1) & 0x03
		}
	}

	p.spriteCount = uint8(count)
	p.sprite0Line = p.sprite0Next
}

// fetchSpritePattern reads the two pattern bytes of a sprite row, applying
// vertical and horizontal flips.
func (p *PPU) fetchSpritePattern(tile, attr uint8, row int) (lo, hi uint8) {
	height := p.spriteHeight()
	if attr&0x80 != 0 {
		row = height - 1 - row
	}

	var addr uint16
	if height == 16 {
		table := uint16(tile&0x01) << 12
		t := uint16(tile & 0xFE)
		if row > 7 {
			t++
			row -= 8
		}
		addr = table | t<<4 | uint16(row)
	} else {
		table := uint16(0)
		if p.ctrl&ctrlSprTable != 0 {
			table = 0x1000
		}
		addr = table | uint16(tile)<<4 | uint16(row)
	}

	lo = p.readVRAM(addr)
	hi = p.readVRAM(addr + 8)
	if attr&0x40 != 0 {
		lo = reverseByte(lo)
		hi = reverseByte(hi)
	}
	return lo, hi
}

func reverseByte(b uint8) uint8 {
	b = b>>4 | b<<4
	b = b>>2&0x33 | b<<2&0xCC
	b = b>>1&0x55 | b<<1&0xAA
	return b
}
