package hw

import (
	"famicore/hw/hwdefs"
	"famicore/hw/mappers"
	"famicore/hw/snapshot"
)

// Frame geometry.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// PPUCTRL bits.
const (
	ctrlVRAMInc32  = 0x04
	ctrlSprTable   = 0x08
	ctrlBGTable    = 0x10
	ctrlSprHeight  = 0x20
	ctrlNMIEnabled = 0x80
)

// PPUMASK bits.
const (
	maskGrayscale = 0x01
	maskBGLeft    = 0x02
	maskSprLeft   = 0x04
	maskShowBG    = 0x08
	maskShowSpr   = 0x10
)

// PPUSTATUS bits.
const (
	statusOverflow   = 0x20
	statusSprite0Hit = 0x40
	statusVBlank     = 0x80
)

// spriteUnit is one of the eight per-scanline sprite output units, loaded
// during evaluation with the pattern data of the upcoming line.
type spriteUnit struct {
	patternLo uint8
	patternHi uint8
	attr      uint8
	x         uint8
	index     uint8 // OAM index, to recognize sprite 0
}

// PPU is the 2C02 picture processor. Tick advances it by one dot; the
// console calls it three times per CPU cycle. Frames come out as 256x240
// palette indices, color resolution is left to the consumer.
type PPU struct {
	mapper mappers.Mapper

	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// Scroll state: current and temporary VRAM address, fine x scroll,
	// first/second write toggle.
	v, t uint16
	x    uint8
	w    bool

	readBuf uint8
	openBus uint8

	scanline int // -1 (pre-render) .. 260
	dot      int // 0 .. 340
	oddFrame bool

	nmiPending bool
	frameDone  bool

	nametables   [0x1000]uint8
	palette      [32]uint8
	oam          [256]uint8
	secondaryOAM [32]uint8

	// Background pipeline.
	ntLatch   uint8
	atLatch   uint8
	bgLoLatch uint8
	bgHiLatch uint8
	shiftBGLo uint16
	shiftBGHi uint16
	shiftATLo uint16
	shiftATHi uint16

	// Sprite pipeline.
	sprites     [8]spriteUnit
	spriteCount uint8
	sprite0Line bool
	sprite0Next bool

	frame [FrameWidth * FrameHeight]uint8
}

func NewPPU(mapper mappers.Mapper) *PPU {
	p := &PPU{mapper: mapper}
	p.Reset()
	return p
}

func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuf = 0
	p.openBus = 0
	p.scanline = -1
	p.dot = 0
	p.oddFrame = false
	p.nmiPending = false
	p.frameDone = false
	p.nametables = [0x1000]uint8{}
	p.palette = powerupPalette
	p.oam = [256]uint8{}
	p.secondaryOAM = [32]uint8{}
	p.sprites = [8]spriteUnit{}
	p.spriteCount = 0
	p.sprite0Line = false
	p.sprite0Next = false
}

// powerupPalette is the palette RAM content observed on a cold 2C02.
var powerupPalette = [32]uint8{
	0x09, 0x01, 0x00, 0x01, 0x00, 0x02, 0x02, 0x0D,
	0x08, 0x10, 0x08, 0x24, 0x00, 0x00, 0x04, 0x2C,
	0x09, 0x01, 0x34, 0x03, 0x00, 0x04, 0x00, 0x14,
	0x08, 0x3A, 0x00, 0x02, 0x00, 0x20, 0x2C, 0x08,
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSpr) != 0
}

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	p.renderDot()

	switch {
	case p.scanline == 241 && p.dot == 1:
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnabled != 0 {
			p.nmiPending = true
		}
	case p.scanline == -1 && p.dot == 1:
		p.status &^= statusVBlank | statusSprite0Hit | statusOverflow
	case p.scanline == 239 && p.dot == 256:
		p.frameDone = true
	}

	// Odd frames drop the last dot of the pre-render line when rendering
	// is on.
	if p.scanline == -1 && p.dot == 339 && p.oddFrame && p.renderingEnabled() {
		p.scanline = 0
		p.dot = 0
		return
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
		}
	}
}

// TakeNMI reports and clears a pending vblank NMI.
func (p *PPU) TakeNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// FrameDone reports whether the visible part of the frame has been fully
// rendered.
func (p *PPU) FrameDone() bool { return p.frameDone }

// AckFrameDone rearms frame completion for the next frame.
func (p *PPU) AckFrameDone() { p.frameDone = false }

// Frame returns the frame buffer: one palette index (0..63) per pixel, in
// row-major order. The returned slice aliases PPU memory and is only valid
// until the next Tick.
func (p *PPU) Frame() []uint8 { return p.frame[:] }

// ntOffset resolves a nametable address to an offset in the 4KB backing
// array according to the cartridge mirroring.
func (p *PPU) ntOffset(addr uint16) uint16 {
	addr &= 0x0FFF
	table := addr >> 10
	off := addr & 0x03FF

	switch p.mapper.Mirroring() {
	case hwdefs.Horizontal:
		table = (table >> 1) & 0x01
	case hwdefs.Vertical:
		table &= 0x01
	case hwdefs.OneScreenLower:
		table = 0
	case hwdefs.OneScreenUpper:
		table = 1
	case hwdefs.FourScreen:
		// 4KB of VRAM on the cartridge, no folding.
	}
	return table<<10 | off
}

// paletteIdx folds the sprite backdrop mirrors ($3F10/$3F14/$3F18/$3F1C)
// onto their background counterparts.
func paletteIdx(addr uint16) int {
	i := addr & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return int(i)
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.mapper.NotifyVRAMAddr(addr)
		return p.mapper.ReadCHR(addr)
	case addr < 0x3F00:
		return p.nametables[p.ntOffset(addr)]
	default:
		return p.palette[paletteIdx(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.mapper.NotifyVRAMAddr(addr)
		p.mapper.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.nametables[p.ntOffset(addr)] = val
	default:
		p.palette[paletteIdx(addr)] = val
	}
}

func (p *PPU) SaveState(state *snapshot.PPU) {
	state.Ctrl = p.ctrl
	state.Mask = p.mask
	state.Status = p.status
	state.OAMAddr = p.oamAddr
	state.VRAMAddr = p.v
	state.TempAddr = p.t
	state.FineX = p.x
	state.WriteLatch = p.w
	state.ReadBuf = p.readBuf
	state.OpenBus = p.openBus

	state.Scanline = int16(p.scanline)
	state.Dot = uint16(p.dot)
	state.OddFrame = p.oddFrame
	state.NMIPending = p.nmiPending
	state.FrameDone = p.frameDone

	state.Nametables = append(state.Nametables[:0], p.nametables[:]...)
	state.Palette = append(state.Palette[:0], p.palette[:]...)
	state.OAM = append(state.OAM[:0], p.oam[:]...)
	state.SecondaryOAM = append(state.SecondaryOAM[:0], p.secondaryOAM[:]...)

	state.NTLatch = p.ntLatch
	state.ATLatch = p.atLatch
	state.BGLoLatch = p.bgLoLatch
	state.BGHiLatch = p.bgHiLatch
	state.ShiftBGLo = p.shiftBGLo
	state.ShiftBGHi = p.shiftBGHi
	state.ShiftATLo = p.shiftATLo
	state.ShiftATHi = p.shiftATHi

	for i, sp := range p.sprites {
		state.Sprites[i] = snapshot.Sprite{
			PatternLo: sp.patternLo,
			PatternHi: sp.patternHi,
			Attr:      sp.attr,
			X:         sp.x,
			Index:     sp.index,
		}
	}
	state.SpriteCount = p.spriteCount
	state.Sprite0Line = p.sprite0Line
	state.Sprite0Next = p.sprite0Next
}

func (p *PPU) SetState(state *snapshot.PPU) {
	p.ctrl = state.Ctrl
	p.mask = state.Mask
	p.status = state.Status
	p.oamAddr = state.OAMAddr
	p.v = state.VRAMAddr
	p.t = state.TempAddr
	p.x = state.FineX
	p.w = state.WriteLatch
	p.readBuf = state.ReadBuf
	p.openBus = state.OpenBus

	p.scanline = int(state.Scanline)
	p.dot = int(state.Dot)
	p.oddFrame = state.OddFrame
	p.nmiPending = state.NMIPending
	p.frameDone = state.FrameDone

	copy(p.nametables[:], state.Nametables)
	copy(p.palette[:], state.Palette)
	copy(p.oam[:], state.OAM)
	copy(p.secondaryOAM[:], state.SecondaryOAM)

	p.ntLatch = state.NTLatch
	p.atLatch = state.ATLatch
	p.bgLoLatch = state.BGLoLatch
	p.bgHiLatch = state.BGHiLatch
	p.shiftBGLo = state.ShiftBGLo
	p.shiftBGHi = state.ShiftBGHi
	p.shiftATLo = state.ShiftATLo
	p.shiftATHi = state.ShiftATHi

	for i, sp := range state.Sprites {
		p.sprites[i] = spriteUnit{
			patternLo: sp.PatternLo,
			patternHi: sp.PatternHi,
			attr:      sp.Attr,
			x:         sp.X,
			index:     sp.Index,
		}
	}
	p.spriteCount = state.SpriteCount
	p.sprite0Line = state.Sprite0Line
	p.sprite0Next = state.Sprite0Next
}
