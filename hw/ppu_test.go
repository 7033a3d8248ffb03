package hw

import (
	"testing"

	"famicore/hw/snapshot"
)

// tickTo runs the PPU until it reaches the given position.
func tickTo(p *PPU, scanline, dot int) {
	for p.scanline != scanline || p.dot != dot {
		p.Tick()
	}
}

func TestVBlankAndNMI(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	ppu.WriteReg(0x2000, ctrlNMIEnabled)

	tickTo(ppu, 241, 2)
	if ppu.status&statusVBlank == 0 {
		t.Error("vblank flag clear at scanline 241")
	}
	if !ppu.TakeNMI() {
		t.Error("no NMI pending after vblank start")
	}
	if ppu.TakeNMI() {
		t.Error("NMI pending not cleared by TakeNMI")
	}

	// Reading $2002 clears the flag.
	if got := ppu.ReadReg(0x2002); got&statusVBlank == 0 {
		t.Error("PPUSTATUS read missed the vblank flag")
	}
	if ppu.status&statusVBlank != 0 {
		t.Error("vblank flag survived the PPUSTATUS read")
	}

	// The pre-render line clears everything.
	ppu.status |= statusVBlank | statusSprite0Hit | statusOverflow
	tickTo(ppu, -1, 2)
	if ppu.status&(statusVBlank|statusSprite0Hit|statusOverflow) != 0 {
		t.Errorf("status = %#02x, want flags cleared on pre-render", ppu.status)
	}
}

func TestNMIOnEnableDuringVBlank(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	tickTo(ppu, 241, 2)
	ppu.TakeNMI() // nothing pending, NMI disabled

	ppu.WriteReg(0x2000, ctrlNMIEnabled)
	if !ppu.TakeNMI() {
		t.Error("enabling NMI inside vblank did not raise one")
	}
}

func TestFrameDoneLatch(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	tickTo(ppu, 239, 257)
	if !ppu.FrameDone() {
		t.Fatal("frame not done after last visible dot")
	}
	ppu.AckFrameDone()
	if ppu.FrameDone() {
		t.Error("frame done flag survived the ack")
	}
}

func TestScrollRegisters(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	// PPUSCROLL first write: coarse/fine x.
	ppu.WriteReg(0x2005, 0x7D) // coarse 15, fine 5
	if got := ppu.t & 0x001F; got != 15 {
		t.Errorf("coarse x = %d, want 15", got)
	}
	if ppu.x != 5 {
		t.Errorf("fine x = %d, want 5", ppu.x)
	}

	// Second write: coarse/fine y.
	ppu.WriteReg(0x2005, 0x5E) // coarse 11, fine 6
	if got := (ppu.t >> 5) & 0x1F; got != 11 {
		t.Errorf("coarse y = %d, want 11", got)
	}
	if got := (ppu.t >> 12) & 0x07; got != 6 {
		t.Errorf("fine y = %d, want 6", got)
	}

	// PPUADDR pair loads v from t.
	ppu.WriteReg(0x2006, 0x21)
	ppu.WriteReg(0x2006, 0x08)
	if ppu.v != 0x2108 {
		t.Errorf("v = %#04x, want 0x2108", ppu.v)
	}

	// A PPUSTATUS read resets the toggle.
	ppu.WriteReg(0x2006, 0x3F)
	ppu.ReadReg(0x2002)
	ppu.WriteReg(0x2006, 0x21)
	ppu.WriteReg(0x2006, 0x08)
	if ppu.v != 0x2108 {
		t.Errorf("v = %#04x after toggle reset, want 0x2108", ppu.v)
	}
}

func TestVRAMBufferedReads(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	ppu.WriteReg(0x2006, 0x20)
	ppu.WriteReg(0x2006, 0x00)
	ppu.WriteReg(0x2007, 0x11)
	ppu.WriteReg(0x2007, 0x22)

	ppu.WriteReg(0x2006, 0x20)
	ppu.WriteReg(0x2006, 0x00)

	// First read returns the stale buffer.
	ppu.ReadReg(0x2007)
	if got := ppu.ReadReg(0x2007); got != 0x11 {
		t.Errorf("buffered read = %#02x, want 0x11", got)
	}
	if got := ppu.ReadReg(0x2007); got != 0x22 {
		t.Errorf("buffered read = %#02x, want 0x22", got)
	}
}

func TestPaletteReadsAreImmediate(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	ppu.WriteReg(0x2006, 0x3F)
	ppu.WriteReg(0x2006, 0x01)
	ppu.WriteReg(0x2007, 0x2A)

	ppu.WriteReg(0x2006, 0x3F)
	ppu.WriteReg(0x2006, 0x01)
	if got := ppu.ReadReg(0x2007); got != 0x2A {
		t.Errorf("palette read = %#02x, want 0x2a (no buffering)", got)
	}
}

func TestPaletteMirrors(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	// $3F10 aliases $3F00.
	ppu.writeVRAM(0x3F10, 0x15)
	if got := ppu.readVRAM(0x3F00); got != 0x15 {
		t.Errorf("readVRAM(0x3f00) = %#02x, want 0x15", got)
	}
	// $3F04 is distinct from its sprite counterpart index.
	ppu.writeVRAM(0x3F04, 0x16)
	if got := ppu.readVRAM(0x3F14); got != 0x16 {
		t.Errorf("readVRAM(0x3f14) = %#02x, want 0x16", got)
	}
}

func TestVRAMIncrement32(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	ppu.WriteReg(0x2000, ctrlVRAMInc32)
	ppu.WriteReg(0x2006, 0x20)
	ppu.WriteReg(0x2006, 0x00)
	ppu.WriteReg(0x2007, 0xAA)
	if ppu.v != 0x2020 {
		t.Errorf("v = %#04x, want 0x2020", ppu.v)
	}
}

func TestSprite0Hit(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	// Solid tile 1 in CHR RAM.
	for row := uint16(0); row < 8; row++ {
		ppu.writeVRAM(0x0010+row, 0xFF)
	}
	// Background uses tile 1 everywhere.
	for i := uint16(0); i < 0x03C0; i++ {
		ppu.writeVRAM(0x2000+i, 0x01)
	}
	// Sprite 0 at (100, 100), tile 1, in front.
	ppu.oam[0] = 99 // sprite y is top-1
	ppu.oam[1] = 0x01
	ppu.oam[2] = 0x00
	ppu.oam[3] = 100

	ppu.WriteReg(0x2001, maskShowBG|maskShowSpr)

	tickTo(ppu, 101, 0)
	if ppu.status&statusSprite0Hit == 0 {
		t.Error("sprite 0 hit not raised")
	}
}

func TestSpriteOverflow(t *testing.T) {
	_, ppu, _, _ := testParts(t)

	// Nine sprites on scanline 50.
	for i := 0; i < 9; i++ {
		ppu.oam[i*4] = 49
		ppu.oam[i*4+3] = uint8(i * 16)
	}
	ppu.WriteReg(0x2001, maskShowBG|maskShowSpr)

	tickTo(ppu, 51, 0)
	if ppu.status&statusOverflow == 0 {
		t.Error("sprite overflow not raised with 9 sprites in range")
	}
	if ppu.spriteCount != 8 {
		t.Errorf("sprite count = %d, want 8", ppu.spriteCount)
	}
}

func TestOddFrameSkip(t *testing.T) {
	_, ppu, _, _ := testParts(t)
	ppu.WriteReg(0x2001, maskShowBG)

	// Count the dots of two consecutive frames, they differ by one when
	// rendering is enabled.
	tickTo(ppu, 241, 0)
	counts := make([]int, 2)
	for f := range counts {
		for {
			ppu.Tick()
			counts[f]++
			if ppu.scanline == 241 && ppu.dot == 0 {
				break
			}
		}
	}
	if counts[0] == counts[1] {
		t.Errorf("frames have identical length %d, want odd frame one dot shorter", counts[0])
	}
}

func TestPPUStateRoundTrip(t *testing.T) {
	_, ppu, _, m := testParts(t)

	ppu.WriteReg(0x2000, 0x90)
	ppu.WriteReg(0x2001, maskShowBG|maskShowSpr)
	ppu.WriteReg(0x2005, 0x12)
	ppu.WriteReg(0x2005, 0x34)
	for range 100000 {
		ppu.Tick()
	}

	var st snapshot.PPU
	ppu.SaveState(&st)

	ppu2 := NewPPU(m)
	ppu2.SetState(&st)

	var st2 snapshot.PPU
	ppu2.SaveState(&st2)

	if st2.VRAMAddr != st.VRAMAddr || st2.Scanline != st.Scanline ||
		st2.Dot != st.Dot || st2.ShiftBGLo != st.ShiftBGLo {
		t.Errorf("restored PPU differs: %+v vs %+v", st2, st)
	}

	// Both render identically from here on.
	for range 50000 {
		ppu.Tick()
		ppu2.Tick()
	}
	for i := range ppu.frame {
		if ppu.frame[i] != ppu2.frame[i] {
			t.Fatalf("frame diverges at pixel %d", i)
		}
	}
}
