package hw

import (
	"bytes"
	"testing"

	"famicore/hw/mappers"
	"famicore/ines"
)

// testParts builds a bus with a CHR-RAM NROM cartridge, wired the same way
// the console does it.
func testParts(t *testing.T) (*Bus, *PPU, *APU, mappers.Mapper) {
	t.Helper()

	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 2 // 32KB PRG
	hdr[5] = 0 // CHR RAM

	buf := bytes.NewBuffer(hdr)
	buf.Write(make([]byte, 2*0x4000))

	rom, err := ines.ParseROM(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	m, err := mappers.Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	ppu := NewPPU(m)
	apu := NewAPU()
	bus := NewBus(ppu, apu, m)
	apu.AttachBus(bus)
	return bus, ppu, apu, m
}

func TestRAMMirroring(t *testing.T) {
	bus, _, _, _ := testParts(t)

	bus.Write8(0x0000, 0xAB)
	for _, addr := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := bus.Read8(addr); got != 0xAB {
			t.Errorf("Read8(%#04x) = %#02x, want 0xab", addr, got)
		}
	}

	bus.Write8(0x1FFF, 0xCD)
	if got := bus.Read8(0x07FF); got != 0xCD {
		t.Errorf("Read8(0x07ff) = %#02x, want 0xcd", got)
	}
}

func TestControllerReadout(t *testing.T) {
	bus, _, _, _ := testParts(t)

	bus.Pads[0].Set(BtnA | BtnStart | BtnRight)

	// Strobe high then low latches the state.
	bus.Write8(0x4016, 0x01)
	bus.Write8(0x4016, 0x00)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1} // A B Sel Start U D L R
	for i, w := range want {
		if got := bus.Read8(0x4016) & 0x01; got != w {
			t.Errorf("read %d = %d, want %d", i, got, w)
		}
	}

	// Past the eighth bit a standard pad returns 1.
	if got := bus.Read8(0x4016) & 0x01; got != 1 {
		t.Errorf("ninth read = %d, want 1", got)
	}
}

func TestControllerStrobeHeldHigh(t *testing.T) {
	bus, _, _, _ := testParts(t)

	bus.Pads[0].Set(BtnB)
	bus.Write8(0x4016, 0x01)

	// While the strobe is high every read reports the A button.
	for range 3 {
		if got := bus.Read8(0x4016) & 0x01; got != 0 {
			t.Errorf("read = %d, want 0 (A not pressed)", got)
		}
	}
}

func TestOAMDMA(t *testing.T) {
	bus, ppu, _, _ := testParts(t)
	cpu := NewCPU()
	bus.AttachCPU(cpu)

	for i := range 256 {
		bus.Write8(uint16(0x0200+i), uint8(i))
	}
	bus.Write8(0x4014, 0x02)

	if ppu.oam[0] != 0 || ppu.oam[255] != 255 || ppu.oam[100] != 100 {
		t.Errorf("OAM not copied: [0]=%d [100]=%d [255]=%d",
			ppu.oam[0], ppu.oam[100], ppu.oam[255])
	}
	if got := bus.TakeStall(); got != 513 {
		t.Errorf("DMA stall = %d, want 513 (even cycle)", got)
	}

	// On an odd CPU cycle the transfer takes one extra cycle.
	cpu.Cycles = 1
	bus.Write8(0x4014, 0x02)
	if got := bus.TakeStall(); got != 514 {
		t.Errorf("DMA stall = %d, want 514 (odd cycle)", got)
	}
}

func TestPRGRouting(t *testing.T) {
	bus, _, _, m := testParts(t)

	// PRG RAM at 0x6000 goes through the mapper.
	bus.Write8(0x6000, 0x42)
	if got := m.ReadPRG(0x6000); got != 0x42 {
		t.Errorf("mapper PRG RAM = %#02x, want 0x42", got)
	}
	if got := bus.Read8(0x6000); got != 0x42 {
		t.Errorf("Read8(0x6000) = %#02x, want 0x42", got)
	}
}
