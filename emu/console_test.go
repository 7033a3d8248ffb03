package emu

import (
	"bytes"
	"errors"
	"testing"

	"famicore/hw"
	"famicore/hw/hwdefs"
	"famicore/ines"
)

// testProgram is a hand-assembled NROM program. The reset handler enables
// rendering and NMI then spins; the NMI handler cycles the backdrop color,
// so every frame of the run looks different.
var testProgram = []uint8{
	// reset:
	0xA9, 0x1E, // LDA #$1E
	0x8D, 0x01, 0x20, // STA $2001
	0xA9, 0x80, // LDA #$80
	0x8D, 0x00, 0x20, // STA $2000
	// loop:
	0xE6, 0x10, // INC $10
	0x4C, 0x0A, 0xC0, // JMP loop
	0xEA, // NOP (padding to align nmi at $C010)
	// nmi:
	0xE6, 0x11, // INC $11
	0xA9, 0x3F, // LDA #$3F
	0x8D, 0x06, 0x20, // STA $2006
	0xA9, 0x00, // LDA #$00
	0x8D, 0x06, 0x20, // STA $2006
	0xA5, 0x11, // LDA $11
	0x8D, 0x07, 0x20, // STA $2007
	0x40, // RTI
}

func testROM(t *testing.T) *ines.Rom {
	t.Helper()

	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 1 // 16KB PRG, mirrored at 0xC000
	hdr[5] = 0 // CHR RAM

	prg := make([]byte, 0x4000)
	copy(prg, testProgram)
	// Vectors, relative to the 0xC000 mirror.
	prg[0x3FFA], prg[0x3FFB] = 0x10, 0xC0 // NMI
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0xC0 // reset
	prg[0x3FFE], prg[0x3FFF] = 0x21, 0xC0 // IRQ (unused)

	buf := bytes.NewBuffer(hdr)
	buf.Write(prg)

	rom, err := ines.ParseROM(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

func newTestConsole(t *testing.T, cfg Config) *Console {
	t.Helper()
	c := New(cfg)
	if err := c.Load(testROM(t)); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestLoadUnsupportedMapper(t *testing.T) {
	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 1
	hdr[6] = 0xF0
	hdr[7] = 0xF0

	buf := bytes.NewBuffer(hdr)
	buf.Write(make([]byte, 0x4000))
	rom, err := ines.ParseROM(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	c := New(Config{})
	if err := c.Load(rom); err == nil {
		t.Fatal("Load accepted an unsupported mapper")
	}
	if c.Loaded() {
		t.Error("console reports loaded after a failed Load")
	}
}

func TestNoCartridge(t *testing.T) {
	c := New(Config{})
	if _, err := c.Snapshot(); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("Snapshot() error = %v, want ErrNoCartridge", err)
	}
	if err := c.Restore(nil); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("Restore() error = %v, want ErrNoCartridge", err)
	}
}

func TestRunFrameGeometry(t *testing.T) {
	c := newTestConsole(t, Config{})

	frame := c.RunFrame()
	if frame.N != 0 {
		t.Errorf("first frame N = %d, want 0", frame.N)
	}
	if len(frame.Video) != hw.FrameWidth*hw.FrameHeight {
		t.Fatalf("len(Video) = %d, want %d", len(frame.Video), hw.FrameWidth*hw.FrameHeight)
	}
	for i, px := range frame.Video {
		if px > 0x3F {
			t.Fatalf("pixel %d = %#02x, out of palette range", i, px)
		}
	}

	if frame = c.RunFrame(); frame.N != 1 {
		t.Errorf("second frame N = %d, want 1", frame.N)
	}
}

func TestDeterminism(t *testing.T) {
	c1 := newTestConsole(t, Config{})
	c2 := newTestConsole(t, Config{})

	var d1, d2 VideoDigest
	for i := range 10 {
		f1 := c1.RunFrame()
		f2 := c2.RunFrame()
		if !bytes.Equal(f1.Video, f2.Video) {
			t.Fatalf("frame %d differs between identical runs", i)
		}
		d1.Write(f1.Video)
		d2.Write(f2.Video)
	}
	if d1.Hash() != d2.Hash() {
		t.Errorf("digests differ: %s vs %s", d1.Hash(), d2.Hash())
	}
}

func TestFramesChangeOverTime(t *testing.T) {
	c := newTestConsole(t, Config{})

	// The test program recolors the backdrop every NMI, so consecutive
	// frames cannot be identical.
	f1 := c.RunFrame()
	c.RunFrame()
	f3 := c.RunFrame()
	if bytes.Equal(f1.Video, f3.Video) {
		t.Error("frames 1 and 3 identical, NMI handler seems dead")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestConsole(t, Config{})
	for range 3 {
		c.RunFrame()
	}

	blob, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	// Reference run.
	want := make([][]uint8, 4)
	for i := range want {
		want[i] = c.RunFrame().Video
	}

	// Restore and replay.
	if err := c.Restore(blob); err != nil {
		t.Fatal(err)
	}
	for i := range want {
		frame := c.RunFrame()
		if frame.N != uint64(3+i) {
			t.Errorf("frame N = %d, want %d", frame.N, 3+i)
		}
		if !bytes.Equal(frame.Video, want[i]) {
			t.Fatalf("frame %d differs after restore", i)
		}
	}
}

func TestRestoreIntoFreshConsole(t *testing.T) {
	c1 := newTestConsole(t, Config{})
	for range 5 {
		c1.RunFrame()
	}
	blob, err := c1.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	want := c1.RunFrame().Video

	c2 := newTestConsole(t, Config{})
	if err := c2.Restore(blob); err != nil {
		t.Fatal(err)
	}
	if got := c2.RunFrame().Video; !bytes.Equal(got, want) {
		t.Error("restored console diverges from the original")
	}
}

func TestRestoreWrongVersion(t *testing.T) {
	c := newTestConsole(t, Config{})
	c.RunFrame()

	blob, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	c.RunFrame()

	tampered := bytes.Replace(blob, []byte(`"version":1`), []byte(`"version":99`), 1)
	if bytes.Equal(tampered, blob) {
		t.Fatal("version field not found in snapshot blob")
	}
	if err := c.Restore(tampered); !errors.Is(err, ErrSnapshotVersion) {
		t.Fatalf("Restore() error = %v, want ErrSnapshotVersion", err)
	}

	// The rejected restore must not have touched the running state: the
	// console continues exactly like a parallel untouched run.
	c2 := newTestConsole(t, Config{})
	c2.RunFrame()
	c2.RunFrame()
	if !bytes.Equal(c.RunFrame().Video, c2.RunFrame().Video) {
		t.Error("console state changed by a rejected restore")
	}
}

func TestRestoreCorrupt(t *testing.T) {
	c := newTestConsole(t, Config{})
	c.RunFrame()

	for _, blob := range [][]byte{
		[]byte("{"),
		[]byte("[]"),
		[]byte(`{"version":1}`),
	} {
		if err := c.Restore(blob); !errors.Is(err, ErrSnapshotCorrupt) {
			t.Errorf("Restore(%q) error = %v, want ErrSnapshotCorrupt", blob, err)
		}
	}

	// A structurally valid blob from another layout version is refused
	// as such.
	if err := c.Restore([]byte(`{"version":0}`)); !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("Restore() error = %v, want ErrSnapshotVersion", err)
	}
}

func TestSetInputReachesPads(t *testing.T) {
	c := newTestConsole(t, Config{})

	c.SetInput(0, hw.BtnA|hw.BtnStart)
	c.SetInput(1, hw.BtnSelect)

	// Strobe and read the pads the way a game would.
	c.bus.Write8(0x4016, 1)
	c.bus.Write8(0x4016, 0)
	if got := c.bus.Read8(0x4016) & 0x01; got != 1 {
		t.Errorf("pad 0 bit 0 (A) = %d, want 1", got)
	}
	c.bus.Read8(0x4017) // B
	c.bus.Read8(0x4017) // Select
	// Pad 1 select is the third bit out.
	c.bus.Write8(0x4016, 1)
	c.bus.Write8(0x4016, 0)
	c.bus.Read8(0x4017)
	c.bus.Read8(0x4017)
	if got := c.bus.Read8(0x4017) & 0x01; got != 1 {
		t.Errorf("pad 1 bit 2 (Select) = %d, want 1", got)
	}

	// Out-of-range pads are ignored.
	c.SetInput(2, hw.BtnA)
	c.SetInput(-1, hw.BtnA)
}

func TestSoftVsHardReset(t *testing.T) {
	c := newTestConsole(t, Config{})
	for range 2 {
		c.RunFrame()
	}

	// RAM written by the test program survives a soft reset.
	c.bus.Write8(0x0300, 0x77)
	c.Reset(hwdefs.SoftReset)
	if got := c.bus.Read8(0x0300); got != 0x77 {
		t.Errorf("RAM = %#02x after soft reset, want 0x77", got)
	}

	c.bus.Write8(0x0300, 0x77)
	c.Reset(hwdefs.HardReset)
	if got := c.bus.Read8(0x0300); got != 0 {
		t.Errorf("RAM = %#02x after hard reset, want 0", got)
	}
}

func TestAudioSampleCount(t *testing.T) {
	c := newTestConsole(t, Config{Audio: true, SampleRate: 44100})

	c.RunFrame() // first frame may be shorter, skip it
	frame := c.RunFrame()
	if len(frame.Audio) < 700 || len(frame.Audio) > 760 {
		t.Errorf("frame produced %d samples, want ~735 at 44.1kHz", len(frame.Audio))
	}
}

func TestAudioDisabled(t *testing.T) {
	c := newTestConsole(t, Config{})
	if frame := c.RunFrame(); len(frame.Audio) != 0 {
		t.Errorf("audio disabled but frame has %d samples", len(frame.Audio))
	}
}

func TestVideoDigestOrderMatters(t *testing.T) {
	a := []uint8{1, 2, 3}
	b := []uint8{4, 5, 6}

	var d1, d2 VideoDigest
	d1.Write(a)
	d1.Write(b)
	d2.Write(b)
	d2.Write(a)
	if d1.Hash() == d2.Hash() {
		t.Error("digest ignores frame order")
	}
}
