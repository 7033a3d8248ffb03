package mappers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
	"famicore/ines"
)

// testROM builds an iNES blob where every 8KB of PRG and every 1KB of CHR
// is filled with its own index, so bank switching is observable from reads.
func testROM(t *testing.T, mapper uint16, nprg, nchr int) *ines.Rom {
	t.Helper()

	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = uint8(nprg)
	hdr[5] = uint8(nchr)
	hdr[6] = uint8(mapper&0x0F) << 4
	hdr[7] = uint8(mapper & 0xF0)

	buf := bytes.NewBuffer(hdr)
	for i := range nprg * 2 {
		chunk := bytes.Repeat([]byte{uint8(i)}, 0x2000)
		buf.Write(chunk)
	}
	for i := range nchr * 8 {
		chunk := bytes.Repeat([]byte{uint8(i)}, 0x0400)
		buf.Write(chunk)
	}

	rom, err := ines.ParseROM(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

func TestLoadUnsupported(t *testing.T) {
	rom := testROM(t, 255, 1, 1)
	_, err := Load(rom)
	if !errors.Is(err, ErrUnsupportedMapper) {
		t.Fatalf("Load() error = %v, want ErrUnsupportedMapper", err)
	}
}

func TestNROMMirrorsSmallPRG(t *testing.T) {
	rom := testROM(t, 0, 1, 1)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.ReadPRG(0x8000), m.ReadPRG(0xC000); got != want {
		t.Errorf("16KB PRG not mirrored: 0x8000=%d 0xC000=%d", got, want)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	rom := testROM(t, 2, 4, 0)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	// Last 16KB bank (8KB chunks 6,7) is fixed at 0xC000.
	if got := m.ReadPRG(0xC000); got != 6 {
		t.Errorf("ReadPRG(0xC000) = %d, want 6", got)
	}
	if got := m.ReadPRG(0x8000); got != 0 {
		t.Errorf("ReadPRG(0x8000) = %d, want 0", got)
	}

	// A bank-select write changes the window visible to the next read.
	m.WritePRG(0x8000, 2)
	if got := m.ReadPRG(0x8000); got != 4 {
		t.Errorf("after select bank 2: ReadPRG(0x8000) = %d, want 4", got)
	}
	if got := m.ReadPRG(0xC000); got != 6 {
		t.Errorf("fixed bank moved: ReadPRG(0xC000) = %d, want 6", got)
	}

	// Out-of-range selects reduce modulo the bank count.
	m.WritePRG(0x8000, 5)
	if got := m.ReadPRG(0x8000); got != 2 {
		t.Errorf("bank 5 mod 4: ReadPRG(0x8000) = %d, want 2", got)
	}
}

func TestCNROMBankSwitch(t *testing.T) {
	rom := testROM(t, 3, 1, 2)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ReadCHR(0x0000); got != 0 {
		t.Errorf("ReadCHR(0) = %d, want 0", got)
	}
	m.WritePRG(0x8000, 1)
	if got := m.ReadCHR(0x0000); got != 8 {
		t.Errorf("after select chr bank 1: ReadCHR(0) = %d, want 8", got)
	}
}

func TestAxROMMirroring(t *testing.T) {
	rom := testROM(t, 7, 4, 0)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Mirroring(); got != hwdefs.OneScreenLower {
		t.Errorf("Mirroring() = %v, want one-screen lower", got)
	}
	m.WritePRG(0x8000, 0x11)
	if got := m.Mirroring(); got != hwdefs.OneScreenUpper {
		t.Errorf("Mirroring() = %v, want one-screen upper", got)
	}
	if got := m.ReadPRG(0x8000); got != 4 {
		t.Errorf("ReadPRG(0x8000) = %d, want 4 (32KB bank 1)", got)
	}
}

func TestGxROMBankSwitch(t *testing.T) {
	rom := testROM(t, 66, 4, 2)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	m.WritePRG(0x8000, 0x11) // PRG bank 1, CHR bank 1
	if got := m.ReadPRG(0x8000); got != 4 {
		t.Errorf("ReadPRG(0x8000) = %d, want 4", got)
	}
	if got := m.ReadCHR(0x0000); got != 8 {
		t.Errorf("ReadCHR(0) = %d, want 8", got)
	}
}

func TestMMC3Banking(t *testing.T) {
	rom := testROM(t, 4, 8, 2) // 16 8KB PRG chunks, 16 1KB CHR chunks
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	// Power-on: R6=0 at 0x8000, second-to-last at 0xC000, last at 0xE000.
	if got := m.ReadPRG(0x8000); got != 0 {
		t.Errorf("ReadPRG(0x8000) = %d, want 0", got)
	}
	if got := m.ReadPRG(0xC000); got != 14 {
		t.Errorf("ReadPRG(0xC000) = %d, want 14", got)
	}
	if got := m.ReadPRG(0xE000); got != 15 {
		t.Errorf("ReadPRG(0xE000) = %d, want 15", got)
	}

	// Select R6=3.
	m.WritePRG(0x8000, 6)
	m.WritePRG(0x8001, 3)
	if got := m.ReadPRG(0x8000); got != 3 {
		t.Errorf("R6=3: ReadPRG(0x8000) = %d, want 3", got)
	}

	// PRG mode 1 swaps the switchable and fixed windows.
	m.WritePRG(0x8000, 0x46)
	if got := m.ReadPRG(0x8000); got != 14 {
		t.Errorf("mode 1: ReadPRG(0x8000) = %d, want 14", got)
	}
	if got := m.ReadPRG(0xC000); got != 3 {
		t.Errorf("mode 1: ReadPRG(0xC000) = %d, want 3", got)
	}

	// CHR: R0 selects a 2KB window at 0x0000 (even bank forced).
	m.WritePRG(0x8000, 0)
	m.WritePRG(0x8001, 5)
	if got := m.ReadCHR(0x0000); got != 4 {
		t.Errorf("R0=5: ReadCHR(0x0000) = %d, want 4", got)
	}
	if got := m.ReadCHR(0x0400); got != 5 {
		t.Errorf("R0=5: ReadCHR(0x0400) = %d, want 5", got)
	}
}

// a12cycle simulates the pattern fetch alternation of one rendered
// scanline: background fetches on the low pattern table, sprite fetches on
// the high one.
func a12cycle(m Mapper) {
	m.NotifyVRAMAddr(0x0000)
	m.NotifyVRAMAddr(0x1000)
}

func TestMMC3ScanlineIRQ(t *testing.T) {
	rom := testROM(t, 4, 8, 2)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	m.WritePRG(0xC000, 3) // latch
	m.WritePRG(0xC001, 0) // reload on next clock
	m.WritePRG(0xE001, 0) // enable

	// First edge reloads to 3, then 3 more edges count down to zero.
	for i := range 3 {
		a12cycle(m)
		if m.PendingIRQ() {
			t.Fatalf("IRQ raised early, after %d edges", i+1)
		}
	}
	a12cycle(m)
	if !m.PendingIRQ() {
		t.Fatal("IRQ not raised after counter reached zero")
	}

	m.AckIRQ()
	if m.PendingIRQ() {
		t.Fatal("IRQ still pending after acknowledge")
	}

	// Disabling clears and inhibits.
	m.WritePRG(0xC001, 0)
	m.WritePRG(0xE000, 0)
	for range 8 {
		a12cycle(m)
	}
	if m.PendingIRQ() {
		t.Fatal("IRQ raised while disabled")
	}
}

func TestMMC3StateRoundTrip(t *testing.T) {
	rom := testROM(t, 4, 8, 2)
	m, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	m.WritePRG(0x8000, 6)
	m.WritePRG(0x8001, 3)
	m.WritePRG(0xA000, 1)
	m.WritePRG(0xC000, 42)
	m.WritePRG(0xE001, 0)
	m.WritePRG(0x6000, 0xAB)

	var st snapshot.Mapper
	m.SaveState(&st)

	m2, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m2.SetState(&st); err != nil {
		t.Fatal(err)
	}

	var st2 snapshot.Mapper
	m2.SaveState(&st2)
	if diff := cmp.Diff(st, st2); diff != "" {
		t.Errorf("restored state differs (-want +got):\n%s", diff)
	}
	if got := m2.ReadPRG(0x8000); got != 3 {
		t.Errorf("restored ReadPRG(0x8000) = %d, want 3", got)
	}
	if got := m2.ReadPRG(0x6000); got != 0xAB {
		t.Errorf("restored ReadPRG(0x6000) = %#02x, want 0xab", got)
	}

	// Restoring a state from another variant is rejected.
	if err := m2.SetState(&snapshot.Mapper{ID: 0}); err == nil {
		t.Error("SetState accepted a foreign mapper state")
	}
}
