package ines

import (
	"bytes"
	"errors"
	"testing"

	"famicore/hw/hwdefs"
)

// buildROM assembles an iNES blob with nprg 16KB PRG banks and nchr 8KB CHR
// banks. flags6/flags7 are stored as-is.
func buildROM(nprg, nchr int, flags6, flags7 uint8, trainer bool) []byte {
	hdr := make([]byte, 16)
	copy(hdr, Magic)
	hdr[4] = uint8(nprg)
	hdr[5] = uint8(nchr)
	hdr[6] = flags6
	hdr[7] = flags7

	buf := bytes.NewBuffer(hdr)
	if trainer {
		buf.Write(make([]byte, 512))
	}
	buf.Write(make([]byte, nprg*16384))
	buf.Write(make([]byte, nchr*8192))
	return buf.Bytes()
}

func TestParseROM(t *testing.T) {
	rom, err := ParseROM(buildROM(2, 1, 0x01, 0x00, false))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(rom.PRG); got != 2*16384 {
		t.Errorf("len(PRG) = %d, want %d", got, 2*16384)
	}
	if got := len(rom.CHR); got != 8192 {
		t.Errorf("len(CHR) = %d, want %d", got, 8192)
	}
	if rom.Mapper() != 0 {
		t.Errorf("Mapper() = %d, want 0", rom.Mapper())
	}
	if rom.Mirroring() != hwdefs.Vertical {
		t.Errorf("Mirroring() = %v, want vertical", rom.Mirroring())
	}
	if rom.HasCHRRAM() {
		t.Error("HasCHRRAM() = true, want false")
	}
}

func TestMapperNibbles(t *testing.T) {
	tests := []struct {
		flags6, flags7 uint8
		want           uint16
	}{
		{0x00, 0x00, 0},
		{0x40, 0x00, 4},
		{0x00, 0x40, 64},
		{0x20, 0x40, 66},
		{0xF0, 0xF0, 255},
	}
	for _, tt := range tests {
		rom, err := ParseROM(buildROM(1, 1, tt.flags6, tt.flags7, false))
		if err != nil {
			t.Fatal(err)
		}
		if got := rom.Mapper(); got != tt.want {
			t.Errorf("flags6=%#02x flags7=%#02x: Mapper() = %d, want %d",
				tt.flags6, tt.flags7, got, tt.want)
		}
	}
}

func TestTrainer(t *testing.T) {
	rom, err := ParseROM(buildROM(1, 1, 0x04, 0x00, true))
	if err != nil {
		t.Fatal(err)
	}
	if len(rom.Trainer) != 512 {
		t.Errorf("len(Trainer) = %d, want 512", len(rom.Trainer))
	}

	// Header declares a trainer but the blob doesn't carry one.
	blob := buildROM(1, 1, 0x04, 0x00, false)
	blob = blob[:520]
	if _, err := ParseROM(blob); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("ParseROM() error = %v, want ErrTruncatedData", err)
	}
}

func TestCHRRAM(t *testing.T) {
	rom, err := ParseROM(buildROM(1, 0, 0x00, 0x00, false))
	if err != nil {
		t.Fatal(err)
	}
	if !rom.HasCHRRAM() {
		t.Error("HasCHRRAM() = false, want true")
	}
	if len(rom.CHR) != 0 {
		t.Errorf("len(CHR) = %d, want 0", len(rom.CHR))
	}
}

func TestFourScreen(t *testing.T) {
	rom, err := ParseROM(buildROM(1, 1, 0x08, 0x00, false))
	if err != nil {
		t.Fatal(err)
	}
	if rom.Mirroring() != hwdefs.FourScreen {
		t.Errorf("Mirroring() = %v, want four-screen", rom.Mirroring())
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		if _, err := ParseROM([]byte("NES\x1a")); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("error = %v, want ErrInvalidHeader", err)
		}
	})
	t.Run("bad magic", func(t *testing.T) {
		blob := buildROM(1, 1, 0, 0, false)
		blob[0] = 'X'
		if _, err := ParseROM(blob); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("error = %v, want ErrInvalidHeader", err)
		}
	})
	t.Run("truncated PRG", func(t *testing.T) {
		blob := buildROM(2, 1, 0, 0, false)
		if _, err := ParseROM(blob[:16+1000]); !errors.Is(err, ErrTruncatedData) {
			t.Errorf("error = %v, want ErrTruncatedData", err)
		}
	})
	t.Run("truncated CHR", func(t *testing.T) {
		blob := buildROM(1, 1, 0, 0, false)
		if _, err := ParseROM(blob[:len(blob)-1]); !errors.Is(err, ErrTruncatedData) {
			t.Errorf("error = %v, want ErrTruncatedData", err)
		}
	})
}
