// Package ines implements a reader for roms in the iNES file format, used
// for the distribution of NES binary programs.
package ines

import (
	"errors"
	"fmt"
	"io"
	"os"

	"famicore/hw/hwdefs"
)

var (
	// ErrInvalidHeader reports a rom blob that is too short or doesn't
	// start with the iNES magic number.
	ErrInvalidHeader = errors.New("invalid iNES header")

	// ErrTruncatedData reports a rom blob shorter than what its header
	// declares.
	ErrTruncatedData = errors.New("truncated rom data")
)

// Magic is the 4-byte tag opening every iNES file.
const Magic = "NES\x1a"

const (
	prgBankSize = 16384
	chrBankSize = 8192
	trainerSize = 512
)

// header holds the fields decoded from the 16-byte iNES header.
type header struct {
	prgBanks  int
	chrBanks  int
	mapper    uint16
	mirroring hwdefs.Mirroring
	battery   bool
	trainer   bool
}

// Rom is an immutable cartridge image. The data slices alias the blob the
// rom was parsed from.
type Rom struct {
	header
	Trainer []byte // Trainer, 512 bytes if present, or empty.
	PRG     []byte // PRG ROM data (length is a multiple of 16k).
	CHR     []byte // CHR ROM data (length is a multiple of 8k, empty for CHR RAM).
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// ParseROM decodes a rom from an in-memory blob.
func ParseROM(buf []byte) (*Rom, error) {
	rom := new(Rom)
	if err := rom.parse(buf); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements the io.ReaderFrom interface.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.parse(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

func (rom *Rom) parse(buf []byte) error {
	if err := rom.header.decode(buf); err != nil {
		return err
	}

	// Sections follow the header back to back: optional trainer, PRG,
	// then CHR.
	cur := sections{buf: buf[16:]}
	if rom.header.trainer {
		rom.Trainer = cur.take("TRAINER", trainerSize)
	}
	rom.PRG = cur.take("PRG", rom.prgBanks*prgBankSize)
	rom.CHR = cur.take("CHR", rom.chrBanks*chrBankSize)
	return cur.err
}

// sections slices a rom blob into its consecutive data sections, latching
// the first shortfall.
type sections struct {
	buf []byte
	err error
}

func (s *sections) take(name string, n int) []byte {
	if s.err != nil {
		return nil
	}
	if len(s.buf) < n {
		s.err = fmt.Errorf("%w: incomplete %s section", ErrTruncatedData, name)
		return nil
	}
	sec := s.buf[:n]
	s.buf = s.buf[n:]
	return sec
}

func (hdr *header) decode(p []byte) error {
	if len(p) < 16 {
		return fmt.Errorf("%w: needs at least 16 bytes", ErrInvalidHeader)
	}
	if string(p[:4]) != Magic {
		return fmt.Errorf("%w: bad magic number", ErrInvalidHeader)
	}

	hdr.prgBanks = int(p[4])
	hdr.chrBanks = int(p[5])
	hdr.mapper = uint16(p[6]>>4) | uint16(p[7]&0xF0)
	hdr.battery = p[6]&0x02 != 0
	hdr.trainer = p[6]&0x04 != 0

	switch {
	case p[6]&0x08 != 0:
		hdr.mirroring = hwdefs.FourScreen
	case p[6]&0x01 != 0:
		hdr.mirroring = hwdefs.Vertical
	default:
		hdr.mirroring = hwdefs.Horizontal
	}
	return nil
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool { return hdr.trainer }

// HasBattery indicates the presence of battery-backed PRG RAM.
func (hdr *header) HasBattery() bool { return hdr.battery }

// HasCHRRAM reports whether the cartridge provides CHR RAM instead of CHR
// ROM (a CHR bank count of 0 in the header).
func (hdr *header) HasCHRRAM() bool { return hdr.chrBanks == 0 }

// Mapper returns the mapper number, combining the low nibble from flags 6
// and the high nibble from flags 7.
func (hdr *header) Mapper() uint16 { return hdr.mapper }

// Mirroring returns the nametable arrangement declared by the header. A
// mapper may override it at runtime.
func (hdr *header) Mirroring() hwdefs.Mirroring { return hdr.mirroring }

// PRGBanks returns the number of 16KB PRG ROM banks.
func (hdr *header) PRGBanks() int { return hdr.prgBanks }

// CHRBanks returns the number of 8KB CHR ROM banks.
func (hdr *header) CHRBanks() int { return hdr.chrBanks }
