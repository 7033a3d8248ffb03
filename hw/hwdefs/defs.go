// Package hwdefs holds small definitions shared between the hardware
// packages and the cartridge loader.
package hwdefs

import "strings"

type IRQSource uint8

const (
	Mapper IRQSource = 1 << iota
	FrameCounter
	DMC

	numSources = 3
)

var irqSrcNames = [numSources]string{
	"mapper",
	"fcnt",
	"dmc",
}

func (irq IRQSource) String() string {
	var names []string
	for i := range numSources {
		if irq&(1<<i) != 0 {
			names = append(names, irqSrcNames[i])
		}
	}
	return strings.Join(names, "|")
}

// Mirroring is the nametable mirroring arrangement exposed by a cartridge.
// It resolves a PPU address in 0x2000-0x3EFF to an offset into the 2KB of
// console nametable memory (or 4KB with FourScreen).
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	OneScreenLower
	OneScreenUpper
	FourScreen
)

var mirroringNames = [...]string{
	"horizontal",
	"vertical",
	"one-screen lower",
	"one-screen upper",
	"four-screen",
}

func (m Mirroring) String() string {
	if int(m) < len(mirroringNames) {
		return mirroringNames[m]
	}
	return "unknown"
}

const (
	SoftReset = true
	HardReset = false
)
