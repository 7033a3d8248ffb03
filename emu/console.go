// Package emu assembles the hardware components into a headless console:
// load a cartridge, feed controller input, run whole frames, snapshot and
// restore.
package emu

import (
	"fmt"

	"famicore/emu/log"
	"famicore/hw"
	"famicore/hw/hwdefs"
	"famicore/hw/mappers"
	"famicore/ines"
)

// Frame is the output of one RunFrame call.
type Frame struct {
	// N is the frame number, starting at 0 for the first frame after a
	// load or reset.
	N uint64

	// Video holds one palette index (0..63) per pixel, 256x240 in
	// row-major order. The slice is owned by the caller.
	Video []uint8

	// Audio holds the mono 16-bit samples produced during the frame.
	// Empty when audio synthesis is disabled.
	Audio []int16
}

// Console owns the emulated machine. It is not safe for concurrent use.
type Console struct {
	cfg Config

	cpu    *hw.CPU
	ppu    *hw.PPU
	apu    *hw.APU
	bus    *hw.Bus
	mapper mappers.Mapper
	audio  *hw.Audio

	rom   *ines.Rom
	frame uint64
}

// New returns a console with no cartridge inserted.
func New(cfg Config) *Console {
	cfg.setDefaults()
	return &Console{cfg: cfg}
}

// Loaded reports whether a cartridge is inserted.
func (c *Console) Loaded() bool { return c.rom != nil }

// SampleRate returns the effective audio output rate in Hz.
func (c *Console) SampleRate() int { return c.cfg.SampleRate }

// NextFrame returns the number the next RunFrame call will produce.
func (c *Console) NextFrame() uint64 { return c.frame }

// Load inserts a cartridge and powers up the machine.
func (c *Console) Load(rom *ines.Rom) error {
	mapper, err := mappers.Load(rom)
	if err != nil {
		return err
	}

	c.rom = rom
	c.mapper = mapper
	c.cpu = hw.NewCPU()
	c.ppu = hw.NewPPU(mapper)
	c.apu = hw.NewAPU()
	c.bus = hw.NewBus(c.ppu, c.apu, mapper)
	c.bus.AttachCPU(c.cpu)
	c.apu.AttachBus(c.bus)

	if c.cfg.Audio {
		c.audio = hw.NewAudio(c.cfg.SampleRate)
		c.apu.AttachAudio(c.audio)
	}

	c.Reset(hwdefs.HardReset)

	log.ModEmu.InfoZ("cartridge loaded").
		Uint8("mapper", uint8(rom.Mapper())).
		Int("prg", len(rom.PRG)).
		Int("chr", len(rom.CHR)).
		Stringer("mirroring", rom.Mirroring()).
		End()
	return nil
}

// LoadData parses an in-memory iNES blob and loads it.
func (c *Console) LoadData(data []byte) error {
	rom, err := ines.ParseROM(data)
	if err != nil {
		return err
	}
	return c.Load(rom)
}

// LoadFile reads an iNES file from disk and loads it.
func (c *Console) LoadFile(path string) error {
	rom, err := ines.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return c.Load(rom)
}

// Reset restarts execution. A soft reset keeps RAM and cartridge state the
// way the console reset button does, a hard reset reverts everything to
// the power-up state.
func (c *Console) Reset(soft bool) {
	if !soft {
		c.bus.Reset()
		c.ppu.Reset()
		c.apu.Reset()
		c.mapper.Reset()
	}
	c.cpu.Reset(c.bus)
	if c.audio != nil {
		c.audio.Reset()
	}
	c.frame = 0
}

// SetInput replaces the button state of one pad. The state is held until
// the next call; games see it on their next controller strobe.
func (c *Console) SetInput(pad int, buttons hw.Button) {
	if pad < 0 || pad > 1 {
		return
	}
	c.bus.Pads[pad].Set(buttons)
}

// RunFrame emulates until the PPU finishes the visible part of the current
// frame and returns its output.
func (c *Console) RunFrame() *Frame {
	for !c.ppu.FrameDone() {
		c.stepInstruction()
	}
	c.ppu.AckFrameDone()

	frame := &Frame{N: c.frame}
	frame.Video = make([]uint8, hw.FrameWidth*hw.FrameHeight)
	copy(frame.Video, c.ppu.Frame())
	if c.audio != nil {
		frame.Audio = c.audio.EndFrame()
	}

	c.frame++
	return frame
}

// stepInstruction services pending interrupts, executes one CPU
// instruction and runs the PPU and APU for the elapsed cycles.
func (c *Console) stepInstruction() {
	if c.ppu.TakeNMI() {
		c.tick(c.cpu.NMI(c.bus))
	}
	if c.irqAsserted() {
		if cycles := c.cpu.IRQ(c.bus); cycles > 0 {
			c.tick(cycles)
		}
	}

	cycles := c.cpu.Step(c.bus)
	cycles += c.bus.TakeStall()
	c.tick(cycles)
}

// irqAsserted reports whether any device holds the IRQ line low. The line
// is level-triggered: devices keep asserting until acknowledged through
// their own registers.
func (c *Console) irqAsserted() bool {
	return c.mapper.PendingIRQ() || c.apu.PendingIRQ() != 0
}

// tick advances the rest of the machine: 3 PPU dots and one APU clock per
// CPU cycle.
func (c *Console) tick(cycles int) {
	for range cycles {
		c.ppu.Tick()
		c.ppu.Tick()
		c.ppu.Tick()
		c.apu.Clock()
	}
}
