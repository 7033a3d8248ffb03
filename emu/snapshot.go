package emu

import (
	"errors"
	"fmt"

	"github.com/go-faster/jx"

	"famicore/emu/log"
	"famicore/hw/snapshot"
)

var (
	// ErrNoCartridge is returned by operations requiring a loaded ROM.
	ErrNoCartridge = errors.New("no cartridge loaded")

	// ErrSnapshotVersion is returned when restoring a snapshot with an
	// incompatible layout version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")

	// ErrSnapshotCorrupt is returned when a snapshot fails structural
	// validation. The console state is left untouched.
	ErrSnapshotCorrupt = errors.New("corrupt snapshot")
)

// Snapshot serializes the complete machine state to JSON. The blob is
// self-describing and restorable on a console running the same ROM.
func (c *Console) Snapshot() ([]byte, error) {
	if !c.Loaded() {
		return nil, ErrNoCartridge
	}

	var st snapshot.Console
	st.Version = snapshot.Version
	st.Frame = c.frame
	c.cpu.SaveState(&st.CPU)
	c.bus.SaveState(&st)
	c.ppu.SaveState(&st.PPU)
	c.apu.SaveState(&st.APU)
	c.mapper.SaveState(&st.Mapper)

	var e jx.Encoder
	encConsole(&e, &st)
	return e.Bytes(), nil
}

// Restore applies a snapshot previously produced by Snapshot. On any
// decoding or validation error the console keeps running from its current
// state.
func (c *Console) Restore(data []byte) error {
	if !c.Loaded() {
		return ErrNoCartridge
	}

	var st snapshot.Console
	if err := decConsole(jx.DecodeBytes(data), &st); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if st.Version != snapshot.Version {
		return fmt.Errorf("%w: got %d, want %d",
			ErrSnapshotVersion, st.Version, snapshot.Version)
	}
	if err := validateSnapshot(&st); err != nil {
		return err
	}

	// The mapper validates its own state and is the only component that
	// can still reject the blob, so it is applied first.
	if err := c.mapper.SetState(&st.Mapper); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	c.cpu.SetState(&st.CPU)
	c.bus.SetState(&st)
	c.ppu.SetState(&st.PPU)
	c.apu.SetState(&st.APU)
	c.frame = st.Frame
	if c.audio != nil {
		c.audio.Reset()
	}

	log.ModEmu.InfoZ("snapshot restored").Uint64("frame", c.frame).End()
	return nil
}

func validateSnapshot(st *snapshot.Console) error {
	sizes := []struct {
		name string
		got  int
		want int
	}{
		{"ram", len(st.RAM), 0x800},
		{"nametables", len(st.PPU.Nametables), 0x1000},
		{"palette", len(st.PPU.Palette), 32},
		{"oam", len(st.PPU.OAM), 256},
		{"secondary oam", len(st.PPU.SecondaryOAM), 32},
	}
	for _, s := range sizes {
		if s.got != s.want {
			return fmt.Errorf("%w: %s is %d bytes, want %d",
				ErrSnapshotCorrupt, s.name, s.got, s.want)
		}
	}
	return nil
}

// Encoding. One function per snapshot struct, flat JSON objects with
// base64 for the memory arrays.

func encConsole(e *jx.Encoder, st *snapshot.Console) {
	e.ObjStart()
	e.FieldStart("version")
	e.Int(st.Version)
	e.FieldStart("frame")
	e.UInt64(st.Frame)
	e.FieldStart("cpu")
	encCPU(e, &st.CPU)
	e.FieldStart("ram")
	e.Base64(st.RAM)
	e.FieldStart("ppu")
	encPPU(e, &st.PPU)
	e.FieldStart("apu")
	encAPU(e, &st.APU)
	e.FieldStart("mapper")
	encMapper(e, &st.Mapper)
	e.FieldStart("pads")
	e.ArrStart()
	for i := range st.Pads {
		encController(e, &st.Pads[i])
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encCPU(e *jx.Encoder, st *snapshot.CPU) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(st.PC)
	e.FieldStart("sp")
	e.UInt8(st.SP)
	e.FieldStart("a")
	e.UInt8(st.A)
	e.FieldStart("x")
	e.UInt8(st.X)
	e.FieldStart("y")
	e.UInt8(st.Y)
	e.FieldStart("p")
	e.UInt8(st.P)
	e.FieldStart("cycles")
	e.UInt64(st.Cycles)
	e.FieldStart("halted")
	e.Bool(st.Halted)
	e.ObjEnd()
}

func encController(e *jx.Encoder, st *snapshot.Controller) {
	e.ObjStart()
	e.FieldStart("buttons")
	e.UInt8(st.Buttons)
	e.FieldStart("shift")
	e.UInt8(st.Shift)
	e.FieldStart("strobe")
	e.Bool(st.Strobe)
	e.ObjEnd()
}

func encPPU(e *jx.Encoder, st *snapshot.PPU) {
	e.ObjStart()
	e.FieldStart("ctrl")
	e.UInt8(st.Ctrl)
	e.FieldStart("mask")
	e.UInt8(st.Mask)
	e.FieldStart("status")
	e.UInt8(st.Status)
	e.FieldStart("oam_addr")
	e.UInt8(st.OAMAddr)
	e.FieldStart("v")
	e.UInt16(st.VRAMAddr)
	e.FieldStart("t")
	e.UInt16(st.TempAddr)
	e.FieldStart("fine_x")
	e.UInt8(st.FineX)
	e.FieldStart("write_latch")
	e.Bool(st.WriteLatch)
	e.FieldStart("read_buf")
	e.UInt8(st.ReadBuf)
	e.FieldStart("open_bus")
	e.UInt8(st.OpenBus)
	e.FieldStart("scanline")
	e.Int32(int32(st.Scanline))
	e.FieldStart("dot")
	e.UInt16(st.Dot)
	e.FieldStart("odd_frame")
	e.Bool(st.OddFrame)
	e.FieldStart("nmi_pending")
	e.Bool(st.NMIPending)
	e.FieldStart("frame_done")
	e.Bool(st.FrameDone)
	e.FieldStart("nametables")
	e.Base64(st.Nametables)
	e.FieldStart("palette")
	e.Base64(st.Palette)
	e.FieldStart("oam")
	e.Base64(st.OAM)
	e.FieldStart("secondary_oam")
	e.Base64(st.SecondaryOAM)
	e.FieldStart("nt_latch")
	e.UInt8(st.NTLatch)
	e.FieldStart("at_latch")
	e.UInt8(st.ATLatch)
	e.FieldStart("bg_lo_latch")
	e.UInt8(st.BGLoLatch)
	e.FieldStart("bg_hi_latch")
	e.UInt8(st.BGHiLatch)
	e.FieldStart("shift_bg_lo")
	e.UInt16(st.ShiftBGLo)
	e.FieldStart("shift_bg_hi")
	e.UInt16(st.ShiftBGHi)
	e.FieldStart("shift_at_lo")
	e.UInt16(st.ShiftATLo)
	e.FieldStart("shift_at_hi")
	e.UInt16(st.ShiftATHi)
	e.FieldStart("sprites")
	e.ArrStart()
	for i := range st.Sprites {
		encSprite(e, &st.Sprites[i])
	}
	e.ArrEnd()
	e.FieldStart("sprite_count")
	e.UInt8(st.SpriteCount)
	e.FieldStart("sprite0_line")
	e.Bool(st.Sprite0Line)
	e.FieldStart("sprite0_next")
	e.Bool(st.Sprite0Next)
	e.ObjEnd()
}

func encSprite(e *jx.Encoder, st *snapshot.Sprite) {
	e.ObjStart()
	e.FieldStart("lo")
	e.UInt8(st.PatternLo)
	e.FieldStart("hi")
	e.UInt8(st.PatternHi)
	e.FieldStart("attr")
	e.UInt8(st.Attr)
	e.FieldStart("x")
	e.UInt8(st.X)
	e.FieldStart("index")
	e.UInt8(st.Index)
	e.ObjEnd()
}

func encEnvelope(e *jx.Encoder, st *snapshot.Envelope) {
	e.ObjStart()
	e.FieldStart("start")
	e.Bool(st.Start)
	e.FieldStart("divider")
	e.UInt8(st.Divider)
	e.FieldStart("decay")
	e.UInt8(st.Decay)
	e.FieldStart("reg")
	e.UInt8(st.Reg)
	e.ObjEnd()
}

func encLength(e *jx.Encoder, st *snapshot.LengthCounter) {
	e.ObjStart()
	e.FieldStart("counter")
	e.UInt8(st.Counter)
	e.FieldStart("halt")
	e.Bool(st.Halt)
	e.FieldStart("enabled")
	e.Bool(st.Enabled)
	e.ObjEnd()
}

func encTimer(e *jx.Encoder, st *snapshot.Timer) {
	e.ObjStart()
	e.FieldStart("period")
	e.UInt16(st.Period)
	e.FieldStart("counter")
	e.UInt16(st.Counter)
	e.ObjEnd()
}

func encPulse(e *jx.Encoder, st *snapshot.Pulse) {
	e.ObjStart()
	e.FieldStart("envelope")
	encEnvelope(e, &st.Envelope)
	e.FieldStart("timer")
	encTimer(e, &st.Timer)
	e.FieldStart("length")
	encLength(e, &st.Length)
	e.FieldStart("duty")
	e.UInt8(st.Duty)
	e.FieldStart("duty_pos")
	e.UInt8(st.DutyPos)
	e.FieldStart("sweep_reg")
	e.UInt8(st.SweepReg)
	e.FieldStart("sweep_div")
	e.UInt8(st.SweepDiv)
	e.FieldStart("sweep_reload")
	e.Bool(st.SweepReload)
	e.ObjEnd()
}

func encTriangle(e *jx.Encoder, st *snapshot.Triangle) {
	e.ObjStart()
	e.FieldStart("timer")
	encTimer(e, &st.Timer)
	e.FieldStart("length")
	encLength(e, &st.Length)
	e.FieldStart("linear_reg")
	e.UInt8(st.LinearReg)
	e.FieldStart("linear_count")
	e.UInt8(st.LinearCount)
	e.FieldStart("linear_reload")
	e.Bool(st.LinearReload)
	e.FieldStart("seq_pos")
	e.UInt8(st.SeqPos)
	e.ObjEnd()
}

func encNoise(e *jx.Encoder, st *snapshot.Noise) {
	e.ObjStart()
	e.FieldStart("envelope")
	encEnvelope(e, &st.Envelope)
	e.FieldStart("timer")
	encTimer(e, &st.Timer)
	e.FieldStart("length")
	encLength(e, &st.Length)
	e.FieldStart("mode")
	e.Bool(st.Mode)
	e.FieldStart("shift")
	e.UInt16(st.Shift)
	e.ObjEnd()
}

func encDMC(e *jx.Encoder, st *snapshot.DMC) {
	e.ObjStart()
	e.FieldStart("timer")
	encTimer(e, &st.Timer)
	e.FieldStart("irq_enabled")
	e.Bool(st.IRQEnabled)
	e.FieldStart("loop")
	e.Bool(st.Loop)
	e.FieldStart("sample_addr")
	e.UInt16(st.SampleAddr)
	e.FieldStart("sample_len")
	e.UInt16(st.SampleLen)
	e.FieldStart("cur_addr")
	e.UInt16(st.CurAddr)
	e.FieldStart("remaining")
	e.UInt16(st.Remaining)
	e.FieldStart("out_level")
	e.UInt8(st.OutLevel)
	e.FieldStart("read_buf")
	e.UInt8(st.ReadBuf)
	e.FieldStart("buf_empty")
	e.Bool(st.BufEmpty)
	e.FieldStart("shift_reg")
	e.UInt8(st.ShiftReg)
	e.FieldStart("bits_left")
	e.UInt8(st.BitsLeft)
	e.FieldStart("silence")
	e.Bool(st.Silence)
	e.FieldStart("enabled")
	e.Bool(st.Enabled)
	e.ObjEnd()
}

func encAPU(e *jx.Encoder, st *snapshot.APU) {
	e.ObjStart()
	e.FieldStart("pulse1")
	encPulse(e, &st.Pulse1)
	e.FieldStart("pulse2")
	encPulse(e, &st.Pulse2)
	e.FieldStart("triangle")
	encTriangle(e, &st.Triangle)
	e.FieldStart("noise")
	encNoise(e, &st.Noise)
	e.FieldStart("dmc")
	encDMC(e, &st.DMC)
	e.FieldStart("cycle")
	e.UInt64(st.Cycle)
	e.FieldStart("seq_mode")
	e.UInt8(st.SeqMode)
	e.FieldStart("seq_counter")
	e.UInt16(st.SeqCounter)
	e.FieldStart("inhibit_irq")
	e.Bool(st.InhibitIRQ)
	e.FieldStart("frame_irq")
	e.Bool(st.FrameIRQ)
	e.FieldStart("dmc_irq")
	e.Bool(st.DMCIRQ)
	e.FieldStart("write_delay")
	e.Int(int(st.WriteDelay))
	e.FieldStart("pending_value")
	e.Int(int(st.PendingValue))
	e.ObjEnd()
}

func encMapper(e *jx.Encoder, st *snapshot.Mapper) {
	e.ObjStart()
	e.FieldStart("id")
	e.UInt16(st.ID)
	e.FieldStart("regs")
	e.Base64(st.Regs)
	e.FieldStart("prg_ram")
	e.Base64(st.PRGRAM)
	e.FieldStart("chr_ram")
	e.Base64(st.CHRRAM)
	e.FieldStart("mirroring")
	e.UInt8(st.Mirroring)
	e.FieldStart("irq_counter")
	e.UInt8(st.IRQCounter)
	e.FieldStart("irq_latch")
	e.UInt8(st.IRQLatch)
	e.FieldStart("irq_enabled")
	e.Bool(st.IRQEnabled)
	e.FieldStart("irq_reload")
	e.Bool(st.IRQReload)
	e.FieldStart("irq_pending")
	e.Bool(st.IRQPending)
	e.ObjEnd()
}

// Decoding.

func decConsole(d *jx.Decoder, st *snapshot.Console) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			st.Version, err = d.Int()
		case "frame":
			st.Frame, err = d.UInt64()
		case "cpu":
			err = decCPU(d, &st.CPU)
		case "ram":
			st.RAM, err = d.Base64()
		case "ppu":
			err = decPPU(d, &st.PPU)
		case "apu":
			err = decAPU(d, &st.APU)
		case "mapper":
			err = decMapper(d, &st.Mapper)
		case "pads":
			i := 0
			err = d.Arr(func(d *jx.Decoder) error {
				if i >= len(st.Pads) {
					return d.Skip()
				}
				e := decController(d, &st.Pads[i])
				i++
				return e
			})
		default:
			err = d.Skip()
		}
		return err
	})
}

func decCPU(d *jx.Decoder, st *snapshot.CPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			st.PC, err = d.UInt16()
		case "sp":
			st.SP, err = d.UInt8()
		case "a":
			st.A, err = d.UInt8()
		case "x":
			st.X, err = d.UInt8()
		case "y":
			st.Y, err = d.UInt8()
		case "p":
			st.P, err = d.UInt8()
		case "cycles":
			st.Cycles, err = d.UInt64()
		case "halted":
			st.Halted, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decController(d *jx.Decoder, st *snapshot.Controller) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "buttons":
			st.Buttons, err = d.UInt8()
		case "shift":
			st.Shift, err = d.UInt8()
		case "strobe":
			st.Strobe, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decPPU(d *jx.Decoder, st *snapshot.PPU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ctrl":
			st.Ctrl, err = d.UInt8()
		case "mask":
			st.Mask, err = d.UInt8()
		case "status":
			st.Status, err = d.UInt8()
		case "oam_addr":
			st.OAMAddr, err = d.UInt8()
		case "v":
			st.VRAMAddr, err = d.UInt16()
		case "t":
			st.TempAddr, err = d.UInt16()
		case "fine_x":
			st.FineX, err = d.UInt8()
		case "write_latch":
			st.WriteLatch, err = d.Bool()
		case "read_buf":
			st.ReadBuf, err = d.UInt8()
		case "open_bus":
			st.OpenBus, err = d.UInt8()
		case "scanline":
			var v int32
			v, err = d.Int32()
			st.Scanline = int16(v)
		case "dot":
			st.Dot, err = d.UInt16()
		case "odd_frame":
			st.OddFrame, err = d.Bool()
		case "nmi_pending":
			st.NMIPending, err = d.Bool()
		case "frame_done":
			st.FrameDone, err = d.Bool()
		case "nametables":
			st.Nametables, err = d.Base64()
		case "palette":
			st.Palette, err = d.Base64()
		case "oam":
			st.OAM, err = d.Base64()
		case "secondary_oam":
			st.SecondaryOAM, err = d.Base64()
		case "nt_latch":
			st.NTLatch, err = d.UInt8()
		case "at_latch":
			st.ATLatch, err = d.UInt8()
		case "bg_lo_latch":
			st.BGLoLatch, err = d.UInt8()
		case "bg_hi_latch":
			st.BGHiLatch, err = d.UInt8()
		case "shift_bg_lo":
			st.ShiftBGLo, err = d.UInt16()
		case "shift_bg_hi":
			st.ShiftBGHi, err = d.UInt16()
		case "shift_at_lo":
			st.ShiftATLo, err = d.UInt16()
		case "shift_at_hi":
			st.ShiftATHi, err = d.UInt16()
		case "sprites":
			i := 0
			err = d.Arr(func(d *jx.Decoder) error {
				if i >= len(st.Sprites) {
					return d.Skip()
				}
				e := decSprite(d, &st.Sprites[i])
				i++
				return e
			})
		case "sprite_count":
			st.SpriteCount, err = d.UInt8()
		case "sprite0_line":
			st.Sprite0Line, err = d.Bool()
		case "sprite0_next":
			st.Sprite0Next, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decSprite(d *jx.Decoder, st *snapshot.Sprite) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "lo":
			st.PatternLo, err = d.UInt8()
		case "hi":
			st.PatternHi, err = d.UInt8()
		case "attr":
			st.Attr, err = d.UInt8()
		case "x":
			st.X, err = d.UInt8()
		case "index":
			st.Index, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decEnvelope(d *jx.Decoder, st *snapshot.Envelope) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "start":
			st.Start, err = d.Bool()
		case "divider":
			st.Divider, err = d.UInt8()
		case "decay":
			st.Decay, err = d.UInt8()
		case "reg":
			st.Reg, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decLength(d *jx.Decoder, st *snapshot.LengthCounter) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "counter":
			st.Counter, err = d.UInt8()
		case "halt":
			st.Halt, err = d.Bool()
		case "enabled":
			st.Enabled, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decTimer(d *jx.Decoder, st *snapshot.Timer) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "period":
			st.Period, err = d.UInt16()
		case "counter":
			st.Counter, err = d.UInt16()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decPulse(d *jx.Decoder, st *snapshot.Pulse) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "envelope":
			err = decEnvelope(d, &st.Envelope)
		case "timer":
			err = decTimer(d, &st.Timer)
		case "length":
			err = decLength(d, &st.Length)
		case "duty":
			st.Duty, err = d.UInt8()
		case "duty_pos":
			st.DutyPos, err = d.UInt8()
		case "sweep_reg":
			st.SweepReg, err = d.UInt8()
		case "sweep_div":
			st.SweepDiv, err = d.UInt8()
		case "sweep_reload":
			st.SweepReload, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decTriangle(d *jx.Decoder, st *snapshot.Triangle) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "timer":
			err = decTimer(d, &st.Timer)
		case "length":
			err = decLength(d, &st.Length)
		case "linear_reg":
			st.LinearReg, err = d.UInt8()
		case "linear_count":
			st.LinearCount, err = d.UInt8()
		case "linear_reload":
			st.LinearReload, err = d.Bool()
		case "seq_pos":
			st.SeqPos, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decNoise(d *jx.Decoder, st *snapshot.Noise) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "envelope":
			err = decEnvelope(d, &st.Envelope)
		case "timer":
			err = decTimer(d, &st.Timer)
		case "length":
			err = decLength(d, &st.Length)
		case "mode":
			st.Mode, err = d.Bool()
		case "shift":
			st.Shift, err = d.UInt16()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decDMC(d *jx.Decoder, st *snapshot.DMC) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "timer":
			err = decTimer(d, &st.Timer)
		case "irq_enabled":
			st.IRQEnabled, err = d.Bool()
		case "loop":
			st.Loop, err = d.Bool()
		case "sample_addr":
			st.SampleAddr, err = d.UInt16()
		case "sample_len":
			st.SampleLen, err = d.UInt16()
		case "cur_addr":
			st.CurAddr, err = d.UInt16()
		case "remaining":
			st.Remaining, err = d.UInt16()
		case "out_level":
			st.OutLevel, err = d.UInt8()
		case "read_buf":
			st.ReadBuf, err = d.UInt8()
		case "buf_empty":
			st.BufEmpty, err = d.Bool()
		case "shift_reg":
			st.ShiftReg, err = d.UInt8()
		case "bits_left":
			st.BitsLeft, err = d.UInt8()
		case "silence":
			st.Silence, err = d.Bool()
		case "enabled":
			st.Enabled, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decAPU(d *jx.Decoder, st *snapshot.APU) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pulse1":
			err = decPulse(d, &st.Pulse1)
		case "pulse2":
			err = decPulse(d, &st.Pulse2)
		case "triangle":
			err = decTriangle(d, &st.Triangle)
		case "noise":
			err = decNoise(d, &st.Noise)
		case "dmc":
			err = decDMC(d, &st.DMC)
		case "cycle":
			st.Cycle, err = d.UInt64()
		case "seq_mode":
			st.SeqMode, err = d.UInt8()
		case "seq_counter":
			st.SeqCounter, err = d.UInt16()
		case "inhibit_irq":
			st.InhibitIRQ, err = d.Bool()
		case "frame_irq":
			st.FrameIRQ, err = d.Bool()
		case "dmc_irq":
			st.DMCIRQ, err = d.Bool()
		case "write_delay":
			var v int
			v, err = d.Int()
			st.WriteDelay = int8(v)
		case "pending_value":
			var v int
			v, err = d.Int()
			st.PendingValue = int16(v)
		default:
			err = d.Skip()
		}
		return err
	})
}

func decMapper(d *jx.Decoder, st *snapshot.Mapper) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			st.ID, err = d.UInt16()
		case "regs":
			st.Regs, err = d.Base64()
		case "prg_ram":
			st.PRGRAM, err = d.Base64()
		case "chr_ram":
			st.CHRRAM, err = d.Base64()
		case "mirroring":
			st.Mirroring, err = d.UInt8()
		case "irq_counter":
			st.IRQCounter, err = d.UInt8()
		case "irq_latch":
			st.IRQLatch, err = d.UInt8()
		case "irq_enabled":
			st.IRQEnabled, err = d.Bool()
		case "irq_reload":
			st.IRQReload, err = d.Bool()
		case "irq_pending":
			st.IRQPending, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}
