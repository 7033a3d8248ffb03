package hw

import "famicore/hw/snapshot"

// dmcPeriods maps the 4-bit rate index to the CPU cycles per output bit
// (NTSC).
var dmcPeriods = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

// dmcChannel plays 1-bit delta-encoded samples fetched straight from the
// CPU address space. Each fetch steals cycles from the CPU.
type dmcChannel struct {
	timer chanTimer

	irqEnabled bool
	irq        bool
	loop       bool

	sampleAddr uint16
	sampleLen  uint16
	curAddr    uint16
	remaining  uint16

	outLevel uint8
	readBuf  uint8
	bufEmpty bool
	shiftReg uint8
	bitsLeft uint8
	silence  bool
	enabled  bool
}

func (d *dmcChannel) reset() {
	*d = dmcChannel{
		bufEmpty: true,
		bitsLeft: 8,
		silence:  true,
	}
	d.timer.period = dmcPeriods[0] - 1
}

func (d *dmcChannel) writeReg(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0: // $4010
		d.irqEnabled = val&0x80 != 0
		d.loop = val&0x40 != 0
		d.timer.period = dmcPeriods[val&0x0F] - 1
		if !d.irqEnabled {
			d.irq = false
		}
	case 1: // $4011
		d.outLevel = val & 0x7F
	case 2: // $4012
		d.sampleAddr = 0xC000 | uint16(val)<<6
	case 3: // $4013
		d.sampleLen = uint16(val)<<4 | 0x01
	}
}

// setEnabled implements the $4015 enable bit: disabling stops playback at
// the end of the buffered byte, enabling restarts a finished sample.
func (d *dmcChannel) setEnabled(enabled bool) {
	d.enabled = enabled
	if !enabled {
		d.remaining = 0
	} else if d.remaining == 0 {
		d.restart()
	}
}

func (d *dmcChannel) restart() {
	d.curAddr = d.sampleAddr
	d.remaining = d.sampleLen
}

// clock runs once per CPU cycle. It returns the number of cycles the CPU
// is stalled by a sample fetch, 0 most of the time.
func (d *dmcChannel) clock(mem Memory) int {
	stall := 0
	if d.bufEmpty && d.remaining > 0 {
		d.readBuf = mem.Read8(d.curAddr)
		d.bufEmpty = false
		stall = 4

		// The sample pointer wraps from the top of memory back to the
		// start of the PRG area.
		if d.curAddr == 0xFFFF {
			d.curAddr = 0x8000
		} else {
			d.curAddr++
		}
		d.remaining--
		if d.remaining == 0 {
			if d.loop {
				d.restart()
			} else if d.irqEnabled {
				d.irq = true
			}
		}
	}

	if d.timer.clock() {
		if !d.silence {
			if d.shiftReg&0x01 != 0 {
				if d.outLevel <= 125 {
					d.outLevel += 2
				}
			} else if d.outLevel >= 2 {
				d.outLevel -= 2
			}
		}
		d.shiftReg >>= 1
		d.bitsLeft--
		if d.bitsLeft == 0 {
			d.bitsLeft = 8
			if d.bufEmpty {
				d.silence = true
			} else {
				d.silence = false
				d.shiftReg = d.readBuf
				d.bufEmpty = true
			}
		}
	}
	return stall
}

func (d *dmcChannel) output() uint8 { return d.outLevel }

func (d *dmcChannel) saveState(state *snapshot.DMC) {
	d.timer.saveState(&state.Timer)
	state.IRQEnabled = d.irqEnabled
	state.Loop = d.loop
	state.SampleAddr = d.sampleAddr
	state.SampleLen = d.sampleLen
	state.CurAddr = d.curAddr
	state.Remaining = d.remaining
	state.OutLevel = d.outLevel
	state.ReadBuf = d.readBuf
	state.BufEmpty = d.bufEmpty
	state.ShiftReg = d.shiftReg
	state.BitsLeft = d.bitsLeft
	state.Silence = d.silence
	state.Enabled = d.enabled
}

func (d *dmcChannel) setState(state *snapshot.DMC) {
	d.timer.setState(&state.Timer)
	d.irqEnabled = state.IRQEnabled
	d.loop = state.Loop
	d.sampleAddr = state.SampleAddr
	d.sampleLen = state.SampleLen
	d.curAddr = state.CurAddr
	d.remaining = state.Remaining
	d.outLevel = state.OutLevel
	d.readBuf = state.ReadBuf
	d.bufEmpty = state.BufEmpty
	d.shiftReg = state.ShiftReg
	d.bitsLeft = state.BitsLeft
	d.silence = state.Silence
	d.enabled = state.Enabled
}
