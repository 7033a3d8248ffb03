package hw

import "famicore/hw/snapshot"

// pulseDuty holds the four 8-step duty sequences (12.5%, 25%, 50% and
// 25% negated).
var pulseDuty = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// pulseChannel is one of the two square wave generators. The two units
// differ only in the sweep negate adder, selected by channel2.
type pulseChannel struct {
	envelope envelope
	timer    chanTimer
	length   lengthCounter

	duty    uint8
	dutyPos uint8

	sweepReg    uint8
	sweepDiv    uint8
	sweepReload bool

	channel2 bool
}

func (p *pulseChannel) writeReg(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0: // $4000/$4004
		p.duty = val >> 6
		p.length.halt = val&0x20 != 0
		p.envelope.write(val)
	case 1: // $4001/$4005
		p.sweepReg = val
		p.sweepReload = true
	case 2: // $4002/$4006
		p.timer.period = p.timer.period&0x0700 | uint16(val)
	case 3: // $4003/$4007
		p.timer.period = p.timer.period&0x00FF | uint16(val&0x07)<<8
		p.length.load(val)
		p.envelope.start = true
		p.dutyPos = 0
	}
}

// clock advances the duty sequencer, once per APU cycle.
func (p *pulseChannel) clock() {
	if p.timer.clock() {
		p.dutyPos = (p.dutyPos + 1) & 0x07
	}
}

// sweepTarget computes the period the sweep unit is aiming for. Pulse 1
// uses one's complement negation, pulse 2 two's complement.
func (p *pulseChannel) sweepTarget() int {
	delta := int(p.timer.period >> (p.sweepReg & 0x07))
	if p.sweepReg&0x08 != 0 {
		if p.channel2 {
			return int(p.timer.period) - delta
		}
		return int(p.timer.period) - delta - 1
	}
	return int(p.timer.period) + delta
}

// muted reports whether the sweep unit forces silence: period too low or
// target period out of range. This applies even when the sweep is
// disabled.
func (p *pulseChannel) muted() bool {
	return p.timer.period < 8 || p.sweepTarget() > 0x07FF
}

// clockSweep runs on half frames.
func (p *pulseChannel) clockSweep() {
	if p.sweepDiv == 0 && p.sweepReg&0x80 != 0 && p.sweepReg&0x07 != 0 && !p.muted() {
		target := p.sweepTarget()
		if target >= 0 {
			p.timer.period = uint16(target)
		}
	}
	if p.sweepDiv == 0 || p.sweepReload {
		p.sweepDiv = (p.sweepReg >> 4) & 0x07
		p.sweepReload = false
	} else {
		p.sweepDiv--
	}
}

func (p *pulseChannel) output() uint8 {
	if p.length.counter == 0 || p.muted() || pulseDuty[p.duty][p.dutyPos] == 0 {
		return 0
	}
	return p.envelope.volume()
}

func (p *pulseChannel) saveState(state *snapshot.Pulse) {
	p.envelope.saveState(&state.Envelope)
	p.timer.saveState(&state.Timer)
	p.length.saveState(&state.Length)
	state.Duty = p.duty
	state.DutyPos = p.dutyPos
	state.SweepReg = p.sweepReg
	state.SweepDiv = p.sweepDiv
	state.SweepReload = p.sweepReload
}

func (p *pulseChannel) setState(state *snapshot.Pulse) {
	p.envelope.setState(&state.Envelope)
	p.timer.setState(&state.Timer)
	p.length.setState(&state.Length)
	p.duty = state.Duty
	p.dutyPos = state.DutyPos
	p.sweepReg = state.SweepReg
	p.sweepDiv = state.SweepDiv
	p.sweepReload = state.SweepReload
}
