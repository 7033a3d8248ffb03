package hw

import "famicore/hw/snapshot"

// lengthTable maps the 5-bit length index of the $4003/$4007/$400B/$400F
// writes to a counter value.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22,
	192, 24, 72, 26, 16, 28, 32, 30,
}

// envelope is the volume generator shared by the pulse and noise channels.
// reg holds the raw channel control byte: bit 5 is loop, bit 4 selects
// constant volume, the low nibble is the volume or decay period.
type envelope struct {
	start   bool
	divider uint8
	decay   uint8
	reg     uint8
}

func (e *envelope) write(val uint8) { e.reg = val }

func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.reg & 0x0F
		return
	}
	if e.divider > 0 {
		e.divider--
		return
	}
	e.divider = e.reg & 0x0F
	if e.decay > 0 {
		e.decay--
	} else if e.reg&0x20 != 0 {
		e.decay = 15
	}
}

func (e *envelope) volume() uint8 {
	if e.reg&0x10 != 0 {
		return e.reg & 0x0F
	}
	return e.decay
}

func (e *envelope) saveState(state *snapshot.Envelope) {
	state.Start = e.start
	state.Divider = e.divider
	state.Decay = e.decay
	state.Reg = e.reg
}

func (e *envelope) setState(state *snapshot.Envelope) {
	e.start = state.Start
	e.divider = state.Divider
	e.decay = state.Decay
	e.reg = state.Reg
}

// lengthCounter silences a channel after a programmed duration unless the
// halt flag holds it.
type lengthCounter struct {
	counter uint8
	halt    bool
	enabled bool
}

func (l *lengthCounter) load(val uint8) {
	if l.enabled {
		l.counter = lengthTable[val>>3]
	}
}

func (l *lengthCounter) clock() {
	if !l.halt && l.counter > 0 {
		l.counter--
	}
}

func (l *lengthCounter) setEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.counter = 0
	}
}

func (l *lengthCounter) saveState(state *snapshot.LengthCounter) {
	state.Counter = l.counter
	state.Halt = l.halt
	state.Enabled = l.enabled
}

func (l *lengthCounter) setState(state *snapshot.LengthCounter) {
	l.counter = state.Counter
	l.halt = state.Halt
	l.enabled = state.Enabled
}

// chanTimer is the programmable divider clocking a channel's sequencer. A
// full cycle takes period+1 input clocks.
type chanTimer struct {
	period  uint16
	counter uint16
}

func (t *chanTimer) clock() bool {
	if t.counter == 0 {
		t.counter = t.period
		return true
	}
	t.counter--
	return false
}

func (t *chanTimer) saveState(state *snapshot.Timer) {
	state.Period = t.period
	state.Counter = t.counter
}

func (t *chanTimer) setState(state *snapshot.Timer) {
	t.period = state.Period
	t.counter = state.Counter
}
