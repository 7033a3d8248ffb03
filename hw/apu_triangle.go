package hw

import "famicore/hw/snapshot"

// triangleSeq is the 32-step output sequence, descending then ascending.
var triangleSeq = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// triangleChannel steps through triangleSeq at the CPU clock rate, gated
// by both the length counter and the finer-grained linear counter.
type triangleChannel struct {
	timer  chanTimer
	length lengthCounter

	linearReg    uint8
	linearCount  uint8
	linearReload bool
	seqPos       uint8
}

func (t *triangleChannel) writeReg(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0: // $4008
		t.linearReg = val
		t.length.halt = val&0x80 != 0
	case 2: // $400A
		t.timer.period = t.timer.period&0x0700 | uint16(val)
	case 3: // $400B
		t.timer.period = t.timer.period&0x00FF | uint16(val&0x07)<<8
		t.length.load(val)
		t.linearReload = true
	}
}

// clock advances the sequencer, once per CPU cycle. Ultrasonic periods
// (timer < 2) freeze the sequencer instead of producing a pop.
func (t *triangleChannel) clock() {
	if t.timer.clock() && t.length.counter > 0 && t.linearCount > 0 && t.timer.period >= 2 {
		t.seqPos = (t.seqPos + 1) & 0x1F
	}
}

// clockLinear runs on quarter frames.
func (t *triangleChannel) clockLinear() {
	if t.linearReload {
		t.linearCount = t.linearReg & 0x7F
	} else if t.linearCount > 0 {
		t.linearCount--
	}
	if t.linearReg&0x80 == 0 {
		t.linearReload = false
	}
}

func (t *triangleChannel) output() uint8 {
	return triangleSeq[t.seqPos]
}

func (t *triangleChannel) saveState(state *snapshot.Triangle) {
	t.timer.saveState(&state.Timer)
	t.length.saveState(&state.Length)
	state.LinearReg = t.linearReg
	state.LinearCount = t.linearCount
	state.LinearReload = t.linearReload
	state.SeqPos = t.seqPos
}

func (t *triangleChannel) setState(state *snapshot.Triangle) {
	t.timer.setState(&state.Timer)
	t.length.setState(&state.Length)
	t.linearReg = state.LinearReg
	t.linearCount = state.LinearCount
	t.linearReload = state.LinearReload
	t.seqPos = state.SeqPos
}
