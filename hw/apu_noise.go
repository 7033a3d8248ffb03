package hw

import "famicore/hw/snapshot"

// noisePeriods maps the 4-bit period index to CPU cycles (NTSC), halved to
// APU cycles by the caller clocking at half rate.
var noisePeriods = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// noiseChannel feeds a 15-bit LFSR through the envelope. Mode 1 shortens
// the sequence to a 93-step metallic tone.
type noiseChannel struct {
	envelope envelope
	timer    chanTimer
	length   lengthCounter

	mode  bool
	shift uint16
}

func (n *noiseChannel) reset() {
	n.shift = 1
}

func (n *noiseChannel) writeReg(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0: // $400C
		n.length.halt = val&0x20 != 0
		n.envelope.write(val)
	case 2: // $400E
		n.mode = val&0x80 != 0
		n.timer.period = noisePeriods[val&0x0F]/2 - 1
	case 3: // $400F
		n.length.load(val)
		n.envelope.start = true
	}
}

// clock advances the LFSR, once per APU cycle.
func (n *noiseChannel) clock() {
	if !n.timer.clock() {
		return
	}
	tap := uint16(1)
	if n.mode {
		tap = 6
	}
	fb := n.shift&0x01 ^ n.shift>>tap&0x01
	n.shift = n.shift>>1 | fb<<14
}

func (n *noiseChannel) output() uint8 {
	if n.shift&0x01 != 0 || n.length.counter == 0 {
		return 0
	}
	return n.envelope.volume()
}

func (n *noiseChannel) saveState(state *snapshot.Noise) {
	n.envelope.saveState(&state.Envelope)
	n.timer.saveState(&state.Timer)
	n.length.saveState(&state.Length)
	state.Mode = n.mode
	state.Shift = n.shift
}

func (n *noiseChannel) setState(state *snapshot.Noise) {
	n.envelope.setState(&state.Envelope)
	n.timer.setState(&state.Timer)
	n.length.setState(&state.Length)
	n.mode = state.Mode
	n.shift = state.Shift
}
