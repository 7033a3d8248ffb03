package hw

import (
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
)

// Frame sequencer lengths, in CPU cycles.
const (
	seqQuarter1 = 7457
	seqQuarter2 = 14913
	seqQuarter3 = 22371
	seqStep4End = 29829
	seqStep5End = 37281
)

// APU is the 2A03 audio unit: two pulse channels, triangle, noise and the
// delta modulation channel, sequenced by a frame counter. Clock must be
// called once per CPU cycle.
type APU struct {
	pulse1   pulseChannel
	pulse2   pulseChannel
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	cycle      uint64
	seqMode    uint8 // 0: 4-step, 1: 5-step
	seqCounter uint16
	inhibitIRQ bool
	frameIRQ   bool

	// A $4017 write takes effect 3 or 4 cycles later depending on
	// alignment.
	writeDelay   int8
	pendingValue int16

	mem   Memory
	stall func(int)
	audio *Audio
}

func NewAPU() *APU {
	a := &APU{}
	a.Reset()
	return a
}

// AttachBus wires the DMC sample fetches to the CPU address space and the
// stall penalty back to the bus.
func (a *APU) AttachBus(bus *Bus) {
	a.mem = bus
	a.stall = bus.AddStall
}

// AttachAudio connects a sample sink. A nil sink disables synthesis while
// keeping the register-visible state exact.
func (a *APU) AttachAudio(audio *Audio) {
	a.audio = audio
}

func (a *APU) Reset() {
	a.pulse1 = pulseChannel{}
	a.pulse2 = pulseChannel{channel2: true}
	a.triangle = triangleChannel{}
	a.noise = noiseChannel{}
	a.noise.reset()
	a.dmc.reset()

	a.cycle = 0
	a.seqMode = 0
	a.seqCounter = 0
	a.inhibitIRQ = false
	a.frameIRQ = false
	a.writeDelay = 0
	a.pendingValue = -1
}

// WriteReg handles CPU writes to $4000-$4013, $4015 and $4017.
func (a *APU) WriteReg(addr uint16, val uint8) {
	switch {
	case addr <= 0x4003:
		a.pulse1.writeReg(addr, val)
	case addr <= 0x4007:
		a.pulse2.writeReg(addr, val)
	case addr <= 0x400B:
		a.triangle.writeReg(addr, val)
	case addr <= 0x400F:
		a.noise.writeReg(addr, val)
	case addr <= 0x4013:
		a.dmc.writeReg(addr, val)
	case addr == 0x4015:
		a.pulse1.length.setEnabled(val&0x01 != 0)
		a.pulse2.length.setEnabled(val&0x02 != 0)
		a.triangle.length.setEnabled(val&0x04 != 0)
		a.noise.length.setEnabled(val&0x08 != 0)
		a.dmc.setEnabled(val&0x10 != 0)
		a.dmc.irq = false
	case addr == 0x4017:
		a.pendingValue = int16(val)
		a.writeDelay = 3
		if a.cycle&0x01 != 0 {
			a.writeDelay = 4
		}
	}
}

// applyFrameCounter commits a delayed $4017 write.
func (a *APU) applyFrameCounter(val uint8) {
	a.seqMode = val >> 7
	a.inhibitIRQ = val&0x40 != 0
	if a.inhibitIRQ {
		a.frameIRQ = false
	}
	a.seqCounter = 0
	if a.seqMode == 1 {
		// 5-step mode clocks the units immediately.
		a.clockQuarter()
		a.clockHalf()
	}
}

// ReadStatus implements the $4015 read: channel activity bits plus the two
// IRQ flags. Reading acknowledges the frame IRQ.
func (a *APU) ReadStatus() uint8 {
	var status uint8
	if a.pulse1.length.counter > 0 {
		status |= 0x01
	}
	if a.pulse2.length.counter > 0 {
		status |= 0x02
	}
	if a.triangle.length.counter > 0 {
		status |= 0x04
	}
	if a.noise.length.counter > 0 {
		status |= 0x08
	}
	if a.dmc.remaining > 0 {
		status |= 0x10
	}
	if a.frameIRQ {
		status |= 0x40
	}
	if a.dmc.irq {
		status |= 0x80
	}
	a.frameIRQ = false
	return status
}

// PendingIRQ reports the asserted IRQ sources.
func (a *APU) PendingIRQ() hwdefs.IRQSource {
	var src hwdefs.IRQSource
	if a.frameIRQ {
		src |= hwdefs.FrameCounter
	}
	if a.dmc.irq {
		src |= hwdefs.DMC
	}
	return src
}

// Clock advances the APU by one CPU cycle.
func (a *APU) Clock() {
	a.cycle++

	if a.pendingValue >= 0 {
		a.writeDelay--
		if a.writeDelay <= 0 {
			a.applyFrameCounter(uint8(a.pendingValue))
			a.pendingValue = -1
		}
	}

	a.clockFrameCounter()

	a.triangle.clock()
	if a.cycle&0x01 == 0 {
		a.pulse1.clock()
		a.pulse2.clock()
		a.noise.clock()
	}
	if stall := a.dmc.clock(a.mem); stall > 0 && a.stall != nil {
		a.stall(stall)
	}

	if a.audio != nil {
		a.audio.push(a.output())
	}
}

func (a *APU) clockFrameCounter() {
	a.seqCounter++
	switch a.seqCounter {
	case seqQuarter1, seqQuarter3:
		a.clockQuarter()
	case seqQuarter2:
		a.clockQuarter()
		a.clockHalf()
	case seqStep4End:
		if a.seqMode == 0 {
			a.clockQuarter()
			a.clockHalf()
			if !a.inhibitIRQ {
				a.frameIRQ = true
			}
			a.seqCounter = 0
		}
	case seqStep5End:
		a.clockQuarter()
		a.clockHalf()
		a.seqCounter = 0
	}
}

// clockQuarter runs the envelope and linear counter units.
func (a *APU) clockQuarter() {
	a.pulse1.envelope.clock()
	a.pulse2.envelope.clock()
	a.noise.envelope.clock()
	a.triangle.clockLinear()
}

// clockHalf runs the length counters and sweep units.
func (a *APU) clockHalf() {
	a.pulse1.length.clock()
	a.pulse2.length.clock()
	a.triangle.length.clock()
	a.noise.length.clock()
	a.pulse1.clockSweep()
	a.pulse2.clockSweep()
}

// output mixes the five channels through the non-linear DAC curves.
func (a *APU) output() int16 {
	pulse := pulseMix[a.pulse1.output()+a.pulse2.output()]
	tnd := tndMix[3*uint16(a.triangle.output())+2*uint16(a.noise.output())+uint16(a.dmc.output())]
	return int16(pulse + tnd)
}

func (a *APU) SaveState(state *snapshot.APU) {
	a.pulse1.saveState(&state.Pulse1)
	a.pulse2.saveState(&state.Pulse2)
	a.triangle.saveState(&state.Triangle)
	a.noise.saveState(&state.Noise)
	a.dmc.saveState(&state.DMC)

	state.Cycle = a.cycle
	state.SeqMode = a.seqMode
	state.SeqCounter = a.seqCounter
	state.InhibitIRQ = a.inhibitIRQ
	state.FrameIRQ = a.frameIRQ
	state.DMCIRQ = a.dmc.irq
	state.WriteDelay = a.writeDelay
	state.PendingValue = a.pendingValue
}

func (a *APU) SetState(state *snapshot.APU) {
	a.pulse1.setState(&state.Pulse1)
	a.pulse2.setState(&state.Pulse2)
	a.pulse2.channel2 = true
	a.triangle.setState(&state.Triangle)
	a.noise.setState(&state.Noise)
	a.dmc.setState(&state.DMC)

	a.cycle = state.Cycle
	a.seqMode = state.SeqMode
	a.seqCounter = state.SeqCounter
	a.inhibitIRQ = state.InhibitIRQ
	a.frameIRQ = state.FrameIRQ
	a.dmc.irq = state.DMCIRQ
	a.writeDelay = state.WriteDelay
	a.pendingValue = state.PendingValue
}
