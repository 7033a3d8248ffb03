package hw

import "github.com/arl/blip"

// ntscClockRate is the NTSC CPU frequency in Hz.
const ntscClockRate = 1789773

// Non-linear DAC lookup tables. pulseMix is indexed by the summed pulse
// outputs (0..30), tndMix by 3*triangle + 2*noise + dmc (0..202).
var (
	pulseMix [31]int32
	tndMix   [203]int32
)

func init() {
	// Leave headroom below the int16 range, the two curves sum slightly
	// above 1.0 at full swing.
	const scale = 30000.0

	for i := 1; i < len(pulseMix); i++ {
		pulseMix[i] = int32(scale * 95.52 / (8128.0/float64(i) + 100.0))
	}
	for i := 1; i < len(tndMix); i++ {
		tndMix[i] = int32(scale * 163.67 / (24329.0/float64(i) + 100.0))
	}
}

// Audio accumulates the per-cycle APU output into band-limited samples.
// The APU pushes one level per CPU cycle; the console closes the frame and
// drains the resampled audio.
type Audio struct {
	buf        *blip.Buffer
	sampleRate int

	clock uint64 // CPU cycles into the current frame
	last  int32
}

func NewAudio(sampleRate int) *Audio {
	// Enough room for two NTSC frames.
	buf := blip.NewBuffer(sampleRate / 25)
	buf.SetRates(ntscClockRate, float64(sampleRate))
	return &Audio{
		buf:        buf,
		sampleRate: sampleRate,
	}
}

func (a *Audio) SampleRate() int { return a.sampleRate }

// push records the APU output level for the current CPU cycle.
func (a *Audio) push(level int16) {
	if delta := int32(level) - a.last; delta != 0 {
		a.buf.AddDelta(a.clock, delta)
		a.last = int32(level)
	}
	a.clock++
}

// EndFrame closes the elapsed clock span and returns the mono samples
// produced during it.
func (a *Audio) EndFrame() []int16 {
	a.buf.EndFrame(int(a.clock))
	a.clock = 0

	n := a.buf.SamplesAvailable()
	out := make([]int16, n)
	a.buf.ReadSamples(out, n, false)
	return out
}

// Reset drops all buffered audio.
func (a *Audio) Reset() {
	a.buf.Clear()
	a.clock = 0
	a.last = 0
}
