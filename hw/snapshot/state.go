// Package snapshot declares the plain data structures making up a console
// save state. The emu package serializes them; the hardware packages fill
// and apply them.
package snapshot

// Version identifies the snapshot layout. It must be bumped on any
// structural change so that stale blobs are rejected instead of
// misinterpreted.
const Version = 1

type Console struct {
	Version int
	Frame   uint64
	CPU     CPU
	RAM     []byte // 2KB work RAM
	PPU     PPU
	APU     APU
	Mapper  Mapper
	Pads    [2]Controller
}

type CPU struct {
	PC      uint16
	SP      uint8
	A, X, Y uint8
	P       uint8
	Cycles  uint64
	Halted  bool
}

type Controller struct {
	Buttons uint8 // live button byte
	Shift   uint8 // latched shift register
	Strobe  bool
}

type Sprite struct {
	PatternLo uint8
	PatternHi uint8
	Attr      uint8
	X         uint8
	Index     uint8
}

type PPU struct {
	Ctrl       uint8
	Mask       uint8
	Status     uint8
	OAMAddr    uint8
	VRAMAddr   uint16
	TempAddr   uint16
	FineX      uint8
	WriteLatch bool
	ReadBuf    uint8
	OpenBus    uint8

	Scanline   int16
	Dot        uint16
	OddFrame   bool
	NMIPending bool
	FrameDone  bool

	Nametables   []byte // 4KB
	Palette      []byte // 32 bytes
	OAM          []byte // 256 bytes
	SecondaryOAM []byte // 32 bytes

	// Background pipeline.
	NTLatch   uint8
	ATLatch   uint8
	BGLoLatch uint8
	BGHiLatch uint8
	ShiftBGLo uint16
	ShiftBGHi uint16
	ShiftATLo uint16
	ShiftATHi uint16

	// Sprite pipeline.
	Sprites     [8]Sprite
	SpriteCount uint8
	Sprite0Line bool
	Sprite0Next bool
}

type Envelope struct {
	Start   bool
	Divider uint8
	Decay   uint8
	Reg     uint8
}

type LengthCounter struct {
	Counter uint8
	Halt    bool
	Enabled bool
}

type Timer struct {
	Period  uint16
	Counter uint16
}

type Pulse struct {
	Envelope Envelope
	Timer    Timer
	Length   LengthCounter

	Duty        uint8
	DutyPos     uint8
	SweepReg    uint8
	SweepDiv    uint8
	SweepReload bool
}

type Triangle struct {
	Timer  Timer
	Length LengthCounter

	LinearReg    uint8
	LinearCount  uint8
	LinearReload bool
	SeqPos       uint8
}

type Noise struct {
	Envelope Envelope
	Timer    Timer
	Length   LengthCounter

	Mode  bool
	Shift uint16
}

type DMC struct {
	Timer Timer

	IRQEnabled bool
	Loop       bool
	SampleAddr uint16
	SampleLen  uint16
	CurAddr    uint16
	Remaining  uint16
	OutLevel   uint8
	ReadBuf    uint8
	BufEmpty   bool
	ShiftReg   uint8
	BitsLeft   uint8
	Silence    bool
	Enabled    bool
}

type APU struct {
	Pulse1   Pulse
	Pulse2   Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	Cycle        uint64
	SeqMode      uint8 // 0: 4-step, 1: 5-step
	SeqCounter   uint16
	InhibitIRQ   bool
	FrameIRQ     bool
	DMCIRQ       bool
	WriteDelay   int8
	PendingValue int16
}

// Mapper is the common container for mapper state. Each variant packs its
// bank registers into Regs in a fixed, variant-specific order.
type Mapper struct {
	ID     uint16
	Regs   []uint8
	PRGRAM []byte
	CHRRAM []byte

	Mirroring uint8

	// Scanline IRQ state, used by IRQ-capable variants.
	IRQCounter uint8
	IRQLatch   uint8
	IRQEnabled bool
	IRQReload  bool
	IRQPending bool
}
