package hw

import "famicore/hw/snapshot"

// Button is a bitmask of standard controller buttons.
type Button uint8

const (
	BtnA Button = 0x80 >> iota
	BtnB
	BtnSelect
	BtnStart
	BtnUp
	BtnDown
	BtnLeft
	BtnRight
)

// Controller is a standard NES pad. Host input lands in buttons; a strobe
// write latches it into the shift register, which reads out A first.
type Controller struct {
	buttons Button
	shift   uint8
	strobe  bool
}

// Set replaces the current button state. It takes effect at the next
// strobe.
func (c *Controller) Set(buttons Button) {
	c.buttons = buttons
}

// Strobe drives the controller latch line. While high, the shift register
// continuously reloads from the buttons.
func (c *Controller) Strobe(high bool) {
	c.strobe = high
	if high {
		c.shift = uint8(c.buttons)
	}
}

// Read shifts out one bit, A first. After 8 reads a real pad returns 1.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.shift = uint8(c.buttons)
	}
	bit := c.shift >> 7
	c.shift = c.shift<<1 | 0x01
	return bit
}

func (c *Controller) Reset() {
	c.buttons = 0
	c.shift = 0
	c.strobe = false
}

func (c *Controller) SaveState(state *snapshot.Controller) {
	state.Buttons = uint8(c.buttons)
	state.Shift = c.shift
	state.Strobe = c.strobe
}

func (c *Controller) SetState(state *snapshot.Controller) {
	c.buttons = Button(state.Buttons)
	c.shift = state.Shift
	c.strobe = state.Strobe
}
