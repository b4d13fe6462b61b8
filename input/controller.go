// Package input models the standard NES controller ports: a pair of 8-bit
// parallel-to-serial shift registers addressed at $4016/$4017. Reading the
// button state, and mapping physical keys/gamepads to it, is a front-end
// concern; this package only knows about the resulting per-frame Mask and
// the shift-register protocol the CPU actually clocks.
package input

import (
	"sync/atomic"

	"nescore/internal/log"
)

// Button indexes one button of a standard controller, LSB to MSB in the
// order the hardware shifts them out.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight

	ButtonCount
)

var buttonNames = [ButtonCount]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string { return buttonNames[b] }

// Mask is the 8-bit button state a front-end pushes for one pad each frame,
// one bit per Button.
type Mask uint8

func (m Mask) Pressed(b Button) bool { return m&(1<<b) != 0 }

// Config describes which of the two standard controller ports are wired up.
// Button-to-key/gamepad mapping lives entirely in the front-end; the core
// only ever consumes the resulting Mask.
type Config struct {
	Pad1Connected bool `toml:"pad1_connected"`
	Pad2Connected bool `toml:"pad2_connected"`
}

// shiftReg is one port's parallel-to-serial shift register. While strobe is
// held high every read reflects the live mask's bit 0; on the falling edge
// the mask is latched and each subsequent read shifts the next button out,
// oldest (A) first, with the register filling with 1s once exhausted.
type shiftReg struct {
	mask   Mask
	shift  uint8
	strobe bool
}

func (r *shiftReg) setMask(m Mask) { r.mask = m }

func (r *shiftReg) setStrobe(on bool) {
	r.strobe = on
	if on {
		r.shift = uint8(r.mask)
	}
}

func (r *shiftReg) read() uint8 {
	if r.strobe {
		return uint8(r.mask) & 1
	}
	bit := r.shift & 1
	r.shift = r.shift>>1 | 0x80
	return bit
}

// StdControllerPair drives both standard controller ports ($4016/$4017).
// The front-end pushes button masks via SetState from its own input-polling
// goroutine; the bus clocks Strobe/Read1/Read2 from the emulation goroutine.
// State crosses that boundary through a single atomic word rather than a
// mutex.
type StdControllerPair struct {
	Pad1Connected bool
	Pad2Connected bool

	state atomic.Uint32

	port1 shiftReg
	port2 shiftReg
}

func NewStdControllerPair(cfg Config) *StdControllerPair {
	return &StdControllerPair{
		Pad1Connected: cfg.Pad1Connected,
		Pad2Connected: cfg.Pad2Connected,
	}
}

// SetState pushes the latest button masks for both pads.
func (c *StdControllerPair) SetState(pad1, pad2 Mask) {
	c.state.Store(uint32(pad1) | uint32(pad2)<<8)
	log.ModInput.DebugZ("input state update").
		Hex8("pad1", uint8(pad1)).
		Hex8("pad2", uint8(pad2)).
		End()
}

func (c *StdControllerPair) loadMasks() (Mask, Mask) {
	cur := c.state.Load()
	var m1, m2 Mask
	if c.Pad1Connected {
		m1 = Mask(cur & 0xff)
	}
	if c.Pad2Connected {
		m2 = Mask(cur >> 8)
	}
	return m1, m2
}

// Strobe writes the shared strobe line (bit 0 of a $4016 write) to both
// ports' shift registers.
func (c *StdControllerPair) Strobe(on bool) {
	m1, m2 := c.loadMasks()
	c.port1.setMask(m1)
	c.port2.setMask(m2)
	c.port1.setStrobe(on)
	c.port2.setStrobe(on)
}

// Read1 shifts the next bit out of port 1 ($4016 read).
func (c *StdControllerPair) Read1() uint8 { return c.port1.read() }

// Read2 shifts the next bit out of port 2 ($4017 read).
func (c *StdControllerPair) Read2() uint8 { return c.port2.read() }
