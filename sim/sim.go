// Package sim implements an in-memory model of an SSD1327 grayscale OLED
// controller.
//
// The model plugs in wherever the real bus connection goes: it records the
// exact frames the serial protocol would carry and interprets them the way
// the controller does, maintaining the addressing window state machine and
// a GDDRAM image. This allows driver code, and code drawing through the
// driver, to run unmodified without hardware.
package sim

import (
	"errors"
	"fmt"

	"github.com/glowpanel/oled"
)

// ErrClosed is returned for writes after the connection was closed.
var ErrClosed = errors.New("sim: connection closed")

// Conn is a simulated SSD1327 behind an [oled.Conn] bus connection.
//
// The zero value is not usable; use [New]. Conn is not safe for concurrent
// use, matching the single-owner contract of the driver itself.
type Conn struct {
	width  int
	height int

	// gddram, one byte per two horizontally adjacent pixels.
	ram    []byte
	stride int

	// addressing window and write pointer, in byte columns and rows
	colStart, colEnd int
	rowStart, rowEnd int
	col, row         int

	powered  bool
	inverse  bool
	locked   bool
	contrast uint8
	remap    byte

	frames  [][]byte
	writes  int
	failAt  int
	failErr error
	closed  bool
}

// New creates a simulated controller with the given panel size. The
// addressing window starts out covering the full panel, matching the
// controller's reset state.
func New(width, height int) *Conn {
	if width < 2 || width%2 != 0 || height < 1 {
		panic(fmt.Sprintf("sim: invalid panel size %dx%d", width, height))
	}
	c := &Conn{
		width:  width,
		height: height,
		stride: width / 2,
		ram:    make([]byte, height*width/2),
	}
	c.resetWindow()
	return c
}

func (c *Conn) resetWindow() {
	c.colStart, c.colEnd = 0, c.stride-1
	c.rowStart, c.rowEnd = 0, c.height-1
	c.col, c.row = 0, 0
}

func (c *Conn) String() string {
	return fmt.Sprintf("simulated SSD1327 %dx%d", c.width, c.height)
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

// FailAfter arms a bus failure: the nth write from now (1-based, commands
// and data alike) returns err and has no effect on the controller state.
func (c *Conn) FailAfter(n int, err error) {
	c.failAt = c.writes + n
	c.failErr = err
}

// write accounts for one bus write, returning the armed failure when due.
func (c *Conn) write(frame []byte) error {
	if c.closed {
		return ErrClosed
	}
	c.writes++
	if c.failErr != nil && c.writes == c.failAt {
		err := c.failErr
		c.failErr = nil
		return err
	}
	c.frames = append(c.frames, frame)
	return nil
}

// Command interprets one command frame.
func (c *Conn) Command(opcode byte, args ...byte) error {
	frame := append([]byte{oled.ControlCommand, opcode}, args...)
	if err := c.write(frame); err != nil {
		return err
	}

	if c.locked && opcode != 0xFD {
		return nil
	}

	switch opcode {
	case 0x15: // column address
		if len(args) == 2 {
			c.colStart, c.colEnd = int(args[0]), int(args[1])
			c.col, c.row = c.colStart, c.rowStart
		}
	case 0x75: // row address
		if len(args) == 2 {
			c.rowStart, c.rowEnd = int(args[0]), int(args[1])
			c.col, c.row = c.colStart, c.rowStart
		}
	case 0x81:
		if len(args) == 1 {
			c.contrast = args[0]
		}
	case 0xA0:
		if len(args) == 1 {
			c.remap = args[0]
		}
	case 0xA4:
		c.inverse = false
	case 0xA7:
		c.inverse = true
	case 0xAE:
		c.powered = false
	case 0xAF:
		c.powered = true
	case 0xFD:
		// MCU protection; the argument byte follows its own control byte.
		if len(args) == 2 && args[0] == oled.ControlCommand {
			c.locked = args[1] == 0x16
		}
	}
	return nil
}

// Data interprets one data frame, writing the payload into GDDRAM at the
// write pointer with horizontal auto-increment inside the addressing
// window.
func (c *Conn) Data(data ...byte) error {
	frame := append([]byte{oled.ControlData}, data...)
	if err := c.write(frame); err != nil {
		return err
	}

	for _, b := range data {
		if c.col <= c.colEnd && c.col < c.stride && c.row <= c.rowEnd && c.row < c.height {
			c.ram[c.row*c.stride+c.col] = b
		}
		if c.col++; c.col > c.colEnd {
			c.col = c.colStart
			if c.row++; c.row > c.rowEnd {
				c.row = c.rowStart
			}
		}
	}
	return nil
}

// Writes returns the number of bus writes seen, including failed ones.
func (c *Conn) Writes() int {
	return c.writes
}

// Frames returns the recorded wire frames, control byte included.
func (c *Conn) Frames() [][]byte {
	return c.frames
}

// ClearFrames discards the recorded frames without touching the
// controller state.
func (c *Conn) ClearFrames() {
	c.frames = nil
}

// Powered reports whether the display is turned on.
func (c *Conn) Powered() bool {
	return c.powered
}

// Inverse reports whether inverse display mode is active.
func (c *Conn) Inverse() bool {
	return c.inverse
}

// Contrast returns the last programmed contrast level.
func (c *Conn) Contrast() uint8 {
	return c.contrast
}

// Gray4At returns the 4-bit gray level stored in GDDRAM for pixel (x, y).
// Even x is the high nibble of its byte.
func (c *Conn) Gray4At(x, y int) uint8 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	b := c.ram[y*c.stride+x/2]
	if x&1 == 0 {
		return b >> 4
	}
	return b & 0xf
}

// RAM returns a copy of the GDDRAM contents.
func (c *Conn) RAM() []byte {
	ram := make([]byte, len(c.ram))
	copy(ram, c.ram)
	return ram
}

// Interface checks
var (
	_ oled.Conn = (*Conn)(nil)
)
