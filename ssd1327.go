package oled

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"

	"github.com/glowpanel/oled/pixel"
)

const (
	ssd1327DefaultWidth  = 128
	ssd1327DefaultHeight = 128
	ssd1327MaxWidth      = 128
	ssd1327MaxHeight     = 128

	// The multiplex ratio goes no lower than 16MUX.
	ssd1327MinHeight = 16
)

// resetPulse is how long the reset pin is held on either level during the
// hardware reset sequence.
const resetPulse = 200 * time.Millisecond

// Device is a driver for Solomon Systech SSD1327 grayscale OLED displays.
//
// The embedded image is the in-memory frame buffer: 4 bits per pixel, two
// pixels packed per byte. Drawing through the [draw.Image] methods mutates
// the buffer only; nothing reaches the panel until [Device.Refresh] or
// [Device.RefreshRect] is called.
type Device struct {
	draw.Image
	c        Conn
	buf      *pixel.Gray4Image
	width    int
	height   int
	rotation Rotation
	reset    gpio.PinOut
	clock    clockwork.Clock
	halted   bool
}

// SSD1327 opens a driver for an SSD1327 OLED display over conn.
//
// A nil or zero config selects the native 128×128 panel. Initialization
// sends the full configuration sequence and stops at the first failing
// write; the controller state after a partial initialization is undefined
// and the returned error must be treated as fatal for this device.
func SSD1327(c Conn, config *Config) (*Device, error) {
	d := &Device{
		c:     c,
		clock: clockwork.NewRealClock(),
	}

	if config == nil {
		config = &Config{}
	}
	if config.Width == 0 {
		config.Width = ssd1327DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1327DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("SSD1327 OLED %dx%d", d.width, d.height)
}

func (d *Device) init(config *Config) (err error) {
	if config.Width < 2 || config.Width > ssd1327MaxWidth || config.Width%2 != 0 {
		return fmt.Errorf("%w: width %d", ErrDisplaySize, config.Width)
	}
	if config.Height < ssd1327MinHeight || config.Height > ssd1327MaxHeight {
		return fmt.Errorf("%w: height %d", ErrDisplaySize, config.Height)
	}

	d.buf = pixel.NewGray4Image(config.Width, config.Height)
	d.Image = d.buf
	d.width = config.Width
	d.height = config.Height
	d.rotation = config.Rotation
	d.reset = config.Reset

	if debug {
		log.Printf("SSD1327 with %d bytes buffer", len(d.buf.Pix))
	}

	if err = d.hardwareReset(); err != nil {
		return fmt.Errorf("oled: reset failed: %w", err)
	}

	window, err := d.windowCommands(d.buf.Rect)
	if err != nil {
		return err
	}

	if err = d.commands(
		DisplayOff(),
		window[0],
		window[1],
		ContrastControl(0x80),
		Remap(0x51),
		must(DisplayStartLine(0x00)),
		must(DisplayOffset(0x00)),
		DisplayModeNormal(),
		must(MuxRatio(byte(config.Height - 1))),
		PhaseLength(0x11),
		LinearLUT(),
		FrontClockDivider(0x01),
		FunctionSelectionA(0x01), // internal VDD
		must(SecondPrechargePeriod(0x04)),
		VCOMH(0x0F),
		PrechargeVoltage(0x08),
		FunctionSelectionB(0x62),
		CommandUnlock(),
	); err != nil {
		return err
	}

	// Push the blank buffer so the panel starts from a known GDDRAM state.
	if err = d.Refresh(); err != nil {
		return err
	}
	if err = d.Show(true); err != nil {
		return err
	}

	return
}

// hardwareReset pulses the reset pin, when one is configured.
func (d *Device) hardwareReset() error {
	if d.reset == nil {
		return nil
	}
	if err := d.reset.Out(gpio.Low); err != nil {
		return err
	}
	d.clock.Sleep(resetPulse)
	if err := d.reset.Out(gpio.High); err != nil {
		return err
	}
	d.clock.Sleep(resetPulse)
	return nil
}

func (d *Device) commands(cmds ...Command) error {
	for _, cmd := range cmds {
		if err := d.c.Command(cmd.opcode, cmd.Args()...); err != nil {
			return fmt.Errorf("oled: %s failed: %w", cmd, err)
		}
	}
	return nil
}

// Command sends a single raw controller command.
func (d *Device) Command(cmd Command) error {
	if d.halted {
		return ErrHalted
	}
	return d.c.Command(cmd.opcode, cmd.Args()...)
}

// Close turns the display off and closes the bus connection.
func (d *Device) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

// Show toggles the display on or off. The GDDRAM contents are retained
// while the display is off.
func (d *Device) Show(show bool) error {
	if d.halted {
		return ErrHalted
	}
	if show {
		return d.commands(DisplayOn())
	}
	return d.commands(DisplayOff())
}

// SetContrast adjusts the contrast level, 0-255.
func (d *Device) SetContrast(level uint8) error {
	if d.halted {
		return ErrHalted
	}
	return d.commands(ContrastControl(level))
}

// Invert toggles inverse display mode without touching the buffer.
func (d *Device) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	if invert {
		return d.commands(DisplayModeInverse())
	}
	return d.commands(DisplayModeNormal())
}

// SetRotation adjusts the pixel rotation.
func (d *Device) SetRotation(rotation Rotation) error {
	d.rotation = rotation
	return nil
}

// SetPixel sets the pixel at (x, y) to a 4-bit gray level. Coordinates
// outside the panel or levels above 0x0F are reported as errors and leave
// the buffer untouched.
func (d *Device) SetPixel(x, y int, level uint8) error {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return ErrBounds
	}
	if level > 0x0F {
		return ErrGrayLevel
	}
	d.buf.SetGray4(x, y, pixel.Gray4{Y: level})
	return nil
}

// Pixel returns the 4-bit gray level of the pixel at (x, y).
func (d *Device) Pixel(x, y int) (uint8, error) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0, ErrBounds
	}
	return d.buf.Gray4At(x, y).Y, nil
}

// Fill sets every pixel to the same 4-bit gray level.
func (d *Device) Fill(level uint8) error {
	if level > 0x0F {
		return ErrGrayLevel
	}
	d.buf.Fill(pixel.Gray4{Y: level})
	return nil
}

// Clear resets the display buffer to black.
func (d *Device) Clear() {
	d.buf.Clear()
}

// windowCommands returns the addressing window command pair covering r.
// Column addresses are in GDDRAM byte columns, holding two pixels each.
func (d *Device) windowCommands(r image.Rectangle) ([2]Command, error) {
	col, err := ColumnAddress(byte(r.Min.X/2), byte((r.Max.X-1)/2))
	if err != nil {
		return [2]Command{}, err
	}
	row, err := RowAddress(byte(r.Min.Y), byte(r.Max.Y-1))
	if err != nil {
		return [2]Command{}, err
	}
	return [2]Command{col, row}, nil
}

// SetWindow sets the controller addressing window to cover r. The next
// data writes fill the window row by row.
func (d *Device) SetWindow(r image.Rectangle) error {
	if !r.In(d.buf.Rect) {
		return ErrBounds
	}
	window, err := d.windowCommands(r)
	if err != nil {
		return err
	}
	return d.commands(window[:]...)
}

// Refresh pushes the whole frame buffer to the panel: one addressing
// window pair covering the full panel, followed by a single data write
// streaming the packed buffer in row-major order. A failed write leaves
// the in-memory buffer as it was, so Refresh can simply be retried.
func (d *Device) Refresh() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.SetWindow(d.buf.Rect); err != nil {
		return err
	}
	if debug {
		log.Printf("push %d bytes", len(d.buf.Pix))
	}
	return d.c.Data(d.buf.Pix...)
}

// RefreshRect pushes only the given region to the panel. The region is
// clipped against the panel bounds and widened to even column boundaries
// to match the two pixels per byte layout; an empty region is a no-op.
func (d *Device) RefreshRect(r image.Rectangle) error {
	if d.halted {
		return ErrHalted
	}

	r = r.Intersect(d.buf.Rect)
	if r.Empty() {
		return nil
	}
	r.Min.X &^= 1
	if r.Max.X&1 != 0 {
		r.Max.X++
	}

	if err := d.SetWindow(r); err != nil {
		return err
	}
	var (
		left  = r.Min.X / 2
		width = r.Dx() / 2
	)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*d.buf.Stride + left
		if err := d.c.Data(d.buf.Pix[off : off+width]...); err != nil {
			return err
		}
	}
	return nil
}

// Interface checks
var (
	_ Display    = (*Device)(nil)
	_ draw.Image = (*Device)(nil)
)
