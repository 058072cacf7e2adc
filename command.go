package oled

import "fmt"

// SSD1327 command opcodes.
const (
	ssd1327SetColumnAddress    = 0x15
	ssd1327SetRowAddress       = 0x75
	ssd1327SetContrast         = 0x81
	ssd1327SetRemap            = 0xA0
	ssd1327SetDisplayStartLine = 0xA1
	ssd1327SetDisplayOffset    = 0xA2
	ssd1327SetDisplayNormal    = 0xA4
	ssd1327SetDisplayAllOn     = 0xA5
	ssd1327SetDisplayAllOff    = 0xA6
	ssd1327SetInverseDisplay   = 0xA7
	ssd1327SetMuxRatio         = 0xA8
	ssd1327SetFunctionA        = 0xAB
	ssd1327SetDisplayOff       = 0xAE
	ssd1327SetDisplayOn        = 0xAF
	ssd1327SetPhaseLength      = 0xB1
	ssd1327SetFrontClockDiv    = 0xB3
	ssd1327SetGPIO             = 0xB5
	ssd1327SetSecondPrecharge  = 0xB6
	ssd1327SetDefaultGrayscale = 0xB9
	ssd1327SetPrechargeVoltage = 0xBC
	ssd1327SetVCOMHVoltage     = 0xBE
	ssd1327SetFunctionB        = 0xD5
	ssd1327SetCommandLock      = 0xFD
)

// Command is a single SSD1327 controller operation together with its
// argument bytes. Commands carrying bounded arguments are only obtainable
// through constructors that validate the documented range, so a Command
// value is always safe to encode.
type Command struct {
	opcode byte
	args   [2]byte
	argn   uint8
}

func cmd0(opcode byte) Command {
	return Command{opcode: opcode}
}

func cmd1(opcode, a byte) Command {
	return Command{opcode: opcode, args: [2]byte{a}, argn: 1}
}

func cmd2(opcode, a, b byte) Command {
	return Command{opcode: opcode, args: [2]byte{a, b}, argn: 2}
}

// Args returns the argument bytes carried by the command.
func (c Command) Args() []byte {
	return c.args[:c.argn]
}

// Opcode returns the command opcode byte.
func (c Command) Opcode() byte {
	return c.opcode
}

func (c Command) String() string {
	return fmt.Sprintf("command %#02x % x", c.opcode, c.Args())
}

// must unwraps a constructor result for argument values that are known to
// be in range. A panic here is a programming error in the driver, not a
// runtime condition.
func must(c Command, err error) Command {
	if err != nil {
		panic(err)
	}
	return c
}

// ColumnAddress sets the column start and end address of the addressing
// window. Addresses are in GDDRAM byte columns (two pixels each), range
// 0x00-0x7F.
func ColumnAddress(start, end byte) (Command, error) {
	if start > 0x7F || end > 0x7F || start > end {
		return Command{}, fmt.Errorf("%w: column address %#02x-%#02x", ErrArgument, start, end)
	}
	return cmd2(ssd1327SetColumnAddress, start, end), nil
}

// RowAddress sets the row start and end address of the addressing window,
// range 0x00-0x7F.
func RowAddress(start, end byte) (Command, error) {
	if start > 0x7F || end > 0x7F || start > end {
		return Command{}, fmt.Errorf("%w: row address %#02x-%#02x", ErrArgument, start, end)
	}
	return cmd2(ssd1327SetRowAddress, start, end), nil
}

// ContrastControl selects 1 out of 256 contrast steps.
func ContrastControl(level uint8) Command {
	return cmd1(ssd1327SetContrast, level)
}

// Remap configures the GDDRAM address remapping (column remap, nibble
// remap, address increment direction, COM remap and COM split).
func Remap(value byte) Command {
	return cmd1(ssd1327SetRemap, value)
}

// DisplayStartLine shifts the display vertically by 0-127 rows.
func DisplayStartLine(line byte) (Command, error) {
	if line > 0x7F {
		return Command{}, fmt.Errorf("%w: start line %#02x", ErrArgument, line)
	}
	return cmd1(ssd1327SetDisplayStartLine, line), nil
}

// DisplayOffset sets the vertical COM offset, 0-127 rows.
func DisplayOffset(offset byte) (Command, error) {
	if offset > 0x7F {
		return Command{}, fmt.Errorf("%w: display offset %#02x", ErrArgument, offset)
	}
	return cmd1(ssd1327SetDisplayOffset, offset), nil
}

// DisplayModeNormal shows the GDDRAM contents.
func DisplayModeNormal() Command {
	return cmd0(ssd1327SetDisplayNormal)
}

// DisplayModeAllOn drives every pixel at full intensity regardless of the
// GDDRAM contents.
func DisplayModeAllOn() Command {
	return cmd0(ssd1327SetDisplayAllOn)
}

// DisplayModeAllOff blanks every pixel regardless of the GDDRAM contents.
func DisplayModeAllOff() Command {
	return cmd0(ssd1327SetDisplayAllOff)
}

// DisplayModeInverse shows the GDDRAM contents with inverted gray levels.
func DisplayModeInverse() Command {
	return cmd0(ssd1327SetInverseDisplay)
}

// MuxRatio sets the multiplex ratio, 16MUX (0x0F) to 128MUX (0x7F).
func MuxRatio(ratio byte) (Command, error) {
	if ratio < 0x0F || ratio > 0x7F {
		return Command{}, fmt.Errorf("%w: mux ratio %#02x", ErrArgument, ratio)
	}
	return cmd1(ssd1327SetMuxRatio, ratio), nil
}

// FunctionSelectionA selects the VDD regulator; 0x00 is external VDD,
// 0x01 the internal regulator.
func FunctionSelectionA(value byte) Command {
	return cmd1(ssd1327SetFunctionA, value)
}

// DisplayOn turns the display on.
func DisplayOn() Command {
	return cmd0(ssd1327SetDisplayOn)
}

// DisplayOff turns the display off (sleep mode).
func DisplayOff() Command {
	return cmd0(ssd1327SetDisplayOff)
}

// PhaseLength sets the segment reset (low nibble) and first pre-charge
// (high nibble) phase lengths in DCLKs.
func PhaseLength(value byte) Command {
	return cmd1(ssd1327SetPhaseLength, value)
}

// FrontClockDivider sets the front clock divide ratio (low nibble) and
// oscillator frequency (high nibble).
func FrontClockDivider(value byte) Command {
	return cmd1(ssd1327SetFrontClockDiv, value)
}

// GPIO configures the controller GPIO pin, modes 0-3.
func GPIO(mode byte) (Command, error) {
	if mode > 0x03 {
		return Command{}, fmt.Errorf("%w: GPIO mode %#02x", ErrArgument, mode)
	}
	return cmd1(ssd1327SetGPIO, mode), nil
}

// SecondPrechargePeriod sets the second pre-charge period, 1-15 DCLKs.
func SecondPrechargePeriod(period byte) (Command, error) {
	if period < 0x01 || period > 0x0F {
		return Command{}, fmt.Errorf("%w: second pre-charge period %#02x", ErrArgument, period)
	}
	return cmd1(ssd1327SetSecondPrecharge, period), nil
}

// LinearLUT resets the gray scale table to the default linear mapping.
func LinearLUT() Command {
	return cmd0(ssd1327SetDefaultGrayscale)
}

// PrechargeVoltage sets the pre-charge voltage level.
func PrechargeVoltage(level byte) Command {
	return cmd1(ssd1327SetPrechargeVoltage, level)
}

// VCOMH sets the COM deselect voltage level.
func VCOMH(level byte) Command {
	return cmd1(ssd1327SetVCOMHVoltage, level)
}

// FunctionSelectionB configures the second pre-charge and VSL selection.
func FunctionSelectionB(value byte) Command {
	return cmd1(ssd1327SetFunctionB, value)
}

// CommandUnlock unlocks the MCU interface for commands. The MCU protection
// argument travels behind its own command control byte on the wire.
func CommandUnlock() Command {
	return cmd2(ssd1327SetCommandLock, ControlCommand, 0x12)
}

// CommandLock locks the MCU interface; only CommandUnlock is accepted
// afterwards.
func CommandLock() Command {
	return cmd2(ssd1327SetCommandLock, ControlCommand, 0x16)
}
