package oled

import (
	"github.com/glowpanel/oled/conn"
)

// Control bytes of the SSD1327 serial protocol. Every bus write starts with
// one of these: ControlCommand announces a command opcode with its argument
// bytes, ControlData announces a stream of packed pixel bytes for the
// active addressing window.
const (
	ControlCommand = 0x80
	ControlData    = 0x40
)

// Conn is the connection interface for communicating with hardware.
//
// Both methods are synchronous and issue exactly one bus write; errors
// reported by the bus are returned verbatim and never retried.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends a command opcode with optional argument bytes.
	Command(opcode byte, args ...byte) error

	// Data sends data bytes.
	Data(data ...byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the 7-bit I²C address.
	Addr uint8
}

// DefaultI2CConfig matches an SSD1327 module in its default configuration.
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3C,
}

type i2cConn struct {
	*conn.I2C
}

// OpenI2C opens a connection to a display on an I²C bus.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{I2C: c}, nil
}

func (c *i2cConn) Command(opcode byte, args ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{ControlCommand, opcode}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{ControlData}, data...))
	return
}
