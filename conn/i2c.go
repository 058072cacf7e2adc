// Package conn implements raw serial bus connections on top of periph.io.
package conn

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// ErrAddress is returned for peripheral addresses outside the 7-bit range.
var ErrAddress = errors.New("conn: invalid 7-bit I²C address")

// I2C is a connection to a peripheral on an I²C bus.
type I2C struct {
	bus  i2c.BusCloser
	conn conn.Conn
}

// NewI2C wraps an already opened bus.
func NewI2C(bus i2c.BusCloser, addr uint8) (*I2C, error) {
	if addr > 0x7F {
		return nil, ErrAddress
	}
	return &I2C{
		bus:  bus,
		conn: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
	}, nil
}

// OpenI2C opens the numbered I²C bus and addresses the peripheral at addr.
// A negative device number selects the first available bus.
func OpenI2C(device int, addr uint8) (*I2C, error) {
	var (
		bus i2c.BusCloser
		err error
	)
	if device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(device), 10))
	}
	if err != nil {
		return nil, err
	}

	c, err := NewI2C(bus, addr)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return c, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s", c.bus)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}

func (c *I2C) Write(p []byte) (int, error) {
	return len(p), c.conn.Tx(p, nil)
}
