package oled

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/glowpanel/oled/conn"
)

func TestI2CConnFraming(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3C, W: []byte{ControlCommand, 0x81, 0x7F}},
			{Addr: 0x3C, W: []byte{ControlCommand, 0xAF}},
			{Addr: 0x3C, W: []byte{ControlData, 0xF3, 0x00, 0xAA}},
		},
		DontPanic: true,
	}

	i2c, err := conn.NewI2C(bus, 0x3C)
	if err != nil {
		t.Fatal(err)
	}
	c := &i2cConn{I2C: i2c}

	if err := c.Command(0x81, 0x7F); err != nil {
		t.Fatalf("contrast command: %v", err)
	}
	if err := c.Command(0xAF); err != nil {
		t.Fatalf("display on command: %v", err)
	}
	if err := c.Data(0xF3, 0x00, 0xAA); err != nil {
		t.Fatalf("data write: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestI2CConnMismatch(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3C, W: []byte{ControlCommand, 0x81, 0x7F}},
		},
		DontPanic: true,
	}

	i2c, err := conn.NewI2C(bus, 0x3C)
	if err != nil {
		t.Fatal(err)
	}
	c := &i2cConn{I2C: i2c}

	if err := c.Command(0xAE); err == nil {
		t.Fatal("expected a bus error for an unexpected write")
	}
}

func TestI2CAddressValidation(t *testing.T) {
	_, err := conn.NewI2C(&i2ctest.Playback{DontPanic: true}, 0x80)
	if !errors.Is(err, conn.ErrAddress) {
		t.Fatalf("expected ErrAddress, got %v", err)
	}
}
