package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestGray4(t *testing.T) {
	for y := 0; y < 16; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray4{Y: uint8(y)}
			r, g, b, _ := c.RGBA()
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestGray4Model(t *testing.T) {
	testCases := []struct {
		color color.Color
		want  uint8
	}{
		{color.Black, 0x0},
		{color.White, 0xF},
		{color.Gray{Y: 0x80}, 0x8},
		{color.Gray16{Y: 0xFFFF}, 0xF},
		{color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, 0xF},
		{color.RGBA{A: 0xFF}, 0x0},
		{Gray4{Y: 0x7}, 0x7},
		{On, 0xF},
		{Off, 0x0},
	}
	for _, test := range testCases {
		if v := Gray4Model.Convert(test.color).(Gray4).Y; v != test.want {
			t.Errorf("expected %v to map to gray level %#x, got %#x", test.color, test.want, v)
		}
	}
}

func TestGray4ModelRoundTrip(t *testing.T) {
	// Converting a Gray4 through RGBA and back must be the identity.
	for y := 0; y < 16; y++ {
		c := Gray4{Y: uint8(y)}
		r, g, b, _ := c.RGBA()
		if v := Gray4Model.Convert(color.RGBA64{
			R: uint16(r), G: uint16(g), B: uint16(b), A: 0xFFFF,
		}).(Gray4); v != c {
			t.Errorf("gray level %#x round-tripped to %#x", c.Y, v.Y)
		}
	}
}
