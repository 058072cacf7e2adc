package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestGray4Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewGray4Image(size.X, size.Y)
	}, Gray4Model)
}

func TestGray4ImagePacking(t *testing.T) {
	p := NewGray4Image(8, 2)
	if len(p.Pix) != 8 {
		t.Fatalf("expected 8 packed bytes for 8x2, got %d", len(p.Pix))
	}

	// Canonical packing vector: even x lands in the high nibble.
	p.SetGray4(0, 0, Gray4{Y: 0xF})
	p.SetGray4(1, 0, Gray4{Y: 0x3})
	if p.Pix[0] != 0xF3 {
		t.Errorf("expected byte 0 to be 0xF3, got %#02x", p.Pix[0])
	}

	// Writing one pixel leaves the neighbor's nibble untouched.
	p.SetGray4(0, 0, Gray4{Y: 0xA})
	if p.Pix[0] != 0xA3 {
		t.Errorf("expected byte 0 to be 0xA3, got %#02x", p.Pix[0])
	}
	p.SetGray4(1, 0, Gray4{Y: 0x0})
	if p.Pix[0] != 0xA0 {
		t.Errorf("expected byte 0 to be 0xA0, got %#02x", p.Pix[0])
	}

	// Rows advance by stride.
	p.SetGray4(6, 1, Gray4{Y: 0x5})
	if index := p.PixOffset(6, 1); index != 7 {
		t.Errorf("expected pixel (6,1) in byte 7, got %d", index)
	} else if p.Pix[index] != 0x50 {
		t.Errorf("expected byte 7 to be 0x50, got %#02x", p.Pix[index])
	}
}

func TestGray4ImageOddWidth(t *testing.T) {
	p := NewGray4Image(3, 3)
	if p.Stride != 2 {
		t.Fatalf("expected stride 2 for width 3, got %d", p.Stride)
	}
	if len(p.Pix) != 6 {
		t.Fatalf("expected 6 packed bytes for 3x3, got %d", len(p.Pix))
	}
	p.SetGray4(2, 2, Gray4{Y: 0xF})
	if p.Pix[5] != 0xF0 {
		t.Errorf("expected byte 5 to be 0xF0, got %#02x", p.Pix[5])
	}
}

func TestGray4ImageFill(t *testing.T) {
	p := NewGray4Image(6, 4)
	p.Fill(Gray4{Y: 0x9})
	for i, b := range p.Pix {
		if b != 0x99 {
			t.Fatalf("expected byte %d to be 0x99, got %#02x", i, b)
		}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if v := p.Gray4At(x, y); v.Y != 0x9 {
				t.Fatalf("expected pixel (%d,%d) to be 0x9, got %#x", x, y, v.Y)
			}
		}
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(2, 1),
		image.Pt(2, 2),
		image.Pt(64, 48),
		image.Pt(128, 128),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
