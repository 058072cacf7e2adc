package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is a mutable image with pixels packed in a display's native
// in-memory layout.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the packed pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the packed image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// Gray4Image is a 4-bits per pixel gray scale image.
//
// Two horizontally adjacent pixels share one byte: the even x pixel
// occupies the high nibble, the odd x pixel the low nibble. This is the
// byte layout the SSD1327 expects in GDDRAM, so the buffer can be
// streamed out without repacking. The buffer is allocated once and never
// reallocated.
type Gray4Image struct {
	Buffer
}

func NewGray4Image(w, h int) *Gray4Image {
	stride := (w + 1) / 2
	return &Gray4Image{
		Buffer: makeBuffer(w, h, stride, h*stride),
	}
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

// PixOffset returns the index into Pix of the byte holding pixel (x, y).
func (p *Gray4Image) PixOffset(x, y int) int {
	return y*p.Stride + x>>1
}

// At returns the color of the pixel at (x, y), or [color.Transparent]
// outside the image bounds.
func (p *Gray4Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Gray4At(x, y)
}

// Gray4At returns the gray level of the pixel at (x, y).
func (p *Gray4Image) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Gray4{}
	}

	index := p.PixOffset(x, y)
	if x&1 == 0 {
		return Gray4{Y: p.Pix[index] >> 4}
	}
	return Gray4{Y: p.Pix[index] & 0xf}
}

// Set sets the pixel at (x, y) to the Gray4 equivalent of c. Pixels
// outside the image bounds are silently discarded, as required by the
// [draw.Image] contract.
func (p *Gray4Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.SetGray4(x, y, gray4Model(c).(Gray4))
}

// SetGray4 sets the pixel at (x, y) without color model conversion,
// leaving the adjacent pixel's nibble untouched.
func (p *Gray4Image) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	index := p.PixOffset(x, y)
	level := c.Y & 0xf
	if x&1 == 0 {
		p.Pix[index] = (p.Pix[index] & 0x0f) | level<<4
	} else {
		p.Pix[index] = (p.Pix[index] & 0xf0) | level
	}
}

// Fill sets every pixel to the Gray4 equivalent of c in a single pass
// over the packed bytes.
func (p *Gray4Image) Fill(c color.Color) {
	value := gray4Model(c).(Gray4).Y & 0xf
	value |= value << 4
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks.
var (
	_ Image = (*Gray4Image)(nil)
)
