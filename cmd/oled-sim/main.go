// Command oled-sim runs the SSD1327 driver against a simulated controller
// and shows the decoded GDDRAM contents in a desktop window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/glowpanel/oled"
	"github.com/glowpanel/oled/draw"
	"github.com/glowpanel/oled/pixel"
	"github.com/glowpanel/oled/sim"
)

func main() {
	widthFlag := flag.Int("width", 128, "Panel width")
	heightFlag := flag.Int("height", 128, "Panel height")
	scaleFlag := flag.Int("scale", 4, "Window scale factor")
	flag.Parse()

	conn := sim.New(*widthFlag, *heightFlag)
	output, err := oled.SSD1327(conn, &oled.Config{
		Width:  *widthFlag,
		Height: *heightFlag,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", output)
	fmt.Printf("using connection: %s\n", conn)

	g := &game{conn: conn, output: output}
	ebiten.SetWindowTitle(conn.String())
	ebiten.SetWindowSize(*widthFlag**scaleFlag, *heightFlag**scaleFlag)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil {
		fatal(err)
	}
}

type game struct {
	conn   *sim.Conn
	output *oled.Device
	img    *image.RGBA
	fbImg  *ebiten.Image
	offset int
}

func (g *game) Update() error {
	r := g.output.Bounds()

	// Gradient backdrop with a border and a spinning diagonal.
	for y := 1; y < r.Max.Y-1; y++ {
		for x := 1; x < r.Max.X-1; x++ {
			g.output.Set(x, y, pixel.Gray4{Y: uint8(x+y+g.offset) & 0xf})
		}
	}
	draw.Rectangle(g.output, r, pixel.Gray4{Y: 0xf})
	draw.Circle(g.output, image.Pt(r.Max.X/2, r.Max.Y/2), r.Max.X/4, pixel.Gray4{Y: 0x0})
	g.offset++

	return g.output.Refresh()
}

func (g *game) Draw(screen *ebiten.Image) {
	r := g.output.Bounds()
	if g.img == nil {
		g.img = image.NewRGBA(r)
		g.fbImg = ebiten.NewImage(r.Dx(), r.Dy())
	}

	// Decode 4-bit GDDRAM into RGBA.
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := g.conn.Gray4At(x, y) * 0x11
			i := g.img.PixOffset(x, y)
			g.img.Pix[i+0] = v
			g.img.Pix[i+1] = v
			g.img.Pix[i+2] = v
			g.img.Pix[i+3] = 0xff
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	r := g.output.Bounds()
	return r.Dx(), r.Dy()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
