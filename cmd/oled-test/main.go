// Command oled-test exercises an SSD1327 OLED panel over I²C.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/glowpanel/oled"
	"github.com/glowpanel/oled/draw"
	"github.com/glowpanel/oled/pixel"
)

func main() {
	widthFlag := flag.Int("width", 0, "Panel width")
	heightFlag := flag.Int("height", 0, "Panel height")
	i2cDeviceFlag := flag.Int("i2c-dev", oled.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(oled.DefaultI2CConfig.Addr), "I²C device address")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	contrastFlag := flag.Uint("contrast", 0x80, "Contrast level")
	flag.Parse()

	var rotation oled.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = oled.NoRotation
	case "90", "right", "cw":
		rotation = oled.Rotate90
	case "180", "flip":
		rotation = oled.Rotate180
	case "270", "left", "ccw":
		rotation = oled.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}
	fmt.Printf("using rotation: %s\n", rotation)

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	config := &oled.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Rotation: rotation,
	}
	if *resetPinFlag != "" {
		config.Reset = gpioreg.ByName(*resetPinFlag)
	}

	conn, err := oled.OpenI2C(&oled.I2CConfig{
		Device: *i2cDeviceFlag,
		Addr:   uint8(*i2cAddrFlag),
	})
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	output, err := oled.SSD1327(conn, config)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", output)

	if err = output.SetContrast(uint8(*contrastFlag)); err != nil {
		fatal(err)
	}

	font, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		fatal(err)
	}
	text := freetype.NewContext()
	text.SetDPI(72)
	text.SetFont(font)
	text.SetFontSize(13)
	text.SetClip(output.Bounds())
	text.SetDst(output)
	text.SetSrc(image.NewUniform(pixel.Gray4{Y: 0xf}))

	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		r      = output.Bounds()
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for {
		// Gradient backdrop with a border, a label on top.
		for y := 1; y < r.Max.Y-1; y++ {
			for x := 1; x < r.Max.X-1; x++ {
				output.Set(x, y, pixel.Gray4{Y: uint8(x+y+offset) & 0xf})
			}
		}
		draw.Rectangle(output, r, pixel.Gray4{Y: 0xf})

		box := image.Rect(4, r.Max.Y/2-10, r.Max.X-4, r.Max.Y/2+6)
		draw.Box(output, box, pixel.Gray4{Y: 0x0})
		if _, err = text.DrawString("SSD1327", freetype.Pt(box.Min.X+4, box.Max.Y-4)); err != nil {
			fatal(err)
		}

		if err = output.Refresh(); err != nil {
			fatal(err)
		}

		offset++
		<-ticker.C
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
