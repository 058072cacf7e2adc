// Package pixel implements the packed color and image types used by
// grayscale OLED displays.
//
// The types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so the standard library and
// any font rasterizer that targets draw.Image can render straight into a
// display buffer.
package pixel
