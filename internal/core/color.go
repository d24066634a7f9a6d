package core

import "fmt"

// Color is a 16-bit RGB565 value, the native pixel format of the LCD panel.
// Renderers convert it to 24-bit for terminals.
type Color uint16

// Panel colors.
const (
	ColorBlack   Color = 0x0000
	ColorWhite   Color = 0xFFFF
	ColorGrey    Color = 0x18C3
	ColorBlue    Color = 0x001F
	ColorBlue2   Color = 0x051F
	ColorRed     Color = 0xF800
	ColorMagenta Color = 0xF81F
	ColorGreen   Color = 0x07E0
	ColorCyan    Color = 0x7FFF
	ColorYellow  Color = 0xFFE0
)

// RGB expands the color to 8 bits per channel.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F

	// Replicate high bits into the low bits so 0x1F maps to 0xFF.
	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return r, g, b
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
