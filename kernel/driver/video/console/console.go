package console

import "github.com/vidproject1/Rylo-OS/kernel"

// Color identifies one of the 16 colors supported by the VGA text mode.
type Color uint8

// The set of colors that can be combined into an Attr via MakeAttr.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White

	numColors
)

// Valid returns true if c is one of the 16 VGA colors.
func (c Color) Valid() bool {
	return c < numColors
}

// Attr is a color attribute byte. The low nibble holds the foreground color
// and the high nibble holds the background color. Every byte value is a valid
// attribute.
type Attr uint8

// Colors splits the attribute into its foreground and background colors.
func (a Attr) Colors() (fg, bg Color) {
	return Color(a & 0xf), Color(a >> 4)
}

var (
	// ErrInvalidColor is returned when a color outside the VGA palette is
	// used to build an attribute.
	ErrInvalidColor = &kernel.Error{Module: "vga", Message: "invalid color"}

	// ErrOutOfBounds is returned when a cell is addressed with coordinates
	// outside the console.
	ErrOutOfBounds = &kernel.Error{Module: "vga", Message: "coordinates out of bounds"}

	// ErrFramebufferSize is returned when a console is attached to a
	// framebuffer that does not hold exactly Width*Height cells.
	ErrFramebufferSize = &kernel.Error{Module: "vga", Message: "framebuffer size mismatch"}
)

// MakeAttr packs fg and bg into an attribute byte (fg | bg<<4). Colors are
// not masked; passing an invalid color yields ErrInvalidColor.
func MakeAttr(fg, bg Color) (Attr, *kernel.Error) {
	if !fg.Valid() || !bg.Valid() {
		return 0, ErrInvalidColor
	}

	return Attr(fg) | Attr(bg)<<4, nil
}

// EncodeCell returns the 16-bit framebuffer value for glyph drawn with attr.
// The glyph occupies bits 0-7 and the attribute bits 8-15; this layout is
// dictated by the display hardware.
func EncodeCell(glyph byte, attr Attr) uint16 {
	return uint16(attr)<<8 | uint16(glyph)
}

// DecodeCell is the inverse of EncodeCell.
func DecodeCell(cell uint16) (byte, Attr) {
	return byte(cell), Attr(cell >> 8)
}
