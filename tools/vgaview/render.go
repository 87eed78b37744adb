package main

import (
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
)

// vgaPalette holds the RGB values that VGA hardware uses for the 16 text
// mode colors, indexed by console.Color.
var vgaPalette = [16]color.RGBA{
	{R: 0, G: 0, B: 0},       /* black */
	{R: 0, G: 0, B: 170},     /* blue */
	{R: 0, G: 170, B: 0},     /* green */
	{R: 0, G: 170, B: 170},   /* cyan */
	{R: 170, G: 0, B: 0},     /* red */
	{R: 170, G: 0, B: 170},   /* magenta */
	{R: 170, G: 85, B: 0},    /* brown */
	{R: 170, G: 170, B: 170}, /* light grey */
	{R: 85, G: 85, B: 85},    /* dark grey */
	{R: 85, G: 85, B: 255},   /* light blue */
	{R: 85, G: 255, B: 85},   /* light green */
	{R: 85, G: 255, B: 255},  /* light cyan */
	{R: 255, G: 85, B: 85},   /* light red */
	{R: 255, G: 85, B: 255},  /* light magenta */
	{R: 255, G: 255, B: 85},  /* yellow (light brown) */
	{R: 255, G: 255, B: 255}, /* white */
}

// cellSetter is the subset of tcell.Screen used for rendering.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// tcellColor maps a VGA color to a true color tcell value.
func tcellColor(c console.Color) tcell.Color {
	rgba := vgaPalette[c&0xf]
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// glyphRune translates a framebuffer glyph to the rune shown by a VGA
// adapter using its built-in code page 437 font. Control codes have no
// printable equivalent in Unicode and are shown as '.'; NUL renders blank.
func glyphRune(glyph byte) rune {
	switch {
	case glyph == 0:
		return ' '
	case glyph < 0x20 || glyph == 0x7f:
		return '.'
	default:
		return charmap.CodePage437.DecodeByte(glyph)
	}
}

// cellStyle returns the tcell style for a VGA attribute byte.
func cellStyle(attr console.Attr) tcell.Style {
	fg, bg := attr.Colors()
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

// render draws the framebuffer cells onto dst with the top-left cell at
// (0, 0).
func render(dst cellSetter, fb []uint16) {
	for i, cell := range fb {
		glyph, attr := console.DecodeCell(cell)
		dst.SetContent(i%console.Width, i/console.Width, glyphRune(glyph), nil, cellStyle(attr))
	}
}

// dumpText returns the console glyphs as text, one line per row with
// trailing blanks removed.
func dumpText(cons *console.Vga) string {
	var (
		sb            strings.Builder
		width, height = cons.Dimensions()
	)

	for y := uint16(0); y < height; y++ {
		var line strings.Builder
		for x := uint16(0); x < width; x++ {
			cell, _ := cons.Cell(x, y)
			glyph, _ := console.DecodeCell(cell)
			line.WriteRune(glyphRune(glyph))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}
