package tty

import (
	"io"

	"github.com/vidproject1/Rylo-OS/kernel"
	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
)

const (
	defaultFg = console.LightGrey
	defaultBg = console.Black

	// defaultAttr is light grey text on a black background.
	defaultAttr = console.Attr(defaultFg) | console.Attr(defaultBg)<<4
)

// ErrNotAttached is returned by PutAt, Write and WriteByte when the terminal
// has no console.
var ErrNotAttached = &kernel.Error{Module: "tty", Message: "terminal not attached to a console"}

// Vt implements a simple terminal on top of a VGA text console. The only
// control character it interprets is LF; every other byte is written to the
// console as-is. Output wraps at the end of each line and the console is
// scrolled up by one line when the cursor moves past the last row. Lines that
// scroll off the top are lost.
type Vt struct {
	// Go interfaces will not work before we can get memory allocation working.
	// Till then we need to use concrete types instead.
	cons *console.Vga

	width  uint16
	height uint16

	curX    uint16
	curY    uint16
	curAttr console.Attr
}

// AttachTo connects the terminal to a console instance. Initialize must be
// called before the terminal is used for output.
//
// Until a console is attached, output operations are no-ops and PutAt, Write
// and WriteByte return ErrNotAttached.
func (t *Vt) AttachTo(cons *console.Vga) {
	if cons == nil {
		return
	}

	t.cons = cons
	t.width, t.height = cons.Dimensions()
	t.curX, t.curY = 0, 0
	t.curAttr = defaultAttr
}

// Initialize moves the cursor to the top-left corner, restores the default
// color and blanks the entire console using that color.
func (t *Vt) Initialize() {
	if t.cons == nil {
		return
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	t.curX, t.curY = 0, 0
	t.curAttr = defaultAttr
	t.cons.Clear(0, 0, t.width, t.height, t.curAttr)
}

// Dimensions returns the terminal width and height in characters.
func (t *Vt) Dimensions() (uint16, uint16) {
	return t.width, t.height
}

// Position returns the current cursor position as (column, row).
func (t *Vt) Position() (uint16, uint16) {
	if t.cons == nil {
		return t.curX, t.curY
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	return t.curX, t.curY
}

// Color returns the attribute used for subsequent writes.
func (t *Vt) Color() console.Attr {
	if t.cons == nil {
		return t.curAttr
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	return t.curAttr
}

// SetColor sets the attribute used for subsequent writes. Characters that
// are already on screen keep their color.
func (t *Vt) SetColor(attr console.Attr) {
	if t.cons == nil {
		t.curAttr = attr
		return
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	t.curAttr = attr
}

// SetColors is a shorthand for building an attribute out of fg and bg and
// passing it to SetColor. If either color is invalid the current color is
// left unchanged.
func (t *Vt) SetColors(fg, bg console.Color) *kernel.Error {
	attr, err := console.MakeAttr(fg, bg)
	if err != nil {
		return err
	}

	t.SetColor(attr)
	return nil
}

// PutAt writes ch with the given attribute at (x, y). The cursor is not
// affected.
func (t *Vt) PutAt(ch byte, attr console.Attr, x, y uint16) *kernel.Error {
	if t.cons == nil {
		return ErrNotAttached
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	return t.cons.Write(ch, attr, x, y)
}

// ScrollUp moves the terminal contents up by one line, blanks the last line
// using the current color and moves the cursor to the start of the last line.
func (t *Vt) ScrollUp() {
	if t.cons == nil {
		return
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	t.scrollUp()
}

// PutChar writes ch at the cursor position and advances the cursor.
func (t *Vt) PutChar(ch byte) {
	if t.cons == nil {
		return
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	t.putChar(ch)
}

// WriteString writes each byte of s via PutChar.
func (t *Vt) WriteString(s string) {
	if t.cons == nil {
		return
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	for i := 0; i < len(s); i++ {
		t.putChar(s[i])
	}
}

// Write implements io.Writer.
func (t *Vt) Write(data []byte) (int, error) {
	if t.cons == nil {
		return 0, ErrNotAttached
	}

	t.cons.Lock()
	defer t.cons.Unlock()

	for _, b := range data {
		t.putChar(b)
	}

	return len(data), nil
}

// WriteByte implements io.ByteWriter.
func (t *Vt) WriteByte(b byte) error {
	if t.cons == nil {
		return ErrNotAttached
	}

	t.PutChar(b)
	return nil
}

func (t *Vt) putChar(ch byte) {
	if ch == '\n' {
		t.curX = 0
		t.lf()
		return
	}

	// The cursor never leaves the console so this write cannot fail.
	_ = t.cons.Write(ch, t.curAttr, t.curX, t.curY)

	t.curX++
	if t.curX == t.width {
		t.curX = 0
		t.lf()
	}
}

// lf advances the cursor to the next line, scrolling the terminal contents if
// the cursor moves past the last line.
func (t *Vt) lf() {
	t.curY++
	if t.curY == t.height {
		t.scrollUp()
	}
}

func (t *Vt) scrollUp() {
	t.cons.ScrollUp(1)
	t.cons.Clear(0, t.height-1, t.width, 1, t.curAttr)
	t.curX, t.curY = 0, t.height-1
}

var (
	_ io.Writer     = (*Vt)(nil)
	_ io.ByteWriter = (*Vt)(nil)
)
