package console

import (
	"sync"
	"unsafe"

	"github.com/vidproject1/Rylo-OS/kernel"
)

const (
	// Width is the number of character columns of the text console.
	Width = 80

	// Height is the number of character rows of the text console.
	Height = 25

	clearChar = byte(' ')
)

// Vga implements an 80x25 VGA-compatible text console. The console does not
// own its framebuffer: Init points it at an already mapped region (0xB8000 on
// real hardware) that holds Width*Height cells in row-major order.
//
// The embedded mutex is not used by the console itself; it is the lock that
// terminals attached to this console must hold while mutating it.
type Vga struct {
	sync.Mutex

	width  uint16
	height uint16

	fb []uint16
}

// Init sets up the console so that it uses the Width*Height cells starting
// at the physical address fbAddr as its framebuffer.
func (cons *Vga) Init(fbAddr uintptr) {
	// The framebuffer is memory-mapped by the hardware; build a slice on
	// top of it instead of allocating one.
	fb := unsafe.Slice((*uint16)(unsafe.Pointer(fbAddr)), Width*Height)
	_ = cons.InitWithFramebuffer(fb)
}

// InitWithFramebuffer sets up the console on top of an existing cell slice.
// It is used when the console is emulated in regular memory. The slice must
// hold exactly Width*Height cells.
func (cons *Vga) InitWithFramebuffer(fb []uint16) *kernel.Error {
	if len(fb) != Width*Height {
		return ErrFramebufferSize
	}

	cons.width = Width
	cons.height = Height
	cons.fb = fb
	return nil
}

// Dimensions returns the console width and height in characters.
func (cons *Vga) Dimensions() (uint16, uint16) {
	return cons.width, cons.height
}

// Framebuffer returns the row-major view of the console cells.
func (cons *Vga) Framebuffer() []uint16 {
	return cons.fb
}

// Clear fills the specified rectangular region with blank characters drawn
// with attr. The region is clipped to the console dimensions.
func (cons *Vga) Clear(x, y, width, height uint16, attr Attr) {
	var (
		clr                  = EncodeCell(clearChar, attr)
		rowOffset, colOffset uint16
	)

	// clip rectangle
	if x >= cons.width {
		x = cons.width
	}
	if y >= cons.height {
		y = cons.height
	}

	if width > cons.width-x {
		width = cons.width - x
	}
	if height > cons.height-y {
		height = cons.height - y
	}

	rowOffset = (y * cons.width) + x
	for ; height > 0; height, rowOffset = height-1, rowOffset+cons.width {
		for colOffset = rowOffset; colOffset < rowOffset+width; colOffset++ {
			cons.fb[colOffset] = clr
		}
	}
}

// ScrollUp moves the console contents up by the requested number of lines.
// The bottom lines keep their previous contents; the caller is responsible
// for clearing them.
func (cons *Vga) ScrollUp(lines uint16) {
	if lines == 0 || lines > cons.height {
		return
	}

	offset := lines * cons.width
	for i := uint16(0); i < (cons.height-lines)*cons.width; i++ {
		cons.fb[i] = cons.fb[i+offset]
	}
}

// Write a char to the specified location. Writes with coordinates outside the
// console fail with ErrOutOfBounds and leave the framebuffer untouched.
func (cons *Vga) Write(ch byte, attr Attr, x, y uint16) *kernel.Error {
	if x >= cons.width || y >= cons.height {
		return ErrOutOfBounds
	}

	cons.fb[(y*cons.width)+x] = EncodeCell(ch, attr)
	return nil
}

// Cell returns the raw framebuffer value at the specified location.
func (cons *Vga) Cell(x, y uint16) (uint16, *kernel.Error) {
	if x >= cons.width || y >= cons.height {
		return 0, ErrOutOfBounds
	}

	return cons.fb[(y*cons.width)+x], nil
}
