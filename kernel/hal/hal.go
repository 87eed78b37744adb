package hal

import (
	"github.com/vidproject1/Rylo-OS/kernel/driver/tty"
	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
)

// vgaFbAddr is the physical address of the VGA text mode framebuffer. The
// bootloader leaves the display in 80x25 text mode so the buffer is already
// mapped when the kernel starts.
const vgaFbAddr = uintptr(0xB8000)

var (
	vgaConsole = &console.Vga{}

	// ActiveTerminal points to the currently active terminal.
	ActiveTerminal = &tty.Vt{}
)

// InitTerminal attaches ActiveTerminal to the VGA text console so the kernel
// can emit output. The terminal still needs to be initialized by the caller.
func InitTerminal() {
	vgaConsole.Init(vgaFbAddr)
	ActiveTerminal.AttachTo(vgaConsole)
}
