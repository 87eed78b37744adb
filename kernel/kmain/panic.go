package kmain

import (
	"github.com/vidproject1/Rylo-OS/kernel"
	"github.com/vidproject1/Rylo-OS/kernel/hal"
	"github.com/vidproject1/Rylo-OS/kernel/kfmt/early"
)

// Panic outputs the supplied error (if not nil) to the active terminal in
// light red and halts the CPU. Calls to Panic never return on real hardware.
func Panic(err *kernel.Error) {
	hal.ActiveTerminal.SetColor(panicAttr)

	early.Printf("\n-----------------------------------\n")
	if err != nil {
		early.Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	early.Printf("*** kernel panic: system halted ***")
	early.Printf("\n-----------------------------------\n")

	cpuHaltFn()
}
