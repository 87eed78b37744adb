package kmain

import (
	"github.com/vidproject1/Rylo-OS/kernel"
	"github.com/vidproject1/Rylo-OS/kernel/cpu"
	"github.com/vidproject1/Rylo-OS/kernel/driver/tty"
	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
	"github.com/vidproject1/Rylo-OS/kernel/hal"
	"github.com/vidproject1/Rylo-OS/kernel/kfmt/early"
)

// State describes the lifecycle stage reached by the kernel.
type State uint8

const (
	// StateBooting is the state of the kernel while it prints its boot
	// messages.
	StateBooting State = iota

	// StateHalted is the terminal state; the kernel has nothing left to do
	// and waits for interrupts.
	StateHalted
)

const (
	// stackTop is the address where the bootloader sets up the kernel stack.
	stackTop = uintptr(0x90000)

	panicAttr = console.Attr(console.LightRed) | console.Attr(console.Black)<<4
)

// message is a single step of the boot output: a color change followed by
// some text.
type message struct {
	fg, bg console.Color
	format string
	args   []interface{}
}

// bootMessages lists the boot output in the order it is printed.
var bootMessages = []message{
	{console.LightGreen, console.Black, "Rylo OS Kernel v0.1\n", nil},
	{console.White, console.Black, "Phase 2: Kernel Initialization\n\n", nil},
	{console.Cyan, console.Black, "System Status:\n", nil},
	{console.LightGrey, console.Black, "- CPU Mode: 32-bit Protected Mode\n", nil},
	{console.LightGrey, console.Black, "- Memory: VGA Text Buffer Active\n", nil},
	{console.LightGrey, console.Black, "- Stack: Initialized at %x\n", []interface{}{stackTop}},
	{console.LightGrey, console.Black, "- Bootloader: Two-stage BIOS\n\n", nil},
	{console.LightBrown, console.Black, "VGA Output Test:\n", nil},
	{console.Red, console.Black, "RED ", nil},
	{console.Green, console.Black, "GREEN ", nil},
	{console.Blue, console.Black, "BLUE ", nil},
	{console.Magenta, console.Black, "MAGENTA\n\n", nil},
	{console.LightGreen, console.Black, "Kernel initialization complete!\n", nil},
	{console.White, console.Black, "System ready for Phase 3: Memory Management\n", nil},
}

var (
	// initTerminalFn and idleFn are mocked by tests.
	initTerminalFn = hal.InitTerminal
	idleFn         = idle

	// cpuHaltFn is mocked by tests and is automatically inlined by the compiler.
	cpuHaltFn = cpu.Halt

	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}
)

// Kmain is the kernel entrypoint. It is invoked by the bootloader once the
// CPU runs in protected mode and a stack has been set up at stackTop.
//
// Kmain prints the boot messages to the VGA text console and then idles
// forever. If the boot messages cannot be printed the kernel panics and still
// enters the idle loop. Kmain is not expected to return.
//
//go:noinline
func Kmain() {
	initTerminalFn()

	if _, err := Boot(hal.ActiveTerminal); err != nil {
		Panic(err)
	}

	idleFn()

	// Use Panic instead of panic to prevent the compiler from treating
	// Panic as dead-code and eliminating it.
	Panic(errKmainReturned)
}

// Boot initializes the terminal and prints the boot messages to it. It
// returns StateHalted once all messages have been written; the caller is
// expected to hand control to the idle loop at that point.
func Boot(vt *tty.Vt) (State, *kernel.Error) {
	vt.Initialize()

	for _, msg := range bootMessages {
		if err := vt.SetColors(msg.fg, msg.bg); err != nil {
			return StateBooting, err
		}

		early.Fprintf(vt, msg.format, msg.args...)
	}

	return StateHalted, nil
}

// idle halts the CPU in a loop; each interrupt wakes it up only for it to be
// halted again.
func idle() {
	for {
		cpuHaltFn()
	}
}
