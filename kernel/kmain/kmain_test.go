package kmain

import (
	"bytes"
	"testing"

	"github.com/vidproject1/Rylo-OS/kernel"
	"github.com/vidproject1/Rylo-OS/kernel/cpu"
	"github.com/vidproject1/Rylo-OS/kernel/driver/tty"
	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
	"github.com/vidproject1/Rylo-OS/kernel/hal"
)

type expRun struct {
	x, y int
	text string
	fg   console.Color
}

var expBootScreen = []expRun{
	{0, 0, "Rylo OS Kernel v0.1", console.LightGreen},
	{0, 1, "Phase 2: Kernel Initialization", console.White},
	{0, 3, "System Status:", console.Cyan},
	{0, 4, "- CPU Mode: 32-bit Protected Mode", console.LightGrey},
	{0, 5, "- Memory: VGA Text Buffer Active", console.LightGrey},
	{0, 6, "- Stack: Initialized at 0x90000", console.LightGrey},
	{0, 7, "- Bootloader: Two-stage BIOS", console.LightGrey},
	{0, 9, "VGA Output Test:", console.LightBrown},
	{0, 10, "RED ", console.Red},
	{4, 10, "GREEN ", console.Green},
	{10, 10, "BLUE ", console.Blue},
	{15, 10, "MAGENTA", console.Magenta},
	{0, 12, "Kernel initialization complete!", console.LightGreen},
	{0, 13, "System ready for Phase 3: Memory Management", console.White},
}

func mockTTY(t *testing.T) []uint16 {
	fb := make([]uint16, console.Width*console.Height)
	var cons console.Vga
	if err := cons.InitWithFramebuffer(fb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hal.ActiveTerminal.AttachTo(&cons)

	return fb
}

func readTTY(fb []uint16) string {
	var buf bytes.Buffer
	for y := 0; y < console.Height; y++ {
		row := make([]byte, console.Width)
		for x := range row {
			row[x], _ = console.DecodeCell(fb[y*console.Width+x])
		}
		buf.Write(bytes.TrimRight(row, " "))
		buf.WriteByte('\n')
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func assertBootScreen(t *testing.T, fb []uint16) {
	t.Helper()

	for specIndex, spec := range expBootScreen {
		for i := 0; i < len(spec.text); i++ {
			glyph, attr := console.DecodeCell(fb[spec.y*console.Width+spec.x+i])
			fg, bg := attr.Colors()
			if glyph != spec.text[i] || fg != spec.fg || bg != console.Black {
				t.Fatalf("[spec %d] expected (%c, fg %d, bg %d) at (%d, %d); got (%c, fg %d, bg %d)",
					specIndex, spec.text[i], spec.fg, console.Black, spec.x+i, spec.y, glyph, fg, bg)
			}
		}
	}

	// Everything else is blank
	exp := "Rylo OS Kernel v0.1\nPhase 2: Kernel Initialization\n\nSystem Status:\n" +
		"- CPU Mode: 32-bit Protected Mode\n- Memory: VGA Text Buffer Active\n" +
		"- Stack: Initialized at 0x90000\n- Bootloader: Two-stage BIOS\n\n" +
		"VGA Output Test:\nRED GREEN BLUE MAGENTA\n\nKernel initialization complete!\n" +
		"System ready for Phase 3: Memory Management"
	if got := readTTY(fb); got != exp {
		t.Fatalf("expected screen contents:\n%q\ngot:\n%q", exp, got)
	}
}

func TestBoot(t *testing.T) {
	fb := make([]uint16, console.Width*console.Height)
	for i := range fb {
		fb[i] = 0xBEEF
	}

	var cons console.Vga
	if err := cons.InitWithFramebuffer(fb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var vt tty.Vt
	vt.AttachTo(&cons)

	state, err := Boot(&vt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateHalted {
		t.Fatalf("expected Boot to return StateHalted; got %d", state)
	}

	assertBootScreen(t, fb)

	if x, y := vt.Position(); x != 0 || y != 14 {
		t.Fatalf("expected cursor at (0, 14); got (%d, %d)", x, y)
	}
}

func TestBootWithInvalidColor(t *testing.T) {
	defer func(orig []message) {
		bootMessages = orig
	}(bootMessages)

	bootMessages = []message{
		{console.White, console.Black, "before\n", nil},
		{console.Color(99), console.Black, "never printed", nil},
	}

	fb := mockTTY(t)
	state, err := Boot(hal.ActiveTerminal)
	if err != console.ErrInvalidColor {
		t.Fatalf("expected ErrInvalidColor; got %v", err)
	}
	if state != StateBooting {
		t.Fatalf("expected Boot to stay in StateBooting; got %d", state)
	}
	if got := readTTY(fb); got != "before" {
		t.Fatalf("expected only the first message to be printed; got %q", got)
	}
}

func TestKmain(t *testing.T) {
	defer func() {
		initTerminalFn = hal.InitTerminal
		idleFn = idle
		cpuHaltFn = cpu.Halt
	}()

	var (
		fb            []uint16
		fbWhenIdle    []uint16
		idleCalled    bool
		cpuHaltCalled bool
	)

	initTerminalFn = func() { fb = mockTTY(t) }
	idleFn = func() {
		idleCalled = true
		fbWhenIdle = append([]uint16(nil), fb...)
	}
	cpuHaltFn = func() { cpuHaltCalled = true }

	Kmain()

	if !idleCalled {
		t.Fatal("expected Kmain to enter the idle state")
	}

	// The whole boot sequence must be on screen before the idle handoff
	assertBootScreen(t, fbWhenIdle)

	// idleFn returned so Kmain must have panicked
	if !cpuHaltCalled {
		t.Fatal("expected Kmain to halt the CPU after idleFn returned")
	}
	if got := readTTY(fb); !bytes.Contains([]byte(got), []byte("[kmain] unrecoverable error: Kmain returned")) {
		t.Fatalf("expected panic message on screen; got:\n%s", got)
	}
}

func TestKmainBootError(t *testing.T) {
	defer func(orig []message) {
		bootMessages = orig
		initTerminalFn = hal.InitTerminal
		idleFn = idle
		cpuHaltFn = cpu.Halt
	}(bootMessages)

	bootMessages = []message{{console.Color(16), console.Black, "", nil}}

	var (
		fb              []uint16
		haltsBeforeIdle int
		haltCount       int
		idleCalled      bool
	)
	initTerminalFn = func() { fb = mockTTY(t) }
	idleFn = func() {
		idleCalled = true
		haltsBeforeIdle = haltCount
	}
	cpuHaltFn = func() { haltCount++ }

	Kmain()

	if haltsBeforeIdle != 1 {
		t.Fatalf("expected Panic to halt the CPU before idling; got %d halts", haltsBeforeIdle)
	}

	// A boot error must not let Kmain return into the bootloader
	if !idleCalled {
		t.Fatal("expected Kmain to enter the idle state after a boot error")
	}
	if got := readTTY(fb); !bytes.Contains([]byte(got), []byte("[vga] unrecoverable error: invalid color")) {
		t.Fatalf("expected panic message on screen; got:\n%s", got)
	}
}

func TestIdle(t *testing.T) {
	defer func() {
		cpuHaltFn = cpu.Halt
	}()

	type stopIdle struct{}

	var haltCount int
	cpuHaltFn = func() {
		haltCount++
		if haltCount == 3 {
			panic(stopIdle{})
		}
	}

	func() {
		defer func() {
			if r := recover(); r != (stopIdle{}) {
				t.Fatalf("unexpected panic: %v", r)
			}
		}()
		idle()
	}()

	if haltCount != 3 {
		t.Fatalf("expected idle to keep halting the CPU; got %d halts", haltCount)
	}
}

func TestPanic(t *testing.T) {
	defer func() {
		cpuHaltFn = cpu.Halt
	}()

	var cpuHaltCalled bool
	cpuHaltFn = func() {
		cpuHaltCalled = true
	}

	t.Run("with error", func(t *testing.T) {
		cpuHaltCalled = false
		fb := mockTTY(t)
		hal.ActiveTerminal.Initialize()
		err := &kernel.Error{Module: "test", Message: "panic test"}

		Panic(err)

		exp := "\n-----------------------------------\n[test] unrecoverable error: panic test\n*** kernel panic: system halted ***\n-----------------------------------"

		if got := readTTY(fb); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}

		if _, attr := console.DecodeCell(fb[console.Width]); attr != panicAttr {
			t.Fatalf("expected panic output to use attr 0x%02x; got 0x%02x", panicAttr, attr)
		}
	})

	t.Run("before the terminal is attached", func(t *testing.T) {
		defer func(orig *tty.Vt) {
			hal.ActiveTerminal = orig
		}(hal.ActiveTerminal)

		cpuHaltCalled = false
		hal.ActiveTerminal = &tty.Vt{}

		Panic(&kernel.Error{Module: "test", Message: "early panic"})

		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})

	t.Run("without error", func(t *testing.T) {
		cpuHaltCalled = false
		fb := mockTTY(t)
		hal.ActiveTerminal.Initialize()

		Panic(nil)

		exp := "\n-----------------------------------\n*** kernel panic: system halted ***\n-----------------------------------"

		if got := readTTY(fb); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})
}
