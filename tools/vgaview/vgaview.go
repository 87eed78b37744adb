package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/vidproject1/Rylo-OS/kernel/driver/tty"
	"github.com/vidproject1/Rylo-OS/kernel/driver/video/console"
	"github.com/vidproject1/Rylo-OS/kernel/kmain"
)

var dumpFlag = flag.Bool("dump", false, "print the screen contents as plain text instead of opening a terminal view")

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[vgaview] error: %s\n", err.Error())
	os.Exit(1)
}

// bootEmulated runs the kernel boot sequence against a console backed by
// regular memory and returns the terminal and its console.
func bootEmulated() (*tty.Vt, *console.Vga, error) {
	cons := &console.Vga{}
	if err := cons.InitWithFramebuffer(make([]uint16, console.Width*console.Height)); err != nil {
		return nil, nil, err
	}

	vt := &tty.Vt{}
	vt.AttachTo(cons)

	if _, err := kmain.Boot(vt); err != nil {
		return nil, nil, err
	}

	return vt, cons, nil
}

// view displays the console contents on the terminal until the user presses
// Esc, q or Ctrl-C.
func view(screen tcell.Screen, vt *tty.Vt, cons *console.Vga) {
	draw := func() {
		screen.Clear()
		render(screen, cons.Framebuffer())
		x, y := vt.Position()
		screen.ShowCursor(int(x), int(y))
		screen.Show()
	}

	draw()
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case nil:
			return
		}
	}
}

func main() {
	flag.Parse()

	vt, cons, err := bootEmulated()
	if err != nil {
		exit(err)
	}

	if *dumpFlag {
		fmt.Print(dumpText(cons))
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		exit(err)
	}
	if err := screen.Init(); err != nil {
		exit(err)
	}
	defer screen.Fini()

	view(screen, vt, cons)
}
