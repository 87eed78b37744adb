package main

import "github.com/vidproject1/Rylo-OS/kernel/kmain"

// main is the only Go symbol that the bootloader's second stage jumps to. It
// works as a trampoline for calling the actual kernel entrypoint (kmain.Kmain)
// and keeps the Go compiler from optimizing away the kernel code, as the
// compiler is not aware of the assembly code that invokes it.
//
// main is not expected to return. If it does, the bootloader halts the CPU.
func main() {
	kmain.Kmain()
}
