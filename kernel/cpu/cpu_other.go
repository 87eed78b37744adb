//go:build !386 && !amd64

// Package cpu exposes the few privileged instructions the kernel needs.
package cpu

import "runtime"

// Halt yields the processor. The kernel only targets x86; this variant lets
// the host-side tools build on other architectures.
func Halt() {
	runtime.Gosched()
}
