//go:build 386 || amd64

// Package cpu exposes the few privileged instructions the kernel needs.
package cpu

// Halt stops instruction execution until the next interrupt arrives.
func Halt()
