package kernel

// Error is the error type returned by kernel code. The Go allocator is not
// usable while the display driver runs, so errors.New and fmt.Errorf are off
// limits: every Error is declared up front as a package-level pointer and
// callers compare against it by identity.
type Error struct {
	// Module names the driver or subsystem that reported the error.
	Module string

	// Message is a short, static description of the failure.
	Message string
}

// Error implements the error interface. It returns the message without the
// module prefix so that no string concatenation (and allocation) is needed.
func (e *Error) Error() string {
	return e.Message
}
