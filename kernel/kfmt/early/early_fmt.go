package early

import (
	"io"

	"github.com/vidproject1/Rylo-OS/kernel/hal"
)

var (
	errMissingArg   = "(MISSING)"
	errWrongArgType = "%!(WRONGTYPE)"
	errNoVerb       = "%!(NOVERB)"
	errExtraArg     = "%!(EXTRA)"
	padding         = byte(' ')
	trueValue       = "true"
	falseValue      = "false"
)

// Printf is a shorthand for Fprintf(hal.ActiveTerminal, format, args...).
func Printf(format string, args ...interface{}) {
	Fprintf(hal.ActiveTerminal, format, args...)
}

// Fprintf provides a minimal Fprintf implementation that can be used before
// the Go runtime has been properly initialized. It does not allocate any
// memory and emits its output one byte at a time to w.
//
// The following subset of formatting verbs is supported:
//
// Strings:
//
//	%s the uninterpreted bytes of the string or byte slice
//
// Integers:
//
//	%o base 8
//	%d base 10
//	%x base 16, with lower-case letters for a-f and a 0x prefix
//
// Booleans:
//
//	%t "true" or "false"
//
// Width is specified by an optional decimal number immediately preceding the
// verb. Strings and base-10 integers are left-padded with spaces; base-8 and
// base-16 integers are left-padded with zeroes.
//
// Pointers (%p) are not supported since that requires importing the reflect
// package which makes the compiler emit calls to the runtime allocator.
func Fprintf(w io.ByteWriter, format string, args ...interface{}) {
	var (
		nextCh                       byte
		nextArgIndex                 int
		blockStart, blockEnd, padLen int
		fmtLen                       = len(format)
	)

	for blockEnd < fmtLen {
		nextCh = format[blockEnd]
		if nextCh != '%' {
			blockEnd++
			continue
		}

		writeString(w, format[blockStart:blockEnd])

		// Scan til we hit the format character
		padLen = 0
		blockEnd++
	parseFmt:
		for ; blockEnd < fmtLen; blockEnd++ {
			nextCh = format[blockEnd]
			switch {
			case nextCh == '%':
				_ = w.WriteByte('%')
				break parseFmt
			case nextCh >= '0' && nextCh <= '9':
				padLen = (padLen * 10) + int(nextCh-'0')
				continue
			case nextCh == 'd' || nextCh == 'x' || nextCh == 'o' || nextCh == 's' || nextCh == 't':
				// Run out of args to print
				if nextArgIndex >= len(args) {
					writeString(w, errMissingArg)
					break parseFmt
				}

				switch nextCh {
				case 'o':
					fmtInt(w, args[nextArgIndex], 8, padLen)
				case 'd':
					fmtInt(w, args[nextArgIndex], 10, padLen)
				case 'x':
					fmtInt(w, args[nextArgIndex], 16, padLen)
				case 's':
					fmtString(w, args[nextArgIndex], padLen)
				case 't':
					fmtBool(w, args[nextArgIndex])
				}

				nextArgIndex++
				break parseFmt
			}

			// reached end of formatting string without finding a verb
			writeString(w, errNoVerb)
		}
		blockStart, blockEnd = blockEnd+1, blockEnd+1
	}

	if blockStart < fmtLen {
		writeString(w, format[blockStart:])
	}

	// Check for unused args
	for ; nextArgIndex < len(args); nextArgIndex++ {
		writeString(w, errExtraArg)
	}
}

func writeString(w io.ByteWriter, s string) {
	for i := 0; i < len(s); i++ {
		_ = w.WriteByte(s[i])
	}
}

func fmtBool(w io.ByteWriter, v interface{}) {
	bVal, ok := v.(bool)
	switch {
	case !ok:
		writeString(w, errWrongArgType)
	case bVal:
		writeString(w, trueValue)
	default:
		writeString(w, falseValue)
	}
}

// fmtString writes the string or []byte value v, left-padded to padLen.
func fmtString(w io.ByteWriter, v interface{}, padLen int) {
	switch castedVal := v.(type) {
	case string:
		fmtRepeat(w, padding, padLen-len(castedVal))
		writeString(w, castedVal)
	case []byte:
		fmtRepeat(w, padding, padLen-len(castedVal))
		for _, b := range castedVal {
			_ = w.WriteByte(b)
		}
	default:
		writeString(w, errWrongArgType)
	}
}

func fmtRepeat(w io.ByteWriter, ch byte, count int) {
	for i := 0; i < count; i++ {
		_ = w.WriteByte(ch)
	}
}

// fmtInt writes v in the requested base (8, 10 or 16), applying the padding
// specified by padLen. All built-in signed and unsigned integer types are
// supported.
func fmtInt(w io.ByteWriter, v interface{}, base, padLen int) {
	var (
		sval             int64
		uval             uint64
		divider          uint64
		remainder        uint64
		buf              [24]byte
		padCh            byte
		left, right, end int
	)

	switch base {
	case 8:
		divider = 8
		padCh = '0'
	case 10:
		divider = 10
		padCh = ' '
	case 16:
		divider = 16
		padCh = '0'
	}

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		sval = int64(t)
	case int16:
		sval = int64(t)
	case int32:
		sval = int64(t)
	case int64:
		sval = t
	case int:
		sval = int64(t)
	default:
		writeString(w, errWrongArgType)
		return
	}

	// Handle signs
	if sval < 0 {
		uval = uint64(-sval)
	} else if sval > 0 {
		uval = uint64(sval)
	}

	for {
		remainder = uval % divider
		if remainder < 10 {
			buf[right] = byte(remainder) + '0'
		} else {
			// map values from 10 to 15 -> a-f
			buf[right] = byte(remainder-10) + 'a'
		}

		right++

		uval /= divider
		if uval == 0 {
			break
		}
	}

	// Apply padding if required
	for ; right-left < padLen && right < len(buf)-3; right++ {
		buf[right] = padCh
	}

	// Apply hex prefix
	if base == 16 {
		buf[right] = 'x'
		buf[right+1] = '0'
		right += 2
	}

	// Apply negative sign to the rightmost blank character (if using enough
	// padding); otherwise append the sign as a new char
	if sval < 0 {
		for end = right - 1; buf[end] == ' '; end-- {
		}

		if end == right-1 {
			right++
		}

		buf[end+1] = '-'
	}

	// Emit digits in reverse order
	for end = right - 1; end >= 0; end-- {
		_ = w.WriteByte(buf[end])
	}
}
