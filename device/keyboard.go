// Package device implements the memory mapped peripherals of the Hack
// platform: the keyboard cell and the 512x256 monochrome screen.
package device

import (
	"io"
)

// Hack character set codes for keys without a printable byte.
const (
	KEY_NEWLINE   = uint16(128)
	KEY_BACKSPACE = uint16(129)
	KEY_ESCAPE    = uint16(140)
)

// Keyboard feeds the memory mapped keyboard cell from an io.Reader.
// Each poll of the cell consumes one byte of input; 0 is reported when
// the input is exhausted, matching an idle keyboard.
type Keyboard struct {
	Input io.Reader

	exhausted bool
}

// Key returns the scan code for the next input byte, or 0 when no input
// remains.
func (kb *Keyboard) Key() (code uint16) {
	if kb.Input == nil || kb.exhausted {
		return 0
	}

	var one [1]byte
	n, err := kb.Input.Read(one[:])
	if n != 1 || err != nil {
		kb.exhausted = true
		return 0
	}

	switch one[0] {
	case '\n':
		code = KEY_NEWLINE
	case 0x08, 0x7f:
		code = KEY_BACKSPACE
	case 0x1b:
		code = KEY_ESCAPE
	default:
		code = uint16(one[0])
	}

	return
}

// Rewind resets the end-of-input latch. The caller is responsible for
// rewinding the underlying reader, when that is possible at all.
func (kb *Keyboard) Rewind() {
	kb.exhausted = false
}
