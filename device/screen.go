package device

import (
	"fmt"
	"io"
)

// Screen geometry. Each word holds 16 horizontally adjacent pixels,
// LSB leftmost.
const (
	SCREEN_WIDTH  = 512
	SCREEN_HEIGHT = 256
	SCREEN_WORDS  = SCREEN_WIDTH * SCREEN_HEIGHT / 16
)

// Screen is the monochrome framebuffer behind the memory mapped screen
// range. The zero value is a blank screen.
type Screen struct {
	words [SCREEN_WORDS]uint16
}

// SetWord stores a framebuffer word. Out-of-range offsets are discarded.
func (sc *Screen) SetWord(offset int, value uint16) {
	if offset < 0 || offset >= SCREEN_WORDS {
		return
	}

	sc.words[offset] = value
}

// Word returns a framebuffer word.
func (sc *Screen) Word(offset int) uint16 {
	if offset < 0 || offset >= SCREEN_WORDS {
		return 0
	}

	return sc.words[offset]
}

// Pixel returns the state of the pixel at (x, y).
func (sc *Screen) Pixel(x, y int) bool {
	if x < 0 || x >= SCREEN_WIDTH || y < 0 || y >= SCREEN_HEIGHT {
		return false
	}

	word := sc.words[y*(SCREEN_WIDTH/16)+x/16]

	return (word>>(x%16))&1 != 0
}

// Clear blanks the framebuffer.
func (sc *Screen) Clear() {
	clear(sc.words[:])
}

// Render writes the framebuffer as text, one row per line, '#' for set
// pixels and '.' for clear ones.
func (sc *Screen) Render(w io.Writer) (err error) {
	row := make([]byte, SCREEN_WIDTH+1)
	row[SCREEN_WIDTH] = '\n'

	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			if sc.Pixel(x, y) {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		_, err = w.Write(row)
		if err != nil {
			return fmt.Errorf("screen row %d: %w", y, err)
		}
	}

	return
}
