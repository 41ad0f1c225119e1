package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboardIdle(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	assert.Equal(uint16(0), kb.Key())
}

func TestKeyboardKeys(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{Input: strings.NewReader("Hi\n")}

	assert.Equal(uint16('H'), kb.Key())
	assert.Equal(uint16('i'), kb.Key())
	assert.Equal(KEY_NEWLINE, kb.Key())

	// Exhausted input reads as an idle keyboard, repeatedly.
	assert.Equal(uint16(0), kb.Key())
	assert.Equal(uint16(0), kb.Key())
}

func TestKeyboardControlCodes(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{Input: strings.NewReader("\x08\x7f\x1b")}

	assert.Equal(KEY_BACKSPACE, kb.Key())
	assert.Equal(KEY_BACKSPACE, kb.Key())
	assert.Equal(KEY_ESCAPE, kb.Key())
}

func TestKeyboardRewind(t *testing.T) {
	assert := assert.New(t)

	reader := strings.NewReader("a")
	kb := &Keyboard{Input: reader}

	assert.Equal(uint16('a'), kb.Key())
	assert.Equal(uint16(0), kb.Key())

	reader.Seek(0, 0)
	kb.Rewind()
	assert.Equal(uint16('a'), kb.Key())
}
