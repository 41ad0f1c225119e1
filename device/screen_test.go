package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenWords(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	assert.Equal(uint16(0), sc.Word(0))

	sc.SetWord(0, 0b101)
	assert.Equal(uint16(0b101), sc.Word(0))

	// Out-of-range offsets are ignored.
	sc.SetWord(-1, 1)
	sc.SetWord(SCREEN_WORDS, 1)
	assert.Equal(uint16(0), sc.Word(-1))
	assert.Equal(uint16(0), sc.Word(SCREEN_WORDS))
}

func TestScreenPixel(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.SetWord(0, 0b101)

	assert.True(sc.Pixel(0, 0))
	assert.False(sc.Pixel(1, 0))
	assert.True(sc.Pixel(2, 0))

	// Word 32 starts row 1.
	sc.SetWord(32, 1)
	assert.True(sc.Pixel(0, 1))

	// Last word of the last row.
	sc.SetWord(SCREEN_WORDS-1, 0x8000)
	assert.True(sc.Pixel(SCREEN_WIDTH-1, SCREEN_HEIGHT-1))

	assert.False(sc.Pixel(-1, 0))
	assert.False(sc.Pixel(0, SCREEN_HEIGHT))
}

func TestScreenClear(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.SetWord(100, 0xffff)
	sc.Clear()
	assert.Equal(uint16(0), sc.Word(100))
}

func TestScreenRender(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.SetWord(0, 0b11)

	var sb strings.Builder
	err := sc.Render(&sb)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	assert.Len(lines, SCREEN_HEIGHT)
	assert.Len(lines[0], SCREEN_WIDTH)
	assert.True(strings.HasPrefix(lines[0], "##."))
	assert.Equal(strings.Repeat(".", SCREEN_WIDTH), lines[1])
}
