package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyStub struct {
	code uint16
}

func (ks *keyStub) Key() uint16 {
	return ks.code
}

type screenStub struct {
	offset int
	value  uint16
	writes int
}

func (ss *screenStub) SetWord(offset int, value uint16) {
	ss.offset = offset
	ss.value = value
	ss.writes += 1
}

func TestMemoryReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(uint16(0), mem.Read(100))

	mem.Write(100, 0xbeef)
	assert.Equal(uint16(0xbeef), mem.Read(100))

	mem.Reset()
	assert.Equal(uint16(0), mem.Read(100))
}

func TestMemoryAddressTruncation(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.Write(0x8064, 7)
	assert.Equal(uint16(7), mem.Read(0x0064))
}

func TestMemoryKeyboard(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	// Without a device the keyboard cell reads as idle.
	assert.Equal(uint16(0), mem.Read(KBD_ADDR))

	mem.Keyboard = &keyStub{code: 65}
	assert.Equal(uint16(65), mem.Read(KBD_ADDR))

	// The keyboard cell is read-only.
	mem.Write(KBD_ADDR, 1)
	mem.Keyboard = nil
	assert.Equal(uint16(65), mem.Read(KBD_ADDR))
}

func TestMemoryScreen(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	sink := &screenStub{}
	mem.Screen = sink

	mem.Write(SCREEN_BASE+10, 0xffff)
	assert.Equal(10, sink.offset)
	assert.Equal(uint16(0xffff), sink.value)
	assert.Equal(uint16(0xffff), mem.Read(SCREEN_BASE+10))

	// Writes outside the screen range are not forwarded.
	mem.Write(SCREEN_BASE-1, 1)
	mem.Write(SCREEN_BASE+SCREEN_SIZE, 1)
	assert.Equal(1, sink.writes)
}
