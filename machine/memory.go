package machine

// Memory map constants for the Hack platform.
const (
	MEM_SIZE    = 32768 // Words of addressable data memory.
	SCREEN_BASE = 16384 // First word of the memory mapped screen.
	SCREEN_SIZE = 8192  // Words of screen memory (512x256 pixels).
	KBD_ADDR    = 24576 // Read-only keyboard cell.
)

// KeySource supplies the scan code visible at the keyboard cell.
type KeySource interface {
	Key() uint16
}

// PixelSink observes writes to the memory mapped screen range.
type PixelSink interface {
	SetWord(offset int, value uint16)
}

// Memory is the word-addressed data RAM, with the screen and keyboard
// devices mapped into the address space.
type Memory struct {
	Keyboard KeySource // Optional keyboard device.
	Screen   PixelSink // Optional screen device.

	words []uint16
}

// NewMemory creates a zeroed data memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		words: make([]uint16, MEM_SIZE),
	}

	return
}

// Reset zeroes all memory words.
func (mem *Memory) Reset() {
	clear(mem.words)
}

// Read returns the word at the given address. The keyboard cell reads
// through to the keyboard device when one is attached. Addresses are
// truncated to 15 bits, as on the hardware.
func (mem *Memory) Read(addr uint16) (value uint16) {
	addr &= 0x7fff

	if addr == KBD_ADDR && mem.Keyboard != nil {
		mem.words[addr] = mem.Keyboard.Key()
	}

	return mem.words[addr]
}

// Write stores a word at the given address. Writes to the keyboard cell
// are discarded; writes into the screen range are forwarded to the screen
// device. Addresses are truncated to 15 bits.
func (mem *Memory) Write(addr uint16, value uint16) {
	addr &= 0x7fff

	if addr == KBD_ADDR {
		return
	}

	mem.words[addr] = value

	if mem.Screen != nil && addr >= SCREEN_BASE && addr < SCREEN_BASE+SCREEN_SIZE {
		mem.Screen.SetWord(int(addr-SCREEN_BASE), value)
	}
}
