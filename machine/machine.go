package machine

import (
	"errors"
	"fmt"
	"log"
)

const (
	ROM_SIZE = 32768 // Words of instruction memory.
)

// Machine is the simulation context for the Hack computer.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	A  uint16 // Address/data register.
	D  uint16 // Data register.
	PC uint16 // Program counter.

	ROM []Code  // Instruction memory.
	RAM *Memory // Data memory, with mapped devices.

	Ticks int // Instructions executed since reset.
}

// NewMachine creates a machine with empty instruction and data memory.
func NewMachine() (m *Machine) {
	m = &Machine{
		ROM: make([]Code, ROM_SIZE),
		RAM: NewMemory(),
	}

	return
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"pc", "a", "d", "m"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", m.PC)
		case "a":
			strval = fmt.Sprintf("%04X", m.A)
		case "d":
			strval = fmt.Sprintf("%04X", m.D)
		case "m":
			strval = fmt.Sprintf("%04X", m.RAM.Read(m.A))
		}
		text += fmt.Sprintf("% 3s: %v\n", reg, strval)
	}

	return
}

// Reset clears the registers, counters, and data memory. The ROM contents
// are preserved.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}

	m.A = 0
	m.D = 0
	m.PC = 0
	m.Ticks = 0
	m.RAM.Reset()
}

// Load replaces the ROM contents with the given instruction words.
func (m *Machine) Load(codes []Code) (err error) {
	if len(codes) > ROM_SIZE {
		return ErrProgramTooLarge
	}

	clear(m.ROM)
	copy(m.ROM, codes)

	return
}

// Tick executes a single instruction cycle. It reports done when the
// program enters its terminal self-jump, the Hack idiom for halting on a
// machine without a halt instruction: either a direct jump-to-self, or
// the canonical `(END) @END / 0;JMP` idle pair.
func (m *Machine) Tick() (done bool, err error) {
	if int(m.PC) >= len(m.ROM) {
		err = ErrPcRange
		return
	}

	code := m.ROM[m.PC]

	if m.Verbose {
		log.Printf("%04x: %v", m.PC, code)
	}

	next, err := m.Execute(code)
	if err != nil {
		return
	}

	m.Ticks += 1

	switch {
	case next == m.PC:
		done = true
	case next+1 == m.PC && int(next) < len(m.ROM):
		// A jump one instruction back is terminal when it lands on
		// an A-instruction reloading its own address. The range check
		// keeps a jump past the ROM from matching PC 0 by wraparound;
		// such a jump faults on the next tick instead.
		idle := m.ROM[next]
		done = idle.IsA() && idle.Value() == next
	}
	m.PC = next

	return
}

// Execute executes a single decoded instruction and returns the next PC.
func (m *Machine) Execute(code Code) (next uint16, err error) {
	next = m.PC + 1

	if code.IsA() {
		m.A = code.Value()
		return
	}

	value, err := m.comp(code)
	if err != nil {
		err = errors.Join(ErrCode(code), err)
		return
	}

	// The M target is addressed by A as it was before this instruction.
	addr := m.A

	dest := code.DestField()
	if dest&DEST_A != 0 {
		m.A = value
	}
	if dest&DEST_D != 0 {
		m.D = value
	}
	if dest&DEST_M != 0 {
		m.RAM.Write(addr, value)
	}

	if jumpTaken(code.JumpField(), value) {
		next = m.A
	}

	return
}

// comp evaluates the comp field of a C-instruction.
func (m *Machine) comp(code Code) (value uint16, err error) {
	bits := code.CompField()

	// The a bit selects M instead of A as the second operand.
	y := m.A
	if bits&0b1000000 != 0 {
		y = m.RAM.Read(m.A)
	}

	switch bits & 0b0111111 {
	case 0b101010: // 0
		value = 0
	case 0b111111: // 1
		value = 1
	case 0b111010: // -1
		value = 0xffff
	case 0b001100: // D
		value = m.D
	case 0b110000: // A or M
		value = y
	case 0b001101: // !D
		value = ^m.D
	case 0b110001: // !A or !M
		value = ^y
	case 0b001111: // -D
		value = -m.D
	case 0b110011: // -A or -M
		value = -y
	case 0b011111: // D+1
		value = m.D + 1
	case 0b110111: // A+1 or M+1
		value = y + 1
	case 0b001110: // D-1
		value = m.D - 1
	case 0b110010: // A-1 or M-1
		value = y - 1
	case 0b000010: // D+A or D+M
		value = m.D + y
	case 0b010011: // D-A or D-M
		value = m.D - y
	case 0b000111: // A-D or M-D
		value = y - m.D
	case 0b000000: // D&A or D&M
		value = m.D & y
	case 0b010101: // D|A or D|M
		value = m.D | y
	default:
		err = ErrCompInvalid
	}

	return
}

// jumpTaken evaluates the jump condition against the signed comp value.
func jumpTaken(jump uint16, value uint16) bool {
	v := int16(value)

	switch {
	case jump&JUMP_LT != 0 && v < 0:
		return true
	case jump&JUMP_EQ != 0 && v == 0:
		return true
	case jump&JUMP_GT != 0 && v > 0:
		return true
	}

	return false
}
