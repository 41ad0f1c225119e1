package machine

import (
	"fmt"
)

// Code is a single 16-bit Hack instruction word.
//
// A-instruction: 0vvv_vvvv_vvvv_vvvv, loads the 15-bit value into A.
// C-instruction: 111a_cccc_ccdd_djjj, computes the comp field, stores it
// to the dest targets, and jumps on the jump condition.
type Code uint16

// C-instruction field layout.
const (
	CODE_C_PREFIX = uint16(0b111) << 13 // Upper 3 bits of any C-instruction.

	COMP_SHIFT = 6 // comp is bits 6..12 (the a bit plus c1..c6).
	DEST_SHIFT = 3 // dest is bits 3..5.
	JUMP_SHIFT = 0 // jump is bits 0..2.

	COMP_MASK = uint16(0x7f)
	DEST_MASK = uint16(0x7)
	JUMP_MASK = uint16(0x7)
)

// Dest field bits. An instruction may target any combination.
const (
	DEST_M = uint16(0b001) // RAM[A], addressed before A is updated.
	DEST_D = uint16(0b010)
	DEST_A = uint16(0b100)
)

// Jump field bits, combined to form the six conditions plus JMP.
const (
	JUMP_GT = uint16(0b001)
	JUMP_EQ = uint16(0b010)
	JUMP_LT = uint16(0b100)
)

// compMap maps comp field source text to the 7-bit a+cccccc encoding.
var compMap = map[string]uint16{
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"M":   0b1110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"!M":  0b1110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"-M":  0b1110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"M+1": 0b1110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"M-1": 0b1110010,
	"D+A": 0b0000010,
	"D+M": 0b1000010,
	"D-A": 0b0010011,
	"D-M": 0b1010011,
	"A-D": 0b0000111,
	"M-D": 0b1000111,
	"D&A": 0b0000000,
	"D&M": 0b1000000,
	"D|A": 0b0010101,
	"D|M": 0b1010101,
}

// destMap maps dest field text to its 3-bit encoding.
var destMap = map[string]uint16{
	"M":   DEST_M,
	"D":   DEST_D,
	"MD":  DEST_M | DEST_D,
	"A":   DEST_A,
	"AM":  DEST_A | DEST_M,
	"AD":  DEST_A | DEST_D,
	"AMD": DEST_A | DEST_M | DEST_D,
}

// jumpMap maps jump field text to its 3-bit encoding.
var jumpMap = map[string]uint16{
	"JGT": JUMP_GT,
	"JEQ": JUMP_EQ,
	"JGE": JUMP_EQ | JUMP_GT,
	"JLT": JUMP_LT,
	"JNE": JUMP_LT | JUMP_GT,
	"JLE": JUMP_LT | JUMP_EQ,
	"JMP": JUMP_LT | JUMP_EQ | JUMP_GT,
}

var compText map[uint16]string
var destText map[uint16]string
var jumpText map[uint16]string

func init() {
	compText = make(map[uint16]string, len(compMap))
	for text, bits := range compMap {
		compText[bits] = text
	}
	destText = make(map[uint16]string, len(destMap))
	for text, bits := range destMap {
		destText[bits] = text
	}
	jumpText = make(map[uint16]string, len(jumpMap))
	for text, bits := range jumpMap {
		jumpText[bits] = text
	}
}

// MakeCodeA creates an A-instruction loading a 15-bit value into A.
func MakeCodeA(value uint16) Code {
	return Code(value & 0x7fff)
}

// MakeCodeC creates a C-instruction from raw comp, dest, and jump fields.
func MakeCodeC(comp, dest, jump uint16) Code {
	word := CODE_C_PREFIX
	word |= (comp & COMP_MASK) << COMP_SHIFT
	word |= (dest & DEST_MASK) << DEST_SHIFT
	word |= (jump & JUMP_MASK) << JUMP_SHIFT
	return Code(word)
}

// IsA returns true for A-instructions.
func (code Code) IsA() bool {
	return (uint16(code) >> 15) == 0
}

// Value returns the 15-bit constant of an A-instruction.
func (code Code) Value() uint16 {
	return uint16(code) & 0x7fff
}

// CompField returns the 7-bit comp encoding of a C-instruction.
func (code Code) CompField() uint16 {
	return (uint16(code) >> COMP_SHIFT) & COMP_MASK
}

// DestField returns the 3-bit dest encoding of a C-instruction.
func (code Code) DestField() uint16 {
	return (uint16(code) >> DEST_SHIFT) & DEST_MASK
}

// JumpField returns the 3-bit jump encoding of a C-instruction.
func (code Code) JumpField() uint16 {
	return (uint16(code) >> JUMP_SHIFT) & JUMP_MASK
}

// Comp returns the comp field as source text, or "" if not encodable.
func (code Code) Comp() string {
	return compText[code.CompField()]
}

// Dest returns the dest field as source text, or "" for no destination.
func (code Code) Dest() string {
	return destText[code.DestField()]
}

// Jump returns the jump field as source text, or "" for no jump.
func (code Code) Jump() string {
	return jumpText[code.JumpField()]
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if code.IsA() {
		return fmt.Sprintf("@%v", code.Value())
	}

	comp := code.Comp()
	if comp == "" {
		return fmt.Sprintf("0x%04x", uint16(code))
	}

	if dest := code.Dest(); dest != "" {
		out = dest + "="
	}
	out += comp
	if jump := code.Jump(); jump != "" {
		out += ";" + jump
	}

	return
}
