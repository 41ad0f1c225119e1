package machine

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction.
type Opcode struct {
	LineNo int    // Source line number.
	Addr   int    // Instruction address.
	Text   string // Cleansed command text.
	Code   Code   // Assembled instruction word.

	// LinkSymbol names the label, predefined symbol, or variable an
	// A-command refers to, resolved at the end of assembly.
	LinkSymbol string
}

// Program is an assembled instruction listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode holding a given instruction address.
type Debug struct {
	*Opcode
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n := range prog.Opcodes {
		if int(addr) == prog.Opcodes[n].Addr {
			dbg = Debug{Opcode: &prog.Opcodes[n]}
			break
		}
	}

	return
}

// Codes iterates the instruction words by address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint16(op.Addr), op.Code) {
				return
			}
		}
	}
}

// Binary returns the instruction image as words.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint16(code))
	}

	return
}

// Text returns the instruction image in the .hack text format, one
// 16-character bit string per instruction.
func (prog *Program) Text() string {
	lines := make([]string, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		lines = append(lines, fmt.Sprintf("%016b", uint16(code)))
	}

	return strings.Join(lines, "\n")
}
