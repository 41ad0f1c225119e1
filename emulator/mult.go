package emulator

import (
	"strings"

	"github.com/hackmach/hackmach/machine"
)

// MultSource is the multiplication program: it computes R2 = R0 * R1 by
// repeated addition, accumulating R1 into R2 once per unit of R0. The
// only exit is the count reaching exactly zero, after which the program
// idles in its terminal self-jump.
//
// Preconditions, unchecked: R0 >= 0, R1 >= 0, and R0 * R1 < 32768.
// Violations produce silently incorrect results; the machine offers no
// error signaling.
var MultSource = []string{
	"// Multiplies R0 and R1 and stores the result in R2.",
	"// (R0, R1, R2 refer to RAM[0], RAM[1], and RAM[2], respectively.)",
	"",
	"    @R2",
	"    M=0        // result = 0",
	"(LOOP)",
	"    @R0",
	"    D=M        // D = remaining count",
	"    @END",
	"    D;JEQ      // count exhausted",
	"    @R1",
	"    D=M",
	"    @R2",
	"    M=D+M      // result += R1",
	"    @R0",
	"    M=M-1      // count -= 1",
	"    @LOOP",
	"    0;JMP",
	"(END)",
	"    @END",
	"    0;JMP",
}

// Multiply assembles and runs the multiplication program with the given
// operand cells preset, and returns the product cell.
func Multiply(a, b uint16) (product uint16, err error) {
	asm := &machine.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(MultSource, "\n")))
	if err != nil {
		return
	}

	emu := NewEmulator()
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		return
	}

	emu.Machine.RAM.Write(0, a)
	emu.Machine.RAM.Write(1, b)

	err = emu.Run()
	if err != nil {
		return
	}

	product = emu.Machine.RAM.Read(2)

	return
}
