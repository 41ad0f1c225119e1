package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackmach/hackmach/machine"
)

// assembleProgram parses assembly source lines for an emulator test.
func assembleProgram(t *testing.T, lines []string) *machine.Program {
	t.Helper()

	asm := &machine.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.NoError(t, err)

	return prog
}

func TestMultiply(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b     uint16
		expected uint16
	}{
		{0, 5, 0},
		{5, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
		{3, 4, 12},
		{4, 3, 12},
		{1, 32767, 32767},
		{32767, 1, 32767},
		{181, 181, 32761},
	}

	for _, entry := range table {
		product, err := Multiply(entry.a, entry.b)
		assert.NoError(err, "%v*%v", entry.a, entry.b)
		assert.Equal(entry.expected, product, "%v*%v", entry.a, entry.b)
	}
}

func TestMultiplySweep(t *testing.T) {
	assert := assert.New(t)

	for a := uint16(0); a < 12; a++ {
		for b := uint16(0); b < 12; b++ {
			product, err := Multiply(a, b)
			assert.NoError(err, "%v*%v", a, b)
			assert.Equal(a*b, product, "%v*%v", a, b)
		}
	}
}

func TestMultiplyLeavesOperandBIntact(t *testing.T) {
	assert := assert.New(t)

	prog := assembleProgram(t, MultSource)

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())

	emu.Machine.RAM.Write(0, 6)
	emu.Machine.RAM.Write(1, 7)

	assert.NoError(emu.Run())

	// The counter is consumed, the addend survives.
	assert.Equal(uint16(0), emu.Machine.RAM.Read(0))
	assert.Equal(uint16(7), emu.Machine.RAM.Read(1))
	assert.Equal(uint16(42), emu.Machine.RAM.Read(2))
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{"(END)", "@END", "0;JMP"})

	assert.NoError(emu.Reset())
	emu.Machine.RAM.Write(2, 99)
	assert.NoError(emu.Run())

	// A fresh reset clears leftover machine state and rebuilds the
	// line index.
	assert.NoError(emu.Reset())
	assert.Equal(uint16(0), emu.Machine.PC)
	assert.Equal(uint16(0), emu.Machine.RAM.Read(2))
	assert.Equal(2, emu.LineNo())
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{
		"// idle program",
		"@R2",
		"M=0",
		"(END)",
		"@END",
		"0;JMP",
	})
	assert.NoError(emu.Reset())

	assert.Equal(2, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.LineNo())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(5, emu.LineNo())
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{
		"(SPIN)",
		"@R0",
		"M=M+1",
		"@SPIN",
		"0;JMP",
	})
	emu.TickLimit = 100

	assert.NoError(emu.Reset())

	err := emu.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(100, emu.Machine.Ticks)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{"@R0", "M=0"})
	assert.NoError(emu.Reset())

	emu.Machine.PC = 0x9c40

	_, err := emu.Tick()
	assert.ErrorIs(err, machine.ErrPcRange)

	var rerr *ErrRuntime
	assert.ErrorAs(err, &rerr)
	assert.Equal(0, rerr.LineNo)
}

func TestEmulatorKeyboard(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{
		"@KBD",
		"D=M",
		"@R0",
		"M=D",
		"(END)",
		"@END",
		"0;JMP",
	})
	emu.Keyboard.Input = strings.NewReader("A")

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	assert.Equal(uint16('A'), emu.Machine.RAM.Read(0))
}

func TestEmulatorScreen(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assembleProgram(t, []string{
		"@SCREEN",
		"M=-1",
		"(END)",
		"@END",
		"0;JMP",
	})

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	assert.Equal(uint16(0xffff), emu.Screen.Word(0))
	assert.True(emu.Screen.Pixel(0, 0))
	assert.True(emu.Screen.Pixel(15, 0))
	assert.False(emu.Screen.Pixel(16, 0))
}
