// Package emulator composes the Hack machine, an assembled program, and
// the memory mapped devices into a runnable computer.
package emulator

import (
	"github.com/hackmach/hackmach/device"
	"github.com/hackmach/hackmach/machine"
)

// DEFAULT_TICK_LIMIT bounds a Run. The machine's only halt mechanism is
// a terminal self-jump, so a buggy program would otherwise spin forever.
const DEFAULT_TICK_LIMIT = 1 << 24

// Emulator state. Machine + program listing + IO devices.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Program          *machine.Program // Reference to the currently loaded program listing.

	Keyboard device.Keyboard // Keyboard device behind the KBD cell.
	Screen   device.Screen   // Screen device behind the screen range.

	TickLimit int // Maximum ticks for a single Run.

	lines map[uint16]int // PC to source line, indexed on Reset.
}

// NewEmulator creates a new emulator with the devices mapped into the
// machine's memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine:   machine.NewMachine(),
		Program:   &machine.Program{},
		TickLimit: DEFAULT_TICK_LIMIT,
	}

	emu.Machine.RAM.Keyboard = &emu.Keyboard
	emu.Machine.RAM.Screen = &emu.Screen

	return
}

// Reset loads the program image into ROM and clears the machine state
// and devices.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = emu.Verbose

	var codes []machine.Code
	emu.lines = make(map[uint16]int, len(emu.Program.Opcodes))
	for _, op := range emu.Program.Opcodes {
		codes = append(codes, op.Code)
		emu.lines[uint16(op.Addr)] = op.LineNo
	}

	err = emu.Machine.Load(codes)
	if err != nil {
		return
	}

	emu.Machine.Reset()
	emu.Screen.Clear()
	emu.Keyboard.Rewind()

	return
}

// LineNo returns the source line number for the executing instruction,
// or 0 when the PC is outside the program.
func (emu *Emulator) LineNo() int {
	return emu.lines[emu.Machine.PC]
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.Machine.Tick()

	return
}

// Run executes the loaded program until it halts in its terminal
// self-jump, a tick limit is exceeded, or an error occurs.
func (emu *Emulator) Run() (err error) {
	for range emu.TickLimit {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrTickLimit

	return
}
