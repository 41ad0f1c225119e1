package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hackmach/hackmach/emulator"
	"github.com/hackmach/hackmach/machine"
)

func main() {
	var compile string
	var output string
	var save bool
	var input string
	var r0 int
	var r1 int
	var ticks int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&output, "o", "", ".hack image to write")
	flag.BoolVar(&save, "s", false, "Save the image, do not execute")
	flag.StringVar(&input, "i", "", "Keyboard input file")
	flag.IntVar(&r0, "r0", 0, "Preset RAM[0] before the run")
	flag.IntVar(&r1, "r1", 0, "Preset RAM[1] before the run")
	flag.IntVar(&ticks, "n", emulator.DEFAULT_TICK_LIMIT, "Tick limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := &machine.Program{}

	// Assemble a new instruction image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &machine.Assembler{}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(output) != 0 {
		err := os.WriteFile(output, []byte(prog.Text()+"\n"), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if !save {
		emu := emulator.NewEmulator()
		emu.Program = prog
		emu.Verbose = verbose
		emu.TickLimit = ticks

		if len(input) != 0 {
			inf, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer inf.Close()
			emu.Keyboard.Input = inf
		} else {
			emu.Keyboard.Input = os.Stdin
		}

		if err := emu.Reset(); err != nil {
			log.Fatal(err)
		}

		emu.Machine.RAM.Write(0, uint16(r0))
		emu.Machine.RAM.Write(1, uint16(r1))

		if err := emu.Run(); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("R0=%v R1=%v R2=%v ticks=%v\n",
			emu.Machine.RAM.Read(0),
			emu.Machine.RAM.Read(1),
			emu.Machine.RAM.Read(2),
			emu.Machine.Ticks)
	}
}
