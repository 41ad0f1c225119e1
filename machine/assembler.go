package machine

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// CommandType distinguishes the three Hack source command forms.
type CommandType int

const (
	A_COMMAND = CommandType(0) // @value or @symbol
	C_COMMAND = CommandType(1) // dest=comp;jump
	L_COMMAND = CommandType(2) // (LABEL)
)

// Variables named in @-commands are allocated RAM cells from this
// address upward, in order of first appearance.
const VAR_BASE = 16

// Predefined symbols of the Hack platform.
var sysSymbol = map[string]uint16{
	"SP":   0,
	"LCL":  1,
	"ARG":  2,
	"THIS": 3,
	"THAT": 4,

	"R0": 0, "R1": 1, "R2": 2, "R3": 3,
	"R4": 4, "R5": 5, "R6": 6, "R7": 7,
	"R8": 8, "R9": 9, "R10": 10, "R11": 11,
	"R12": 12, "R13": 13, "R14": 14, "R15": 15,

	"SCREEN": SCREEN_BASE,
	"KBD":    KBD_ADDR,
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// CleanLine strips comments and all whitespace from a source line.
// Hack commands never contain spaces, so whitespace inside a command is
// removed rather than preserved.
func CleanLine(line string) string {
	if n := strings.Index(line, "//"); n >= 0 {
		line = line[:n]
	}

	return strings.Join(strings.Fields(line), "")
}

// splitCommand splits a C-command into its dest, comp, and jump parts.
// Missing parts are empty strings.
func splitCommand(cmd string) (dest, comp, jump string) {
	rest := cmd
	if n := strings.IndexByte(rest, '='); n >= 0 {
		dest = rest[:n]
		rest = rest[n+1:]
	}
	if n := strings.IndexByte(rest, ';'); n >= 0 {
		jump = rest[n+1:]
		rest = rest[:n]
	}
	comp = rest

	return
}

// Parser iterates the cleansed commands of a Hack source text.
type Parser struct {
	commands []string
	pos      int
	current  string
}

// NewParser creates a parser over the given source text.
func NewParser(text string) (p *Parser) {
	p = &Parser{}

	for _, line := range strings.Split(text, "\n") {
		cmd := CleanLine(line)
		if len(cmd) > 0 {
			p.commands = append(p.commands, cmd)
		}
	}

	return
}

// HasMoreCommands returns true while commands remain.
func (p *Parser) HasMoreCommands() bool {
	return p.pos < len(p.commands)
}

// Advance moves to the next command and returns it.
func (p *Parser) Advance() string {
	p.current = p.commands[p.pos]
	p.pos += 1
	return p.current
}

// CommandType returns the form of the current command.
func (p *Parser) CommandType() CommandType {
	switch {
	case strings.HasPrefix(p.current, "@"):
		return A_COMMAND
	case strings.HasPrefix(p.current, "("):
		return L_COMMAND
	}
	return C_COMMAND
}

// Symbol returns the symbol or value of an A-command or L-command, and
// "" for a C-command.
func (p *Parser) Symbol() string {
	switch p.CommandType() {
	case A_COMMAND:
		return p.current[1:]
	case L_COMMAND:
		return strings.TrimSuffix(p.current[1:], ")")
	}
	return ""
}

// Dest returns the dest part of the current C-command, or "".
func (p *Parser) Dest() string {
	if p.CommandType() != C_COMMAND {
		return ""
	}
	dest, _, _ := splitCommand(p.current)
	return dest
}

// Comp returns the comp part of the current C-command, or "".
func (p *Parser) Comp() string {
	if p.CommandType() != C_COMMAND {
		return ""
	}
	_, comp, _ := splitCommand(p.current)
	return comp
}

// Jump returns the jump part of the current C-command, or "".
func (p *Parser) Jump() string {
	if p.CommandType() != C_COMMAND {
		return ""
	}
	_, _, jump := splitCommand(p.current)
	return jump
}

// Assembler translates Hack assembly text into instruction words.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction addresses.
	Variable  map[string]uint16 // Map of allocated variable cells.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a numeric word. A-command constants must
// fit in the 15-bit instruction field.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil || v64 < 0 || v64 > 32767 {
		err = ErrValueRange(word)
		return
	}

	value = uint16(v64)

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range sysSymbol {
		pred[key] = starlark.MakeInt(int(val))
	}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-numeric equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 < 0 || st_int64 > 32767 {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine reduces a raw source line to a single cleansed command,
// handling .equ directives, $() evaluations, and label declarations.
func (asm *Assembler) parseLine(line string, lineno int) (cmd string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	if n := strings.Index(line, "//"); n >= 0 {
		line = line[:n]
	}

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	// .equ CONST VALUE
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[fields[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	cmd = strings.Join(fields, "")

	// (LABEL) declarations, possibly several on one line.
	for strings.HasPrefix(cmd, "(") {
		n := strings.IndexByte(cmd, ')')
		if n < 2 {
			err = ErrLabelSyntax
			return
		}
		label := cmd[1:n]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		cmd = cmd[n+1:]
	}

	return
}

// currentAddr gets the address of the next instruction to generate.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + 1
}

// parseCommand assembles a single cleansed command.
func (asm *Assembler) parseCommand(cmd string, lineno int) (err error) {
	var code Code
	var symbol string

	switch {
	case strings.HasPrefix(cmd, "@"):
		word := cmd[1:]
		if len(word) == 0 {
			err = ErrCommandInvalid
			return
		}

		// Check for equate first.
		equate, ok := asm.Equate[word]
		if ok {
			word = equate
		}

		if word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			code = MakeCodeA(value)
		} else {
			// Labels, predefined symbols, and variables are
			// resolved at the end of the parse.
			symbol = word
			code = MakeCodeA(0)
		}
	default:
		dest, comp, jump := splitCommand(cmd)

		var destBits, compBits, jumpBits uint16
		if len(dest) != 0 {
			var ok bool
			destBits, ok = destMap[dest]
			if !ok {
				err = ErrDestInvalid
				return
			}
		}
		compBits, ok := compMap[comp]
		if !ok {
			err = ErrCompInvalid
			return
		}
		if len(jump) != 0 {
			jumpBits, ok = jumpMap[jump]
			if !ok {
				err = ErrJumpInvalid
				return
			}
		}

		code = MakeCodeC(compBits, destBits, jumpBits)
	}

	opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Text: cmd, Code: code, LinkSymbol: symbol}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Variable = make(map[string]uint16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = text

		var cmd string
		cmd, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(cmd) == 0 {
			continue
		}

		err = asm.parseCommand(cmd, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of labels, predefined symbols, and variables.
	// Variables are allocated in order of first appearance.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkSymbol) == 0 {
			continue
		}
		symbol := op.LinkSymbol

		addr, ok := asm.Label[symbol]
		if ok {
			op.Code = MakeCodeA(uint16(addr))
			continue
		}

		value, ok := sysSymbol[symbol]
		if !ok {
			value, ok = asm.Variable[symbol]
			if !ok {
				value = uint16(VAR_BASE + len(asm.Variable))
				asm.Variable[symbol] = value
			}
		}
		op.Code = MakeCodeA(value)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// Assemble translates Hack assembly text into the .hack text image.
func Assemble(input io.Reader) (text string, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	text = prog.Text()

	return
}
