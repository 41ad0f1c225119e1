package machine

import (
	"errors"

	"github.com/hackmach/hackmach/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrPcRange         = errors.New(f("pc out of range"))
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelSyntax     = errors.New(f("label syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrCommandInvalid  = errors.New(f("command invalid"))
	ErrDestInvalid     = errors.New(f("dest invalid"))
	ErrCompInvalid     = errors.New(f("comp invalid"))
	ErrJumpInvalid     = errors.New(f("jump invalid"))
)

type ErrCode Code

func (ec ErrCode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(ec), Code(ec).String())
}

func (ec ErrCode) Is(err error) (ok bool) {
	_, ok = err.(ErrCode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrValueRange string

func (err ErrValueRange) Error() string {
	return f("'%v' is not a value in 0..32767", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
