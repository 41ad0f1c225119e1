package jack

import (
	"errors"

	"github.com/hackmach/hackmach/translate"
)

var f = translate.From

var (
	ErrNoTokens       = errors.New(f("no tokens to compile"))
	ErrNoClass        = errors.New(f("everything must be wrapped in a class"))
	ErrClassMalformed = errors.New(f("class not correctly formed"))
	ErrTrailingTokens = errors.New(f("tokens after the closing brace"))
	ErrUnexpectedEnd  = errors.New(f("unexpected end of input"))
	ErrDoSyntax       = errors.New(f("do statement must end with ';'"))
)

type ErrIntRange string

func (err ErrIntRange) Error() string {
	return f("'%v' is outside 0..32767", string(err))
}

type ErrStatementInvalid string

func (err ErrStatementInvalid) Error() string {
	return f("'%v' cannot start a statement", string(err))
}
