package jack

import (
	"strconv"
	"unicode"
)

// TokenType classifies Jack lexical tokens.
type TokenType int

const (
	KEYWORD      = TokenType(0)
	SYMBOL       = TokenType(1)
	IDENTIFIER   = TokenType(2)
	INT_CONST    = TokenType(3)
	STRING_CONST = TokenType(4)
)

// Token is a single Jack lexical token.
type Token struct {
	Content string
	Type    TokenType
}

func (Token) node() {}

var symbols = map[rune]bool{
	'{': true, '}': true, '(': true, ')': true, '[': true, ']': true,
	'.': true, ',': true, ';': true,
	'+': true, '-': true, '*': true, '/': true,
	'&': true, '|': true, '<': true, '>': true, '=': true, '~': true,
}

var keywords = map[string]bool{
	"class": true, "constructor": true, "function": true, "method": true,
	"field": true, "static": true, "var": true,
	"int": true, "char": true, "boolean": true, "void": true,
	"true": true, "false": true, "null": true, "this": true,
	"let": true, "do": true, "if": true, "else": true,
	"while": true, "return": true,
}

// Tokenize splits Jack source text into tokens. Integer constants are
// range checked against the platform's 15-bit word. Comments are
// recognized only outside string constants.
func Tokenize(text string) (tokens []Token, err error) {
	// finish flushes the collector as a keyword, integer constant, or
	// identifier.
	var collector string
	finish := func() error {
		if len(collector) == 0 {
			return nil
		}

		tt := IDENTIFIER
		if keywords[collector] {
			tt = KEYWORD
		} else if value, perr := strconv.Atoi(collector); perr == nil {
			if value < 0 || value > 32767 {
				return ErrIntRange(collector)
			}
			tt = INT_CONST
		}

		tokens = append(tokens, Token{collector, tt})
		collector = ""
		return nil
	}

	// Quote sections collect verbatim into a string constant.
	var overriding rune

	runes := []rune(text)
	for n := 0; n < len(runes); n++ {
		char := runes[n]

		if overriding != 0 {
			if char == overriding {
				if len(collector) != 0 {
					tokens = append(tokens, Token{collector, STRING_CONST})
					collector = ""
				}
				overriding = 0
			} else {
				collector += string(char)
			}
			continue
		}

		if char == '/' && n+1 < len(runes) {
			switch runes[n+1] {
			case '/':
				if err = finish(); err != nil {
					return
				}
				for n < len(runes) && runes[n] != '\n' {
					n++
				}
				n--
				continue
			case '*':
				if err = finish(); err != nil {
					return
				}
				n += 2
				for n+1 < len(runes) && !(runes[n] == '*' && runes[n+1] == '/') {
					n++
				}
				n++
				continue
			}
		}

		if char == '"' || char == '\'' {
			if err = finish(); err != nil {
				return
			}
			overriding = char
			continue
		}

		switch {
		case unicode.IsSpace(char):
			if err = finish(); err != nil {
				return
			}
		case symbols[char]:
			if err = finish(); err != nil {
				return
			}
			tokens = append(tokens, Token{string(char), SYMBOL})
		default:
			collector += string(char)
		}
	}

	err = finish()

	return
}
