package jack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeStatement(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Tokenize("let x = 5;")
	assert.NoError(err)

	assert.Equal([]Token{
		{"let", KEYWORD},
		{"x", IDENTIFIER},
		{"=", SYMBOL},
		{"5", INT_CONST},
		{";", SYMBOL},
	}, tokens)
}

func TestTokenizeSymbolsWithoutSpaces(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Tokenize("do Output.print(x);")
	assert.NoError(err)

	assert.Equal([]Token{
		{"do", KEYWORD},
		{"Output", IDENTIFIER},
		{".", SYMBOL},
		{"print", IDENTIFIER},
		{"(", SYMBOL},
		{"x", IDENTIFIER},
		{")", SYMBOL},
		{";", SYMBOL},
	}, tokens)
}

func TestTokenizeStrings(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Tokenize(`let s = "hi there";`)
	assert.NoError(err)
	assert.Contains(tokens, Token{"hi there", STRING_CONST})

	tokens, err = Tokenize(`let s = 'also quoted';`)
	assert.NoError(err)
	assert.Contains(tokens, Token{"also quoted", STRING_CONST})
}

func TestTokenizeStringWithSlashes(t *testing.T) {
	assert := assert.New(t)

	// Comment markers inside a string constant are content, not
	// comments.
	tokens, err := Tokenize(`let s = "http://x";`)
	assert.NoError(err)

	assert.Equal([]Token{
		{"let", KEYWORD},
		{"s", IDENTIFIER},
		{"=", SYMBOL},
		{"http://x", STRING_CONST},
		{";", SYMBOL},
	}, tokens)

	tokens, err = Tokenize(`let s = "a /* kept */ b";`)
	assert.NoError(err)
	assert.Contains(tokens, Token{"a /* kept */ b", STRING_CONST})
}

func TestTokenizeDivision(t *testing.T) {
	assert := assert.New(t)

	// A lone '/' is the division symbol.
	tokens, err := Tokenize("let x = a / b;")
	assert.NoError(err)

	assert.Equal([]Token{
		{"let", KEYWORD},
		{"x", IDENTIFIER},
		{"=", SYMBOL},
		{"a", IDENTIFIER},
		{"/", SYMBOL},
		{"b", IDENTIFIER},
		{";", SYMBOL},
	}, tokens)
}

func TestTokenizeComments(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"// line comment",
		"let x = 1; // trailing",
		"/* block",
		"   comment */ let y = 2;",
	}, "\n")

	tokens, err := Tokenize(source)
	assert.NoError(err)

	assert.Equal([]Token{
		{"let", KEYWORD},
		{"x", IDENTIFIER},
		{"=", SYMBOL},
		{"1", INT_CONST},
		{";", SYMBOL},
		{"let", KEYWORD},
		{"y", IDENTIFIER},
		{"=", SYMBOL},
		{"2", INT_CONST},
		{";", SYMBOL},
	}, tokens)
}

func TestTokenizeIntRange(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Tokenize("let x = 32767;")
	assert.NoError(err)
	assert.Contains(tokens, Token{"32767", INT_CONST})

	_, err = Tokenize("let x = 32768;")
	var rerr ErrIntRange
	assert.ErrorAs(err, &rerr)
}

func TestTokenizeKeywordLikeIdentifiers(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Tokenize("var int classes;")
	assert.NoError(err)

	assert.Equal([]Token{
		{"var", KEYWORD},
		{"int", KEYWORD},
		{"classes", IDENTIFIER},
		{";", SYMBOL},
	}, tokens)
}

func TestTokensXML(t *testing.T) {
	assert := assert.New(t)

	xml, err := TokensAsXML("if (x < 153) { let s = \"done\"; }")
	assert.NoError(err)

	expected := strings.Join([]string{
		"<tokens>",
		"<keyword> if </keyword>",
		"<symbol> ( </symbol>",
		"<identifier> x </identifier>",
		"<symbol> &lt; </symbol>",
		"<integerConstant> 153 </integerConstant>",
		"<symbol> ) </symbol>",
		"<symbol> { </symbol>",
		"<keyword> let </keyword>",
		"<identifier> s </identifier>",
		"<symbol> = </symbol>",
		"<stringConstant> done </stringConstant>",
		"<symbol> ; </symbol>",
		"<symbol> } </symbol>",
		"</tokens>",
		"",
	}, "\n")

	assert.Equal(expected, xml)
}
