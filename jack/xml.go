package jack

import (
	"fmt"
	"strings"
)

// tokenTag maps token types to their XML tags.
var tokenTag = map[TokenType]string{
	INT_CONST:    "integerConstant",
	SYMBOL:       "symbol",
	STRING_CONST: "stringConstant",
	KEYWORD:      "keyword",
	IDENTIFIER:   "identifier",
}

// unitTag maps wrapper types to their XML tags.
var unitTag = map[WrapperType]string{
	SubroutineDeclaration:    "subroutineDec",
	SubroutineBody:           "subroutineBody",
	VariableDeclaration:      "varDec",
	Statements:               "statements",
	LetStatement:             "letStatement",
	DoStatement:              "doStatement",
	ClassVariableDeclaration: "classVarDec",
	ReturnStatement:          "returnStatement",
	ParameterList:            "parameterList",
	IfStatement:              "ifStatement",
	WhileStatement:           "whileStatement",
	Expression:               "expression",
	Class:                    "class",
	Term:                     "term",
	ExpressionList:           "expressionList",
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// formulateLine renders one token as an XML line.
func formulateLine(tag, content string) string {
	return fmt.Sprintf("<%s> %s </%s>", tag, xmlEscaper.Replace(content), tag)
}

// TokensXML renders a token stream in the tokenizer's XML format.
func TokensXML(tokens []Token) string {
	var body strings.Builder

	body.WriteString("<tokens>\n")
	for _, tok := range tokens {
		body.WriteString(formulateLine(tokenTag[tok.Type], tok.Content))
		body.WriteString("\n")
	}
	body.WriteString("</tokens>\n")

	return body.String()
}

// UnitXML renders a parse tree in the compilation engine's XML format,
// indented two spaces per nesting level.
func UnitXML(unit *Unit) string {
	var body strings.Builder
	unitXML(&body, unit, 0)
	return body.String()
}

func unitXML(body *strings.Builder, unit *Unit, level int) {
	indent := strings.Repeat(" ", level)
	tag := unitTag[unit.Type]

	fmt.Fprintf(body, "%s<%s>\n", indent, tag)
	for _, child := range unit.Children {
		switch node := child.(type) {
		case *Unit:
			unitXML(body, node, level+2)
		case Token:
			fmt.Fprintf(body, "%s  %s\n", indent, formulateLine(tokenTag[node.Type], node.Content))
		}
	}
	fmt.Fprintf(body, "%s</%s>\n", indent, tag)
}

// TokensAsXML tokenizes Jack source and renders the token stream as XML.
func TokensAsXML(code string) (xml string, err error) {
	tokens, err := Tokenize(code)
	if err != nil {
		return
	}

	xml = TokensXML(tokens)

	return
}

// CompileAsXML tokenizes and compiles Jack source and renders the parse
// tree as XML.
func CompileAsXML(code string) (xml string, err error) {
	tokens, err := Tokenize(code)
	if err != nil {
		return
	}

	eng, err := NewEngine(tokens)
	if err != nil {
		return
	}

	unit, err := eng.Compile()
	if err != nil {
		return
	}

	xml = UnitXML(unit)

	return
}
