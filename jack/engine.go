package jack

// WrapperType classifies the non-terminal parse tree nodes.
type WrapperType int

const (
	SubroutineDeclaration    = WrapperType(0)
	SubroutineBody           = WrapperType(1)
	VariableDeclaration      = WrapperType(2)
	Statements               = WrapperType(3)
	LetStatement             = WrapperType(4)
	DoStatement              = WrapperType(5)
	ClassVariableDeclaration = WrapperType(6)
	ReturnStatement          = WrapperType(7)
	ParameterList            = WrapperType(8)
	IfStatement              = WrapperType(9)
	Expression               = WrapperType(10)
	Class                    = WrapperType(11)
	Term                     = WrapperType(12)
	ExpressionList           = WrapperType(13)
	WhileStatement           = WrapperType(14)
)

// Node is a parse tree child: a Token or a *Unit.
type Node interface {
	node()
}

// Unit is a non-terminal parse tree node.
type Unit struct {
	Type     WrapperType
	Children []Node
}

func (*Unit) node() {}

// Engine is the recursive descent compilation engine over a token stream.
type Engine struct {
	tokens []Token
	pos    int
}

// NewEngine creates an engine over a token stream. The stream must carry
// a complete class declaration.
func NewEngine(tokens []Token) (eng *Engine, err error) {
	if len(tokens) == 0 {
		err = ErrNoTokens
		return
	}
	if len(tokens) < 4 || tokens[0].Type != KEYWORD || tokens[0].Content != "class" {
		err = ErrNoClass
		return
	}

	eng = &Engine{tokens: tokens}

	return
}

func (eng *Engine) hasMore() bool {
	return eng.pos < len(eng.tokens)
}

func (eng *Engine) advance() (tok Token, err error) {
	if !eng.hasMore() {
		err = ErrUnexpectedEnd
		return
	}

	tok = eng.tokens[eng.pos]
	eng.pos += 1

	return
}

func (eng *Engine) retreat() {
	if eng.pos > 0 {
		eng.pos -= 1
	}
}

// Compile parses the class declaration and returns its parse tree.
func (eng *Engine) Compile() (unit *Unit, err error) {
	// expects beginning `class Name {` and end `}`
	var first, second, third Token
	if first, err = eng.advance(); err != nil {
		return
	}
	if second, err = eng.advance(); err != nil {
		return
	}
	if third, err = eng.advance(); err != nil {
		return
	}
	if first.Content != "class" || second.Type != IDENTIFIER || third.Content != "{" {
		err = ErrClassMalformed
		return
	}

	children := []Node{first, second, third}

	// a class can have class var declarations or subroutine declarations
	for eng.hasMore() {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		var sub *Unit
		switch next.Content {
		case "static", "field":
			if sub, err = eng.compileClassVarDeclaration(next); err != nil {
				return
			}
			children = append(children, sub)
		case "function", "method", "constructor":
			if sub, err = eng.compileSubroutineDeclaration(next); err != nil {
				return
			}
			children = append(children, sub)
		case "}":
			if eng.hasMore() {
				err = ErrTrailingTokens
				return
			}
			children = append(children, next)
		}
	}

	unit = &Unit{Class, children}

	return
}

// compileClassVarDeclaration consumes from the static/field keyword
// through the terminating ';'.
func (eng *Engine) compileClassVarDeclaration(first Token) (unit *Unit, err error) {
	children := []Node{first}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		children = append(children, next)
		if next.Content == ";" {
			break
		}
	}

	unit = &Unit{ClassVariableDeclaration, children}

	return
}

// compileSubroutineDeclaration expects a return type, identifier,
// parameter list, and body after the subroutine keyword.
func (eng *Engine) compileSubroutineDeclaration(first Token) (unit *Unit, err error) {
	children := []Node{first}

	var returnType, identifier, paramStart Token
	if returnType, err = eng.advance(); err != nil {
		return
	}
	if identifier, err = eng.advance(); err != nil {
		return
	}
	if paramStart, err = eng.advance(); err != nil {
		return
	}
	children = append(children, returnType, identifier, paramStart)

	var params []Token
	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == ")" {
			children = append(children, compileParameterList(params), next)
			break
		}
		params = append(params, next)
	}

	var bodyFirst Token
	if bodyFirst, err = eng.advance(); err != nil {
		return
	}
	var body *Unit
	if body, err = eng.compileSubroutineBody(bodyFirst); err != nil {
		return
	}
	children = append(children, body)

	unit = &Unit{SubroutineDeclaration, children}

	return
}

// compileSubroutineBody consumes var declarations and then the statement
// body through the closing brace. first is expected to be the '{'.
func (eng *Engine) compileSubroutineBody(first Token) (unit *Unit, err error) {
	children := []Node{first}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == "var" {
			var decl *Unit
			if decl, err = eng.compileVariableDeclaration(next); err != nil {
				return
			}
			children = append(children, decl)
		} else {
			eng.retreat()
			var more []Node
			if more, err = eng.bodyChildren(); err != nil {
				return
			}
			children = append(children, more...)
			break
		}
	}

	unit = &Unit{SubroutineBody, children}

	return
}

// bodyChildren collects statement blocks up to and including a closing
// brace.
func (eng *Engine) bodyChildren() (children []Node, err error) {
	var seen bool
	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == "}" && seen {
			children = append(children, next)
			return
		}
		eng.retreat()
		var stmts *Unit
		if stmts, err = eng.compileStatements(); err != nil {
			return
		}
		children = append(children, stmts)
		seen = true
	}
}

func (eng *Engine) compileStatements() (unit *Unit, err error) {
	children := []Node{}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		var stmt *Unit
		switch next.Content {
		case "return":
			stmt, err = eng.compileReturnStatement(next)
		case "let":
			stmt, err = eng.compileLetStatement(next)
		case "do":
			stmt, err = eng.compileDoStatement(next)
		case "if":
			stmt, err = eng.compileIfStatement(next)
		case "while":
			stmt, err = eng.compileWhileStatement(next)
		case "}":
			eng.retreat()
			unit = &Unit{Statements, children}
			return
		default:
			err = ErrStatementInvalid(next.Content)
		}
		if err != nil {
			return
		}
		children = append(children, stmt)
	}
}

// compileConditionBody handles the shared `( expression ) { body }` tail
// of if and while statements. allowElse admits `else` continuation
// blocks.
func (eng *Engine) compileConditionBody(children []Node, allowElse bool) (out []Node, err error) {
	out = children

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == ")" {
			out = append(out, next)
			break
		}
		var expr *Unit
		if expr, err = eng.compileExpression(next, ")"); err != nil {
			return
		}
		out = append(out, expr)
	}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == "{" {
			out = append(out, next)
			var more []Node
			if more, err = eng.bodyChildren(); err != nil {
				return
			}
			out = append(out, more...)
		} else if allowElse && next.Content == "else" {
			out = append(out, next)
		} else {
			eng.retreat()
			break
		}
	}

	return
}

func (eng *Engine) compileWhileStatement(first Token) (unit *Unit, err error) {
	var open Token
	if open, err = eng.advance(); err != nil {
		return
	}

	children, err := eng.compileConditionBody([]Node{first, open}, false)
	if err != nil {
		return
	}

	unit = &Unit{WhileStatement, children}

	return
}

func (eng *Engine) compileIfStatement(first Token) (unit *Unit, err error) {
	var open Token
	if open, err = eng.advance(); err != nil {
		return
	}

	children, err := eng.compileConditionBody([]Node{first, open}, true)
	if err != nil {
		return
	}

	unit = &Unit{IfStatement, children}

	return
}

// compileLetStatement expects an identifier, '=', an expression, and ';'.
func (eng *Engine) compileLetStatement(first Token) (unit *Unit, err error) {
	var identifier, assign Token
	if identifier, err = eng.advance(); err != nil {
		return
	}
	if assign, err = eng.advance(); err != nil {
		return
	}
	children := []Node{first, identifier, assign}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == ";" {
			children = append(children, next)
			break
		}
		var expr *Unit
		if expr, err = eng.compileExpression(next, ";"); err != nil {
			return
		}
		children = append(children, expr)
	}

	unit = &Unit{LetStatement, children}

	return
}

func (eng *Engine) compileExpression(first Token, ends ...string) (unit *Unit, err error) {
	children := []Node{}
	if first.Type == SYMBOL {
		children = append(children, first)
	} else {
		children = append(children, compileTerm(first))
	}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		var ended bool
		for _, end := range ends {
			if next.Content == end {
				ended = true
				break
			}
		}
		if ended {
			eng.retreat()
			break
		}
		if next.Type == SYMBOL {
			children = append(children, next)
		} else {
			children = append(children, compileTerm(next))
		}
	}

	unit = &Unit{Expression, children}

	return
}

func compileTerm(first Token) *Unit {
	return &Unit{Term, []Node{first}}
}

// compileDoStatement expects an identifier, an optional '.' qualifier,
// an argument list, and the terminating ';'.
func (eng *Engine) compileDoStatement(first Token) (unit *Unit, err error) {
	var callee, third Token
	if callee, err = eng.advance(); err != nil {
		return
	}
	if third, err = eng.advance(); err != nil { // `(` or `.`
		return
	}
	children := []Node{first, callee, third}

	if third.Content == "." {
		var method, open Token
		if method, err = eng.advance(); err != nil {
			return
		}
		if open, err = eng.advance(); err != nil {
			return
		}
		children = append(children, method, open)
	}

	var args *Unit
	if args, err = eng.compileExpressionList(); err != nil {
		return
	}
	children = append(children, args)

	var closeParen Token
	if closeParen, err = eng.advance(); err != nil {
		return
	}
	children = append(children, closeParen)

	var last Token
	if last, err = eng.advance(); err != nil {
		return
	}
	if last.Content != ";" {
		err = ErrDoSyntax
		return
	}
	children = append(children, last)

	unit = &Unit{DoStatement, children}

	return
}

func (eng *Engine) compileReturnStatement(first Token) (unit *Unit, err error) {
	children := []Node{first}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == ";" {
			children = append(children, next)
			break
		}
		var expr *Unit
		if expr, err = eng.compileExpression(next, ";"); err != nil {
			return
		}
		children = append(children, expr)
	}

	unit = &Unit{ReturnStatement, children}

	return
}

// compileVariableDeclaration consumes from the var keyword through ';'.
func (eng *Engine) compileVariableDeclaration(first Token) (unit *Unit, err error) {
	children := []Node{first}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		children = append(children, next)
		if next.Content == ";" {
			break
		}
	}

	unit = &Unit{VariableDeclaration, children}

	return
}

func compileParameterList(tokens []Token) *Unit {
	children := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		children = append(children, tok)
	}

	return &Unit{ParameterList, children}
}

// compileExpressionList collects the comma separated call arguments up
// to, but not including, the closing ')'.
func (eng *Engine) compileExpressionList() (unit *Unit, err error) {
	children := []Node{}

	for {
		var next Token
		if next, err = eng.advance(); err != nil {
			return
		}
		if next.Content == ")" {
			eng.retreat()
			break
		}
		if next.Content == "," {
			children = append(children, next)
			continue
		}
		var expr *Unit
		if expr, err = eng.compileExpression(next, ")", ","); err != nil {
			return
		}
		children = append(children, expr)
	}

	unit = &Unit{ExpressionList, children}

	return
}
