// Package parser turns a kvist token stream into an expression tree.
//
// The parser is a mutually-recursive descent parser with one token of
// lookahead. It never panics on malformed input: every failure is recorded
// as a structured ParseError and parsing resumes, so a single source file
// yields every error it contains in one pass.
package parser

import (
	"fmt"
	"strconv"

	"github.com/kvist-lang/kvist/ast"
	"github.com/kvist-lang/kvist/lexer"
)

// ParseError is one accumulated parse failure, tied to the offending
// token's source position.
type ParseError struct {
	Row     int
	Column  int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("Row %d, Col %d: %s", e.Row, e.Column, e.Message)
}

// Parser holds the current/peek lookahead pair and the errors accumulated
// so far.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	peek    lexer.Token
	errors  []ParseError
}

// New creates a Parser reading from l, primed with its first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.current = l.Next()
	p.peek = l.Next()
	return p
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{Row: tok.Row, Column: tok.Column, Message: fmt.Sprintf(format, args...)})
}

// expect consumes current if it matches kind; otherwise it records an error
// and leaves current in place for the caller to recover from.
func (p *Parser) expect(kind lexer.Kind) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorf(p.current, "expected %s, got %s", kind, p.current.Kind)
}

// Parse consumes the whole token stream, returning every top-level
// expression it could parse and every error it encountered. After an error,
// the parser advances at least one token before retrying, so one bad
// expression never blocks the rest of the file.
func Parse(l *lexer.Lexer) ([]*ast.Node, []ParseError) {
	p := New(l)
	var nodes []*ast.Node
	for p.current.Kind != lexer.EndOfFile {
		before := p.current
		errCount := len(p.errors)
		node := p.parseExpression()
		if len(p.errors) == errCount {
			nodes = append(nodes, node)
		}
		if p.current == before {
			p.advance()
		}
	}
	return nodes, p.errors
}

var literalStart = map[lexer.Kind]bool{
	lexer.Ident:        true,
	lexer.Int:          true,
	lexer.Float:        true,
	lexer.KeywordTrue:  true,
	lexer.KeywordFalse: true,
	lexer.LParen:       true,
}

// parseExpression is the top of the dispatch: it resolves the three `(`
// cases from the grammar, then falls through to parsePrimary for anything
// that isn't a parenthesised form.
func (p *Parser) parseExpression() *ast.Node {
	if p.current.Kind == lexer.LParen {
		if literalStart[p.peek.Kind] {
			return p.parseExpressionLiteral()
		}
		if p.peek.Kind == lexer.RParen {
			tok := p.current
			p.advance()
			p.advance()
			return &ast.Node{Token: tok, Kind: ast.ExpressionLiteral}
		}
		p.advance() // strip the opening paren
		inner := p.parseExpression()
		p.expect(lexer.RParen)
		return inner
	}
	return p.parsePrimary()
}

func (p *Parser) parseExpressionLiteral() *ast.Node {
	tok := p.current
	p.advance()
	var elements []*ast.Node
	for p.current.Kind != lexer.RParen && p.current.Kind != lexer.EndOfFile {
		elements = append(elements, p.parseExpression())
	}
	p.expect(lexer.RParen)
	return &ast.Node{Token: tok, Kind: ast.ExpressionLiteral, Elements: elements}
}

func (p *Parser) parsePrimary() *ast.Node {
	switch p.current.Kind {
	case lexer.Ident:
		return p.parseIdentifier()
	case lexer.Int:
		return p.parseInteger()
	case lexer.Float:
		return p.parseFloatLiteral()
	case lexer.KeywordTrue, lexer.KeywordFalse:
		return p.parseBoolean()
	case lexer.String:
		return p.parseString()
	case lexer.LBracket:
		return p.parseArray()
	case lexer.At:
		return p.parseIndex()
	case lexer.DoubleDot:
		return p.parseSpread()
	case lexer.KeywordSet:
		return p.parseSet()
	case lexer.KeywordIf:
		return p.parseIf()
	case lexer.KeywordWhen:
		return p.parseWhen()
	case lexer.KeywordWhile:
		return p.parseWhile()
	case lexer.KeywordInclude:
		return p.parseInclude()
	case lexer.KeywordFn:
		return p.parseFunction()
	case lexer.Section:
		return p.parseSection()
	case lexer.Plus, lexer.Minus, lexer.Asterisk, lexer.Slash,
		lexer.LT, lexer.GT, lexer.Assign, lexer.Bang:
		return p.parseOperator()
	default:
		tok := p.current
		p.errorf(tok, "unexpected token %s(%q)", tok.Kind, tok.Literal)
		p.advance()
		return &ast.Node{Token: tok, Kind: ast.IdentifierNode, Text: tok.Literal}
	}
}

func (p *Parser) parseIdentifier() *ast.Node {
	tok := p.current
	p.advance()
	return &ast.Node{Token: tok, Kind: ast.IdentifierNode, Text: tok.Literal}
}

func (p *Parser) parseInteger() *ast.Node {
	tok := p.current
	p.advance()
	n, err := strconv.ParseInt(tok.Literal, 10, 32)
	if err != nil {
		p.errorf(tok, "invalid integer literal %q", tok.Literal)
	}
	return &ast.Node{Token: tok, Kind: ast.IntegerNode, Int: int32(n)}
}

func (p *Parser) parseFloatLiteral() *ast.Node {
	tok := p.current
	p.advance()
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok, "invalid float literal %q", tok.Literal)
	}
	return &ast.Node{Token: tok, Kind: ast.FloatNode, Float64: f}
}

func (p *Parser) parseBoolean() *ast.Node {
	tok := p.current
	p.advance()
	return &ast.Node{Token: tok, Kind: ast.BooleanNode, Text: tok.Literal}
}

func (p *Parser) parseString() *ast.Node {
	tok := p.current
	p.advance()
	return &ast.Node{Token: tok, Kind: ast.StringNode, Text: tok.Literal}
}

func (p *Parser) parseArray() *ast.Node {
	tok := p.current
	p.advance() // consume [
	var elements []*ast.Node
	for p.current.Kind != lexer.RBracket && p.current.Kind != lexer.EndOfFile {
		elements = append(elements, p.parseExpression())
	}
	p.expect(lexer.RBracket)
	return &ast.Node{Token: tok, Kind: ast.ArrayNode, Elements: elements}
}

func (p *Parser) parseIndex() *ast.Node {
	tok := p.current
	p.advance() // consume @
	index := p.parseExpression()
	operand := p.parseExpression()
	return &ast.Node{Token: tok, Kind: ast.IndexNode, Index: index, Operand: operand}
}

func (p *Parser) parseSpread() *ast.Node {
	tok := p.current
	p.advance() // consume ..
	child := p.parseExpression()
	return &ast.Node{Token: tok, Kind: ast.SpreadNode, Child: child}
}

func (p *Parser) parseSet() *ast.Node {
	tok := p.current
	p.advance() // consume 'set'
	var bindings []ast.Binding
	for p.current.Kind == lexer.LParen {
		p.advance() // consume (
		if p.current.Kind != lexer.Ident {
			p.errorf(p.current, "expected identifier in set binding, got %s", p.current.Kind)
		}
		name := p.parseIdentifier()
		value := p.parseExpression()
		p.expect(lexer.RParen)
		bindings = append(bindings, ast.Binding{Name: name, Value: value})
	}
	return &ast.Node{Token: tok, Kind: ast.SetNode, Bindings: bindings}
}

func (p *Parser) parseIf() *ast.Node {
	tok := p.current
	p.advance() // consume 'if'
	cond := p.parseExpression()
	cons := p.parseExpression()
	var alt *ast.Node
	if p.current.Kind != lexer.RParen && p.current.Kind != lexer.EndOfFile {
		alt = p.parseExpression()
	}
	return &ast.Node{Token: tok, Kind: ast.IfNode, Condition: cond, Consequence: cons, Alternative: alt}
}

func (p *Parser) parseWhen() *ast.Node {
	tok := p.current
	p.advance() // consume 'when'
	var branches []ast.WhenBranch
	for p.current.Kind != lexer.RParen && p.current.Kind != lexer.EndOfFile {
		cond := p.parseExpression()
		if p.current.Kind == lexer.RParen || p.current.Kind == lexer.EndOfFile {
			p.errorf(tok, "when condition with no consequence")
			break
		}
		cons := p.parseExpression()
		branches = append(branches, ast.WhenBranch{Condition: cond, Consequence: cons})
	}
	return &ast.Node{Token: tok, Kind: ast.WhenNode, Branches: branches}
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.current
	p.advance() // consume 'while'
	cond := p.parseExpression()
	var body *ast.Node
	if p.current.Kind != lexer.RParen && p.current.Kind != lexer.EndOfFile {
		body = p.parseExpression()
	}
	return &ast.Node{Token: tok, Kind: ast.WhileNode, Condition: cond, Body: body}
}

func (p *Parser) parseInclude() *ast.Node {
	tok := p.current
	p.advance() // consume 'include'
	child := p.parseExpression()
	return &ast.Node{Token: tok, Kind: ast.IncludeNode, Child: child}
}

func (p *Parser) parseSection() *ast.Node {
	tok := p.current
	p.advance() // consume §
	child := p.parseExpression()
	return &ast.Node{Token: tok, Kind: ast.SectionNode, Child: child}
}

func (p *Parser) parseFunction() *ast.Node {
	tok := p.current
	p.advance() // consume 'fn'
	p.expect(lexer.Pipe)

	var params []string
	vararg := ""
	hasVararg := false
	for p.current.Kind != lexer.Pipe && p.current.Kind != lexer.EndOfFile {
		switch {
		case p.current.Kind == lexer.Ellipsis:
			p.advance()
			if p.current.Kind != lexer.Ident {
				p.errorf(p.current, "expected identifier after ... in parameter list")
				break
			}
			vararg = p.current.Literal
			hasVararg = true
			p.advance()
		case p.current.Kind == lexer.Ident:
			params = append(params, p.current.Literal)
			p.advance()
		default:
			p.errorf(p.current, "unexpected token %s in parameter list", p.current.Kind)
			p.advance()
		}
	}
	p.expect(lexer.Pipe)
	body := p.parseExpression()
	return &ast.Node{
		Token: tok, Kind: ast.FunctionNode,
		Params: params, Vararg: vararg, HasVararg: hasVararg, FuncBody: body,
	}
}

func (p *Parser) parseOperator() *ast.Node {
	tok := p.current
	p.advance()
	var operands []*ast.Node
	for p.current.Kind != lexer.RParen && p.current.Kind != lexer.EndOfFile {
		operands = append(operands, p.parseExpression())
	}
	return &ast.Node{Token: tok, Kind: ast.OperatorNode, Operator: tok.Literal, Operands: operands}
}
