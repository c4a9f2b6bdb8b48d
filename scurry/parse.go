package scurry

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// SyntaxError reports malformed source. Lexing and parsing stop at the
// first one; there is no recovery.
type SyntaxError struct {
	Line    int
	Message string
	Source  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("--- Parse error on line %d :\n--- %s :\n\"%s\"", e.Line, e.Message, e.Source)
}

func syntaxErrorAt(tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: tok.Line, Message: fmt.Sprintf(format, args...), Source: tok.Source}
}

// ParseFile reads, tokenizes and parses a whole program.
func ParseFile(filename string) (Block, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading file: %s", filename)
	}
	return ParseString(string(b))
}

func ParseString(src string) (Block, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds the program block. The token stream must end with EOF and
// nothing may follow the last expression of the program.
func Parse(tokens []Token) (Block, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF, Line: -1, Source: "EOF"})
	}
	p := &parser{tokens: tokens}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, syntaxErrorAt(tok, "syntax error, unexpected token")
	}
	return block, nil
}

type parser struct {
	tokens []Token
	pos    int
}

// peek never runs past the final EOF token.
func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// block reads expr (';' expr)* and stops, without consuming it, at the
// first token that cannot start an expression. Whoever asked for the
// block decides whether that token is acceptable.
func (p *parser) block() (Block, error) {
	block := Block{}
	for {
		e, ok, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !ok {
			return block, nil
		}
		block = append(block, e)
		if tok := p.peek(); tok.Kind != Semicolon {
			return nil, syntaxErrorAt(tok, "semicolon expected after expression, got %s", tok.Kind)
		}
		p.advance()
	}
}

// expression reports ok=false, consuming nothing, when the next token
// does not start an expression.
func (p *parser) expression() (Expression, bool, error) {
	tok := p.peek()
	switch tok.Kind {
	case TrueTok:
		p.advance()
		return BooleanExpr(true), true, nil
	case FalseTok:
		p.advance()
		return BooleanExpr(false), true, nil
	case IntegerTok:
		p.advance()
		return IntegerExpr(tok.Int), true, nil
	case FloatTok:
		p.advance()
		return FloatExpr(tok.Float), true, nil
	case StringTok:
		p.advance()
		return StringExpr(tok.Text), true, nil
	case OpenBracket:
		items, err := p.list()
		if err != nil {
			return nil, false, err
		}
		return ListExpr{Items: items}, true, nil
	case Ident, Colon:
		def, ok, err := p.definition()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return def, true, nil
		}
		call, err := p.call()
		if err != nil {
			return nil, false, err
		}
		return call, true, nil
	}
	return nil, false, nil
}

// definition tries (identifier)? ':' block. When the tokens do not form
// a definition the position is restored so a call can be parsed instead.
func (p *parser) definition() (*Definition, bool, error) {
	start := p.pos
	tok := p.peek()
	def := &Definition{Line: tok.Line}
	switch {
	case tok.Kind == Colon:
		p.advance()
	case tok.Kind == Ident && p.peekAt(1).Kind == Colon:
		def.ID = tok.Text
		p.advance()
		p.advance()
	default:
		p.pos = start
		return nil, false, nil
	}
	body, err := p.block()
	if err != nil {
		return nil, false, err
	}
	def.Body = body
	return def, true, nil
}

func (p *parser) call() (*Call, error) {
	tok := p.advance()
	if tok.Kind != Ident {
		return nil, syntaxErrorAt(tok, "identifier expected, got %s", tok.Kind)
	}
	c := &Call{ID: tok.Text, Args: NewList[Expression](), Line: tok.Line}
	if p.peek().Kind == OpenBracket {
		args, err := p.list()
		if err != nil {
			return nil, err
		}
		c.Args = args
	}
	return c, nil
}

// list reads '[' expr* ']'.
func (p *parser) list() (*List[Expression], error) {
	p.advance()
	b := newListBuilder[Expression]()
	for {
		tok := p.peek()
		if tok.Kind == CloseBracket {
			p.advance()
			return b.list(), nil
		}
		e, ok, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, syntaxErrorAt(tok, "expression or close bracket expected")
		}
		b.push(e)
	}
}
