package scurry

import (
	"fmt"
	"strconv"
	"strings"
)

type TokenKind uint8

const (
	Colon TokenKind = iota + 1
	Semicolon
	OpenBracket
	CloseBracket
	Ident
	IntegerTok
	FloatTok
	StringTok
	TrueTok
	FalseTok
	EOF
)

var tokenKindNames = map[TokenKind]string{
	Colon:        "COLON",
	Semicolon:    "SEMICOLON",
	OpenBracket:  "OPENBRACKET",
	CloseBracket: "CLOSEBRACKET",
	Ident:        "ID",
	IntegerTok:   "INT",
	FloatTok:     "FLOAT",
	StringTok:    "STRING",
	TrueTok:      "TRUE",
	FalseTok:     "FALSE",
	EOF:          "EOF",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// Token carries its 1-based line number and the text of that line for
// diagnostics. The EOF token is on line -1.
type Token struct {
	Kind   TokenKind
	Text   string
	Int    int64
	Float  float64
	Line   int
	Source string
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, StringTok:
		return fmt.Sprintf("%d: %s %s", t.Line, t.Kind, t.Text)
	case IntegerTok:
		return fmt.Sprintf("%d: %s %d", t.Line, t.Kind, t.Int)
	case FloatTok:
		return fmt.Sprintf("%d: %s %s", t.Line, t.Kind, Float(t.Float))
	}
	return fmt.Sprintf("%d: %s", t.Line, t.Kind)
}

const reserved = ":;[]\"#"

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '　', '\r', '\n', '\t':
		return true
	}
	return false
}

type lexer struct {
	src   []rune
	pos   int
	line  int
	lines []string
}

// Tokenize turns source text into tokens, always ending with EOF.
// Comments run from # to the end of the line and produce no tokens.
func Tokenize(src string) ([]Token, error) {
	lx := &lexer{src: []rune(src), line: 1, lines: splitLines(src)}
	tokens := []Token{}
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

func (lx *lexer) peek() (rune, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.pos], true
}

// advance consumes one rune, keeping the line count in step. A \r\n pair
// counts as a single line break.
func (lx *lexer) advance() rune {
	r := lx.src[lx.pos]
	lx.pos++
	switch r {
	case '\n':
		lx.line++
	case '\r':
		if next, ok := lx.peek(); !ok || next != '\n' {
			lx.line++
		}
	}
	return r
}

func (lx *lexer) token(kind TokenKind, line int) Token {
	source := ""
	if line-1 < len(lx.lines) {
		source = lx.lines[line-1]
	}
	return Token{Kind: kind, Line: line, Source: source}
}

func (lx *lexer) next() (Token, error) {
	for {
		r, ok := lx.peek()
		if !ok {
			return Token{Kind: EOF, Line: -1, Source: "EOF"}, nil
		}
		if isWhitespace(r) {
			lx.advance()
			continue
		}
		line := lx.line
		switch r {
		case ':':
			lx.advance()
			return lx.token(Colon, line), nil
		case ';':
			lx.advance()
			return lx.token(Semicolon, line), nil
		case '[':
			lx.advance()
			return lx.token(OpenBracket, line), nil
		case ']':
			lx.advance()
			return lx.token(CloseBracket, line), nil
		case '#':
			for {
				c, ok := lx.peek()
				if !ok || c == '\n' || c == '\r' {
					break
				}
				lx.advance()
			}
			continue
		case '"':
			lx.advance()
			start := lx.pos
			for {
				c, ok := lx.peek()
				if !ok {
					return Token{}, &SyntaxError{
						Line:    -1,
						Message: fmt.Sprintf("unterminated string in source: %s", string(lx.src[start:])),
						Source:  "EOF",
					}
				}
				if c == '"' {
					break
				}
				lx.advance()
			}
			tok := lx.token(StringTok, line)
			tok.Text = string(lx.src[start:lx.pos])
			lx.advance()
			return tok, nil
		}
		return lx.word(line), nil
	}
}

// word reads an identifier or literal up to whitespace or a reserved
// character. Literals are tried as integer, then float.
func (lx *lexer) word(line int) Token {
	start := lx.pos
	for {
		c, ok := lx.peek()
		if !ok || isWhitespace(c) || strings.ContainsRune(reserved, c) {
			break
		}
		lx.advance()
	}
	s := string(lx.src[start:lx.pos])
	tok := lx.token(Ident, line)
	tok.Text = s
	switch s {
	case "true":
		tok.Kind = TrueTok
		return tok
	case "false":
		tok.Kind = FalseTok
		return tok
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		tok.Kind = IntegerTok
		tok.Int = n
		return tok
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		tok.Kind = FloatTok
		tok.Float = f
		return tok
	}
	return tok
}
