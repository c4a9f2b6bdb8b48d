package scurry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	for i, tt := range []struct {
		input string
		want  []TokenKind
	}{
		{
			input: "",
			want:  []TokenKind{EOF},
		},
		{
			input: "f: 1; ;",
			want:  []TokenKind{Ident, Colon, IntegerTok, Semicolon, Semicolon, EOF},
		},
		{
			input: `+[1 2.5 "s" true false];`,
			want:  []TokenKind{Ident, OpenBracket, IntegerTok, FloatTok, StringTok, TrueTok, FalseTok, CloseBracket, Semicolon, EOF},
		},
		{
			input: "# only a comment",
			want:  []TokenKind{EOF},
		},
		{
			input: "a;# trailing\nb;",
			want:  []TokenKind{Ident, Semicolon, Ident, Semicolon, EOF},
		},
		{
			input: "a　b\tc",
			want:  []TokenKind{Ident, Ident, Ident, EOF},
		},
		{
			input: ">>[\"x\"]",
			want:  []TokenKind{Ident, OpenBracket, StringTok, CloseBracket, EOF},
		},
		{
			input: "-3 -3.5 1e3 _",
			want:  []TokenKind{IntegerTok, FloatTok, FloatTok, Ident, EOF},
		},
	} {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("%d) unexpected error: %v", i, err)
			continue
		}
		assert.Equal(t, tt.want, kinds(tokens), "%d) %q", i, tt.input)
	}
}

func TestTokenValues(t *testing.T) {
	tokens, err := Tokenize(`x 42 0.5 "two words" true`)
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, "x", tokens[0].Text)
	assert.Equal(t, int64(42), tokens[1].Int)
	assert.Equal(t, 0.5, tokens[2].Float)
	assert.Equal(t, "two words", tokens[3].Text)
	assert.Equal(t, TrueTok, tokens[4].Kind)
}

func TestTokenLines(t *testing.T) {
	src := "a;\nb;\r\nc;\rd;"
	tokens, err := Tokenize(src)
	require.NoError(t, err)

	var lines []int
	var sources []string
	for _, tok := range tokens {
		if tok.Kind == Ident {
			lines = append(lines, tok.Line)
			sources = append(sources, tok.Source)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4}, lines)
	assert.Equal(t, []string{"a;", "b;", "c;", "d;"}, sources)

	eof := tokens[len(tokens)-1]
	assert.Equal(t, EOF, eof.Kind)
	assert.Equal(t, -1, eof.Line)
	assert.Equal(t, "EOF", eof.Source)
}

func TestTokenizeStringKeepsNewlines(t *testing.T) {
	tokens, err := Tokenize("\"a\nb\" c")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", tokens[0].Text)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`>>["oops];`)
	require.Error(t, err)

	perr, ok := err.(*SyntaxError)
	require.True(t, ok, "want *SyntaxError, got %T", err)
	assert.Equal(t, -1, perr.Line)
	assert.Equal(t, "EOF", perr.Source)
	assert.Equal(t, "unterminated string in source: oops];", perr.Message)
}

func TestTokenString(t *testing.T) {
	tokens, err := Tokenize("f[1 2.0 \"s\"]")
	require.NoError(t, err)

	var got []string
	for _, tok := range tokens {
		got = append(got, tok.String())
	}
	assert.Equal(t, []string{
		"1: ID f",
		"1: OPENBRACKET",
		"1: INT 1",
		"1: FLOAT 2.0",
		"1: STRING s",
		"1: CLOSEBRACKET",
		"-1: EOF",
	}, got)
}
