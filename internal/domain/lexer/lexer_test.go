package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestBasicOperators(t *testing.T) {
	toks := allTokens("a + b - c * d / e ^ f")
	got := types(toks)
	want := []TokenType{IDENT, PLUS, IDENT, MINUS, IDENT, ASTERISK, IDENT, SLASH, IDENT, CARET, IDENT, EOF}
	assert.Equal(t, want, got)
}

func TestRelationalOperators(t *testing.T) {
	toks := allTokens("x <= y")
	require.Len(t, toks, 4)
	assert.Equal(t, LESSEQ, toks[1].Type)
	assert.Equal(t, "<=", toks[1].Literal)

	toks = allTokens("x >= y")
	assert.Equal(t, GREATEREQ, toks[1].Type)
}

func TestDecimalNumber(t *testing.T) {
	toks := allTokens("3.14")
	require.Len(t, toks, 2)
	assert.Equal(t, NUMBER, toks[0].Type)
	assert.Equal(t, "3.14", toks[0].Literal)
}

func TestCommand(t *testing.T) {
	toks := allTokens(`\frac{a}{b}`)
	want := []TokenType{COMMAND, LBRACE, IDENT, RBRACE, LBRACE, IDENT, RBRACE, EOF}
	assert.Equal(t, want, types(toks))
	assert.Equal(t, "frac", toks[0].Literal)
}

func TestBeginEnd(t *testing.T) {
	toks := allTokens(`\begin{cases}`)
	assert.Equal(t, BEGIN, toks[0].Type)
	toks = allTokens(`\end{cases}`)
	assert.Equal(t, END, toks[0].Type)
}

func TestImplicitMultiplication(t *testing.T) {
	toks := allTokens("2x")
	want := []TokenType{NUMBER, IMPLICIT_MUL, IDENT, EOF}
	assert.Equal(t, want, types(toks))
}

func TestImplicitMultiplicationBeforeParen(t *testing.T) {
	toks := allTokens("x(y+1)")
	want := []TokenType{IDENT, IMPLICIT_MUL, LPAREN, IDENT, PLUS, NUMBER, RPAREN, EOF}
	assert.Equal(t, want, types(toks))
}

func TestNoImplicitMultiplicationAfterOperator(t *testing.T) {
	toks := allTokens("2 + x")
	want := []TokenType{NUMBER, PLUS, IDENT, EOF}
	assert.Equal(t, want, types(toks))
}

func TestPositionsTrackByteOffset(t *testing.T) {
	toks := allTokens("x + 1")
	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, 2, toks[1].Pos)
	assert.Equal(t, 4, toks[2].Pos)
}

func TestIllegalCharacter(t *testing.T) {
	toks := allTokens("x @ y")
	assert.Equal(t, ILLEGAL, toks[1].Type)
}
