package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tokenCase struct {
	input    string
	expected []Token
}

func tok(kind Kind, literal string) Token {
	return Token{Kind: kind, Literal: literal}
}

// collect scans every token from input, dropping position info so test
// tables can compare on Kind/Literal alone.
func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var out []Token
	for {
		tk := l.Next()
		tk.Row, tk.Column = 0, 0
		if tk.Kind == EndOfFile {
			break
		}
		out = append(out, tk)
	}
	return out
}

func TestNext_SingleCharacterTokens(t *testing.T) {
	cases := []tokenCase{
		{`( ) { } [ ] | @ , + * / < > = !`, []Token{
			tok(LParen, "("), tok(RParen, ")"),
			tok(LBrace, "{"), tok(RBrace, "}"),
			tok(LBracket, "["), tok(RBracket, "]"),
			tok(Pipe, "|"), tok(At, "@"), tok(Comma, ","),
			tok(Plus, "+"), tok(Asterisk, "*"), tok(Slash, "/"),
			tok(LT, "<"), tok(GT, ">"), tok(Assign, "="), tok(Bang, "!"),
		}},
		{"§", []Token{tok(Section, "§")}},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, collect(t, c.input))
	}
}

func TestNext_MultiCharacterLookahead(t *testing.T) {
	assert.Equal(t, []Token{tok(DoubleColon, "::")}, collect(t, "::"))
	assert.Equal(t, []Token{tok(Illegal, ":")}, collect(t, ":"))
	assert.Equal(t, []Token{tok(Ellipsis, "...")}, collect(t, "..."))
	assert.Equal(t, []Token{tok(DoubleDot, "..")}, collect(t, ".."))
	assert.Equal(t, []Token{tok(Minus, "-"), tok(Ident, "x")}, collect(t, "- x"))
	assert.Equal(t, []Token{tok(Int, "-5")}, collect(t, "-5"))
}

func TestNext_NumericLiterals(t *testing.T) {
	assert.Equal(t, []Token{tok(Int, "42")}, collect(t, "42"))
	assert.Equal(t, []Token{tok(Float, "3.14")}, collect(t, "3.14"))
	assert.Equal(t, []Token{tok(Int, "7"), tok(DoubleDot, "..")}, collect(t, "7.."))
}

func TestNext_StringLiterals(t *testing.T) {
	assert.Equal(t, []Token{tok(String, "hello")}, collect(t, `"hello"`))
	// Missing closing quote is accepted silently.
	assert.Equal(t, []Token{tok(String, "hello")}, collect(t, `"hello`))
}

func TestNext_IdentifiersAndKeywords(t *testing.T) {
	assert.Equal(t, []Token{tok(Ident, "foo")}, collect(t, "foo"))
	assert.Equal(t, []Token{tok(KeywordSet, "set")}, collect(t, "set"))
	assert.Equal(t, []Token{tok(KeywordFn, "fn")}, collect(t, "fn"))
	assert.Equal(t, []Token{tok(KeywordTrue, "true")}, collect(t, "true"))
	assert.Equal(t, []Token{tok(KeywordFalse, "false")}, collect(t, "false"))
	assert.Equal(t, []Token{tok(KeywordIf, "if")}, collect(t, "if"))
	assert.Equal(t, []Token{tok(KeywordWhen, "when")}, collect(t, "when"))
	assert.Equal(t, []Token{tok(KeywordWhile, "while")}, collect(t, "while"))
	assert.Equal(t, []Token{tok(KeywordInclude, "include")}, collect(t, "include"))
}

func TestNext_CommentsAndShebang(t *testing.T) {
	assert.Equal(t, []Token{tok(Int, "1")}, collect(t, "# a comment\n1"))
	assert.Equal(t, []Token{tok(Int, "1")}, collect(t, "#!/usr/bin/env kvist\n1"))
}

func TestNext_PositionTracking(t *testing.T) {
	l := New("12\n §x")
	first := l.Next()
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, 1, first.Column)

	second := l.Next()
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, 2, second.Column)
	assert.Equal(t, Section, second.Kind)

	third := l.Next()
	assert.Equal(t, Ident, third.Kind)
	assert.Equal(t, "x", third.Literal)
}

func TestNext_EndOfFileIsIdempotent(t *testing.T) {
	l := New("")
	assert.Equal(t, EndOfFile, l.Next().Kind)
	assert.Equal(t, EndOfFile, l.Next().Kind)
	assert.Equal(t, EndOfFile, l.Next().Kind)
}

func TestNext_IllegalGlyph(t *testing.T) {
	assert.Equal(t, []Token{tok(Illegal, "$")}, collect(t, "$"))
}
