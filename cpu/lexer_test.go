package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	assert := assert.New(t)

	source := ":loop SET [A+0x10], 12 ; comment\n\tjsr loop"
	tokens, err := LexAll(source, "lex.s")
	require.NoError(t, err)

	expected := [](struct {
		kind   TokenKind
		text   string
		value  int
		row    int
		column int
	}){
		{TOKEN_LABEL, ":loop", 0, 1, 1},
		{TOKEN_NAME, "SET", 0, 1, 7},
		{TOKEN_PAREN, "[", 0, 1, 11},
		{TOKEN_NAME, "A", 0, 1, 12},
		{TOKEN_OPERATOR, "+", 0, 1, 13},
		{TOKEN_NUMBER, "0x10", 0x10, 1, 14},
		{TOKEN_PAREN, "]", 0, 1, 18},
		{TOKEN_COMMA, ",", 0, 1, 19},
		{TOKEN_NUMBER, "12", 12, 1, 21},
		{TOKEN_LF, "\n", 0, 1, 33},
		{TOKEN_NAME, "jsr", 0, 2, 2},
		{TOKEN_NAME, "loop", 0, 2, 6},
	}

	require.Equal(t, len(expected), len(tokens))
	for n, entry := range expected {
		token := tokens[n]
		assert.Equal(entry.kind, token.Kind, n)
		assert.Equal(entry.text, token.Text, n)
		assert.Equal(entry.value, token.Value, n)
		assert.Equal(entry.row, token.Pos.Row, n)
		assert.Equal(entry.column, token.Pos.Column, n)
		assert.Equal("lex.s", token.Pos.Filename, n)
	}

	assert.Equal(":loop SET [A+0x10], 12 ; comment", tokens[0].Pos.Line)
	assert.Equal("\tjsr loop", tokens[10].Pos.Line)
}

func TestLexNumbers(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value int
		err   error
	}){
		{"0", 0, nil},
		{"31", 31, nil},
		{"65535", 0xffff, nil},
		{"0x0", 0, nil},
		{"0xBEEF", 0xbeef, nil},
		{"0Xbeef", 0xbeef, nil},
		{"0x10000", 0x10000, nil},
		{"0x", 0, ErrNumberInvalid},
		{"0xg", 0, ErrNumberInvalid},
		{"12abc", 0, ErrNumberInvalid},
		{"0x100000000", 0, ErrNumberInvalid},
	}

	for _, entry := range table {
		tokens, err := LexAll(entry.text, "num.s")
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
			continue
		}
		if assert.NoError(err, entry.text) && assert.Len(tokens, 1, entry.text) {
			assert.Equal(TOKEN_NUMBER, tokens[0].Kind, entry.text)
			assert.Equal(entry.value, tokens[0].Value, entry.text)
		}
	}
}

func TestLexComment(t *testing.T) {
	assert := assert.New(t)

	tokens, err := LexAll("; all comment\n; more\nset", "comment.s")
	require.NoError(t, err)

	kinds := []TokenKind{}
	for _, token := range tokens {
		kinds = append(kinds, token.Kind)
	}
	assert.Equal([]TokenKind{TOKEN_LF, TOKEN_LF, TOKEN_NAME}, kinds)
	assert.Equal(3, tokens[2].Pos.Row)
}

func TestLexErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		char   string
		row    int
		column int
	}){
		{"set a, $1", "$", 1, 8},
		{"set a, b\n  :", ":", 2, 3},
		{"set a, 'c'", "'", 1, 8},
		{"set ä, 1", "ä", 1, 5},
		{"set a, (1)", "(", 1, 8},
	}

	for _, entry := range table {
		_, err := LexAll(entry.source, "err.s")
		assert.ErrorIs(err, ErrCharacterUnknown, entry.source)

		var errSyntax *ErrSyntax
		if assert.True(errors.As(err, &errSyntax), entry.source) {
			assert.Equal(entry.char, errSyntax.Text, entry.source)
			assert.Equal(entry.row, errSyntax.Pos.Row, entry.source)
			assert.Equal(entry.column, errSyntax.Pos.Column, entry.source)
		}
	}
}

func TestLexEarlyStop(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for token, err := range Lex("set a, 1\nset b, 2\n", "stop.s") {
		assert.NoError(err)
		count++
		if token.Kind == TOKEN_LF {
			break
		}
	}
	assert.Equal(5, count)
}

func TestPosition(t *testing.T) {
	assert := assert.New(t)

	pos := Position{Filename: "pos.s", Row: 3, Column: 5, Line: "\tset x, 1"}
	assert.Equal("pos.s:3:5", pos.String())
	assert.Equal("\t   ^", pos.Arrow())

	pos = Position{Filename: "pos.s", Row: 1, Column: 1, Line: "set"}
	assert.Equal("^", pos.Arrow())
}
