package cpu

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_NAME     = TokenKind(0) // name
	TOKEN_NUMBER   = TokenKind(1) // number
	TOKEN_LABEL    = TokenKind(2) // label
	TOKEN_COMMA    = TokenKind(3) // comma
	TOKEN_PAREN    = TokenKind(4) // paren
	TOKEN_OPERATOR = TokenKind(5) // operator
	TOKEN_LF       = TokenKind(6) // newline
)

// Position is a location in assembly source.
type Position struct {
	Filename string // Source file name.
	Row      int    // Line number, from 1.
	Column   int    // Column, from 1.
	Line     string // Text of the line.
}

func (pos Position) String() string {
	return fmt.Sprintf("%v:%d:%d", pos.Filename, pos.Row, pos.Column)
}

// Arrow returns a caret pointing at the column, indented to line up
// underneath Line.
func (pos Position) Arrow() string {
	var prefix strings.Builder
	for n, ch := range pos.Line {
		if n >= pos.Column-1 {
			break
		}
		if ch == '\t' {
			prefix.WriteRune('\t')
		} else {
			prefix.WriteRune(' ')
		}
	}
	return prefix.String() + "^"
}

// Token is a lexical token.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int // Parsed value of a TOKEN_NUMBER.
	Pos   Position
}

// Is returns true if the token is of kind, with the given text.
func (tok Token) Is(kind TokenKind, text string) bool {
	return tok.Kind == kind && tok.Text == text
}

func (tok Token) String() string {
	if tok.Kind == TOKEN_LF {
		return tok.Kind.String()
	}
	return fmt.Sprintf("%v(%v)", tok.Kind, tok.Text)
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// parseNumber parses a decimal or 0x prefixed hexadecimal number.
func parseNumber(text string) (value int, err error) {
	base := 10
	digits := text
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		base = 16
		digits = text[2:]
	}
	v64, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		err = ErrNumberInvalid
		return
	}
	value = int(v64)
	return
}

// Lex returns the tokens of the input. Lexing stops at the first error.
func Lex(input string, filename string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		row := 1
		start := 0
		line := input
		if end := strings.IndexByte(input, '\n'); end >= 0 {
			line = input[:end]
		}

		pos := func(n int) Position {
			return Position{Filename: filename, Row: row, Column: n - start + 1, Line: line}
		}

		for n := 0; n < len(input); {
			ch := input[n]
			switch {
			case ch == '\n':
				if !yield(Token{Kind: TOKEN_LF, Text: "\n", Pos: pos(n)}, nil) {
					return
				}
				n++
				row++
				start = n
				line = input[n:]
				if end := strings.IndexByte(line, '\n'); end >= 0 {
					line = line[:end]
				}
			case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v':
				n++
			case ch == ';':
				for n < len(input) && input[n] != '\n' {
					n++
				}
			case ch == ',':
				if !yield(Token{Kind: TOKEN_COMMA, Text: ",", Pos: pos(n)}, nil) {
					return
				}
				n++
			case ch == '[' || ch == ']':
				if !yield(Token{Kind: TOKEN_PAREN, Text: input[n : n+1], Pos: pos(n)}, nil) {
					return
				}
				n++
			case ch == '+' || ch == '-' || ch == '*' || ch == '/':
				if !yield(Token{Kind: TOKEN_OPERATOR, Text: input[n : n+1], Pos: pos(n)}, nil) {
					return
				}
				n++
			case ch == ':' && n+1 < len(input) && isNameChar(input[n+1]):
				end := n + 1
				for end < len(input) && isNameChar(input[end]) {
					end++
				}
				if !yield(Token{Kind: TOKEN_LABEL, Text: input[n:end], Pos: pos(n)}, nil) {
					return
				}
				n = end
			case isNameStart(ch):
				end := n
				for end < len(input) && isNameChar(input[end]) {
					end++
				}
				if !yield(Token{Kind: TOKEN_NAME, Text: input[n:end], Pos: pos(n)}, nil) {
					return
				}
				n = end
			case ch >= '0' && ch <= '9':
				end := n
				for end < len(input) && isNameChar(input[end]) {
					end++
				}
				token := Token{Kind: TOKEN_NUMBER, Text: input[n:end], Pos: pos(n)}
				value, err := parseNumber(token.Text)
				if err != nil {
					yield(Token{}, syntaxError(token, err))
					return
				}
				token.Value = value
				if !yield(token, nil) {
					return
				}
				n = end
			default:
				r, size := utf8.DecodeRuneInString(input[n:])
				token := Token{Text: input[n : n+size], Pos: pos(n)}
				yield(Token{}, syntaxError(token, ErrCharacter(r)))
				return
			}
		}
	}
}

// LexAll collects the tokens of the input.
func LexAll(input string, filename string) (tokens []Token, err error) {
	for token, err := range Lex(input, filename) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return
}
