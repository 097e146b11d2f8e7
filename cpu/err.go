package cpu

import (
	"errors"
	"strings"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Lexer errors
	ErrCharacterUnknown = errors.New(f("unknown character"))
	ErrNumberInvalid    = errors.New(f("number invalid"))

	// Assembler errors
	ErrLabelDuplicate   = errors.New(f("label already defined"))
	ErrMnemonicInvalid  = errors.New(f("invalid instruction mnemonic"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrValueSyntax      = errors.New(f("unexpected token while parsing value"))
	ErrValueBrackets    = errors.New(f("unexpected surrounding tokens"))
	ErrValueOffset      = errors.New(f("offset needs exactly one register and one constant"))
	ErrValueTokens      = errors.New(f("couldn't parse tokens into a value"))
	ErrPredefineInvalid = errors.New(f("predefine name invalid"))
	ErrPredefineValue   = errors.New(f("predefine value is not an integer"))

	// Image errors
	ErrProgramSize = errors.New(f("program exceeds memory"))
)

// ErrCharacter is an unrecognized source character.
type ErrCharacter rune

func (ec ErrCharacter) Error() string {
	return f("unknown character %q", rune(ec))
}

func (ec ErrCharacter) Is(err error) bool {
	return err == ErrCharacterUnknown
}

// ErrLabelMissing is a reference to a label that was never declared.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrArity is a mnemonic given the wrong number of operands.
type ErrArity struct {
	Expected int
	Found    int
}

func (err ErrArity) Error() string {
	return f("expected %d operands but found %d", err.Expected, err.Found)
}

// ErrSyntax locates an assembly failure in the source text.
type ErrSyntax struct {
	Pos  Position
	Text string
	Err  error
}

func (err *ErrSyntax) Error() string {
	text := strings.ReplaceAll(err.Text, "\n", "\\n")
	return f("%v: %v (near '%v')\n%v\n%v", err.Pos, err.Err, text, err.Pos.Line, err.Pos.Arrow())
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// syntaxError wraps err with the position of token.
func syntaxError(token Token, err error) error {
	return &ErrSyntax{Pos: token.Pos, Text: token.Text, Err: err}
}

// ErrPredefine is a predefined symbol that could not be evaluated.
type ErrPredefine struct {
	Name string
	Err  error
}

func (err *ErrPredefine) Error() string {
	return f("predefine %v: %v", err.Name, err.Err)
}

func (err *ErrPredefine) Unwrap() error {
	return err.Err
}
