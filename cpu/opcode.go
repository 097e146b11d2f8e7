package cpu

import (
	"fmt"
	"strings"
)

// Word is the DCPU-16 machine word.
type Word uint16

// Opcode is an instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_JSR = Opcode(0)  // JSR
	OP_SET = Opcode(1)  // SET
	OP_ADD = Opcode(2)  // ADD
	OP_SUB = Opcode(3)  // SUB
	OP_MUL = Opcode(4)  // MUL
	OP_DIV = Opcode(5)  // DIV
	OP_MOD = Opcode(6)  // MOD
	OP_SHL = Opcode(7)  // SHL
	OP_SHR = Opcode(8)  // SHR
	OP_AND = Opcode(9)  // AND
	OP_BOR = Opcode(10) // BOR
	OP_XOR = Opcode(11) // XOR
	OP_IFE = Opcode(12) // IFE
	OP_IFN = Opcode(13) // IFN
	OP_IFG = Opcode(14) // IFG
	OP_IFB = Opcode(15) // IFB

	OPCODE_COUNT = 16
)

// Extended opcode codes, carried in the A field of a basic opcode 0.
const (
	EXT_JSR = 0x01
)

// LookupOpcode finds the opcode of a mnemonic, ignoring case.
func LookupOpcode(name string) (op Opcode, ok bool) {
	name = strings.ToUpper(name)
	for code := range Opcode(OPCODE_COUNT) {
		if code.String() == name {
			return code, true
		}
	}
	return
}

// Extended returns true if the opcode uses the extended encoding.
func (op Opcode) Extended() bool {
	return op == OP_JSR
}

// Code returns the 4-bit basic code, or the 6-bit extended code.
func (op Opcode) Code() Word {
	if op.Extended() {
		return EXT_JSR
	}
	return Word(op)
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	if op.Extended() {
		return 1
	}
	return 2
}

// Conditional returns true for the IF* family.
func (op Opcode) Conditional() bool {
	return op >= OP_IFE && op <= OP_IFB
}

// Register is a general purpose or special register slot.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A  = Register(0)  // A
	REG_B  = Register(1)  // B
	REG_C  = Register(2)  // C
	REG_X  = Register(3)  // X
	REG_Y  = Register(4)  // Y
	REG_Z  = Register(5)  // Z
	REG_I  = Register(6)  // I
	REG_J  = Register(7)  // J
	REG_PC = Register(8)  // PC
	REG_SP = Register(9)  // SP
	REG_O  = Register(10) // O

	GPR_COUNT      = 8
	REGISTER_COUNT = 11
)

// Mode is the 6-bit operand mode field.
type Mode int

const (
	MODE_REGISTER        = Mode(0x00) // A..J
	MODE_REGISTER_DEREF  = Mode(0x08) // [A]..[J]
	MODE_REGISTER_OFFSET = Mode(0x10) // [next word + A]..[next word + J]
	MODE_POP             = Mode(0x18) // [SP++]
	MODE_PEEK            = Mode(0x19) // [SP]
	MODE_PUSH            = Mode(0x1a) // [--SP]
	MODE_SP              = Mode(0x1b)
	MODE_PC              = Mode(0x1c)
	MODE_O               = Mode(0x1d)
	MODE_NEXT_DEREF      = Mode(0x1e) // [next word]
	MODE_NEXT            = Mode(0x1f) // next word
	MODE_LITERAL         = Mode(0x20) // 0x00..0x1f
	MODE_MASK            = Mode(0x3f)
)

// NextWord returns true if the mode consumes a trailing word.
func (mode Mode) NextWord() bool {
	return (mode >= MODE_REGISTER_OFFSET && mode < MODE_POP) ||
		mode == MODE_NEXT_DEREF ||
		mode == MODE_NEXT
}

// String returns the assembly form of the mode.
func (mode Mode) String() string {
	switch {
	case mode < MODE_REGISTER_DEREF:
		return Register(mode).String()
	case mode < MODE_REGISTER_OFFSET:
		return fmt.Sprintf("[%v]", Register(mode-MODE_REGISTER_DEREF))
	case mode < MODE_POP:
		return fmt.Sprintf("[next+%v]", Register(mode-MODE_REGISTER_OFFSET))
	case mode == MODE_POP:
		return "POP"
	case mode == MODE_PEEK:
		return "PEEK"
	case mode == MODE_PUSH:
		return "PUSH"
	case mode == MODE_SP:
		return "SP"
	case mode == MODE_PC:
		return "PC"
	case mode == MODE_O:
		return "O"
	case mode == MODE_NEXT_DEREF:
		return "[next]"
	case mode == MODE_NEXT:
		return "next"
	case mode <= MODE_MASK:
		return fmt.Sprintf("%#x", int(mode-MODE_LITERAL))
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// MakeCodeBasic creates a basic instruction word.
func MakeCodeBasic(op Opcode, a, b Mode) Word {
	return (Word(op) & 0xf) | ((Word(a) & 0x3f) << 4) | ((Word(b) & 0x3f) << 10)
}

// MakeCodeExtended creates an extended instruction word.
func MakeCodeExtended(ext Word, b Mode) Word {
	return ((ext & 0x3f) << 4) | ((Word(b) & 0x3f) << 10)
}

// DecodeCode splits an instruction word into its opcode and mode fields.
// For extended instructions op is 0 and a holds the extended code.
func DecodeCode(word Word) (op Word, a, b Mode) {
	op = word & 0xf
	a = Mode((word >> 4) & 0x3f)
	b = Mode((word >> 10) & 0x3f)
	return
}

// CodeSize returns the number of words, trailing words included, of the
// instruction starting with word.
func CodeSize(word Word) (size int) {
	op, a, b := DecodeCode(word)
	size = 1
	if op != 0 && a.NextWord() {
		size++
	}
	if b.NextWord() {
		size++
	}
	return
}
