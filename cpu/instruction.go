package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Instruction is an assembled instruction and its source location.
type Instruction struct {
	Opcode Opcode
	A      *Value // Destination; nil for extended opcodes.
	B      Value
	Token  Token // Mnemonic token.
	Ip     int   // Address of the first word.
}

// NewInstruction creates an instruction. It panics if the number of values
// does not match the arity of the opcode.
func NewInstruction(token Token, op Opcode, ip int, values ...Value) *Instruction {
	if len(values) != op.Arity() {
		panic(fmt.Sprintf("%v: expected %d values, got %d", op, op.Arity(), len(values)))
	}

	inst := &Instruction{
		Opcode: op,
		Token:  token,
		Ip:     ip,
	}

	if op.Extended() {
		inst.B = values[0]
	} else {
		inst.A = &values[0]
		inst.B = values[1]
	}

	return inst
}

// Values returns the operands in source order.
func (inst *Instruction) Values() (values []Value) {
	if inst.A != nil {
		values = append(values, *inst.A)
	}
	values = append(values, inst.B)
	return
}

// Size returns the number of words of the encoded instruction.
func (inst *Instruction) Size() (size int) {
	size = 1
	for _, value := range inst.Values() {
		size += value.Size()
	}
	return
}

// Code returns the instruction word, without trailing words.
func (inst *Instruction) Code() Word {
	if inst.Opcode.Extended() {
		return MakeCodeExtended(inst.Opcode.Code(), inst.B.Mode())
	}
	return MakeCodeBasic(inst.Opcode, inst.A.Mode(), inst.B.Mode())
}

// Encode returns the instruction word followed by its trailing words.
func (inst *Instruction) Encode(labels map[string]int) (words []Word, err error) {
	words = []Word{inst.Code()}
	for _, value := range inst.Values() {
		if value.Size() == 0 {
			continue
		}
		var word Word
		word, err = value.Resolve(labels)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return
}

// Words returns the encoded words as a sequence, stopping at the first
// resolution error, which is stored in err.
func (inst *Instruction) Words(labels map[string]int, err *error) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		if *err != nil {
			return
		}
		var words []Word
		words, *err = inst.Encode(labels)
		if *err != nil {
			return
		}
		for _, word := range words {
			if !yield(word) {
				return
			}
		}
	}
}

// String returns the instruction in assembly form.
func (inst *Instruction) String() string {
	var params []string
	for _, value := range inst.Values() {
		params = append(params, value.String())
	}
	return inst.Opcode.String() + " " + strings.Join(params, ", ")
}
