package cpu

import (
	"fmt"
	"strings"
)

// ValueKind is the addressing kind of an operand.
type ValueKind int

//go:generate go tool stringer -linecomment -type=ValueKind
const (
	VALUE_GPR         = ValueKind(0) // gpr
	VALUE_GPR_DEREF   = ValueKind(1) // gpr_deref
	VALUE_GPR_OFFSET  = ValueKind(2) // gpr_offset
	VALUE_SPR         = ValueKind(3) // spr
	VALUE_CONST       = ValueKind(4) // const
	VALUE_CONST_DEREF = ValueKind(5) // const_deref
)

var gprMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"x": REG_X,
	"y": REG_Y,
	"z": REG_Z,
	"i": REG_I,
	"j": REG_J,
}

var sprMap = map[string]Mode{
	"pop":  MODE_POP,
	"peek": MODE_PEEK,
	"push": MODE_PUSH,
	"sp":   MODE_SP,
	"pc":   MODE_PC,
	"o":    MODE_O,
}

// Reserved returns true if name is a register or special register name.
func Reserved(name string) bool {
	name = strings.ToLower(name)
	_, gpr := gprMap[name]
	_, spr := sprMap[name]
	return gpr || spr
}

// Value is a parsed instruction operand.
type Value struct {
	Kind     ValueKind
	Register Register // VALUE_GPR, VALUE_GPR_DEREF and VALUE_GPR_OFFSET
	Special  Mode     // VALUE_SPR
	Number   int      // Literal for VALUE_CONST, VALUE_CONST_DEREF and VALUE_GPR_OFFSET
	Label    *Token   // If set, the label replacing Number
}

// term is a single token classified as a register, special or constant.
func term(token Token) (value Value, err error) {
	switch token.Kind {
	case TOKEN_NAME:
		name := strings.ToLower(token.Text)
		if reg, ok := gprMap[name]; ok {
			value = Value{Kind: VALUE_GPR, Register: reg}
			return
		}
		if mode, ok := sprMap[name]; ok {
			value = Value{Kind: VALUE_SPR, Special: mode}
			return
		}
		label := token
		value = Value{Kind: VALUE_CONST, Label: &label}
	case TOKEN_NUMBER:
		value = Value{Kind: VALUE_CONST, Number: token.Value}
	default:
		err = syntaxError(token, ErrValueSyntax)
	}
	return
}

// ParseValue classifies the tokens of an operand.
func ParseValue(tokens []Token) (value Value, err error) {
	switch {
	case len(tokens) == 0:
		err = ErrOperandMissing
		return
	case len(tokens) == 1:
		return term(tokens[0])
	}

	first := tokens[0]
	last := tokens[len(tokens)-1]
	if !first.Is(TOKEN_PAREN, "[") || !last.Is(TOKEN_PAREN, "]") {
		if first.Is(TOKEN_PAREN, "[") {
			err = syntaxError(last, ErrValueBrackets)
		} else {
			err = syntaxError(first, ErrValueBrackets)
		}
		return
	}

	inner := tokens[1 : len(tokens)-1]
	switch len(inner) {
	case 1:
		value, err = term(inner[0])
		if err != nil {
			return
		}
		switch value.Kind {
		case VALUE_GPR:
			value.Kind = VALUE_GPR_DEREF
		case VALUE_CONST:
			value.Kind = VALUE_CONST_DEREF
		}
		return
	case 3:
		if !inner[1].Is(TOKEN_OPERATOR, "+") {
			err = syntaxError(inner[1], ErrValueSyntax)
			return
		}
		var x, y Value
		x, err = term(inner[0])
		if err != nil {
			return
		}
		y, err = term(inner[2])
		if err != nil {
			return
		}
		switch {
		case x.Kind == VALUE_GPR && y.Kind == VALUE_CONST:
			value = Value{Kind: VALUE_GPR_OFFSET, Register: x.Register, Number: y.Number, Label: y.Label}
		case x.Kind == VALUE_CONST && y.Kind == VALUE_GPR:
			value = Value{Kind: VALUE_GPR_OFFSET, Register: y.Register, Number: x.Number, Label: x.Label}
		case x.Kind == VALUE_GPR || x.Kind == VALUE_CONST:
			err = syntaxError(inner[2], ErrValueOffset)
		default:
			err = syntaxError(inner[0], ErrValueOffset)
		}
		return
	}

	if len(inner) == 0 {
		err = syntaxError(last, ErrValueTokens)
	} else {
		err = syntaxError(inner[0], ErrValueTokens)
	}
	return
}

// Size returns the number of trailing words the operand needs.
func (value Value) Size() int {
	if value.Mode().NextWord() {
		return 1
	}
	return 0
}

// Mode returns the operand mode field.
func (value Value) Mode() Mode {
	switch value.Kind {
	case VALUE_GPR:
		return MODE_REGISTER + Mode(value.Register)
	case VALUE_GPR_DEREF:
		return MODE_REGISTER_DEREF + Mode(value.Register)
	case VALUE_GPR_OFFSET:
		return MODE_REGISTER_OFFSET + Mode(value.Register)
	case VALUE_SPR:
		return value.Special
	case VALUE_CONST_DEREF:
		return MODE_NEXT_DEREF
	}
	return MODE_NEXT
}

// Resolve returns the trailing word of the operand, looking up labels.
func (value Value) Resolve(labels map[string]int) (word Word, err error) {
	if value.Label == nil {
		return Word(value.Number), nil
	}
	addr, ok := labels[value.Label.Text]
	if !ok {
		err = syntaxError(*value.Label, ErrLabelMissing(value.Label.Text))
		return
	}
	return Word(addr), nil
}

// constant is the source form of the literal or label.
func (value Value) constant() string {
	if value.Label != nil {
		return value.Label.Text
	}
	return fmt.Sprintf("%#04x", value.Number)
}

func (value Value) String() string {
	switch value.Kind {
	case VALUE_GPR:
		return value.Register.String()
	case VALUE_GPR_DEREF:
		return fmt.Sprintf("[%v]", value.Register)
	case VALUE_GPR_OFFSET:
		return fmt.Sprintf("[%v+%v]", value.constant(), value.Register)
	case VALUE_SPR:
		return value.Special.String()
	case VALUE_CONST_DEREF:
		return fmt.Sprintf("[%v]", value.constant())
	}
	return value.constant()
}
