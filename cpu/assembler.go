// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// predefine is a symbol defined outside of the source text.
type predefine struct {
	name string
	expr string
}

// Assembler is a two pass assembler for DCPU-16 source.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine []predefine // Predefines, in definition order.
}

// Predefine defines a symbol as the value of a Starlark integer expression,
// or redefines an existing one. Earlier predefines are in scope of the
// expression.
func (asm *Assembler) Predefine(name string, expr string) {
	for n, def := range asm.predefine {
		if def.name == name {
			asm.predefine[n].expr = expr
			return
		}
	}
	asm.predefine = append(asm.predefine, predefine{name: name, expr: expr})
}

// validName returns true if the name can be used as a label.
func validName(name string) bool {
	if len(name) == 0 || !isNameStart(name[0]) {
		return false
	}
	for n := range len(name) {
		if !isNameChar(name[n]) {
			return false
		}
	}
	if Reserved(name) {
		return false
	}
	if _, ok := LookupOpcode(name); ok {
		return false
	}
	return true
}

// parenEval evaluates an integer expression.
func parenEval(expr string, pred starlark.StringDict) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrPredefineValue
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrPredefineValue
		return
	}
	value = int(Word(st_int64))
	return
}

// labels evaluates the predefines into a new label table.
func (asm *Assembler) labels() (labels map[string]int, err error) {
	labels = map[string]int{}
	pred := starlark.StringDict{}
	for _, def := range asm.predefine {
		if !validName(def.name) {
			err = &ErrPredefine{Name: def.name, Err: ErrPredefineInvalid}
			return
		}
		var value int
		value, err = parenEval(def.expr, pred)
		if err != nil {
			err = &ErrPredefine{Name: def.name, Err: err}
			return
		}
		if asm.Verbose {
			log.Printf("asm: predefine %v = %#04x", def.name, value)
		}
		labels[def.name] = value
		pred[def.name] = starlark.MakeInt(value)
	}
	return
}

// Parse is the first assembler pass. It classifies every line of the source
// and assigns addresses to instructions and labels.
func (asm *Assembler) Parse(r io.Reader, filename string) (prog *Program, err error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return
	}

	tokens, err := LexAll(string(text), filename)
	if err != nil {
		return
	}

	labels, err := asm.labels()
	if err != nil {
		return
	}

	prog = &Program{Labels: labels}

	ip := 0
	for _, line := range SplitLines(tokens) {
		if len(line) == 0 {
			continue
		}

		if line[0].Kind == TOKEN_LABEL {
			name := line[0].Text[1:]
			if _, dup := prog.Labels[name]; dup {
				return nil, syntaxError(line[0], ErrLabelDuplicate)
			}
			if asm.Verbose {
				log.Printf("asm: %v: label %v = %#04x", line[0].Pos, name, ip)
			}
			prog.Labels[name] = ip
			line = line[1:]
			if len(line) == 0 {
				continue
			}
		}

		mnemonic := line[0]
		op, ok := LookupOpcode(mnemonic.Text)
		if mnemonic.Kind != TOKEN_NAME || !ok {
			return nil, syntaxError(mnemonic, ErrMnemonicInvalid)
		}

		params := SplitParams(line[1:])
		if len(params) != op.Arity() {
			return nil, syntaxError(mnemonic, ErrArity{Expected: op.Arity(), Found: len(params)})
		}

		values := make([]Value, len(params))
		for n, param := range params {
			if len(param) == 0 {
				return nil, syntaxError(mnemonic, ErrOperandMissing)
			}
			values[n], err = ParseValue(param)
			if err != nil {
				return nil, err
			}
		}

		inst := NewInstruction(mnemonic, op, ip, values...)
		ip += inst.Size()
		if ip > RAM_SIZE {
			return nil, syntaxError(mnemonic, ErrProgramSize)
		}

		if asm.Verbose {
			log.Printf("asm: %v: %04x: %v", mnemonic.Pos, inst.Ip, inst)
		}

		prog.Instructions = append(prog.Instructions, inst)
	}

	prog.Size = ip

	return
}

// Assemble runs both assembler passes over the source.
func (asm *Assembler) Assemble(r io.Reader, filename string) (prog *Program, words []Word, err error) {
	prog, err = asm.Parse(r, filename)
	if err != nil {
		return
	}

	words, err = prog.Encode()
	if err != nil {
		return nil, nil, err
	}

	if asm.Verbose {
		log.Printf("asm: %v: %d words", filename, len(words))
	}

	return
}

// Assemble assembles source text to words.
func Assemble(text string, filename string) (words []Word, err error) {
	asm := &Assembler{}
	_, words, err = asm.Assemble(strings.NewReader(text), filename)
	return
}
