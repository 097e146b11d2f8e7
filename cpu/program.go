package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/dcpu16/internal"
)

// Program is the output of the first assembler pass.
type Program struct {
	Instructions []*Instruction
	Labels       map[string]int // Label addresses.
	Size         int            // Words of encoded program.
}

// Debug locates a program address within the listing.
type Debug struct {
	*Instruction
	Index int // Word offset within the instruction.
}

// Debug returns the instruction covering pc. The Instruction is nil if no
// instruction covers it.
func (prog *Program) Debug(pc Word) (dbg Debug) {
	for _, inst := range prog.Instructions {
		if int(pc) >= inst.Ip && int(pc) < inst.Ip+inst.Size() {
			dbg = Debug{
				Instruction: inst,
				Index:       int(pc) - inst.Ip,
			}
			break
		}
	}

	return
}

// Encode is the second assembler pass, mapping the instructions to words.
func (prog *Program) Encode() (words []Word, err error) {
	seqs := make([]iter.Seq[Word], 0, len(prog.Instructions))
	for _, inst := range prog.Instructions {
		seqs = append(seqs, inst.Words(prog.Labels, &err))
	}

	words = slices.Collect(internal.IterSeqConcat(seqs...))
	if err != nil {
		return nil, err
	}

	return
}
