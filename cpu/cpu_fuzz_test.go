package cpu

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzAssemble(f *testing.F) {
	f.Add(":start\n set A, 0x10\n set PC, start\n")
	f.Add(strings.Join(notchSampleSource, "\n"))
	f.Add("set [a+0x10], [0x20]\n jsr pop\n")
	f.Add("set a, $")
	f.Add(":\n")
	f.Add("set [a+b], [")

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		prog, err := (&Assembler{}).Parse(strings.NewReader(source), "fuzz.s")
		if err != nil {
			assert.Nil(prog)
			var errSyntax *ErrSyntax
			assert.ErrorAs(err, &errSyntax)
			return
		}

		words, err := prog.Encode()
		if err != nil {
			assert.ErrorAs(err, new(ErrLabelMissing))
			return
		}

		assert.Len(words, prog.Size)
		for _, inst := range prog.Instructions {
			assert.Equal(inst.Size(), CodeSize(words[inst.Ip]), "%v", inst)
		}
	})
}

func FuzzSkip(f *testing.F) {
	for mode := range MODE_MASK + 1 {
		f.Add(uint16(MakeCodeBasic(OP_SET, mode, MODE_NEXT)), uint16(0x1234), uint16(0x5678))
		f.Add(uint16(MakeCodeExtended(EXT_JSR, mode)), uint16(0), uint16(0xffff))
	}

	f.Fuzz(func(t *testing.T, code uint16, next1 uint16, next2 uint16) {
		assert := assert.New(t)

		// ifn a, a ; always skips
		cpu := NewCpu(nil)
		program := []Word{MakeCodeBasic(OP_IFN, MODE_REGISTER, MODE_REGISTER), Word(code), Word(next1), Word(next2)}
		assert.NoError(cpu.Load(program))
		cpu.SetRegister(REG_SP, 0x8000)

		ram := slices.Clone(cpu.Ram())
		regs := slices.Clone(cpu.Memory[ARENA_REGISTER:ARENA_SCRATCH])

		cpu.Step()

		size := CodeSize(Word(code))
		assert.Equal(Word(1+size), cpu.Register(REG_PC))
		assert.Equal(uint64(3), cpu.Cycles)
		assert.Equal(ram, cpu.Ram())
		regs[REG_PC] = Word(1 + size)
		assert.Equal(regs, cpu.Memory[ARENA_REGISTER:ARENA_SCRATCH])
		assert.False(cpu.Halted)
	})
}
