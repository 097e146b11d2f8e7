package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"  set a, b",
		"  set [0x1000+a], 0x20",
		":loop",
		"  jsr loop",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(sliceReader(program), "debug.s")
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 3)

	table := [](struct {
		pc    Word
		inst  int
		index int
		row   int
	}){
		{0, 0, 0, 1},
		{1, 1, 0, 2},
		{2, 1, 1, 2},
		{3, 1, 2, 2},
		{4, 2, 0, 4},
		{5, 2, 1, 4},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.pc)
		if assert.NotNil(dbg.Instruction, entry.pc) {
			assert.Same(prog.Instructions[entry.inst], dbg.Instruction, entry.pc)
			assert.Equal(entry.index, dbg.Index, entry.pc)
			assert.Equal(entry.row, dbg.Token.Pos.Row, entry.pc)
		}
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	dbg := prog.Debug(0)
	assert.Nil(dbg.Instruction)
	assert.Equal(0, dbg.Index)

	prog, err := (&Assembler{}).Parse(strings.NewReader("set a, 1"), "debug.s")
	require.NoError(t, err)
	assert.Nil(prog.Debug(2).Instruction)
	assert.Nil(prog.Debug(0xffff).Instruction)
}

func TestProgram_Encode(t *testing.T) {
	assert := assert.New(t)

	prog, err := (&Assembler{}).Parse(strings.NewReader("set pc, end\nset a, 1\n:end"), "encode.s")
	require.NoError(t, err)

	words, err := prog.Encode()
	assert.NoError(err)
	assert.Equal([]Word{0x7dc1, 0x0004, 0x7c01, 0x0001}, words)

	// Encoding is a pure function of the listing.
	again, err := prog.Encode()
	assert.NoError(err)
	assert.Equal(words, again)

	// Labels are only resolved on encoding.
	prog.Labels["end"] = 0x1234
	words, err = prog.Encode()
	assert.NoError(err)
	assert.Equal(Word(0x1234), words[1])

	delete(prog.Labels, "end")
	words, err = prog.Encode()
	assert.ErrorIs(err, ErrLabelMissing("end"))
	assert.Nil(words)
}

func TestProgram_Encode_FirstError(t *testing.T) {
	assert := assert.New(t)

	prog, err := (&Assembler{}).Parse(strings.NewReader("set a, one\nset b, two\n"), "encode.s")
	require.NoError(t, err)

	_, err = prog.Encode()
	assert.ErrorIs(err, ErrLabelMissing("one"))
	assert.NotErrorIs(err, ErrLabelMissing("two"))
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"set [data+i], 0x1f",
		"ifg PEEK, [b]",
		"jsr [0x10]",
		"shl o, [3+j]",
	}

	prog, err := (&Assembler{}).Parse(sliceReader(program), "string.s")
	require.NoError(t, err)

	var text []string
	for _, inst := range prog.Instructions {
		text = append(text, inst.String())
	}

	assert.Equal([]string{
		"SET [data+I], 0x1f",
		"IFG PEEK, [B]",
		"JSR [0x10]",
		"SHL O, [0x03+J]",
	}, text)
}
