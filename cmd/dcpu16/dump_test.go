package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/dcpu16/cpu"
)

func TestDump(t *testing.T) {
	assert := assert.New(t)

	words, err := cpu.Assemble("set x, 0xbeef\nset [0x8000], x\n", "dump.s")
	require.NoError(t, err)

	c := cpu.NewCpu(nil)
	require.NoError(t, c.Load(words))
	c.Step()
	c.Step()

	regs := dumpRegisters(c)
	assert.Contains(regs, "| PC ")
	assert.Contains(regs, "| beef ")
	assert.Contains(regs, "| CYCLES ")

	mem := dumpMemory(c)
	assert.Contains(mem, "| 0000 | 7c31 | beef | 0de1 | 8000 | 0000 | 0000 | 0000 | 0000 |")
	assert.Contains(mem, "| 8000 | beef | 0000 |")
	assert.NotContains(mem, "| 0008 |")
	assert.Len(regexp.MustCompile(`(?m)^\| [0-9a-f]{4} \|`).FindAllString(mem, -1), 2)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	var defs defines
	assert.NoError(defs.Set("SCREEN=0x8000"))
	assert.NoError(defs.Set("ROW=SCREEN+32"))
	assert.Error(defs.Set("nothing"))
	assert.Error(defs.Set("=1"))

	assert.Equal(defines{{"SCREEN", "0x8000"}, {"ROW", "SCREEN+32"}}, defs)
	assert.Equal("SCREEN=0x8000,ROW=SCREEN+32", defs.String())
}
