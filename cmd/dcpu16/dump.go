package main

import (
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/dcpu16/cpu"
)

// dumpRow is the number of words per memory dump row.
const dumpRow = 8

// dumpRegisters renders the registers and cycle counter as a table.
func dumpRegisters(c *cpu.Cpu) string {
	regTable := table.NewWriter()
	regTable.SetTitle("Registers")

	header := table.Row{}
	row := table.Row{}
	for reg := range cpu.Register(cpu.REGISTER_COUNT) {
		header = append(header, reg.String())
		row = append(row, fmt.Sprintf("%04x", c.Register(reg)))
	}
	header = append(header, "Cycles", "Halted")
	row = append(row, c.Cycles, c.Halted)

	regTable.AppendHeader(header)
	regTable.AppendRow(row)

	return regTable.Render()
}

// dumpMemory renders the non-zero rows of program memory as a table.
func dumpMemory(c *cpu.Cpu) string {
	memTable := table.NewWriter()
	memTable.SetTitle("Memory")

	header := table.Row{"Addr"}
	for col := range dumpRow {
		header = append(header, fmt.Sprintf("+%d", col))
	}
	memTable.AppendHeader(header)

	ram := c.Ram()
	for addr := 0; addr < len(ram); addr += dumpRow {
		words := ram[addr : addr+dumpRow]
		if !slices.ContainsFunc(words, func(word cpu.Word) bool { return word != 0 }) {
			continue
		}
		row := table.Row{fmt.Sprintf("%04x", addr)}
		for _, word := range words {
			row = append(row, fmt.Sprintf("%04x", word))
		}
		memTable.AppendRow(row)
	}

	return memTable.Render()
}
