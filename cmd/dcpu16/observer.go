package main

import (
	"log"

	"github.com/ezrec/dcpu16/cpu"
)

// logObserver logs every CPU state change.
type logObserver struct{}

var _ cpu.Observer = (*logObserver)(nil)

func (lo *logObserver) MemoryChanged(address cpu.Word, value cpu.Word) {
	log.Printf("mem: [%04x] = %04x", address, value)
}

func (lo *logObserver) RegisterChanged(reg cpu.Register, value cpu.Word) {
	log.Printf("reg: %v = %04x", reg, value)
}

func (lo *logObserver) CyclesChanged(cycles uint64) {
	log.Printf("cycles: %d", cycles)
}

func (lo *logObserver) Halted() {
	log.Printf("halted")
}
