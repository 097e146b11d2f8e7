// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/ezrec/dcpu16/cpu"
)

// Emulator state. CPU + program listing, with run control.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing, if assembled.

	predefine [][2]string // Predefines passed to the assembler.

	mutex sync.Mutex
	stop  chan struct{} // Closed to request the run loop to stop.
	done  chan struct{} // Closed when the run loop exits.
}

// NewEmulator creates a new emulator, reporting CPU changes to observer if
// not nil.
func NewEmulator(observer cpu.Observer) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(observer),
	}

	return
}

// Predefine defines a symbol for subsequent assemblies.
func (emu *Emulator) Predefine(name string, expr string) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.predefine = append(emu.predefine, [2]string{name, expr})
}

// Assemble the source, then reset the CPU and load the program.
func (emu *Emulator) Assemble(r io.Reader, filename string) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.done != nil {
		err = ErrRunning
		return
	}

	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for _, def := range emu.predefine {
		asm.Predefine(def[0], def[1])
	}

	prog, words, err := asm.Assemble(r, filename)
	if err != nil {
		err = &ErrAssemble{Filename: filename, Err: err}
		return
	}

	emu.Program = prog
	emu.Cpu.Program = prog
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	err = emu.Cpu.Load(words)

	return
}

// Load a binary image, discarding any program listing.
func (emu *Emulator) Load(words []cpu.Word) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.done != nil {
		err = ErrRunning
		return
	}

	emu.Program = nil
	emu.Cpu.Program = nil
	emu.Cpu.Verbose = emu.Verbose
	err = emu.Cpu.Load(words)

	return
}

// Reset the CPU registers and cycle counter.
func (emu *Emulator) Reset() (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.done != nil {
		err = ErrRunning
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return
}

// Step performs a single instruction of the emulator.
func (emu *Emulator) Step() (halted bool, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.done != nil {
		err = ErrRunning
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Step()
	halted = emu.Cpu.Halted

	return
}

// begin marks the run loop as active.
func (emu *Emulator) begin() (stop chan struct{}, done chan struct{}, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.done != nil {
		err = ErrRunning
		return
	}

	stop = make(chan struct{})
	done = make(chan struct{})
	emu.stop = stop
	emu.done = done
	emu.Cpu.Verbose = emu.Verbose

	return
}

// loop steps until halted, stopped or cancelled.
func (emu *Emulator) loop(ctx context.Context, stop chan struct{}, done chan struct{}) (err error) {
	defer func() {
		emu.mutex.Lock()
		emu.stop = nil
		emu.done = nil
		emu.mutex.Unlock()
		close(done)
	}()

	if emu.Verbose {
		log.Printf("emulator: run")
	}

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-stop:
			if emu.Verbose {
				log.Printf("emulator: stopped")
			}
			return
		default:
		}

		emu.mutex.Lock()
		emu.Cpu.Step()
		halted := emu.Cpu.Halted
		emu.mutex.Unlock()

		if halted {
			return
		}
	}
}

// Run steps the CPU until it halts, Stop is called, or the context is
// cancelled.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	stop, done, err := emu.begin()
	if err != nil {
		return
	}

	return emu.loop(ctx, stop, done)
}

// Start runs the CPU on a background goroutine.
func (emu *Emulator) Start(ctx context.Context) (err error) {
	stop, done, err := emu.begin()
	if err != nil {
		return
	}

	go func() {
		err := emu.loop(ctx, stop, done)
		if err != nil && emu.Verbose {
			log.Printf("emulator: %v", err)
		}
	}()

	return
}

// Stop requests the run loop to stop, and waits for it to exit.
func (emu *Emulator) Stop() (err error) {
	emu.mutex.Lock()
	done := emu.done
	if done == nil {
		emu.mutex.Unlock()
		err = ErrNotRunning
		return
	}
	if emu.stop != nil {
		close(emu.stop)
		emu.stop = nil
	}
	emu.mutex.Unlock()

	<-done

	return
}

// Running returns true while the run loop is active.
func (emu *Emulator) Running() bool {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.done != nil
}

// Wait blocks until the run loop, if any, exits.
func (emu *Emulator) Wait() {
	emu.mutex.Lock()
	done := emu.done
	emu.mutex.Unlock()

	if done != nil {
		<-done
	}
}

// LineNo returns the source line number of the instruction at PC, or 0 if
// there is no listing for it.
func (emu *Emulator) LineNo() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Register(cpu.REG_PC))
	if dbg.Instruction == nil {
		return 0
	}

	return dbg.Token.Pos.Row
}
