package cpu

import (
	"fmt"
	"log"
	"strings"
)

// Instruction base cycle costs, before operand costs.
const (
	CYCLES_JSR     = 2
	CYCLES_SKIP    = 1 // Added when a conditional fails.
	CYCLES_OPERAND = 1 // Added per trailing word read.
)

var opCycles = [OPCODE_COUNT]uint64{
	OP_SET: 1,
	OP_ADD: 2,
	OP_SUB: 2,
	OP_MUL: 2,
	OP_DIV: 3,
	OP_MOD: 3,
	OP_SHL: 2,
	OP_SHR: 2,
	OP_AND: 1,
	OP_BOR: 1,
	OP_XOR: 1,
	OP_IFE: 2,
	OP_IFN: 2,
	OP_IFG: 2,
	OP_IFB: 2,
}

// Observer receives the state changes of a step, after the step has
// completed. Changes are delivered memory first, then registers, then
// cycles, then the halt.
type Observer interface {
	MemoryChanged(address Word, value Word)   // Program memory cell changed.
	RegisterChanged(reg Register, value Word) // Register, PC, SP or O changed.
	CyclesChanged(cycles uint64)              // Cycle counter changed.
	Halted()                                  // Execution reached a halt.
}

// written is the prior value of a program memory cell written during a step.
type written struct {
	address Word
	value   Word
}

// Cpu is the simulation context of a DCPU-16.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory  [ARENA_END]Word // Program memory, registers and literal slots.
	Cycles  uint64          // Cycles since reset.
	Halted  bool            // Set when a halt has been executed.
	Program *Program        // If set, the listing used for verbose logging.

	observer Observer
	written  []written
}

// NewCpu creates a new CPU, reporting changes to observer if not nil.
func NewCpu(observer Observer) (cpu *Cpu) {
	cpu = &Cpu{
		observer: observer,
	}

	return
}

// Register returns the value of a register.
func (cpu *Cpu) Register(reg Register) Word {
	return cpu.Memory[RegisterLocation(reg)]
}

// SetRegister sets the value of a register, outside of a step.
func (cpu *Cpu) SetRegister(reg Register, value Word) {
	cpu.Memory[RegisterLocation(reg)] = value
	if cpu.observer != nil {
		cpu.observer.RegisterChanged(reg, value)
	}
}

// Ram returns the program memory.
func (cpu *Cpu) Ram() []Word {
	return cpu.Memory[ARENA_RAM:ARENA_REGISTER]
}

// Load copies words to address 0 and clears the rest of program memory.
// It clears the halt, but leaves registers alone.
func (cpu *Cpu) Load(words []Word) (err error) {
	if len(words) > RAM_SIZE {
		err = ErrProgramSize
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: load %d words", len(words))
	}

	ram := cpu.Ram()
	for n := range ram {
		var value Word
		if n < len(words) {
			value = words[n]
		}
		if ram[n] == value {
			continue
		}
		ram[n] = value
		if cpu.observer != nil {
			cpu.observer.MemoryChanged(Word(n), value)
		}
	}

	cpu.Halted = false

	return
}

// Reset the CPU state.
// - Clears the registers, PC, SP and O.
// - Zeros the cycle counter.
// - Clears the halt.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[ARENA_REGISTER:])
	cpu.Cycles = 0
	cpu.Halted = false

	if cpu.observer != nil {
		for reg := range Register(REGISTER_COUNT) {
			cpu.observer.RegisterChanged(reg, 0)
		}
		cpu.observer.CyclesChanged(0)
	}
}

// Step executes a single instruction. It does nothing once halted.
func (cpu *Cpu) Step() {
	if cpu.Halted {
		return
	}

	var regs [REGISTER_COUNT]Word
	copy(regs[:], cpu.Memory[ARENA_REGISTER:ARENA_SCRATCH])
	cycles := cpu.Cycles
	cpu.written = cpu.written[:0]

	cpu.execute()

	if cpu.observer == nil {
		return
	}

	for _, w := range cpu.written {
		value := cpu.Memory[AddressLocation(w.address)]
		if value != w.value {
			cpu.observer.MemoryChanged(w.address, value)
		}
	}

	for reg := range Register(REGISTER_COUNT) {
		value := cpu.Register(reg)
		if value != regs[reg] {
			cpu.observer.RegisterChanged(reg, value)
		}
	}

	if cpu.Cycles != cycles {
		cpu.observer.CyclesChanged(cpu.Cycles)
	}

	if cpu.Halted {
		cpu.observer.Halted()
	}
}

// nextWord reads the word at PC, and advances PC.
func (cpu *Cpu) nextWord() (word Word) {
	pc := cpu.Memory[ARENA_PC]
	word = cpu.Memory[AddressLocation(pc)]
	cpu.Memory[ARENA_PC] = pc + 1
	return
}

// write stores a value, tracking the prior value of program memory cells.
func (cpu *Cpu) write(loc Location, value Word) {
	if address, ok := loc.Address(); ok {
		cpu.written = append(cpu.written, written{address: address, value: cpu.Memory[loc]})
	}
	cpu.Memory[loc] = value
}

// resolve maps an operand mode to its location. Literals are placed in
// the scratch slot of the operand.
func (cpu *Cpu) resolve(mode Mode, slot int) (loc Location) {
	switch {
	case mode < MODE_REGISTER_DEREF:
		loc = RegisterLocation(Register(mode - MODE_REGISTER))
	case mode < MODE_REGISTER_OFFSET:
		loc = AddressLocation(cpu.Register(Register(mode - MODE_REGISTER_DEREF)))
	case mode < MODE_POP:
		offset := cpu.nextWord()
		cpu.Cycles += CYCLES_OPERAND
		loc = AddressLocation(offset + cpu.Register(Register(mode-MODE_REGISTER_OFFSET)))
	case mode == MODE_POP:
		sp := cpu.Memory[ARENA_SP]
		cpu.Memory[ARENA_SP] = sp + 1
		loc = AddressLocation(sp)
	case mode == MODE_PEEK:
		loc = AddressLocation(cpu.Memory[ARENA_SP])
	case mode == MODE_PUSH:
		cpu.Memory[ARENA_SP]--
		loc = AddressLocation(cpu.Memory[ARENA_SP])
	case mode == MODE_SP:
		loc = ARENA_SP
	case mode == MODE_PC:
		loc = ARENA_PC
	case mode == MODE_O:
		loc = ARENA_O
	case mode == MODE_NEXT_DEREF:
		loc = AddressLocation(cpu.nextWord())
		cpu.Cycles += CYCLES_OPERAND
	case mode == MODE_NEXT:
		loc = ScratchLocation(slot)
		cpu.Memory[loc] = cpu.nextWord()
		cpu.Cycles += CYCLES_OPERAND
	default:
		loc = ScratchLocation(slot)
		cpu.Memory[loc] = Word(mode - MODE_LITERAL)
	}

	return
}

// skip advances PC past the next instruction and its trailing words.
func (cpu *Cpu) skip() {
	pc := cpu.Memory[ARENA_PC]
	size := CodeSize(cpu.Memory[AddressLocation(pc)])
	cpu.Memory[ARENA_PC] = pc + Word(size)
	cpu.Cycles += CYCLES_SKIP

	if cpu.Verbose {
		log.Printf("cpu: %04x: skipped", pc)
	}
}

func (cpu *Cpu) halt() {
	cpu.Halted = true

	if cpu.Verbose {
		log.Printf("cpu: halted")
	}
}

// trace logs the instruction at pc.
func (cpu *Cpu) trace(pc Word, word Word) {
	if cpu.Program != nil {
		dbg := cpu.Program.Debug(pc)
		if dbg.Instruction != nil && dbg.Index == 0 {
			log.Printf("cpu: %04x: %v", pc, dbg.Instruction)
			return
		}
	}
	op, a, b := DecodeCode(word)
	if op == 0 {
		log.Printf("cpu: %04x: %04x ext %#x %v", pc, word, int(a), b)
	} else {
		log.Printf("cpu: %04x: %04x %v %v, %v", pc, word, Opcode(op), a, b)
	}
}

// execute performs a single instruction.
func (cpu *Cpu) execute() {
	pc := cpu.Memory[ARENA_PC]
	word := cpu.nextWord()

	if cpu.Verbose {
		cpu.trace(pc, word)
	}

	op, a, b := DecodeCode(word)
	if op == 0 {
		if a != EXT_JSR {
			cpu.halt()
			return
		}
		src := cpu.resolve(b, 1)
		target := cpu.Memory[src]
		cpu.Memory[ARENA_SP]--
		cpu.write(AddressLocation(cpu.Memory[ARENA_SP]), cpu.Memory[ARENA_PC])
		cpu.Memory[ARENA_PC] = target
		cpu.Cycles += CYCLES_JSR
		return
	}

	dst := cpu.resolve(a, 0)
	src := cpu.resolve(b, 1)
	x := uint32(cpu.Memory[dst])
	y := uint32(cpu.Memory[src])

	opcode := Opcode(op)
	cpu.Cycles += opCycles[opcode]

	var cond bool
	switch opcode {
	case OP_SET:
		cpu.write(dst, Word(y))
	case OP_ADD:
		sum := x + y
		cpu.Memory[ARENA_O] = Word(sum >> 16)
		cpu.write(dst, Word(sum))
	case OP_SUB:
		if x < y {
			cpu.Memory[ARENA_O] = 0xffff
		} else {
			cpu.Memory[ARENA_O] = 0
		}
		cpu.write(dst, Word(x-y))
	case OP_MUL:
		prod := x * y
		cpu.Memory[ARENA_O] = Word(prod >> 16)
		cpu.write(dst, Word(prod))
	case OP_DIV:
		if y == 0 {
			cpu.Memory[ARENA_O] = 0
			cpu.write(dst, 0)
		} else {
			cpu.Memory[ARENA_O] = Word((x << 16) / y)
			cpu.write(dst, Word(x/y))
		}
	case OP_MOD:
		if y == 0 {
			cpu.write(dst, 0)
		} else {
			cpu.write(dst, Word(x%y))
		}
	case OP_SHL:
		if y >= 32 {
			cpu.Memory[ARENA_O] = 0
			cpu.write(dst, 0)
		} else {
			cpu.Memory[ARENA_O] = Word((x << y) >> 16)
			cpu.write(dst, Word(x<<y))
		}
	case OP_SHR:
		if y >= 32 {
			cpu.Memory[ARENA_O] = 0
			cpu.write(dst, 0)
		} else {
			cpu.Memory[ARENA_O] = Word((x << 16) >> y)
			cpu.write(dst, Word(x>>y))
		}
	case OP_AND:
		cpu.write(dst, Word(x&y))
	case OP_BOR:
		cpu.write(dst, Word(x|y))
	case OP_XOR:
		cpu.write(dst, Word(x^y))
	case OP_IFE:
		cond = x == y
	case OP_IFN:
		cond = x != y
	case OP_IFG:
		cond = x > y
	case OP_IFB:
		cond = (x & y) != 0
	}

	if opcode.Conditional() && !cond {
		cpu.skip()
	}
}

// String returns the register state as text.
func (cpu *Cpu) String() string {
	var text strings.Builder
	for reg := range Register(REGISTER_COUNT) {
		fmt.Fprintf(&text, "% 3s: %04x\n", reg, cpu.Register(reg))
	}
	fmt.Fprintf(&text, "cycles: %d\n", cpu.Cycles)
	return text.String()
}
