package cpu

// Arenas of the interpreter memory array. Every operand resolves to a
// Location inside one of them.
const (
	ARENA_RAM      = Location(0x0_0000)                // Program address space.
	ARENA_REGISTER = Location(0x1_0000)                // A, B, C, X, Y, Z, I, J.
	ARENA_PC       = ARENA_REGISTER + Location(REG_PC) // Program counter.
	ARENA_SP       = ARENA_REGISTER + Location(REG_SP) // Stack pointer.
	ARENA_O        = ARENA_REGISTER + Location(REG_O)  // Overflow.
	ARENA_SCRATCH  = ARENA_REGISTER + REGISTER_COUNT   // Literal operand slots, one per operand.
	ARENA_END      = ARENA_SCRATCH + 2

	RAM_SIZE = int(ARENA_REGISTER - ARENA_RAM) // Words of program address space.
)

// Location is an index into the interpreter memory array: a program
// address, a register slot, or a scratch slot.
type Location uint32

// AddressLocation returns the location of a program address.
func AddressLocation(address Word) Location {
	return ARENA_RAM + Location(address)
}

// RegisterLocation returns the location of a register slot.
func RegisterLocation(reg Register) Location {
	return ARENA_REGISTER + Location(reg)
}

// ScratchLocation returns the literal slot for operand n (0 for a, 1 for b).
func ScratchLocation(n int) Location {
	return ARENA_SCRATCH + Location(n)
}

// Address returns the program address of the location, if it is one.
func (loc Location) Address() (address Word, ok bool) {
	if loc < ARENA_REGISTER {
		return Word(loc - ARENA_RAM), true
	}
	return
}

// Register returns the register of the location, if it is one.
func (loc Location) Register() (reg Register, ok bool) {
	if loc >= ARENA_REGISTER && loc < ARENA_SCRATCH {
		return Register(loc - ARENA_REGISTER), true
	}
	return
}

// Scratch returns true if the location is a literal slot.
func (loc Location) Scratch() bool {
	return loc >= ARENA_SCRATCH && loc < ARENA_END
}
