// Package cpu implements the assembler and interpreter for the DCPU-16.
//
// The DCPU-16 is a 16-bit word addressed machine with 65536 words of memory,
// eight general purpose registers (A, B, C, X, Y, Z, I, J), a program counter
// (PC), a stack pointer (SP) and an overflow register (O).
//
// Instructions are one word, optionally followed by one trailing word per
// operand. The basic form is bbbbbbaaaaaaoooo, with a 4-bit opcode and two
// 6-bit operand modes. Opcode 0 is the extended form, which carries an
// extended opcode in place of the first operand.
//
// The assembler runs in two passes. Parse classifies the source into a
// Program listing with label addresses, and Program.Encode maps the listing
// to words.
package cpu
