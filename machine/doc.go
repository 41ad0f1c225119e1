// Package machine implements the Hack 16-bit computer and its assembler.
//
// The computer consists of an A register, a D register, a program counter,
// a word-addressed instruction ROM, and a data RAM with a memory mapped
// screen and keyboard. Instructions are 16-bit words: A-instructions load
// a 15-bit constant into A, C-instructions compute an ALU function of D
// and A (or the RAM word M addressed by A), store it to any combination of
// A, D, and M, and conditionally jump to the address in A.
//
// The assembler translates Hack assembly text (@-commands, dest=comp;jump
// commands, and (LABEL) declarations) into instruction words, supporting
// equates and compile-time expression evaluation.
package machine
