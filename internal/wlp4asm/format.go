// Package wlp4asm assembles the target-assembly text emitted by
// internal/wlp4gen into raw big-endian machine code, and disassembles it
// back.
package wlp4asm

// Format is the operand shape an opcode is encoded with. The instruction
// set is modeled as a data table indexed by opcode name, each entry
// carrying (format, base word); encoding is then a single dispatch on
// format rather than one case per opcode.
type Format int

const (
	OneRegA   Format = iota // jr, jalr: base | (rs << 21)
	OneRegB                 // lis, mflo, mfhi: base | (rd << 11)
	TwoReg                  // mult, multu, div, divu: base | (rs<<21) | (rt<<16)
	ThreeReg                // add, sub, slt, sltu: base | (rs<<21) | (rt<<16) | (rd<<11)
	Branch                  // beq, bne: base | (rs<<21) | (rt<<16) | (imm16&0xFFFF)
	StoreLoad               // sw, lw: base | (rs<<21) | (rt<<16) | (imm16&0xFFFF)
)

// Instruction is one opcode's format and the fixed bits of its encoding
// that operands are OR'd into.
type Instruction struct {
	Format Format
	Base   uint32
}

// Instructions is the fixed opcode table: format and machine-code base
// word for every supported mnemonic.
var Instructions = map[string]Instruction{
	"jr":   {OneRegA, 8},
	"jalr": {OneRegA, 9},

	"lis":  {OneRegB, 20},
	"mflo": {OneRegB, 18},
	"mfhi": {OneRegB, 16},

	"add":  {ThreeReg, 32},
	"sub":  {ThreeReg, 34},
	"slt":  {ThreeReg, 42},
	"sltu": {ThreeReg, 43},

	"beq": {Branch, 268435456},
	"bne": {Branch, 335544320},

	"mult":  {TwoReg, 24},
	"multu": {TwoReg, 25},
	"div":   {TwoReg, 26},
	"divu":  {TwoReg, 27},

	"sw": {StoreLoad, 2885681152},
	"lw": {StoreLoad, 2348810240},
}

// operandMask is the set of bits an encoded instruction's operands occupy
// for its format, i.e. everything that isn't part of the fixed base word.
// Disassembly masks a word with this to recover the candidate base.
func operandMask(f Format) uint32 {
	const rsMask = 0x03E00000 // bits 21-25
	const rtMask = 0x001F0000 // bits 16-20
	const rdMask = 0x0000F800 // bits 11-15
	const imm16Mask = 0x0000FFFF

	switch f {
	case OneRegA:
		return rsMask
	case OneRegB:
		return rdMask
	case TwoReg:
		return rsMask | rtMask
	case ThreeReg:
		return rsMask | rtMask | rdMask
	case Branch, StoreLoad:
		return rsMask | rtMask | imm16Mask
	default:
		return 0
	}
}
