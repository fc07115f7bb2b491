package wlp4asm

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// encode runs pass 2: every retained instruction's symbolic operands are
// resolved against symbols, packed into a 32-bit word, and appended as
// four big-endian bytes.
func encode(lines []instructionLine, symbols map[string]uint32) ([]byte, error) {
	out := make([]byte, 0, len(lines)*4)

	for _, line := range lines {
		word, err := encodeLine(line, symbols)
		if err != nil {
			return nil, err
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], word)
		out = append(out, buf[:]...)
	}
	return out, nil
}

func encodeLine(line instructionLine, symbols map[string]uint32) (uint32, error) {
	head := line.tokens[0]

	if head.kind == tkWord {
		operand := line.tokens[1]
		if operand.kind == tkID {
			addr, ok := symbols[operand.lexeme]
			if !ok {
				return 0, wlp4err.Asm("undefined label %q", operand.lexeme)
			}
			return addr, nil
		}
		return parseImmediate(operand, false)
	}

	info := Instructions[head.lexeme]
	word := info.Base

	switch info.Format {
	case OneRegA:
		word |= regNumber(line.tokens[1]) << 21
	case OneRegB:
		word |= regNumber(line.tokens[1]) << 11
	case TwoReg:
		rs, rt := regNumber(line.tokens[1]), regNumber(line.tokens[2])
		word |= (rs << 21) | (rt << 16)
	case ThreeReg:
		rd, rs, rt := regNumber(line.tokens[1]), regNumber(line.tokens[2]), regNumber(line.tokens[3])
		word |= (rs << 21) | (rt << 16) | (rd << 11)
	case Branch:
		rs, rt := regNumber(line.tokens[1]), regNumber(line.tokens[2])
		disp, err := resolveBranchDisplacement(line, symbols)
		if err != nil {
			return 0, err
		}
		word |= (rs << 21) | (rt << 16) | (disp & 0xFFFF)
	case StoreLoad:
		rt := regNumber(line.tokens[1])
		imm, err := parseImmediate(line.tokens[2], true)
		if err != nil {
			return 0, err
		}
		rs := regNumber(line.tokens[3])
		word |= (rs << 21) | (rt << 16) | (imm & 0xFFFF)
	}

	return word, nil
}

// resolveBranchDisplacement computes the signed word offset from the
// instruction after the branch to its target, failing if it does not fit
// in 16 bits.
func resolveBranchDisplacement(line instructionLine, symbols map[string]uint32) (uint32, error) {
	operand := line.tokens[3]
	if operand.kind != tkID {
		return parseImmediate(operand, true)
	}

	target, ok := symbols[operand.lexeme]
	if !ok {
		return 0, wlp4err.Asm("undefined label %q", operand.lexeme)
	}

	disp := (int64(target) - int64(line.address) - 4) / 4
	if disp < -32768 || disp > 32767 {
		return 0, wlp4err.Asm("branch displacement to %q does not fit in 16 bits", operand.lexeme)
	}
	return uint32(int16(disp)) & 0xFFFF, nil
}

// parseImmediate converts a decimal or hex literal token to its 32-bit
// two's-complement word value. small keeps only the low 16 bits, for a
// 16-bit immediate field; the literal's range is checked in pass 1 by
// isCurrentNumber, not here.
func parseImmediate(tok asmToken, small bool) (uint32, error) {
	switch tok.kind {
	case tkHexInt:
		digits := strings.TrimPrefix(strings.TrimPrefix(tok.lexeme, "0x"), "0X")
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return 0, wlp4err.Asm("invalid hex literal %q", tok.lexeme)
		}
		if small {
			return uint32(v) & 0xFFFF, nil
		}
		return uint32(v), nil

	case tkInt:
		v, err := strconv.ParseInt(tok.lexeme, 10, 64)
		if err != nil {
			return 0, wlp4err.Asm("invalid integer literal %q", tok.lexeme)
		}
		if small {
			return uint32(int16(v)) & 0xFFFF, nil
		}
		return uint32(v), nil

	default:
		return 0, wlp4err.Asm("expected a number, got %q", tok.lexeme)
	}
}

func regNumber(tok asmToken) uint32 {
	n, _ := strconv.Atoi(strings.TrimPrefix(tok.lexeme, "$"))
	return uint32(n)
}
