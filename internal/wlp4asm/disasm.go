package wlp4asm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// Disassemble decodes a stream of packed big-endian 32-bit words back into
// one textual instruction per line — the inverse of encode.
func Disassemble(data []byte) (string, error) {
	if len(data)%4 != 0 {
		return "", wlp4err.Asm("machine code length %d is not a multiple of 4", len(data))
	}

	var out strings.Builder
	for i := 0; i < len(data); i += 4 {
		word := binary.BigEndian.Uint32(data[i : i+4])
		line, err := disassembleWord(word)
		if err != nil {
			return "", err
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

func disassembleWord(word uint32) (string, error) {
	for opcode, info := range Instructions {
		if word&^operandMask(info.Format) != info.Base {
			continue
		}
		return renderInstruction(opcode, info.Format, word), nil
	}
	return "", wlp4err.Asm("word %#08x matches no known instruction", word)
}

func renderInstruction(opcode string, format Format, word uint32) string {
	rs := (word >> 21) & 0x1F
	rt := (word >> 16) & 0x1F
	rd := (word >> 11) & 0x1F
	imm16 := int16(word & 0xFFFF)

	switch format {
	case OneRegA:
		return fmt.Sprintf("%s $%d", opcode, rs)
	case OneRegB:
		return fmt.Sprintf("%s $%d", opcode, rd)
	case TwoReg:
		return fmt.Sprintf("%s $%d, $%d", opcode, rs, rt)
	case ThreeReg:
		return fmt.Sprintf("%s $%d, $%d, $%d", opcode, rd, rs, rt)
	case Branch:
		return fmt.Sprintf("%s $%d, $%d, %d", opcode, rs, rt, imm16)
	case StoreLoad:
		return fmt.Sprintf("%s $%d, %d($%d)", opcode, rt, imm16, rs)
	default:
		return opcode
	}
}
