package wlp4asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Assemble_simpleReturn(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		"add $3, $1, $0",
		"jr $31",
	}, "\n")

	result, err := Assemble(strings.NewReader(src))
	if !assert.NoError(err) {
		return
	}
	assert.Len(result.Code, 8)
	assert.Equal(2, result.Stats.Instructions)
}

func Test_Assemble_wordDirectiveLiteral(t *testing.T) {
	assert := assert.New(t)

	result, err := Assemble(strings.NewReader(".word 42"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]byte{0, 0, 0, 42}, result.Code)
}

func Test_Assemble_wordDirectiveLabel(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		".word target",
		"target: add $0, $0, $0",
	}, "\n")

	result, err := Assemble(strings.NewReader(src))
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]byte{0, 0, 0, 4}, result.Code[:4])
}

func Test_Assemble_duplicateLabel(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		"loop: add $0, $0, $0",
		"loop: add $0, $0, $0",
	}, "\n")

	_, err := Assemble(strings.NewReader(src))
	assert.Error(err)
}

func Test_Assemble_undefinedLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble(strings.NewReader("beq $1, $2, nowhere"))
	assert.Error(err)
}

// Test_Assemble_branchOutOfRange pins the case where a branch's target
// lies far enough away that the displacement doesn't fit in 16 bits.
func Test_Assemble_branchOutOfRange(t *testing.T) {
	assert := assert.New(t)

	var lines []string
	lines = append(lines, "beq $1, $2, far")
	for i := 0; i < 40000; i++ {
		lines = append(lines, "add $0, $0, $0")
	}
	lines = append(lines, "far: add $0, $0, $0")

	_, err := Assemble(strings.NewReader(strings.Join(lines, "\n")))
	assert.Error(err)
}

func Test_Assemble_branchWithinRange(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		"beq $1, $2, far",
		"add $0, $0, $0",
		"far: add $0, $0, $0",
	}, "\n")

	_, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
}

func Test_Assemble_malformedLine(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble(strings.NewReader("add $1, $2"))
	assert.Error(err)
}

func Test_DisassembleRoundTrip(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		"add $3, $1, $2",
		"sub $4, $5, $6",
		"sw $1, -4($29)",
		"lw $2, 8($30)",
		"lis $5",
		"mflo $6",
		"jr $31",
	}, "\n")

	result, err := Assemble(strings.NewReader(src))
	if !assert.NoError(err) {
		return
	}

	text, err := Disassemble(result.Code)
	if !assert.NoError(err) {
		return
	}

	for _, want := range []string{
		"add $3, $1, $2",
		"sub $4, $5, $6",
		"sw $1, -4($29)",
		"lw $2, 8($30)",
		"lis $5",
		"mflo $6",
		"jr $31",
	} {
		assert.Contains(text, want)
	}
}

func Test_EncodeSymbolMapRoundTrip(t *testing.T) {
	assert := assert.New(t)

	original := map[string]uint32{"loop": 0, "done": 12}
	data, err := EncodeSymbolMap(original)
	if !assert.NoError(err) {
		return
	}

	decoded, err := DecodeSymbolMap(data)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(original, decoded)
}
