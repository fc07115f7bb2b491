package wlp4asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_validateLine_threeRegister(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("add $1, $2, $3")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_twoRegister(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("mult $1, $2")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_oneRegister(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("jr $31")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_branch(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("beq $1, $2, loop")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

// TestStoreLoadRejectsMissingComma pins the required comma between a
// store/load instruction's register and its immediate: a line missing it
// must be rejected, not silently accepted.
func TestStoreLoadRejectsMissingComma(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("sw $1 -4($29)")
	if !assert.NoError(err) {
		return
	}
	assert.False(validateLine(&cursor{tokens: tokens}), "missing comma must fail validation")
}

func Test_validateLine_storeLoadWellFormed(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("sw $1, -4($29)")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_unknownOpcode(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("frobnicate $1")
	if !assert.NoError(err) {
		return
	}
	assert.False(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_registerOutOfRange(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("jr $32")
	if !assert.NoError(err) {
		return
	}
	assert.False(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_label(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine("loop: jr $31")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}

func Test_validateLine_wordDirective(t *testing.T) {
	assert := assert.New(t)

	tokens, err := tokenizeLine(".word 42")
	if !assert.NoError(err) {
		return
	}
	assert.True(validateLine(&cursor{tokens: tokens}))
}
