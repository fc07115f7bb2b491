package wlp4gen

import (
	"strings"
	"testing"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/stretchr/testify/assert"
)

func Test_Analyze_minimalWain(t *testing.T) {
	assert := assert.New(t)

	tree := wainProgram(exprID("a"))
	symbols, err := Analyze(tree)
	if !assert.NoError(err) {
		return
	}

	wain, ok := symbols["wain"]
	if !assert.True(ok) {
		return
	}
	assert.Equal(0, wain.Variables["a"].offset)
	assert.Equal(-4, wain.Variables["b"].offset)
	assert.Equal(0, wain.VariablesCount)

	asm := Generate(tree, symbols, DefaultRuntime)
	assert.NotEmpty(asm)
	assert.Contains(asm, "jr $31")
	assert.Contains(asm, ".import init")
	assert.Contains(asm, "sw $1, 0($29)")
	assert.Contains(asm, "sw $2, -4($29)")
}

func Test_Analyze_duplicateProcedure(t *testing.T) {
	assert := assert.New(t)

	f1 := procedure("f", exprNum("1"))
	f2 := procedure("f", exprNum("2"))
	tree := programWithProcedures([]*types.ParseTree{f1, f2}, exprNum("0"))

	_, err := Analyze(tree)
	assert.Error(err)
}

func Test_Analyze_undeclaredVariable(t *testing.T) {
	assert := assert.New(t)

	tree := wainProgram(exprID("nonexistent"))
	_, err := Analyze(tree)
	assert.Error(err)
}

func Test_Analyze_wainMustReturnInt(t *testing.T) {
	assert := assert.New(t)

	tree := wainProgram(exprNull())
	_, err := Analyze(tree)
	assert.Error(err)
}

func Test_Analyze_forwardCallRejected(t *testing.T) {
	assert := assert.New(t)

	// f (declared first) calls g (declared after it): illegal.
	g := procedure("g", exprNum("1"))
	f := procedure("f", callNoArgs("g"))
	tree := programWithProcedures([]*types.ParseTree{f, g}, exprNum("0"))

	_, err := Analyze(tree)
	assert.Error(err)
}

func Test_Analyze_backwardCallAllowed(t *testing.T) {
	assert := assert.New(t)

	// f (declared first) exists; g (declared after) calls f: legal.
	f := procedure("f", exprNum("1"))
	g := procedure("g", callNoArgs("f"))
	tree := programWithProcedures([]*types.ParseTree{f, g}, exprNum("0"))

	symbols, err := Analyze(tree)
	if !assert.NoError(err) {
		return
	}

	asm := Generate(tree, symbols, DefaultRuntime)
	assert.Contains(asm, "Ff:")
	assert.Contains(asm, "Fg:")
}

func Test_Analyze_callToUnknownProcedure(t *testing.T) {
	assert := assert.New(t)

	f := procedure("f", exprNum("1"))
	tree := programWithProcedures([]*types.ParseTree{f}, callNoArgs("nosuchproc"))

	_, err := Analyze(tree)
	assert.Error(err)
}

func Test_Analyze_arityMismatch(t *testing.T) {
	assert := assert.New(t)

	// f takes one parameter; wain calls it with zero.
	f := procedureOneParam("f", "x", exprID("x"))
	tree := programWithProcedures([]*types.ParseTree{f}, callNoArgs("f"))

	_, err := Analyze(tree)
	assert.Error(err)
}
