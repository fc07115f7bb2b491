package frontend

import (
	"strings"
	"testing"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/stretchr/testify/assert"
)

func Test_WriteDerivation_then_ReadDerivation_roundTrips(t *testing.T) {
	assert := assert.New(t)
	g := mustLoadSumGrammar(t)

	toks := []types.Token{
		{Kind: types.NUM, Lexeme: "1"},
		{Kind: types.PLUS, Lexeme: "+"},
		{Kind: types.NUM, Lexeme: "2"},
	}

	tree, err := Parse(toks, g)
	if !assert.NoError(err) {
		return
	}

	var buf strings.Builder
	if !assert.NoError(tree.WriteDerivation(&buf)) {
		return
	}

	roundTripped, err := ReadDerivation(strings.NewReader(buf.String()))
	if !assert.NoError(err) {
		return
	}

	assert.Equal(tree, roundTripped)
}

func Test_ReadDerivation_trailingGarbage(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadDerivation(strings.NewReader("ID x\nID y\n"))
	assert.Error(err)
}
