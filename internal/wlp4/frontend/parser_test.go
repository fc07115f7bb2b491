package frontend

import (
	"strings"
	"testing"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/stretchr/testify/assert"
)

func mustLoadSumGrammar(t *testing.T) *Table {
	t.Helper()
	g, err := LoadGrammar(strings.NewReader(sumGrammar))
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	return g
}

func Test_Parse(t *testing.T) {
	assert := assert.New(t)
	g := mustLoadSumGrammar(t)

	toks := []types.Token{
		{Kind: types.NUM, Lexeme: "1"},
		{Kind: types.PLUS, Lexeme: "+"},
		{Kind: types.NUM, Lexeme: "2"},
		{Kind: types.PLUS, Lexeme: "+"},
		{Kind: types.NUM, Lexeme: "3"},
	}

	tree, err := Parse(toks, g)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("start", tree.Head)
	assert.Equal("start E", tree.Rule)
	assert.Equal(1, len(tree.Children))

	// ((1 + 2) + 3): outermost E should be "E E PLUS NUM" whose rightmost
	// child is the leaf NUM "3".
	outer := tree.Children[0]
	assert.Equal("E E PLUS NUM", outer.Rule)
	assert.Equal("3", outer.Children[2].Lexeme())
}

func Test_Parse_syntaxError(t *testing.T) {
	assert := assert.New(t)
	g := mustLoadSumGrammar(t)

	toks := []types.Token{
		{Kind: types.PLUS, Lexeme: "+"},
	}

	_, err := Parse(toks, g)
	assert.Error(err)
}
