package frontend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sumGrammar = `2
NUM
PLUS
2
start
E
start
3
start E
E E PLUS NUM
E NUM
5
0 NUM shift 2
0 E shift 1
1 PLUS shift 3
1 $ reduce 0
2 PLUS reduce 2
2 $ reduce 2
3 NUM shift 4
4 PLUS reduce 1
4 $ reduce 1
`

func Test_LoadGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := LoadGrammar(strings.NewReader(sumGrammar))
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"NUM", "PLUS"}, g.Terminals)
	assert.Equal([]string{"start", "E"}, g.NonTerminals)
	assert.Equal("start", g.Start)
	assert.Equal(3, len(g.Rules))
	assert.Equal("E E PLUS NUM", g.Rules[1].String())
	assert.Equal(5, g.NumStates)

	act, ok := g.Actions[1]["PLUS"]
	assert.True(ok)
	assert.True(act.Shift)
	assert.Equal(3, act.Arg)
}

func Test_LoadGrammar_malformed(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadGrammar(strings.NewReader("not a number\n"))
	assert.Error(err)
}
