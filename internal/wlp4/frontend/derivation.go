package frontend

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// ReadDerivation reads back the preorder derivation dump Parse's caller
// would have printed via ParseTree.WriteDerivation, reconstructing the same
// tree shape. This is the semantic analyzer's stdin format: each line is
// either a leaf ("KIND lexeme") or an internal node ("head rhs-symbol..."),
// and an internal node's child count is exactly its number of rhs symbols.
func ReadDerivation(r io.Reader) (*types.ParseTree, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, wlp4err.Wrap(wlp4err.Syntax, err, "reading derivation: %v", err)
	}

	d := &derivationReader{lines: lines}
	tree, err := d.readNode()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.lines) {
		return nil, wlp4err.Syn("trailing input after derivation: %d line(s) unconsumed", len(d.lines)-d.pos)
	}
	return tree, nil
}

type derivationReader struct {
	lines []string
	pos   int
}

func (d *derivationReader) readNode() (*types.ParseTree, error) {
	if d.pos >= len(d.lines) {
		return nil, wlp4err.Syn("unexpected end of derivation")
	}
	fields := strings.Fields(d.lines[d.pos])
	d.pos++

	if len(fields) == 0 {
		return nil, wlp4err.Syn("empty derivation line")
	}

	if types.IsTerminalKind(fields[0]) {
		if len(fields) < 2 {
			return nil, wlp4err.Syn("leaf line missing lexeme: %q", d.lines[d.pos-1])
		}
		lexeme := strings.Join(fields[1:], " ")
		leaf := &types.Token{Kind: types.Kind(fields[0]), Lexeme: lexeme}
		return &types.ParseTree{Head: fields[0], Leaf: leaf}, nil
	}

	head := fields[0]
	body := fields[1:]
	node := &types.ParseTree{
		Head:     head,
		Rule:     d.lines[d.pos-1],
		Tokens:   body,
		Children: make([]*types.ParseTree, len(body)),
	}
	for i := range body {
		child, err := d.readNode()
		if err != nil {
			return nil, err
		}
		node.Children[i] = child
	}
	return node, nil
}
