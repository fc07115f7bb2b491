package frontend

import (
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// endMarker is the virtual lookahead symbol consulted once real input (which
// already ends with a literal EOF token) is exhausted. It is
// never shifted, only used to drive the final chain of reduces up to the
// start symbol.
const endMarker = "$"

// Parse drives a canonical LR(1) shift-reduce automaton, described entirely
// by g, over toks. The caller's token stream is the literal
// BOF/EOF-wrapped scanner output; Parse does not add its own sentinels
// beyond the internal end-of-input marker used for the final reduce chain.
//
// This is a generic table-driven parser: the only WLP4-specific thing
// about it is the grammar.txt it
// is handed.
func Parse(toks []types.Token, g *Table) (*types.ParseTree, error) {
	stateStack := []int{0}
	nodeStack := []*types.ParseTree{}
	ip := 0

	lookahead := func() string {
		if ip < len(toks) {
			return string(toks[ip].Kind)
		}
		return endMarker
	}

	for {
		state := stateStack[len(stateStack)-1]
		sym := lookahead()

		action, ok := g.Actions[state][sym]
		if !ok {
			return nil, wlp4err.Syn("no action for state %d on lookahead %s (expected %s)", state, sym, g.describeExpected(state))
		}

		if action.Shift {
			if sym == endMarker {
				return nil, wlp4err.Syn("state %d shifts on end of input, which is never a valid token", state)
			}
			tok := toks[ip]
			nodeStack = append(nodeStack, &types.ParseTree{Head: sym, Leaf: &tok})
			stateStack = append(stateStack, action.Arg)
			ip++
			continue
		}

		rule := g.Rules[action.Arg]
		n := len(rule.Body)

		children := make([]*types.ParseTree, n)
		copy(children, nodeStack[len(nodeStack)-n:])
		nodeStack = nodeStack[:len(nodeStack)-n]
		stateStack = stateStack[:len(stateStack)-n]

		node := &types.ParseTree{
			Head:     rule.Head,
			Rule:     rule.String(),
			Tokens:   append([]string(nil), rule.Body...),
			Children: children,
		}

		// Reducing all the way back to the grammar's start symbol with no
		// input left to look ahead at means the whole token stream has been
		// derived; accept without needing a further goto entry for the
		// start symbol, since nothing ever shifts past it.
		if rule.Head == g.Start && sym == endMarker {
			return node, nil
		}

		gotoState := stateStack[len(stateStack)-1]
		gotoAction, ok := g.Actions[gotoState][rule.Head]
		if !ok || !gotoAction.Shift {
			return nil, wlp4err.Syn("no goto from state %d on non-terminal %s", gotoState, rule.Head)
		}

		nodeStack = append(nodeStack, node)
		stateStack = append(stateStack, gotoAction.Arg)
	}
}

// expectedList renders the set of acceptable next tokens for a syntax error
// message as a comma-joined, Oxford-comma'd list, e.g. "SEMI, PLUS, and
// MINUS".
func expectedList(symbols []string) string {
	switch len(symbols) {
	case 0:
		return ""
	case 1:
		return symbols[0]
	case 2:
		return symbols[0] + " and " + symbols[1]
	default:
		last := len(symbols) - 1
		listed := append(append([]string{}, symbols[:last]...), "and "+symbols[last])
		return strings.Join(listed, ", ")
	}
}
