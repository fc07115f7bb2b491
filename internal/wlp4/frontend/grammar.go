package frontend

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// Rule is one production of the WLP4 grammar, read from grammar.txt.
type Rule struct {
	Head string
	Body []string
}

// String renders the rule the way the analyzer dispatches on it: the head
// followed by its body symbols, space separated (e.g. "expr expr PLUS
// term").
func (r Rule) String() string {
	if len(r.Body) == 0 {
		return r.Head
	}
	return r.Head + " " + strings.Join(r.Body, " ")
}

// LRAction is one cell of the action table: either a shift to a state or a
// reduce by a rule index.
type LRAction struct {
	Shift bool // false means reduce
	Arg   int  // shift: destination state. reduce: rule index into Table.Rules.
}

// Table is the parsed contents of grammar.txt: the terminal and
// non-terminal alphabets, the start symbol, the production rules in
// declaration order, and the LR(1) action table keyed by state then by
// lookahead symbol.
type Table struct {
	Terminals    []string
	NonTerminals []string
	Start        string
	Rules        []Rule
	NumStates    int
	Actions      map[int]map[string]LRAction
}

// LoadGrammar reads grammar.txt's sections in order: a terminal count and
// list, a non-terminal count and list, the start symbol, a rule count and
// list of "HEAD BODY..." lines, a state count, and then one
// "<state> <token> <shift|reduce> <arg>" row per remaining line.
func LoadGrammar(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	next := func() (string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	readCount := func(label string) (int, error) {
		line, ok := next()
		if !ok {
			return 0, wlp4err.Syn("grammar.txt: expected %s count", label)
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return 0, wlp4err.Syn("grammar.txt: bad %s count %q: %v", label, line, err)
		}
		return n, nil
	}

	t := &Table{Actions: map[int]map[string]LRAction{}}

	nTerm, err := readCount("terminal")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nTerm; i++ {
		line, ok := next()
		if !ok {
			return nil, wlp4err.Syn("grammar.txt: missing terminal %d", i)
		}
		t.Terminals = append(t.Terminals, line)
	}

	nNonTerm, err := readCount("non-terminal")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nNonTerm; i++ {
		line, ok := next()
		if !ok {
			return nil, wlp4err.Syn("grammar.txt: missing non-terminal %d", i)
		}
		t.NonTerminals = append(t.NonTerminals, line)
	}

	start, ok := next()
	if !ok {
		return nil, wlp4err.Syn("grammar.txt: missing start symbol")
	}
	t.Start = start

	nRules, err := readCount("rule")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nRules; i++ {
		line, ok := next()
		if !ok {
			return nil, wlp4err.Syn("grammar.txt: missing rule %d", i)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, wlp4err.Syn("grammar.txt: empty rule %d", i)
		}
		body := fields[1:]
		if len(body) == 1 && body[0] == ".EMPTY" {
			body = nil
		}
		t.Rules = append(t.Rules, Rule{Head: fields[0], Body: body})
	}

	nStates, err := readCount("state")
	if err != nil {
		return nil, err
	}
	t.NumStates = nStates

	for {
		line, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, wlp4err.Syn("grammar.txt: malformed action row %q", line)
		}
		state, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, wlp4err.Syn("grammar.txt: bad state in action row %q", line)
		}
		arg, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, wlp4err.Syn("grammar.txt: bad argument in action row %q", line)
		}

		var action LRAction
		switch fields[2] {
		case "shift":
			action = LRAction{Shift: true, Arg: arg}
		case "reduce":
			action = LRAction{Shift: false, Arg: arg}
		default:
			return nil, wlp4err.Syn("grammar.txt: unknown action %q", fields[2])
		}

		if t.Actions[state] == nil {
			t.Actions[state] = map[string]LRAction{}
		}
		t.Actions[state][fields[1]] = action
	}

	if err := sc.Err(); err != nil {
		return nil, wlp4err.Wrap(wlp4err.Syntax, err, "reading grammar.txt: %v", err)
	}

	return t, nil
}

// IsTerminal reports whether sym is one of the grammar's terminal symbols.
func (t *Table) IsTerminal(sym string) bool {
	for _, term := range t.Terminals {
		if term == sym {
			return true
		}
	}
	return false
}

func (t *Table) describeExpected(state int) string {
	toks := t.Actions[state]
	if len(toks) == 0 {
		return "nothing"
	}
	expected := make([]string, 0, len(toks))
	for tok := range toks {
		if t.IsTerminal(tok) || tok == endMarker {
			expected = append(expected, tok)
		}
	}
	if len(expected) == 0 {
		return "nothing"
	}
	return expectedList(expected)
}
