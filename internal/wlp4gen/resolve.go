package wlp4gen

import (
	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// Resolve runs pass 2 over an already-Declare'd tree: every variable
// reference must name a declared local or parameter, and every call must
// name a known, not-shadowed, not-forward-declared procedure with a
// matching argument count.
func Resolve(tree *types.ParseTree, symbols Symbols) error {
	w := &resolveWalker{symbols: symbols}
	return w.walk(tree, "")
}

type resolveWalker struct {
	symbols Symbols
}

func (w *resolveWalker) walk(tree *types.ParseTree, scope string) error {
	if name, ok := scopeNameOf(tree); ok {
		scope = name
	}

	switch tree.Rule {
	case "factor ID LPAREN RPAREN", "factor ID LPAREN arglist RPAREN":
		fn := tree.Child(0).Lexeme()
		sc := w.symbols[scope]

		if _, shadowed := sc.Variables[fn]; shadowed {
			return wlp4err.Resolve("call to %q is shadowed by a local variable", fn)
		}

		callee, known := w.symbols[fn]
		if !known || callee.Order > sc.Order {
			return wlp4err.Resolve("call to undeclared procedure %q", fn)
		}

		argCount := 0
		if len(tree.Children) == 4 {
			argCount = countCommas(tree.Child(2)) + 1
		}
		if len(callee.Parameters) != argCount {
			return wlp4err.Resolve("call to %q passes %d argument(s), expected %d", fn, argCount, len(callee.Parameters))
		}
	case "factor ID", "lvalue ID":
		name := tree.Child(0).Lexeme()
		if _, ok := w.symbols[scope].Variables[name]; !ok {
			return wlp4err.Resolve("undeclared variable %q", name)
		}
	default:
		for _, child := range tree.Children {
			if err := w.walk(child, scope); err != nil {
				return err
			}
		}
	}

	return nil
}
