package wlp4gen

import (
	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// Declare runs pass 1 over tree: it creates a Scope for every procedure and
// wain, and records every declared name's type and provisional frame
// offset. Parameters get the placeholder offset -1, rewritten later by
// Scope.importParameters once a procedure's full local count is known.
func Declare(tree *types.ParseTree, symbols Symbols) error {
	w := &declareWalker{symbols: symbols}
	return w.walk(tree, "", false)
}

type declareWalker struct {
	symbols Symbols
	order   int
}

func (w *declareWalker) walk(tree *types.ParseTree, scope string, inParams bool) error {
	if name, isScope := scopeNameOf(tree); isScope {
		if _, exists := w.symbols[name]; exists {
			return wlp4err.Decl("procedure %q declared more than once", name)
		}
		w.symbols[name] = NewScope(w.order)
		w.order++
		scope = name
	}

	switch {
	case tree.Rule == "params paramlist":
		inParams = true
	case tree.Rule == mainProcedureRule:
		sc := w.symbols[scope]
		sc.Parameters = append(sc.Parameters,
			parameter{typ: typeMapping[tree.Child(3).Child(0).Rule]},
			parameter{typ: typeMapping[tree.Child(5).Child(0).Rule]},
		)
	}

	if tree.Rule == "dcl type ID" {
		if tree.Child(0).Head == "ID" {
			tree.Children[0], tree.Children[1] = tree.Children[1], tree.Children[0]
		}
		typeNode, idNode := tree.Child(0), tree.Child(1)

		sc := w.symbols[scope]
		name := idNode.Lexeme()
		typ := typeMapping[typeNode.Rule]

		if _, exists := sc.Variables[name]; exists {
			return wlp4err.Decl("variable %q declared more than once in %q", name, scope)
		}

		offset := -1
		if !inParams {
			offset = -4 * sc.LocationCount
			sc.LocationCount++
		}
		sc.Variables[name] = variable{typ: typ, offset: offset}
		if inParams {
			sc.Parameters = append(sc.Parameters, parameter{name: name, typ: typ})
		}
		return nil
	}

	for _, child := range tree.Children {
		if err := w.walk(child, scope, inParams); err != nil {
			return err
		}
	}
	return nil
}
