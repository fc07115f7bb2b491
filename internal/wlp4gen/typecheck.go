package wlp4gen

import (
	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// TypeCheck runs pass 3 over an already-Resolve'd tree: bottom-up inference
// and checking per the type algebra. On success for a
// procedure's defining node, it finalizes that procedure's Scope by calling
// importParameters.
func TypeCheck(tree *types.ParseTree, symbols Symbols) error {
	w := &typeWalker{symbols: symbols}
	return w.walk(tree, "")
}

type typeWalker struct {
	symbols Symbols
}

func (w *typeWalker) walk(tree *types.ParseTree, scope string) error {
	if name, ok := scopeNameOf(tree); ok {
		scope = name
	}

	for _, child := range tree.Children {
		if err := w.walk(child, scope); err != nil {
			return err
		}
	}

	sc := w.symbols[scope]

	switch {
	case tree.Head == "NUM":
		tree.InferredType = types.INT
	case tree.Head == "NULL":
		tree.InferredType = types.INTSTAR
	case tree.Rule == "factor NUM":
		tree.InferredType = types.INT
	case tree.Rule == "factor NULL":
		tree.InferredType = types.INTSTAR
	case tree.Rule == "factor ID" || tree.Rule == "lvalue ID":
		tree.InferredType = sc.Variables[tree.Child(0).Lexeme()].typ
	case tree.Rule == "factor ID LPAREN RPAREN" || tree.Rule == "factor ID LPAREN arglist RPAREN":
		tree.InferredType = types.INT
		if len(tree.Children) == 4 {
			callee := w.symbols[tree.Child(0).Lexeme()]
			args := tree.Child(2).Signature
			for i, p := range callee.Parameters {
				if args[i] != p.typ {
					return wlp4err.Typ("call to %q passes argument %d of type %s, expected %s",
						tree.Child(0).Lexeme(), i+1, args[i], p.typ)
				}
			}
		}
	case tree.Rule == "arglist expr":
		tree.Signature = []types.Type{tree.Child(0).InferredType}
	case tree.Rule == "arglist expr COMMA arglist":
		tree.Signature = append([]types.Type{tree.Child(0).InferredType}, tree.Child(2).Signature...)
	case tree.Rule == "factor AMP lvalue":
		if tree.Child(1).InferredType != types.INT {
			return wlp4err.Typ("cannot take the address of a non-int lvalue")
		}
		tree.InferredType = types.INTSTAR
	case tree.Rule == "term factor" || tree.Rule == "expr term":
		tree.InferredType = tree.Child(0).InferredType
	case tree.Rule == "lvalue LPAREN lvalue RPAREN" || tree.Rule == "factor LPAREN expr RPAREN":
		tree.InferredType = tree.Child(1).InferredType
	case tree.Rule == "factor NEW INT LBRACK expr RBRACK":
		if tree.Child(3).InferredType != types.INT {
			return wlp4err.Typ("new int[...] length must be int")
		}
		tree.InferredType = types.INTSTAR
	case tree.Rule == "expr expr PLUS term":
		first, second := tree.Child(0).InferredType, tree.Child(2).InferredType
		if first == second && first == types.INTSTAR {
			return wlp4err.Typ("cannot add two pointers")
		}
		if first == second {
			tree.InferredType = types.INT
		} else {
			tree.InferredType = types.INTSTAR
		}
	case tree.Rule == "expr expr MINUS term":
		first, second := tree.Child(0).InferredType, tree.Child(2).InferredType
		switch {
		case first == second && first == types.INT:
			tree.InferredType = types.INT
		case first == types.INTSTAR && second == types.INT:
			tree.InferredType = types.INTSTAR
		case first == second && first == types.INTSTAR:
			tree.InferredType = types.INT
		default:
			return wlp4err.Typ("cannot subtract a %s from a %s", second, first)
		}
	case tree.Rule == "lvalue STAR factor" || tree.Rule == "factor STAR factor":
		if tree.Child(1).InferredType != types.INTSTAR {
			return wlp4err.Typ("cannot dereference a non-pointer")
		}
		tree.InferredType = types.INT
	case tree.Rule == "term term STAR factor" || tree.Rule == "term term SLASH factor" || tree.Rule == "term term PCT factor":
		if tree.Child(0).InferredType != types.INT || tree.Child(2).InferredType != types.INT {
			return wlp4err.Typ("operands of *, /, and %% must both be int")
		}
		tree.InferredType = types.INT
	case tree.Head == "test":
		if tree.Child(0).InferredType != tree.Child(2).InferredType {
			return wlp4err.Typ("comparison operands must share a type")
		}
	case tree.Rule == "statement DELETE LBRACK RBRACK expr SEMI":
		if tree.Child(3).InferredType != types.INTSTAR {
			return wlp4err.Typ("delete[] operand must be int*")
		}
	case tree.Rule == "statement PRINTLN LPAREN expr RPAREN SEMI":
		if tree.Child(2).InferredType != types.INT {
			return wlp4err.Typ("println argument must be int")
		}
	case tree.Rule == "statement lvalue BECOMES expr SEMI":
		if tree.Child(0).InferredType != tree.Child(2).InferredType {
			return wlp4err.Typ("assignment sides must share a type")
		}
	case tree.Rule == "dcls dcls dcl BECOMES NULL SEMI" || tree.Rule == "dcls dcls dcl BECOMES NUM SEMI":
		name := tree.Child(1).Child(1).Lexeme()
		if sc.Variables[name].typ != tree.Child(3).InferredType {
			return wlp4err.Typ("initializer for %q does not match its declared type", name)
		}
	case tree.Rule == mainProcedureRule:
		if tree.Child(11).InferredType != types.INT {
			return wlp4err.Typ("wain must return int")
		}
		if len(tree.Child(5).Child(0).Tokens) > 1 {
			return wlp4err.Typ("wain's second parameter must be int, not int*")
		}
		sc.importParameters()
	case tree.Rule == procedureRule:
		if tree.Child(9).InferredType != types.INT {
			return wlp4err.Typ("procedure %q must return int", tree.Child(1).Lexeme())
		}
		sc.importParameters()
	}

	return nil
}
