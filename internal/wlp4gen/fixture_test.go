package wlp4gen

import "github.com/dekarrin/wlp4c/internal/wlp4/types"

func leaf(kind types.Kind, lexeme string) *types.ParseTree {
	tok := types.Token{Kind: kind, Lexeme: lexeme}
	return &types.ParseTree{Head: string(kind), Leaf: &tok}
}

func node(head, rule string, children ...*types.ParseTree) *types.ParseTree {
	return &types.ParseTree{Head: head, Rule: rule, Children: children}
}

func emptyDcls() *types.ParseTree  { return &types.ParseTree{Head: "dcls", Rule: "dcls"} }
func emptyStatements() *types.ParseTree {
	return &types.ParseTree{Head: "statements", Rule: "statements"}
}

func typeInt() *types.ParseTree {
	return node("type", "type INT", leaf(types.INT, "int"))
}

func typeIntStar() *types.ParseTree {
	return node("type", "type INT STAR", leaf(types.INT, "int"), leaf(types.STAR, "*"))
}

func dcl(typeNode *types.ParseTree, name string) *types.ParseTree {
	return node("dcl", "dcl type ID", typeNode, leaf(types.ID, name))
}

// exprID builds "expr term factor ID <name>" — a bare variable-reference
// expression.
func exprID(name string) *types.ParseTree {
	factor := node("factor", "factor ID", leaf(types.ID, name))
	term := node("term", "term factor", factor)
	return node("expr", "expr term", term)
}

// exprNum builds "expr term factor NUM <n>".
func exprNum(n string) *types.ParseTree {
	numLeaf := leaf(types.NUM, n)
	factor := node("factor", "factor NUM", numLeaf)
	term := node("term", "term factor", factor)
	return node("expr", "expr term", term)
}

// exprNull builds "expr term factor NULL".
func exprNull() *types.ParseTree {
	nullLeaf := leaf(types.NULL, "NULL")
	factor := node("factor", "factor NULL", nullLeaf)
	term := node("term", "term factor", factor)
	return node("expr", "expr term", term)
}

// wainProgram builds the parse tree for:
//
//	int wain(int a, int b) { return <returnExpr>; }
func wainProgram(returnExpr *types.ParseTree) *types.ParseTree {
	main := node("main", mainProcedureRule,
		leaf(types.INT, "int"), leaf(types.WAIN, "wain"), leaf(types.LPAREN, "("),
		dcl(typeInt(), "a"), leaf(types.COMMA, ","), dcl(typeInt(), "b"), leaf(types.RPAREN, ")"),
		leaf(types.LBRACE, "{"),
		emptyDcls(), emptyStatements(),
		leaf(types.RETURN, "return"), returnExpr, leaf(types.SEMI, ";"), leaf(types.RBRACE, "}"),
	)
	procedures := node("procedures", "procedures main", main)
	return node("start", "start BOF procedures EOF", leaf(types.BOF, ""), procedures, leaf(types.EOF, ""))
}

// callNoArgs builds "expr term factor ID LPAREN RPAREN" — a niladic call.
func callNoArgs(callee string) *types.ParseTree {
	factor := node("factor", "factor ID LPAREN RPAREN", leaf(types.ID, callee), leaf(types.LPAREN, "("), leaf(types.RPAREN, ")"))
	term := node("term", "term factor", factor)
	return node("expr", "expr term", term)
}

// procedure builds a user procedure node: "int <name>() { return
// <returnExpr>; }" with no parameters and no locals, for call-graph tests.
func procedure(name string, returnExpr *types.ParseTree) *types.ParseTree {
	params := node("params", "params")
	return node("procedure", procedureRule,
		leaf(types.INT, "int"), leaf(types.ID, name), leaf(types.LPAREN, "("),
		params, leaf(types.RPAREN, ")"), leaf(types.LBRACE, "{"),
		emptyDcls(), emptyStatements(),
		leaf(types.RETURN, "return"), returnExpr, leaf(types.SEMI, ";"), leaf(types.RBRACE, "}"),
	)
}

// procedureOneParam builds "int <name>(int <paramName>) { return <returnExpr>; }".
func procedureOneParam(name, paramName string, returnExpr *types.ParseTree) *types.ParseTree {
	paramlist := node("paramlist", "paramlist dcl", dcl(typeInt(), paramName))
	params := node("params", "params paramlist", paramlist)
	return node("procedure", procedureRule,
		leaf(types.INT, "int"), leaf(types.ID, name), leaf(types.LPAREN, "("),
		params, leaf(types.RPAREN, ")"), leaf(types.LBRACE, "{"),
		emptyDcls(), emptyStatements(),
		leaf(types.RETURN, "return"), returnExpr, leaf(types.SEMI, ";"), leaf(types.RBRACE, "}"),
	)
}

// programWithProcedures builds the full program "<procs...> <wain>" in
// source order, with wain's body a single `return <wainReturn>;`. The
// grammar's procedures list is right-recursive, so the first entry of procs
// is declared (and thus scope-ordered) first.
func programWithProcedures(procs []*types.ParseTree, wainReturn *types.ParseTree) *types.ParseTree {
	main := node("main", mainProcedureRule,
		leaf(types.INT, "int"), leaf(types.WAIN, "wain"), leaf(types.LPAREN, "("),
		dcl(typeInt(), "a"), leaf(types.COMMA, ","), dcl(typeInt(), "b"), leaf(types.RPAREN, ")"),
		leaf(types.LBRACE, "{"),
		emptyDcls(), emptyStatements(),
		leaf(types.RETURN, "return"), wainReturn, leaf(types.SEMI, ";"), leaf(types.RBRACE, "}"),
	)

	proceduresNode := node("procedures", "procedures main", main)
	for i := len(procs) - 1; i >= 0; i-- {
		proceduresNode = node("procedures", "procedures procedure procedures", procs[i], proceduresNode)
	}

	return node("start", "start BOF procedures EOF", leaf(types.BOF, ""), proceduresNode, leaf(types.EOF, ""))
}
