package wlp4gen

import (
	"strconv"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
)

// emitter walks an analyzed tree bottom-up, attaching a PartialArtifact to
// every node it visits. Its label counter and print-import flag are the
// only mutable state code generation needs; both are monotonic
// for the lifetime of one Generate call.
type emitter struct {
	symbols       Symbols
	runtime       Runtime
	labelCounter  int
	printImported bool
}

func (e *emitter) label() string {
	l := "L" + strconv.Itoa(e.labelCounter)
	e.labelCounter++
	return l
}

func functionLabel(name string) string { return "F" + name }

// renderPartial turns a node's PartialArtifact into the assembly text it
// represents: a ready code fragment, a literal to load into $3, or a frame
// slot to load from.
func renderPartial(p types.PartialArtifact) string {
	switch p.Kind {
	case types.NUMBER:
		return loadConstInstr(regResult, p.Payload)
	case types.LOCATION:
		return loadInstr(regResult, p.Payload, regFramePtr)
	default:
		return p.Payload
	}
}

// isDereferenceTarget reports whether an lvalue ultimately bottoms out in a
// "STAR factor" dereference rather than a plain variable, threading through
// any number of parenthesized wrappers. An assignment's left side uses this
// to decide whether to store through a computed address or straight into a
// frame slot.
func isDereferenceTarget(tree *types.ParseTree) bool {
	if tree.Rule == "lvalue LPAREN lvalue RPAREN" {
		return isDereferenceTarget(tree.Child(1))
	}
	return len(tree.Tokens) == 2
}

func (e *emitter) walk(tree *types.ParseTree, scope string) {
	if name, ok := scopeNameOf(tree); ok {
		scope = name
	}

	for _, child := range tree.Children {
		e.walk(child, scope)
	}

	sc := e.symbols[scope]

	switch {
	case tree.Head == "NUM":
		tree.Partial = types.PartialArtifact{Payload: tree.Lexeme(), Kind: types.NUMBER}

	case tree.Head == "NULL":
		tree.Partial = types.PartialArtifact{Payload: addInstr(regResult, regZero, regOne), Kind: types.CODE}

	case tree.Rule == mainProcedureRule:
		code := loadConstInstr(regFour, "4")
		code += loadConstInstr(regOne, "1")
		code += subInstr(regFramePtr, regStackPtr, regFour)
		code += loadConstInstr(regFrameSize, strconv.Itoa(sc.VariablesCount*4+8))
		code += subInstr(regStackPtr, regStackPtr, regFrameSize)
		code += storeInstr(regArg1, tree.Child(3).Partial.Payload, regFramePtr)
		code += storeInstr(regArg2, tree.Child(5).Partial.Payload, regFramePtr)
		if len(tree.Child(3).Child(0).Tokens) == 1 {
			code += loadConstInstr(regArg2, "0")
		}
		code += importInstr(e.runtime.Init)
		code += importInstr(e.runtime.New)
		code += importInstr(e.runtime.Delete)
		code += pushInstr(regReturn)
		code += loadConstInstr(regCallTarget, e.runtime.Init)
		code += jalrInstr(regCallTarget)
		code += popInstr(regReturn)
		code += renderPartial(tree.Child(8).Partial)
		code += renderPartial(tree.Child(9).Partial)
		code += renderPartial(tree.Child(11).Partial)
		code += addInstr(regStackPtr, regFramePtr, regFour)
		code += jrInstr(regReturn)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "dcl type ID":
		offset := sc.Variables[tree.Child(1).Lexeme()].offset
		tree.Partial = types.PartialArtifact{Payload: strconv.Itoa(offset), Kind: types.LOCATION}

	case tree.Rule == "expr term" || tree.Rule == "term factor" || tree.Rule == "procedures main" ||
		tree.Rule == "arglist expr" || tree.Rule == "factor NUM" || tree.Rule == "factor NULL":
		tree.Partial = tree.Child(0).Partial

	case tree.Rule == "factor ID" || tree.Rule == "lvalue ID":
		offset := sc.Variables[tree.Child(0).Lexeme()].offset
		tree.Partial = types.PartialArtifact{Payload: strconv.Itoa(offset), Kind: types.LOCATION}

	case tree.Rule == "factor LPAREN expr RPAREN" || tree.Rule == "lvalue LPAREN lvalue RPAREN" ||
		tree.Rule == "lvalue STAR factor":
		tree.Partial = tree.Child(1).Partial

	case tree.Rule == "expr expr PLUS term" || tree.Rule == "expr expr MINUS term":
		op := tree.Tokens[1]
		code := renderPartial(tree.Child(0).Partial)
		if tree.Child(2).InferredType == types.INTSTAR && op == "PLUS" {
			code += multInstr(regResult, regFour)
			code += mfloInstr(regResult)
		}
		code += pushInstr(regResult)
		code += renderPartial(tree.Child(2).Partial)
		if tree.Child(0).InferredType == types.INTSTAR && tree.Child(2).InferredType == types.INT {
			code += multInstr(regResult, regFour)
			code += mfloInstr(regResult)
		}
		code += popInstr(regScratch1)
		if op == "PLUS" {
			code += addInstr(regResult, regScratch1, regResult)
		} else {
			code += subInstr(regResult, regScratch1, regResult)
		}
		if op == "MINUS" && tree.Child(2).InferredType == types.INTSTAR {
			code += divInstr(regResult, regFour)
			code += mfloInstr(regResult)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "term term STAR factor" || tree.Rule == "term term SLASH factor" ||
		tree.Rule == "term term PCT factor":
		op := tree.Tokens[1]
		code := renderPartial(tree.Child(0).Partial)
		code += pushInstr(regResult)
		code += renderPartial(tree.Child(2).Partial)
		code += popInstr(regScratch1)
		if op == "STAR" {
			code += multInstr(regScratch1, regResult)
		} else {
			code += divInstr(regScratch1, regResult)
		}
		if op == "PCT" {
			code += mfhiInstr(regResult)
		} else {
			code += mfloInstr(regResult)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "statements statements statement":
		code := renderPartial(tree.Child(0).Partial) + renderPartial(tree.Child(1).Partial)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "statement PRINTLN LPAREN expr RPAREN SEMI":
		code := ""
		if !e.printImported {
			code += importInstr(e.runtime.Print)
			e.printImported = true
		}
		code += renderPartial(tree.Child(2).Partial)
		code += addInstr(regArg1, regResult, regZero)
		code += pushInstr(regReturn)
		code += loadConstInstr(regCallTarget, e.runtime.Print)
		code += jalrInstr(regCallTarget)
		code += popInstr(regReturn)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "statement lvalue BECOMES expr SEMI":
		code := renderPartial(tree.Child(2).Partial)
		if isDereferenceTarget(tree.Child(0)) {
			code += pushInstr(regResult)
			code += renderPartial(tree.Child(0).Partial)
			code += popInstr(regScratch1)
			code += storeInstr(regScratch1, "0", regResult)
		} else {
			code += storeInstr(regResult, tree.Child(0).Partial.Payload, regFramePtr)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "dcls dcls dcl BECOMES NUM SEMI" || tree.Rule == "dcls dcls dcl BECOMES NULL SEMI":
		code := renderPartial(tree.Child(0).Partial) + renderPartial(tree.Child(3).Partial) +
			storeInstr(regResult, tree.Child(1).Partial.Payload, regFramePtr)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "test expr LT expr" || tree.Rule == "test expr GT expr" ||
		tree.Rule == "test expr GE expr" || tree.Rule == "test expr LE expr":
		op := tree.Tokens[1]
		unsigned := tree.Child(0).InferredType == types.INTSTAR
		code := renderPartial(tree.Child(0).Partial)
		code += pushInstr(regResult)
		code += renderPartial(tree.Child(2).Partial)
		code += popInstr(regScratch1)
		if op == "LT" || op == "GE" {
			if unsigned {
				code += sltuInstr(regResult, regScratch1, regResult)
			} else {
				code += sltInstr(regResult, regScratch1, regResult)
			}
		} else {
			if unsigned {
				code += sltuInstr(regResult, regResult, regScratch1)
			} else {
				code += sltInstr(regResult, regResult, regScratch1)
			}
		}
		if op == "GE" || op == "LE" {
			code += subInstr(regResult, regOne, regResult)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "statement WHILE LPAREN test RPAREN LBRACE statements RBRACE":
		head := e.label()
		end := e.label()
		code := labelInstr(head)
		code += renderPartial(tree.Child(2).Partial)
		code += beqInstr(regResult, regZero, end)
		code += renderPartial(tree.Child(5).Partial)
		code += beqInstr(regZero, regZero, head)
		code += labelInstr(end)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "test expr NE expr" || tree.Rule == "test expr EQ expr":
		code := renderPartial(tree.Child(0).Partial)
		code += pushInstr(regResult)
		code += renderPartial(tree.Child(2).Partial)
		code += popInstr(regScratch1)
		if tree.Child(0).InferredType == types.INT {
			code += sltuInstr(regScratch2, regResult, regScratch1)
			code += sltuInstr(regScratch3, regScratch1, regResult)
		} else {
			code += sltInstr(regScratch2, regResult, regScratch1)
			code += sltInstr(regScratch3, regScratch1, regResult)
		}
		code += addInstr(regResult, regScratch2, regScratch3)
		if tree.Tokens[1] == "EQ" {
			code += subInstr(regResult, regOne, regResult)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "statement IF LPAREN test RPAREN LBRACE statements RBRACE ELSE LBRACE statements RBRACE":
		elseLabel := e.label()
		endLabel := e.label()
		code := renderPartial(tree.Child(2).Partial)
		code += beqInstr(regResult, regZero, elseLabel)
		code += renderPartial(tree.Child(5).Partial)
		code += beqInstr(regZero, regZero, endLabel)
		code += labelInstr(elseLabel)
		code += renderPartial(tree.Child(9).Partial)
		code += labelInstr(endLabel)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "factor STAR factor":
		code := renderPartial(tree.Child(1).Partial) + loadInstr(regResult, "0", regResult)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "factor AMP lvalue":
		var code string
		if tree.Child(1).Partial.Kind == types.LOCATION {
			code = loadConstInstr(regResult, tree.Child(1).Partial.Payload)
			code += addInstr(regResult, regResult, regFramePtr)
		} else {
			code = renderPartial(tree.Child(1).Child(1).Partial)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "factor NEW INT LBRACK expr RBRACK" || tree.Rule == "statement DELETE LBRACK RBRACK expr SEMI":
		isDelete := tree.Tokens[0] == "DELETE"
		code := renderPartial(tree.Child(3).Partial)
		var skipLabel string
		if isDelete {
			skipLabel = e.label()
			code += beqInstr(regResult, regOne, skipLabel)
		}
		code += addInstr(regArg1, regZero, regResult)
		code += pushInstr(regReturn)
		if isDelete {
			code += loadConstInstr(regCallTarget, e.runtime.Delete)
		} else {
			code += loadConstInstr(regCallTarget, e.runtime.New)
		}
		code += jalrInstr(regCallTarget)
		code += popInstr(regReturn)
		if isDelete {
			code += labelInstr(skipLabel)
		} else {
			code += bneInstr(regResult, regZero, "1")
			code += addInstr(regResult, regZero, regOne)
		}
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == procedureRule:
		code := labelInstr(functionLabel(tree.Child(1).Lexeme()))
		code += subInstr(regFramePtr, regStackPtr, regFour)
		code += loadConstInstr(regFrameSize, strconv.Itoa(sc.VariablesCount*4))
		code += subInstr(regStackPtr, regStackPtr, regFrameSize)
		code += renderPartial(tree.Child(6).Partial)
		code += renderPartial(tree.Child(7).Partial)
		code += renderPartial(tree.Child(9).Partial)
		code += addInstr(regStackPtr, regFramePtr, regFour)
		code += jrInstr(regReturn)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "procedures procedure procedures":
		code := renderPartial(tree.Child(1).Partial) + renderPartial(tree.Child(0).Partial)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "factor ID LPAREN RPAREN" || tree.Rule == "factor ID LPAREN arglist RPAREN":
		hasArgs := len(tree.Children) == 4
		code := pushInstr(regFramePtr)
		code += pushInstr(regReturn)
		if hasArgs {
			code += renderPartial(tree.Child(2).Partial)
			code += pushInstr(regResult)
		}
		code += loadConstInstr(regCallTarget, functionLabel(tree.Child(0).Lexeme()))
		code += jalrInstr(regCallTarget)
		if hasArgs {
			argCount := countCommas(tree.Child(2)) + 1
			code += loadConstInstr(regFrameSize, strconv.Itoa(4*argCount))
			code += addInstr(regStackPtr, regStackPtr, regFrameSize)
		}
		code += popInstr(regReturn)
		code += popInstr(regFramePtr)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}

	case tree.Rule == "arglist expr COMMA arglist":
		code := renderPartial(tree.Child(0).Partial) + pushInstr(regResult) + renderPartial(tree.Child(2).Partial)
		tree.Partial = types.PartialArtifact{Payload: code, Kind: types.CODE}
	}
}
