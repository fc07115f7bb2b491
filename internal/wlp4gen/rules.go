package wlp4gen

import "github.com/dekarrin/wlp4c/internal/wlp4/types"

// mainProcedureRule and procedureRule are the two productions that
// introduce a new Scope.
const (
	mainProcedureRule = "main INT WAIN LPAREN dcl COMMA dcl RPAREN LBRACE dcls statements RETURN expr SEMI RBRACE"
	procedureRule     = "procedure INT ID LPAREN params RPAREN LBRACE dcls statements RETURN expr SEMI RBRACE"
)

var typeMapping = map[string]types.Type{
	"type INT":      types.INT,
	"type INT STAR": types.INTSTAR,
}

// scopeNameOf reports the procedure scope a node introduces, if any. All
// three analysis passes and the generator call this on every node to track
// which scope's symbol table applies to the subtree being visited; this is
// passed explicitly down the recursion rather than mutated in place.
func scopeNameOf(tree *types.ParseTree) (string, bool) {
	switch tree.Rule {
	case mainProcedureRule:
		return "wain", true
	case procedureRule:
		return tree.Child(1).Lexeme(), true
	default:
		return "", false
	}
}

// countCommas counts COMMA leaves in an arglist subtree, giving the number
// of argument separators; argument count is this plus one.
func countCommas(tree *types.ParseTree) int {
	count := 0
	if tree.Head == "COMMA" {
		count++
	}
	for _, child := range tree.Children {
		count += countCommas(child)
	}
	return count
}
