package wlp4gen

import "github.com/dekarrin/wlp4c/internal/wlp4/types"

// Runtime names the four runtime-module symbols the generator emits
// .import directives and jalr call targets for. WLP4 itself fixes these to
// init/new/delete/print; DefaultRuntime holds exactly those names, and a
// runtime built under a different module naming convention can override
// them by constructing its own Runtime and passing it to Generate.
type Runtime struct {
	Init   string
	New    string
	Delete string
	Print  string
}

// DefaultRuntime is WLP4's own runtime module naming: init, new, delete,
// print.
var DefaultRuntime = Runtime{Init: "init", New: "new", Delete: "delete", Print: "print"}

// Analyze runs all three semantic-analysis passes over tree in order,
// building symbols as it goes. Each pass depends entirely on the last one's
// annotations, so the first error from any pass aborts before later passes
// run: each pass is a full separate traversal and depends on the prior
// pass's annotations, so the three must not be fused.
func Analyze(tree *types.ParseTree) (Symbols, error) {
	symbols := Symbols{}

	if err := Declare(tree, symbols); err != nil {
		return nil, err
	}
	if err := Resolve(tree, symbols); err != nil {
		return nil, err
	}
	if err := TypeCheck(tree, symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// Generate emits target assembly for tree, which must already have been
// through a successful Analyze (its symbols), importing and calling the
// runtime procedures under the names rt gives them. The root production is
// "start BOF procedures EOF"; the emitted text is just its procedures
// child's rendered code: wain's code first, then the other procedures in
// reverse declaration order.
func Generate(tree *types.ParseTree, symbols Symbols, rt Runtime) string {
	e := &emitter{symbols: symbols, runtime: rt}
	e.walk(tree, "")
	return renderPartial(tree.Child(1).Partial)
}
