// Package wlp4gen implements the three-pass semantic analyzer and the MIPS
// code generator that follows it: declaration collection, use/arity
// resolution, type checking, then code emission over the same parse tree
// handed back by the frontend package.
package wlp4gen

import "github.com/dekarrin/wlp4c/internal/wlp4/types"

// variable records a declared name's type and frame offset from $29. A
// parameter's offset is left at the placeholder -1 until importParameters
// assigns it.
type variable struct {
	typ    types.Type
	offset int
}

// Scope is one procedure's (or wain's) symbol table: its formal parameters
// in declaration order, every declared name (parameters and locals alike)
// mapped to its type and frame offset, and enough bookkeeping to run
// importParameters exactly once after typing confirms the procedure is
// well-formed.
type Scope struct {
	// Parameters holds (name, type) pairs in declaration order. wain's two
	// parameters are recorded with blank names up front, by declare.go,
	// since their own dcl names arrive as ordinary locals afterward.
	Parameters []parameter

	Variables map[string]variable

	// Order is this scope's position among all procedures, used by
	// resolve.go to reject forward references to a procedure declared later
	// in the file.
	Order int

	// LocationCount counts locals declared so far, used to assign each new
	// local the next multiple of -4 as its frame offset.
	LocationCount int

	parametersLoaded bool

	// VariablesCount is the number of locals (Variables minus Parameters),
	// set by importParameters and consumed by the prologue's stack
	// allocation.
	VariablesCount int
}

type parameter struct {
	name string
	typ  types.Type
}

// NewScope returns an empty scope ready for declaration collection.
func NewScope(order int) *Scope {
	return &Scope{
		Variables: map[string]variable{},
		Order:     order,
	}
}

// importParameters rewrites every parameter's frame offset to its final
// position once the procedure's full declaration list is known, and records
// how many locals (as opposed to parameters) the procedure has. It is a
// one-shot operation: subsequent calls are no-ops. typecheck.go calls it
// once per procedure node; code emission only reads the offsets and counts
// it leaves behind.
func (s *Scope) importParameters() {
	if s.parametersLoaded {
		return
	}
	s.parametersLoaded = true
	s.VariablesCount = len(s.Variables) - len(s.Parameters)

	length := len(s.Parameters)
	for i, p := range s.Parameters {
		if p.name == "" {
			continue
		}
		v := s.Variables[p.name]
		v.offset = (length - i) * 4
		s.Variables[p.name] = v
	}
}

// Symbols is the whole program's procedure table, keyed by procedure name
// with "wain" reserved for the main procedure.
type Symbols map[string]*Scope
