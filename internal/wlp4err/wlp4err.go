// Package wlp4err defines the typed errors produced by the stages of the
// wlp4c toolchain, and the single reporting convention every cmd/ binary
// uses to surface them.
package wlp4err

import (
	"errors"
	"fmt"
)

// Kind classifies the taxonomy of failure a wlp4c stage can report. Every
// stage aborts on the first error in its own category; there is no error
// recovery.
type Kind int

const (
	// Lexical is raised by the scanner: an unreachable DFA state, a NUM past
	// 2^31-1, or two adjacent tokens that are ambiguous without whitespace.
	Lexical Kind = iota

	// Syntax is raised by the parser: no shift or reduce action for the
	// current state and lookahead.
	Syntax

	// Declaration is raised by the analyzer's declaration pass: duplicate
	// procedure or duplicate variable name.
	Declaration

	// Resolution is raised by the analyzer's use pass: undeclared variable,
	// undeclared or forward-declared procedure, call arity mismatch.
	Resolution

	// Type is raised by the analyzer's typing pass: any violation of the
	// type algebra.
	Type

	// Assembly is raised by the assembler: unknown opcode, malformed
	// operand, out-of-range register or immediate, bad label reference, or
	// a branch displacement that doesn't fit in 16 bits.
	Assembly
)

// String gives the human name of the error kind, used in verbose reports.
func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Declaration:
		return "declaration"
	case Resolution:
		return "resolution"
	case Type:
		return "type"
	case Assembly:
		return "assembly"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every stage of the toolchain.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

func (e *Error) Error() string {
	return e.msg
}

// Stage returns which toolchain stage category produced the error.
func (e *Error) Stage() Kind {
	return e.kind
}

// Unwrap gives the error that this Error wraps, if it wraps one.
func (e *Error) Unwrap() error {
	return e.wrap
}

// New returns a new Error of the given kind with a formatted message.
func New(kind Kind, format string, a ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new Error of the given kind that wraps cause, with a
// formatted message of its own.
func Wrap(kind Kind, cause error, format string, a ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...), wrap: cause}
}

// Lex is shorthand for New(Lexical, ...).
func Lex(format string, a ...interface{}) error { return New(Lexical, format, a...) }

// Syn is shorthand for New(Syntax, ...).
func Syn(format string, a ...interface{}) error { return New(Syntax, format, a...) }

// Decl is shorthand for New(Declaration, ...).
func Decl(format string, a ...interface{}) error { return New(Declaration, format, a...) }

// Resolve is shorthand for New(Resolution, ...).
func Resolve(format string, a ...interface{}) error { return New(Resolution, format, a...) }

// Typ is shorthand for New(Type, ...).
func Typ(format string, a ...interface{}) error { return New(Type, format, a...) }

// Asm is shorthand for New(Assembly, ...).
func Asm(format string, a ...interface{}) error { return New(Assembly, format, a...) }

// KindOf returns the Kind of err if it is (or wraps) a *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}
