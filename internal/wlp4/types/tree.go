package types

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"
)

// Type is the inhabited type algebra of WLP4: exactly INT and INTSTAR, plus
// the UNDEF sentinel for a node that hasn't been through the typing pass
// yet. A reachable expression node still carrying UNDEF after analysis is a
// bug, not a reported error.
type Type int

const (
	UNDEF Type = iota
	INT
	INTSTAR
)

func (t Type) String() string {
	switch t {
	case INT:
		return "int"
	case INTSTAR:
		return "int*"
	default:
		return "undef"
	}
}

// ArtifactKind tags what a ParseTree's PartialArtifact.Payload holds once
// code generation has visited the node.
type ArtifactKind int

const (
	// CODE means Payload is a fragment of assembly text, ready to be
	// concatenated into the surrounding code.
	CODE ArtifactKind = iota

	// NUMBER means Payload is a literal integer to be loaded with lis/.word.
	NUMBER

	// LOCATION means Payload is a frame offset from $29 where the node's
	// value (or address, for an lvalue) lives.
	LOCATION
)

// PartialArtifact is the generator's scratch result attached to a ParseTree
// node: either a ready code fragment, a literal to load, or a frame offset
// to load from.
type PartialArtifact struct {
	Payload string
	Kind    ArtifactKind
}

// ParseTree is one node of the derivation the parser produces: an internal
// node carries the production rule that produced it and its children in
// left-to-right order; a leaf carries the scanned Token instead.
//
// Dispatch throughout the semantic analyzer and generator is a string
// comparison against Rule. A tagged-variant node type per non-terminal was
// considered and rejected (see DESIGN.md) because WLP4's grammar is fixed
// and small: every case in declare.go/resolve.go/typecheck.go/emit.go is a
// literal switch arm. Nothing checks these switches for completeness; a
// rule with no arm of its own is passed over (resolve.go recurses into it,
// typecheck.go and emit.go leave it unannotated).
type ParseTree struct {
	// Head is the grammar symbol this node reduces to.
	Head string

	// Rule is the full production string, e.g. "expr expr PLUS term". Empty
	// for leaves.
	Rule string

	// Tokens is the rule's right-hand-side symbols, in order. For a leaf
	// this is nil.
	Tokens []string

	// Children are this node's sub-nodes, left to right. Empty for leaves.
	Children []*ParseTree

	// Leaf holds the scanned terminal when this node has no children.
	Leaf *Token

	// InferredType is assigned by the analyzer's typing pass.
	InferredType Type

	// Signature collects the argument types of an arglist node, propagated
	// upward so a call site can be checked against the callee's declared
	// parameters.
	Signature []Type

	// Partial is the generator's working result for this node.
	Partial PartialArtifact
}

// Terminal reports whether this node is a scanned leaf.
func (pt *ParseTree) Terminal() bool {
	return pt.Leaf != nil
}

// Lexeme returns the leaf's lexeme, or "" for an internal node.
func (pt *ParseTree) Lexeme() string {
	if pt.Leaf == nil {
		return ""
	}
	return pt.Leaf.Lexeme
}

// Child is a convenience accessor equivalent to pt.Children[i], used
// throughout the generator for indexed access into a production's body.
func (pt *ParseTree) Child(i int) *ParseTree {
	return pt.Children[i]
}

// WriteDerivation writes pt as a depth-first preorder derivation, one node
// per line: an internal node writes its head followed by its production's
// right-hand-side symbols, and a leaf writes its kind and lexeme. This is
// the line format the semantic analyzer's stdin expects.
func (pt *ParseTree) WriteDerivation(w io.Writer) error {
	var line string
	if pt.Terminal() {
		line = fmt.Sprintf("%s %s\n", pt.Leaf.Kind, pt.Leaf.Lexeme)
	} else {
		head := pt.Head
		if len(pt.Tokens) > 0 {
			head = head + " " + strings.Join(pt.Tokens, " ")
		}
		line = head + "\n"
	}
	if _, err := io.WriteString(w, line); err != nil {
		return err
	}
	for _, child := range pt.Children {
		if err := child.WriteDerivation(w); err != nil {
			return err
		}
	}
	return nil
}

const (
	treeLevelEmpty             = "        "
	treeLevelOngoing           = "  |     "
	treeLevelPrefix            = "  |%s: "
	treeLevelPrefixLast        = `  \%s: `
	treeLevelPrefixNamePadChar = '-'
	treeLevelPrefixNamePadAmt  = 3
)

func padLevelName(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmt {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return msg
}

// String returns a prettified, line-by-line representation of the tree
// suitable for diffing in tests. Two trees are considered structurally
// identical if they produce identical String() output.
func (pt *ParseTree) String() string {
	return pt.leveledStr("", "")
}

func (pt *ParseTree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if pt.Terminal() {
		sb.WriteString(fmt.Sprintf("(TERM %s %q)", pt.Head, pt.Lexeme()))
	} else {
		label := pt.Rule
		if label == "" {
			label = pt.Head
		}
		wrapped := rosed.Edit(label).Wrap(72).String()
		sb.WriteString(fmt.Sprintf("( %s )", wrapped))
	}

	for i := range pt.Children {
		sb.WriteRune('\n')
		var nextFirst, nextCont string
		if i+1 < len(pt.Children) {
			nextFirst = contPrefix + fmt.Sprintf(treeLevelPrefix, padLevelName(""))
			nextCont = contPrefix + treeLevelOngoing
		} else {
			nextFirst = contPrefix + fmt.Sprintf(treeLevelPrefixLast, padLevelName(""))
			nextCont = contPrefix + treeLevelEmpty
		}
		sb.WriteString(pt.Children[i].leveledStr(nextFirst, nextCont))
	}

	return sb.String()
}
