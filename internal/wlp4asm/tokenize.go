package wlp4asm

import (
	"strconv"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// tokenKind classifies one lexical element of an assembly-source line. This
// is a private alphabet distinct from internal/wlp4/types.Kind: assembly
// text and WLP4 source text are different languages with different
// terminals.
type tokenKind int

const (
	tkWord tokenKind = iota
	tkLabel
	tkID
	tkReg
	tkInt
	tkHexInt
	tkComma
	tkLParen
	tkRParen
)

type asmToken struct {
	kind   tokenKind
	lexeme string
}

// tokenizeLine splits one line of assembly source into asmTokens. Spaces
// and tabs only separate tokens and are dropped; commas and parens become
// tokens of their own. A blank or comment-only line yields an empty slice.
func tokenizeLine(line string) ([]asmToken, error) {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	var tokens []asmToken
	fields := splitAsmFields(line)
	for _, f := range fields {
		tok, err := classifyField(f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// splitAsmFields breaks a line into maximal punctuation-or-word chunks:
// "sw $1, -4($29)" -> ["sw", "$1", ",", "-4", "(", "$29", ")"].
func splitAsmFields(line string) []string {
	var fields []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == ',' || r == '(' || r == ')':
			flush()
			fields = append(fields, string(r))
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}

func classifyField(f string) (asmToken, error) {
	switch f {
	case ",":
		return asmToken{tkComma, f}, nil
	case "(":
		return asmToken{tkLParen, f}, nil
	case ")":
		return asmToken{tkRParen, f}, nil
	}

	if f == ".word" {
		return asmToken{tkWord, f}, nil
	}
	if strings.HasSuffix(f, ":") {
		return asmToken{tkLabel, f}, nil
	}
	if strings.HasPrefix(f, "$") {
		return asmToken{tkReg, f}, nil
	}
	if strings.HasPrefix(f, "0x") || strings.HasPrefix(f, "0X") {
		return asmToken{tkHexInt, f}, nil
	}
	if isDecimalLiteral(f) {
		return asmToken{tkInt, f}, nil
	}
	if isIdentifier(f) {
		return asmToken{tkID, f}, nil
	}

	return asmToken{}, wlp4err.Asm("unrecognized token %q", f)
}

func isDecimalLiteral(f string) bool {
	if f == "" {
		return false
	}
	i := 0
	if f[0] == '-' || f[0] == '+' {
		i = 1
	}
	if i >= len(f) {
		return false
	}
	for ; i < len(f); i++ {
		if f[i] < '0' || f[i] > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(f string) bool {
	if f == "" {
		return false
	}
	for i, r := range f {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// cursor walks an asmToken slice one token at a time.
type cursor struct {
	tokens []asmToken
	index  int
}

func (c *cursor) hasCurrent() bool { return c.index < len(c.tokens) }

func (c *cursor) current() asmToken {
	if !c.hasCurrent() {
		return asmToken{}
	}
	return c.tokens[c.index]
}

func (c *cursor) advance() { c.index++ }

func (c *cursor) isCurrentComma() bool  { return c.hasCurrent() && c.current().kind == tkComma }
func (c *cursor) isCurrentLParen() bool { return c.hasCurrent() && c.current().kind == tkLParen }
func (c *cursor) isCurrentRParen() bool { return c.hasCurrent() && c.current().kind == tkRParen }
func (c *cursor) isCurrentID() bool     { return c.hasCurrent() && c.current().kind == tkID }
func (c *cursor) isCurrentNothing() bool { return !c.hasCurrent() }

func (c *cursor) isCurrentRegister() bool {
	if !c.hasCurrent() || c.current().kind != tkReg {
		return false
	}
	digits := strings.TrimPrefix(c.current().lexeme, "$")
	if len(digits) < 1 || len(digits) > 2 {
		return false
	}
	n, err := strconv.Atoi(digits)
	return err == nil && n >= 0 && n <= 31
}

// isCurrentNumber checks a decimal or hex literal against the given bit
// width. small selects the 16-bit (branch/immediate) range instead of the
// full 32-bit range.
func (c *cursor) isCurrentNumber(small bool) bool {
	if !c.hasCurrent() {
		return false
	}
	tok := c.current()

	switch tok.kind {
	case tkInt:
		n, err := strconv.ParseInt(tok.lexeme, 10, 64)
		if err != nil {
			return false
		}
		if small {
			return n >= -32768 && n <= 32767
		}
		return n >= -2147483648 && n <= 4294967295
	case tkHexInt:
		digits := strings.TrimPrefix(strings.TrimPrefix(tok.lexeme, "0x"), "0X")
		if small {
			return len(digits) > 0 && len(digits) <= 4
		}
		return len(digits) > 0 && len(digits) <= 8
	default:
		return false
	}
}

// validateLine checks one tokenized line against the grammar a well-formed
// assembly statement must follow, consuming tokens from c as it goes.
func validateLine(c *cursor) bool {
	if !c.hasCurrent() {
		return true
	}

	head := c.current()
	c.advance()

	switch head.kind {
	case tkWord:
		ok := c.isCurrentNumber(false) || c.isCurrentID()
		c.advance()
		return ok && c.isCurrentNothing()

	case tkLabel:
		// A label may be followed by another label or any valid
		// instruction sequence.
		return validateLine(c)

	case tkID:
		info, known := Instructions[head.lexeme]
		if !known {
			return false
		}

		var ok bool
		switch info.Format {
		case OneRegA, OneRegB:
			ok = c.isCurrentRegister()
		case ThreeReg:
			ok = validateThreeRegisterOperands(c)
		case TwoReg:
			ok = validateTwoRegisterOperands(c)
		case Branch:
			ok = validateBranchOperands(c)
		case StoreLoad:
			ok = validateStoreLoadOperands(c)
		}

		c.advance()
		return ok && c.isCurrentNothing()

	default:
		return false
	}
}

// validateTwoRegisterOperands checks "reg , reg", leaving the cursor on
// the second register (the caller advances past it).
func validateTwoRegisterOperands(c *cursor) bool {
	ok := c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentComma()
	c.advance()
	ok = ok && c.isCurrentRegister()
	return ok
}

// validateThreeRegisterOperands checks "reg , reg , reg": the first
// register and its trailing comma, then the remaining two-register
// sequence, expressed as an explicit call into the shared two-register
// check rather than control-flow fallthrough.
func validateThreeRegisterOperands(c *cursor) bool {
	ok := c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentComma()
	c.advance()
	return ok && validateTwoRegisterOperands(c)
}

// validateBranchOperands checks "reg , reg , (number|label)".
func validateBranchOperands(c *cursor) bool {
	ok := c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentComma()
	c.advance()
	ok = ok && c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentComma()
	c.advance()
	ok = ok && (c.isCurrentNumber(true) || c.isCurrentID())
	return ok
}

// validateStoreLoadOperands checks "reg , number ( reg )", requiring the
// comma between the register and the immediate.
func validateStoreLoadOperands(c *cursor) bool {
	ok := c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentComma()
	c.advance()
	ok = ok && c.isCurrentNumber(true)
	c.advance()
	ok = ok && c.isCurrentLParen()
	c.advance()
	ok = ok && c.isCurrentRegister()
	c.advance()
	ok = ok && c.isCurrentRParen()
	return ok
}
