package wlp4asm

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// instructionLine is one retained (non-empty) instruction after label and
// punctuation stripping, tagged with the byte address it will occupy.
type instructionLine struct {
	tokens  []asmToken
	address uint32
}

// buildSymbolTable runs pass 1: it validates every line, collects label
// addresses, and strips decorative tokens from each retained instruction.
// Module-level mutable state is limited to the symbol map and the running
// byte counter, both scoped to this call.
func buildSymbolTable(src io.Reader) (map[string]uint32, []instructionLine, error) {
	symbols := map[string]uint32{}
	var retained []instructionLine
	var address uint32

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()

		tokens, err := tokenizeLine(line)
		if err != nil {
			return nil, nil, err
		}

		if !validateLine(&cursor{tokens: tokens}) {
			return nil, nil, wlp4err.Asm("malformed instruction: %q", line)
		}

		labels, body := splitLabels(tokens)
		for _, label := range labels {
			if _, exists := symbols[label]; exists {
				return nil, nil, wlp4err.Asm("duplicate label %q", label)
			}
			symbols[label] = address
		}

		body = stripPunctuation(body)
		if len(body) == 0 {
			continue
		}

		retained = append(retained, instructionLine{tokens: body, address: address})
		address += 4
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, wlp4err.Asm("reading assembly input: %v", err)
	}

	return symbols, retained, nil
}

// splitLabels separates a line's leading LABEL tokens (colon-terminated
// identifiers) from whatever instruction tokens follow.
func splitLabels(tokens []asmToken) (labels []string, rest []asmToken) {
	for _, t := range tokens {
		if t.kind == tkLabel {
			labels = append(labels, strings.TrimSuffix(t.lexeme, ":"))
			continue
		}
		rest = append(rest, t)
	}
	return labels, rest
}

// stripPunctuation drops comma and parenthesis tokens, which carry no
// information once a line has already been validated.
func stripPunctuation(tokens []asmToken) []asmToken {
	var out []asmToken
	for _, t := range tokens {
		if t.kind == tkComma || t.kind == tkLParen || t.kind == tkRParen {
			continue
		}
		out = append(out, t)
	}
	return out
}
