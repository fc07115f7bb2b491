// Package frontend implements the scanner and LR(1) parser that turn WLP4
// source text into a parse tree: a maximal-munch lexical scanner and a
// generic LR(1) shift-reduce parser driver that reads its action table from
// a grammar.txt file. Neither does anything beyond standard table-driven
// scanning and parsing; the interesting work lives in internal/wlp4gen and
// internal/wlp4asm.
package frontend

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// maxNum is the largest literal WLP4 NUM may hold: 2^31 - 1.
const maxNum = 1<<31 - 1

// wordKinds are the token kinds that read as a run of letters/digits: two of
// them with nothing separating them — whether that's two tokens touching on
// one line, or the last token of one source line butting directly against
// the first token of the next with no trailing space — would be
// indistinguishable from one longer identifier.
var wordKinds = map[types.Kind]bool{
	types.ID:      true,
	types.NUM:     true,
	types.RETURN:  true,
	types.IF:      true,
	types.ELSE:    true,
	types.WHILE:   true,
	types.PRINTLN: true,
	types.WAIN:    true,
	types.INT:     true,
	types.NEW:     true,
	types.NULL:    true,
	types.DELETE:  true,
}

// opKinds are the comparison/assignment operator kinds, each one or two
// characters drawn from the same punctuation alphabet (=, <, >, !). Two of
// them touching would be ambiguous about where one ends and the next
// begins, e.g. "<==" as "<=" then "=" vs "<" then "==".
var opKinds = map[types.Kind]bool{
	types.EQ:      true,
	types.NE:      true,
	types.LT:      true,
	types.LE:      true,
	types.GT:      true,
	types.GE:      true,
	types.BECOMES: true,
}

// scanned is a token plus whether it touches the token immediately before
// it in the stream with no separating whitespace, kept only long enough to
// run the stream-level ambiguity check after scanning.
type scanned struct {
	tok         types.Token
	line        int
	touchesPrev bool
}

// Scan reads WLP4 source from r and returns the scanned token stream, with
// `//` line comments already discarded and bracketed by a leading BOF and
// trailing EOF token so the result is ready to hand directly to Parse. It
// returns a wlp4err of Kind Lexical on the first unrecognizable input, NUM
// overflow, or pair of adjacent tokens that would be ambiguous without an
// intervening space.
//
// Each source line is tokenized on its own — an identifier never spans a
// line break — but a line break is not itself treated as a separator: a
// line ending in a word-like or operator token, immediately followed by a
// line starting with another token of the same class and no leading space,
// is exactly as ambiguous as if the two had appeared touching on one line.
func Scan(r io.Reader) ([]types.Token, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var toks []scanned
	haveToken := false
	sepPending := false

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}

		lineToks, err := scanLine(line)
		if err != nil {
			return nil, wlp4err.Wrap(wlp4err.Lexical, err, "line %d: %v", lineNo, err)
		}
		if len(lineToks) == 0 {
			// Whitespace-only line: itself acts as a separator.
			sepPending = true
			continue
		}

		runes := []rune(line)
		for i, lt := range lineToks {
			touches := false
			switch {
			case i > 0:
				touches = lt.start == lineToks[i-1].end
			case haveToken:
				touches = !sepPending && lt.start == 0
			}
			toks = append(toks, scanned{tok: lt.tok, line: lineNo, touchesPrev: touches})
		}
		haveToken = true
		sepPending = lineToks[len(lineToks)-1].end < len(runes)
	}
	if err := sc.Err(); err != nil {
		return nil, wlp4err.Wrap(wlp4err.Lexical, err, "reading source: %v", err)
	}

	if err := checkAdjacency(toks); err != nil {
		return nil, err
	}

	out := make([]types.Token, 0, len(toks)+2)
	out = append(out, types.Token{Kind: types.BOF, Lexeme: "BOF"})
	for _, s := range toks {
		out = append(out, s.tok)
	}
	out = append(out, types.Token{Kind: types.EOF, Lexeme: "EOF"})
	return out, nil
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// checkAdjacency rejects two consecutive tokens that touch and both fall in
// wordKinds or both fall in opKinds, mirroring the reference scanner's
// whole-stream ambiguity check.
func checkAdjacency(toks []scanned) error {
	for i := 1; i < len(toks); i++ {
		if !toks[i].touchesPrev {
			continue
		}
		a, b := toks[i-1], toks[i]
		if (wordKinds[a.tok.Kind] && wordKinds[b.tok.Kind]) || (opKinds[a.tok.Kind] && opKinds[b.tok.Kind]) {
			return wlp4err.Lex("line %d: %q next to %q is ambiguous without a separating space", b.line, a.tok.Lexeme, b.tok.Lexeme)
		}
	}
	return nil
}

// lineToken is one token scanned from a single source line, with its
// half-open rune range within that line so Scan can tell a touching pair
// from a space-separated one.
type lineToken struct {
	tok   types.Token
	start int
	end   int
}

func scanLine(line string) ([]lineToken, error) {
	var toks []lineToken

	runes := []rune(line)
	i := 0
	for i < len(runes) {
		c := runes[i]

		switch {
		case unicode.IsSpace(c):
			i++

		case unicode.IsDigit(c):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			if i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '_') {
				return nil, wlp4err.Lex("identifier cannot begin with a digit: %q", string(runes[start:i+1]))
			}
			lexeme := string(runes[start:i])
			if len(lexeme) > 1 && lexeme[0] == '0' {
				return nil, wlp4err.Lex("numeric literal has a leading zero: %q", lexeme)
			}
			val, err := strconv.ParseInt(lexeme, 10, 64)
			if err != nil || val > maxNum {
				return nil, wlp4err.Lex("numeric literal %q exceeds 2^31-1", lexeme)
			}
			toks = append(toks, lineToken{tok: types.Token{Kind: types.NUM, Lexeme: lexeme}, start: start, end: i})

		case unicode.IsLetter(c) || c == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			lexeme := string(runes[start:i])
			kind := types.ID
			if k, ok := types.Keywords[lexeme]; ok {
				kind = k
			}
			toks = append(toks, lineToken{tok: types.Token{Kind: kind, Lexeme: lexeme}, start: start, end: i})

		default:
			start := i
			kind, width, err := scanPunct(runes, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, lineToken{tok: types.Token{Kind: kind, Lexeme: string(runes[i : i+width])}, start: start, end: start + width})
			i += width
		}
	}

	return toks, nil
}

// scanPunct recognizes a single- or two-character punctuation token starting
// at runes[i], applying maximal munch to the two-character comparison
// operators.
func scanPunct(runes []rune, i int) (types.Kind, int, error) {
	c := runes[i]
	next := rune(0)
	if i+1 < len(runes) {
		next = runes[i+1]
	}

	switch c {
	case '(':
		return types.LPAREN, 1, nil
	case ')':
		return types.RPAREN, 1, nil
	case '{':
		return types.LBRACE, 1, nil
	case '}':
		return types.RBRACE, 1, nil
	case '[':
		return types.LBRACK, 1, nil
	case ']':
		return types.RBRACK, 1, nil
	case ',':
		return types.COMMA, 1, nil
	case ';':
		return types.SEMI, 1, nil
	case '+':
		return types.PLUS, 1, nil
	case '-':
		return types.MINUS, 1, nil
	case '*':
		return types.STAR, 1, nil
	case '/':
		return types.SLASH, 1, nil
	case '%':
		return types.PCT, 1, nil
	case '&':
		return types.AMP, 1, nil
	case '=':
		if next == '=' {
			return types.EQ, 2, nil
		}
		return types.BECOMES, 1, nil
	case '!':
		if next == '=' {
			return types.NE, 2, nil
		}
		return "", 0, wlp4err.Lex("'!' must be followed by '=' to form !=")
	case '<':
		if next == '=' {
			return types.LE, 2, nil
		}
		return types.LT, 1, nil
	case '>':
		if next == '=' {
			return types.GE, 2, nil
		}
		return types.GT, 1, nil
	default:
		return "", 0, wlp4err.Lex("unrecognized character %q", string(c))
	}
}
