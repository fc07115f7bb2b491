package frontend

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/wlp4c/internal/wlp4/types"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
)

// WriteTokens writes toks to w as the scanner's stdout format, one
// "<KIND> <lexeme>" line per token.
func WriteTokens(w io.Writer, toks []types.Token) error {
	for _, tok := range toks {
		if _, err := io.WriteString(w, string(tok.Kind)+" "+tok.Lexeme+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// ReadTokens reads back the scanner's stdout format, the parser's stdin:
// one "<KIND> <lexeme>" line per token.
func ReadTokens(r io.Reader) ([]types.Token, error) {
	var toks []types.Token

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, wlp4err.Syn("malformed token line: %q", line)
		}
		toks = append(toks, types.Token{Kind: types.Kind(fields[0]), Lexeme: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, wlp4err.Wrap(wlp4err.Syntax, err, "reading token stream: %v", err)
	}

	return toks, nil
}
