package wlp4asm

import "io"

// Result bundles one assembler run's machine code with the artifacts
// --stats and --emit-map report on, without requiring pass 1 to run twice.
type Result struct {
	Code    []byte
	Symbols map[string]uint32
	Stats   Stats
}

// Assemble runs both passes over src: pass 1 validates each line and
// builds the label table, pass 2 resolves operands and packs instructions
// into machine code.
func Assemble(src io.Reader) (*Result, error) {
	symbols, lines, err := buildSymbolTable(src)
	if err != nil {
		return nil, err
	}

	code, err := encode(lines, symbols)
	if err != nil {
		return nil, err
	}

	return &Result{
		Code:    code,
		Symbols: symbols,
		Stats: Stats{
			Instructions: len(lines),
			Labels:       len(symbols),
			Bytes:        len(code),
		},
	}, nil
}

// AssembleTo assembles src and writes the raw big-endian machine code to
// dst, with no header, footer, or padding.
func AssembleTo(src io.Reader, dst io.Writer) error {
	result, err := Assemble(src)
	if err != nil {
		return err
	}
	_, err = dst.Write(result.Code)
	return err
}
