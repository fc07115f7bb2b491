package wlp4asm

import "github.com/dekarrin/rezi"

// EncodeSymbolMap serializes an assembler run's resolved label table to
// rezi's compact binary format, for --emit-map: tooling that wants to
// inspect addresses without re-running pass 1.
func EncodeSymbolMap(symbols map[string]uint32) ([]byte, error) {
	return rezi.Enc(symbols)
}

// DecodeSymbolMap is the inverse of EncodeSymbolMap.
func DecodeSymbolMap(data []byte) (map[string]uint32, error) {
	var symbols map[string]uint32
	if _, err := rezi.Dec(data, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}
