package wlp4asm

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Stats summarizes one assembler run's resolved symbol table and output
// size, for --stats.
type Stats struct {
	Instructions int
	Labels       int
	Bytes        int
}

// String renders Stats with thousands-grouped counts, so a large program's
// instruction and byte totals stay readable at a glance.
func (s Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d instruction(s), %d label(s), %d byte(s)",
		number.Decimal(s.Instructions), number.Decimal(s.Labels), number.Decimal(s.Bytes))
}
