package wlp4err

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Report writes the single-line failure report every stage uses on
// failure: the literal token ERROR, optionally followed by context.
//
// In non-verbose mode (the default for a piped scan|parse|gen|asm run) only
// the literal token is written, so that downstream stages and scripts that
// merely check for the token's presence keep working unmodified. In verbose
// mode a per-invocation correlation id is generated and attached alongside
// the error's message and stage, so that failures in a long pipeline can be
// traced back to the exact run that produced them.
func Report(w io.Writer, err error, verbose bool) {
	if !verbose {
		fmt.Fprintln(w, "ERROR")
		return
	}

	id := uuid.New()
	kind := "unknown"
	if k, ok := KindOf(err); ok {
		kind = k.String()
	}

	fmt.Fprintf(w, "ERROR [%s] (%s): %s\n", id, kind, err.Error())
}
