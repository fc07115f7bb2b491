/*
Wlp4scan runs the WLP4 lexical scanner over a source file.

Usage:

	wlp4scan [flags] [FILE]

If FILE is omitted, source is read from stdin. Output is the scanned token
stream, one "<KIND> <lexeme>" line per token, bracketed by BOF and EOF. On
the first unrecognizable input, wlp4scan prints ERROR to stderr and exits
nonzero.

The flags are:

	-v, --version
		Give the current version of wlp4c and then exit.

	--verbose
		Report the failing stage and a per-invocation correlation id
		alongside the ERROR token.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/wlp4c/internal/version"
	"github.com/dekarrin/wlp4c/internal/wlp4/frontend"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of wlp4c and then exit.")
	flagVerbose = pflag.Bool("verbose", false, "Report stage and correlation id alongside ERROR.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	in, closeIn, err := openInput(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer closeIn()

	toks, err := frontend.Scan(in)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	if err := frontend.WriteTokens(os.Stdout, toks); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func openInput(args []string) (*os.File, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
