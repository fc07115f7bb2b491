/*
Wlp4parse drives the LR(1) shift-reduce parser over a scanned token stream.

Usage:

	wlp4parse [flags] [FILE]

FILE (or stdin, if omitted) must be a scanner token stream, one
"<KIND> <lexeme>" line per token. Output is the derivation tree as one node
per line, in depth-first preorder: an internal node writes its head and
production symbols, a leaf writes its kind and lexeme. This is exactly the
input format the semantic analyzer and generator consume.

The flags are:

	-v, --version
		Give the current version of wlp4c and then exit.

	-g, --grammar FILE
		Read the LR(1) action table from FILE. Defaults to "grammar.txt" in
		the working directory.

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
	flagGrammar = pflag.StringP("grammar", "g", "grammar.txt", "Read the LR(1) action table from FILE.")
	flagVerbose = pflag.Bool("verbose", false, "Report stage and correlation id alongside ERROR.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	grammarFile, err := os.Open(*flagGrammar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: opening grammar file: %s\n", err)
		os.Exit(1)
	}
	defer grammarFile.Close()

	table, err := frontend.LoadGrammar(grammarFile)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	in, closeIn, err := openInput(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer closeIn()

	toks, err := frontend.ReadTokens(in)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	tree, err := frontend.Parse(toks, table)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	if err := tree.WriteDerivation(os.Stdout); err != nil {
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
