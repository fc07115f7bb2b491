/*
Wlp4gen runs the three semantic-analysis passes and the code generator over
a parsed WLP4 derivation.

Usage:

	wlp4gen [flags] [FILE]

FILE (or stdin, if omitted) must be a parser derivation dump: one node per
line in depth-first preorder, exactly what wlp4parse emits. Output is
target assembly text, one instruction, label, or directive per line, ready
for wlp4asm.

If a file named wlp4c.toml exists in the working directory, its [runtime]
table overrides the runtime module's import names (init/new/delete/print
by default).

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
	"github.com/dekarrin/wlp4c/internal/wlp4config"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
	"github.com/dekarrin/wlp4c/internal/wlp4gen"
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

	cfg, err := wlp4config.Load("wlp4c.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	cfg = cfg.FillDefaults()

	in, closeIn, err := openInput(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer closeIn()

	tree, err := frontend.ReadDerivation(in)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	symbols, err := wlp4gen.Analyze(tree)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	rt := wlp4gen.Runtime{
		Init:   cfg.Runtime.Init,
		New:    cfg.Runtime.New,
		Delete: cfg.Runtime.Delete,
		Print:  cfg.Runtime.Print,
	}
	fmt.Print(wlp4gen.Generate(tree, symbols, rt))
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
