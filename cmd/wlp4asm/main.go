/*
Wlp4asm assembles WLP4 target assembly into raw MIPS-style machine code.

Usage:

	wlp4asm [flags] [FILE]

FILE (or stdin, if omitted) is assembly text, one instruction, label, or
directive per line, exactly what wlp4gen emits. Output is the assembled
machine code: each instruction as four raw bytes, big-endian, with no
header, footer, or padding.

The flags are:

	-v, --version
		Give the current version of wlp4c and then exit.

	--stats
		After assembling, print a human-readable summary of instruction,
		label, and byte counts to stderr.

	--emit-map FILE
		Write the resolved label-to-address symbol table to FILE as a
		rezi-encoded binary artifact, for tooling that wants to inspect
		addresses without re-running pass 1.

	--verbose
		Report the failing stage and a per-invocation correlation id
		alongside the ERROR token.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/wlp4c/internal/version"
	"github.com/dekarrin/wlp4c/internal/wlp4asm"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of wlp4c and then exit.")
	flagStats   = pflag.Bool("stats", false, "Print a summary of instruction, label, and byte counts to stderr.")
	flagEmitMap = pflag.String("emit-map", "", "Write the resolved symbol table to FILE as a rezi-encoded artifact.")
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

	result, err := wlp4asm.Assemble(in)
	if err != nil {
		wlp4err.Report(os.Stderr, err, *flagVerbose)
		os.Exit(1)
	}

	if _, err := os.Stdout.Write(result.Code); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	if *flagStats {
		fmt.Fprintln(os.Stderr, result.Stats.String())
	}

	if *flagEmitMap != "" {
		data, err := wlp4asm.EncodeSymbolMap(result.Symbols)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: encoding symbol map: %s\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*flagEmitMap, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing symbol map: %s\n", err)
			os.Exit(1)
		}
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
