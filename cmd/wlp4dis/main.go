/*
Wlp4dis disassembles raw MIPS-style machine code back into WLP4 target
assembly text.

Usage:

	wlp4dis [flags] [FILE]

FILE (or stdin, if omitted) is packed machine code, four raw bytes per
instruction, big-endian, exactly what wlp4asm emits. Output is one
rendered instruction per line.

The flags are:

	-v, --version
		Give the current version of wlp4c and then exit.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/wlp4c/internal/version"
	"github.com/dekarrin/wlp4c/internal/wlp4asm"
	"github.com/spf13/pflag"
)

var flagVersion = pflag.BoolP("version", "v", false, "Give the current version of wlp4c and then exit.")

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

	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	listing, err := wlp4asm.Disassemble(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Print(listing)
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
