/*
Wlp4c runs the complete WLP4 toolchain: scan, parse, analyze and generate,
then assemble, in a single invocation.

Usage:

	wlp4c [flags] [FILE]

FILE (or stdin, if omitted) is WLP4 source text. Output is the assembled
machine code, the same bytes wlp4asm would produce from wlp4gen's output on
the same source. Each stage still runs as its own small process
(wlp4scan, wlp4parse, wlp4gen, wlp4asm) for independent invocation or
scripting; wlp4c instead calls each stage's library function directly,
in sequence, passing the intermediate token stream and parse tree as
in-memory values rather than text crossing an OS pipe between four
separately-invoked processes.

If a file named wlp4c.toml exists in the working directory, it is loaded
for pipeline-wide settings (grammar file location, runtime import names,
and optionally the four stage binaries' paths); any flag given on the
command line overrides the file's value. When wlp4c.toml's [stages] table
gives a path for scan, wlp4c shells out to the four named binaries instead
of running the pipeline in-process, piping each stage's stdout into the
next one's stdin exactly as a hand-written `wlp4scan | wlp4parse | wlp4gen
| wlp4asm` pipe would. --stats and --emit-map are unavailable in that mode,
since the external wlp4asm's resolved symbol table never comes back to
this process.

The flags are:

	-v, --version
		Give the current version of wlp4c and then exit.

	-g, --grammar FILE
		Read the LR(1) action table from FILE. Defaults to "grammar.txt",
		or the value from wlp4c.toml if present.

	--stats
		After assembling, print a human-readable summary of instruction,
		label, and byte counts to stderr.

	--emit-map FILE
		Write the resolved label-to-address symbol table to FILE.

	--verbose
		Report the failing stage and a per-invocation correlation id
		alongside the ERROR token.
*/
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dekarrin/wlp4c/internal/version"
	"github.com/dekarrin/wlp4c/internal/wlp4/frontend"
	"github.com/dekarrin/wlp4c/internal/wlp4asm"
	"github.com/dekarrin/wlp4c/internal/wlp4config"
	"github.com/dekarrin/wlp4c/internal/wlp4err"
	"github.com/dekarrin/wlp4c/internal/wlp4gen"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of wlp4c and then exit.")
	flagGrammar = pflag.StringP("grammar", "g", "", "Read the LR(1) action table from FILE.")
	flagStats   = pflag.Bool("stats", false, "Print a summary of instruction, label, and byte counts to stderr.")
	flagEmitMap = pflag.String("emit-map", "", "Write the resolved symbol table to FILE.")
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

	if pflag.Lookup("grammar").Changed {
		cfg.Grammar = *flagGrammar
	}

	in, closeIn, err := openInput(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer closeIn()

	external := cfg.Stages.Scan != ""

	if external && (*flagStats || *flagEmitMap != "") {
		fmt.Fprintln(os.Stderr, "ERROR: --stats and --emit-map require the in-process pipeline; unset [stages] in wlp4c.toml")
		os.Exit(1)
	}

	var result *wlp4asm.Result
	if external {
		result, err = runExternal(in, cfg.Stages)
	} else {
		var table *frontend.Table
		table, err = loadGrammar(cfg.Grammar)
		if err == nil {
			result, err = run(in, table, cfg.Runtime)
		}
	}
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

func loadGrammar(path string) (*frontend.Table, error) {
	grammarFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grammar file: %w", err)
	}
	defer grammarFile.Close()

	return frontend.LoadGrammar(grammarFile)
}

// run pipes source through every stage in-process: scan, parse, the three
// analysis passes plus code generation, then assembly. Each stage's
// contract is identical to its standalone cmd/ binary's; only the
// line-oriented text that would otherwise cross an OS pipe between
// separately-invoked processes is instead passed as in-memory values.
func run(source io.Reader, table *frontend.Table, runtimeCfg wlp4config.Runtime) (*wlp4asm.Result, error) {
	toks, err := frontend.Scan(source)
	if err != nil {
		return nil, err
	}

	tree, err := frontend.Parse(toks, table)
	if err != nil {
		return nil, err
	}

	symbols, err := wlp4gen.Analyze(tree)
	if err != nil {
		return nil, err
	}

	rt := wlp4gen.Runtime{
		Init:   runtimeCfg.Init,
		New:    runtimeCfg.New,
		Delete: runtimeCfg.Delete,
		Print:  runtimeCfg.Print,
	}
	asmText := wlp4gen.Generate(tree, symbols, rt)

	return wlp4asm.Assemble(strings.NewReader(asmText))
}

// runExternal pipes source through the four stage binaries named in
// stages, each stage's stdout feeding the next stage's stdin, the way a
// shell pipeline would. Only the final stage's stdout (the assembled
// bytes) comes back; the resolved symbol table and instruction counts that
// --stats/--emit-map need never leave the external wlp4asm process.
func runExternal(source io.Reader, stages wlp4config.Stages) (*wlp4asm.Result, error) {
	paths := []string{stages.Scan, stages.Parse, stages.Gen, stages.Asm}
	for i, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("wlp4c.toml: [stages] is missing a path for stage %d", i+1)
		}
	}

	var stage io.Reader = source
	var out bytes.Buffer
	cmds := make([]*exec.Cmd, len(paths))
	for i, p := range paths {
		cmd := exec.Command(p)
		cmd.Stdin = stage
		cmd.Stderr = os.Stderr
		cmds[i] = cmd

		if i == len(paths)-1 {
			cmd.Stdout = &out
		} else {
			pipe, err := cmd.StdoutPipe()
			if err != nil {
				return nil, fmt.Errorf("wiring %s: %w", p, err)
			}
			stage = pipe
		}

		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("starting %s: %w", p, err)
		}
	}

	for i, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			return nil, fmt.Errorf("%s exited with an error", paths[i])
		}
	}

	return &wlp4asm.Result{Code: out.Bytes()}, nil
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
