// Package wlp4config loads the optional wlp4c.toml pipeline configuration
// file that cmd/wlp4c reads from the working directory, following the same
// file-then-flag override order as server/config.go.
package wlp4config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Stages holds the paths to the four pipeline stage binaries, for a
// wlp4c run that shells out to them instead of running them in-process.
type Stages struct {
	Scan  string `toml:"scan"`
	Parse string `toml:"parse"`
	Gen   string `toml:"gen"`
	Asm   string `toml:"asm"`
}

// Runtime names the runtime module symbols the generator emits .import
// directives for. WLP4 itself fixes these to init/new/delete/print, but a
// runtime built under a different module naming convention can override
// them here.
type Runtime struct {
	Init   string `toml:"init"`
	New    string `toml:"new"`
	Delete string `toml:"delete"`
	Print  string `toml:"print"`
}

// Config is the pipeline-wide configuration cmd/wlp4c optionally loads from
// wlp4c.toml in the working directory.
type Config struct {
	// Grammar is the path to the LR(1) action table the parser stage reads.
	Grammar string `toml:"grammar"`

	// Stages gives the external stage binaries to invoke when wlp4c is run
	// out-of-process instead of with its built-in in-memory pipeline.
	Stages Stages `toml:"stages"`

	// Runtime names the runtime import symbols the generator targets.
	Runtime Runtime `toml:"runtime"`

	// Verbose is decoded from the file, but no stage reads it: verbose
	// error reporting (see internal/wlp4err.Report) is switched on only by
	// each binary's --verbose flag.
	Verbose bool `toml:"verbose"`
}

// FillDefaults returns a copy of cfg with every unset field replaced by its
// default value.
func (cfg Config) FillDefaults() Config {
	filled := cfg

	if filled.Grammar == "" {
		filled.Grammar = "grammar.txt"
	}
	if filled.Runtime.Init == "" {
		filled.Runtime.Init = "init"
	}
	if filled.Runtime.New == "" {
		filled.Runtime.New = "new"
	}
	if filled.Runtime.Delete == "" {
		filled.Runtime.Delete = "delete"
	}
	if filled.Runtime.Print == "" {
		filled.Runtime.Print = "print"
	}

	return filled
}

// Load reads and decodes the TOML config file at path. A missing file is
// not an error: the caller gets a zero Config to run FillDefaults on, since
// wlp4c.toml is entirely optional.
func Load(path string) (Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unrecognized key(s): %v", path, undecoded)
	}

	return cfg, nil
}
