package wlp4config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/wlp4c/internal/wlp4config"
	"github.com/stretchr/testify/assert"
)

func Test_Load_missingFileIsNotError(t *testing.T) {
	assert := assert.New(t)

	cfg, err := wlp4config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))

	assert.NoError(err)
	assert.Equal(wlp4config.Config{}, cfg)
}

func Test_Load_decodesStagesAndRuntime(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "wlp4c.toml")
	contents := `
grammar = "wlp4-grammar.txt"
verbose = true

[stages]
scan = "bin/wlp4scan"
parse = "bin/wlp4parse"
gen = "bin/wlp4gen"
asm = "bin/wlp4asm"

[runtime]
init = "boot"
new = "alloc"
delete = "free"
print = "write"
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := wlp4config.Load(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("wlp4-grammar.txt", cfg.Grammar)
	assert.True(cfg.Verbose)
	assert.Equal("bin/wlp4scan", cfg.Stages.Scan)
	assert.Equal("boot", cfg.Runtime.Init)
	assert.Equal("alloc", cfg.Runtime.New)
	assert.Equal("free", cfg.Runtime.Delete)
	assert.Equal("write", cfg.Runtime.Print)
}

func Test_Load_rejectsUnknownKeys(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "wlp4c.toml")
	if err := os.WriteFile(path, []byte("bogus_key = 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := wlp4config.Load(path)
	assert.Error(err)
}

func Test_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := wlp4config.Config{}.FillDefaults()

	assert.Equal("grammar.txt", cfg.Grammar)
	assert.Equal("init", cfg.Runtime.Init)
	assert.Equal("new", cfg.Runtime.New)
	assert.Equal("delete", cfg.Runtime.Delete)
	assert.Equal("print", cfg.Runtime.Print)
}

func Test_FillDefaults_preservesSetValues(t *testing.T) {
	assert := assert.New(t)

	cfg := wlp4config.Config{Grammar: "custom.txt"}.FillDefaults()

	assert.Equal("custom.txt", cfg.Grammar)
}
