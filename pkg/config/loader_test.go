// pkg/config/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: real filesystem (t.TempDir), environment
// PURPOSE: Test configuration layering and validation

package config

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/testutil"
	"github.com/arthur-debert/treemv/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Input)
	assert.Equal(t, "dist", cfg.Output)
	assert.Empty(t, cfg.Include)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Moves)
}

func TestLoad_TomlFile(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".treemv.toml", `
input = "src"
output = "build"

[[moves]]
from = "node_modules/"
to = "vendor/"

[[moves]]
from = "vendor/*/*.{css,js}"
to = "assets/"
`)

	cfg, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Input)
	assert.Equal(t, "build", cfg.Output)
	assert.Equal(t, []Move{
		{From: "node_modules/", To: "vendor/"},
		{From: "vendor/*/*.{css,js}", To: "assets/"},
	}, cfg.Moves)
	assert.Equal(t, []transform.Move{
		{From: "node_modules/", To: "vendor/"},
		{From: "vendor/*/*.{css,js}", To: "assets/"},
	}, cfg.TransformMoves())
}

func TestLoad_YamlFile(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".treemv.yaml", `
output: out
dry_run: true
moves:
  - from: lib/
    to: pkg/
`)

	cfg, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Input, "defaults still apply")
	assert.Equal(t, "out", cfg.Output)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []Move{{From: "lib/", To: "pkg/"}}, cfg.Moves)
}

func TestLoad_TomlWinsOverYaml(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".treemv.toml", `output = "from-toml"`)
	testutil.CreateFile(t, dir, ".treemv.yaml", `output: from-yaml`)

	cfg, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-toml", cfg.Output)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "custom.toml", `
input = "file-input"
output = "file-output"
include = "file-include"
`)
	t.Setenv("TREEMV_OUTPUT", "env-output")
	t.Setenv("TREEMV_INCLUDE", "env-include")
	t.Setenv("TREEMV_DRY_RUN", "true")

	cfg, err := Load(LoadOptions{
		ConfigFile: path,
		Flags:      map[string]interface{}{"include": "flag-include"},
	})
	require.NoError(t, err)

	assert.Equal(t, "file-input", cfg.Input)
	assert.Equal(t, "env-output", cfg.Output)
	assert.Equal(t, "flag-include", cfg.Include)
	assert.True(t, cfg.DryRun)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts func() LoadOptions
		code errors.ErrorCode
	}{
		{
			name: "explicit file missing",
			opts: func() LoadOptions { return LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")} },
			code: errors.ErrConfigLoad,
		},
		{
			name: "unsupported format",
			opts: func() LoadOptions {
				return LoadOptions{ConfigFile: testutil.CreateFile(t, dir, "config.ini", "output=x")}
			},
			code: errors.ErrConfigParse,
		},
		{
			name: "malformed toml",
			opts: func() LoadOptions {
				return LoadOptions{ConfigFile: testutil.CreateFile(t, dir, "bad.toml", "output = [")}
			},
			code: errors.ErrConfigParse,
		},
		{
			name: "move without destination",
			opts: func() LoadOptions {
				return LoadOptions{ConfigFile: testutil.CreateFile(t, dir, "nodest.toml", "[[moves]]\nfrom = \"a/\"\n")}
			},
			code: errors.ErrConfigValid,
		},
		{
			name: "empty output",
			opts: func() LoadOptions {
				return LoadOptions{WorkDir: t.TempDir(), Flags: map[string]interface{}{"output": ""}}
			},
			code: errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.opts())
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}
