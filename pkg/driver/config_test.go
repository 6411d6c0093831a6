package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/parser"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoadConfigFullSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
name: demo
log_level: debug
lexer:
  divided_by: true
parser:
  max_depth: 16
output:
  ast: false
  format: yaml
targets:
  main:
    main: src/main.wl
  remote:
    git: https://example.com/programs.git
    tag: v1.0.0
    main: hello.wl
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.Equal(t, dir, cfg.Dir)
	require.Equal(t, "demo", cfg.Name)
	require.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	require.True(t, cfg.Lexer.DividedBy)
	require.Equal(t, 16, cfg.Parser.MaxDepth)
	require.False(t, cfg.Output.AST)
	require.Equal(t, ast.FormatYAML, cfg.Output.Format)
	require.Equal(t, []string{"main", "remote"}, cfg.TargetOrder)

	remote, ok := cfg.FindTarget("REMOTE")
	require.True(t, ok)
	require.True(t, remote.IsGit())
	require.Equal(t, "v1.0.0", remote.Tag)

	def, err := cfg.DefaultTarget()
	require.NoError(t, err)
	require.Equal(t, "main", def.Name)
	require.False(t, def.IsGit())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "name: bare\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	require.False(t, cfg.Lexer.DividedBy)
	require.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	require.True(t, cfg.Output.AST)
	require.Equal(t, ast.FormatTree, cfg.Output.Format)

	_, err = cfg.DefaultTarget()
	require.ErrorIs(t, err, ErrNoTargets)
	_, ok := cfg.FindTarget("main")
	require.False(t, ok)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "name: demo\nversion: 1.0\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "field version not found")
}

func TestLoadConfigRejectsUnknownTargetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "targets:\n  app:\n    git: https://example.com/app.git\n    brnach: dev\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `target "app"`)
	require.Contains(t, err.Error(), "line 4: field brnach not found")
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is empty")
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
log_level: loud
parser:
  max_depth: 0
output:
  format: xml
targets:
  nomain: {}
  orphan:
    main: a.wl
    rev: abc123
  unpinned:
    main: a.wl
    git: https://example.com/x.git
  overpinned:
    main: a.wl
    git: https://example.com/x.git
    tag: v1
    branch: main
`)

	_, err := LoadConfig(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, []string{
		`log_level: unknown level "loud"`,
		"parser.max_depth must be positive, got 0",
		`output.format: unsupported format "xml"`,
		"targets.nomain: main must be provided",
		"targets.orphan: rev, tag and branch require a git source",
		"targets.unpinned: git targets require rev, tag, or branch",
		"targets.overpinned: specify only one of rev, tag, or branch",
	}, verr.Issues)
	require.Contains(t, err.Error(), "config validation failed:\n- ")
}

func TestFindConfigWalksUpwards(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, "name: demo\n")
	program := filepath.Join(root, "src", "nested", "main.wl")
	writeFile(t, program, "Show the value of 1.")

	found, err := FindConfig(program)
	require.NoError(t, err)
	require.Equal(t, path, found)

	found, err = FindConfig(filepath.Dir(program))
	require.NoError(t, err)
	require.Equal(t, path, found)
}

func TestFindConfigNotFound(t *testing.T) {
	_, err := FindConfig(t.TempDir())
	require.ErrorIs(t, err, ErrConfigNotFound)
}
