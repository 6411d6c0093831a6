package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/parser"
)

// ConfigFileName is the project file searched for by FindConfig.
const ConfigFileName = "wordlang.yml"

// ErrConfigNotFound is returned by FindConfig when no project file exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New("config: no " + ConfigFileName + " found")

// ErrNoTargets is returned by DefaultTarget for a config without targets.
var ErrNoTargets = errors.New("config: no targets defined")

// Config represents the parsed contents of wordlang.yml.
type Config struct {
	Path     string
	Dir      string
	Name     string
	LogLevel logrus.Level
	Lexer    LexerConfig
	Parser   ParserConfig
	Output   OutputConfig

	Targets     map[string]*TargetSpec
	TargetOrder []string
}

type LexerConfig struct {
	DividedBy bool
}

type ParserConfig struct {
	MaxDepth int
}

type OutputConfig struct {
	AST    bool
	Format ast.Format
}

// TargetSpec names a runnable program, either a file relative to the config
// directory or a file inside a git repository.
type TargetSpec struct {
	Name   string
	Main   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// IsGit reports whether the target is fetched from a repository.
func (t *TargetSpec) IsGit() bool {
	return t != nil && t.Git != ""
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is the configuration used when no wordlang.yml is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: logrus.InfoLevel,
		Parser:   ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Output:   OutputConfig{AST: true, Format: ast.FormatTree},
		Targets:  map[string]*TargetSpec{},
	}
}

// LoadConfig parses wordlang.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

// FindConfig walks upwards from start (a file or directory) and returns the
// path of the first wordlang.yml found.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched upwards from %s)", ErrConfigNotFound, origin)
		}
		dir = parent
	}
}

// DefaultTarget returns the first target in file order.
func (c *Config) DefaultTarget() (*TargetSpec, error) {
	if c == nil || len(c.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return c.Targets[c.TargetOrder[0]], nil
}

// FindTarget looks up a target by name, ignoring case.
func (c *Config) FindTarget(name string) (*TargetSpec, bool) {
	if c == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := c.Targets[name]; ok {
		return target, true
	}
	for _, key := range c.TargetOrder {
		if strings.EqualFold(key, name) {
			return c.Targets[key], true
		}
	}
	return nil, false
}

type configFile struct {
	Name     string    `yaml:"name"`
	LogLevel string    `yaml:"log_level"`
	Lexer    lexerYAML `yaml:"lexer"`
	Parser   struct {
		MaxDepth *int `yaml:"max_depth"`
	} `yaml:"parser"`
	Output struct {
		AST    *bool  `yaml:"ast"`
		Format string `yaml:"format"`
	} `yaml:"output"`
	Targets targetMap `yaml:"targets"`
}

type lexerYAML struct {
	DividedBy bool `yaml:"divided_by"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

// UnmarshalYAML keeps targets in file order so the first one can serve as
// the default.
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("config: targets must not use empty keys")
		}
		if err := checkTargetKeys(value.Content[i+1]); err != nil {
			return fmt.Errorf("config: target %q: %w", key, err)
		}
		entry := new(targetYAML)
		if err := value.Content[i+1].Decode(entry); err != nil {
			return fmt.Errorf("config: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

var targetKeys = map[string]bool{"main": true, "git": true, "rev": true, "tag": true, "branch": true}

// checkTargetKeys rejects unknown keys in a target mapping. Node.Decode does
// not honour the KnownFields setting of the outer decoder.
func checkTargetKeys(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for j := 0; j+1 < len(node.Content); j += 2 {
		k := node.Content[j]
		if !targetKeys[k.Value] {
			return fmt.Errorf("line %d: field %s not found", k.Line, k.Value)
		}
	}
	return nil
}

func (cf configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Dir = filepath.Dir(path)
	cfg.Name = strings.TrimSpace(cf.Name)
	cfg.Lexer.DividedBy = cf.Lexer.DividedBy

	var errs ValidationError
	if lvl := strings.TrimSpace(cf.LogLevel); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level: unknown level %q", lvl))
		} else {
			cfg.LogLevel = parsed
		}
	}
	if cf.Parser.MaxDepth != nil {
		if *cf.Parser.MaxDepth <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("parser.max_depth must be positive, got %d", *cf.Parser.MaxDepth))
		} else {
			cfg.Parser.MaxDepth = *cf.Parser.MaxDepth
		}
	}
	if cf.Output.AST != nil {
		cfg.Output.AST = *cf.Output.AST
	}
	if f := strings.TrimSpace(cf.Output.Format); f != "" {
		format := ast.Format(f)
		if !format.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("output.format: unsupported format %q", f))
		} else {
			cfg.Output.Format = format
		}
	}

	for _, item := range cf.Targets.items {
		if item.spec == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q is empty", item.name))
			continue
		}
		if _, dup := cfg.Targets[item.name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q defined twice", item.name))
			continue
		}
		target := &TargetSpec{
			Name:   item.name,
			Main:   strings.TrimSpace(item.spec.Main),
			Git:    strings.TrimSpace(item.spec.Git),
			Rev:    strings.TrimSpace(item.spec.Rev),
			Tag:    strings.TrimSpace(item.spec.Tag),
			Branch: strings.TrimSpace(item.spec.Branch),
		}
		for _, issue := range target.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets.%s: %s", item.name, issue))
		}
		cfg.Targets[item.name] = target
		cfg.TargetOrder = append(cfg.TargetOrder, item.name)
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

func (t *TargetSpec) validate() []string {
	var issues []string
	if t.Main == "" {
		issues = append(issues, "main must be provided")
	}
	refs := 0
	for _, ref := range []string{t.Rev, t.Tag, t.Branch} {
		if ref != "" {
			refs++
		}
	}
	switch {
	case t.Git == "" && refs > 0:
		issues = append(issues, "rev, tag and branch require a git source")
	case t.Git != "" && refs == 0:
		issues = append(issues, "git targets require rev, tag, or branch")
	case refs > 1:
		issues = append(issues, "specify only one of rev, tag, or branch")
	}
	if t.Git != "" && filepath.IsAbs(t.Main) {
		issues = append(issues, "main of a git target must be relative to the repository root")
	}
	return issues
}
