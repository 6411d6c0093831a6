package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"wordlang/interpreter-go/pkg/lexer"
	"wordlang/interpreter-go/pkg/parser"
)

type fixtureManifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	Lexer       struct {
		DividedBy bool `yaml:"divided_by"`
	} `yaml:"lexer"`
	Expect struct {
		Stdout     []string `yaml:"stdout"`
		Error      string   `yaml:"error"`
		ParseError string   `yaml:"parse_error"`
	} `yaml:"expect"`
}

func TestProgramFixtures(t *testing.T) {
	root := filepath.Join("testdata", "programs")
	walkFixtures(t, root, func(dir string) {
		name, _ := filepath.Rel(root, dir)
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			runFixture(t, dir)
		})
	})
}

func runFixture(t *testing.T, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = "program.wl"
	}
	source, err := os.ReadFile(filepath.Join(dir, entry))
	if err != nil {
		t.Fatalf("read program %s: %v", entry, err)
	}

	program, err := parser.ParseSource(string(source), lexer.Options{DividedBy: manifest.Lexer.DividedBy}, parser.Options{})
	if manifest.Expect.ParseError != "" {
		if err == nil {
			t.Fatalf("expected parse error %q", manifest.Expect.ParseError)
		}
		if err.Error() != manifest.Expect.ParseError {
			t.Fatalf("parse error = %q, want %q", err.Error(), manifest.Expect.ParseError)
		}
		return
	}
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out bytes.Buffer
	_, err = New(WithOutput(&out)).Run(program)
	if manifest.Expect.Error != "" {
		if err == nil {
			t.Fatalf("expected evaluation error %q", manifest.Expect.Error)
		}
		if err.Error() != manifest.Expect.Error {
			t.Fatalf("evaluation error = %q, want %q", err.Error(), manifest.Expect.Error)
		}
	} else if err != nil {
		t.Fatalf("evaluation error: %v", err)
	}

	got := splitLines(out.String())
	if strings.Join(got, "\n") != strings.Join(manifest.Expect.Stdout, "\n") {
		t.Fatalf("stdout = %q, want %q", got, manifest.Expect.Stdout)
	}
}

func readManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	path := filepath.Join(dir, "expect.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest %s: %v", path, err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", path, err)
	}
	return manifest
}

func walkFixtures(t *testing.T, dir string, fn func(string)) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	hasManifest := false
	for _, entry := range entries {
		if entry.Type().IsRegular() && entry.Name() == "expect.yml" {
			hasManifest = true
		}
	}
	if hasManifest {
		fn(dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walkFixtures(t, filepath.Join(dir, entry.Name()), fn)
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
