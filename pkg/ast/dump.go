package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"
)

// Format selects an AST dump representation.
type Format string

const (
	FormatTree   Format = "tree"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatPretty Format = "pretty"
)

// IsValid reports whether the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatYAML, FormatPretty:
		return true
	default:
		return false
	}
}

// Snapshot is a serialisable, variant-agnostic copy of a subtree.
type Snapshot struct {
	Type     NodeType    `json:"type" yaml:"type"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Snapshot `json:"children,omitempty" yaml:"children,omitempty"`
}

// Snap copies the subtree rooted at n.
func Snap(n Node) *Snapshot {
	if n == nil {
		return nil
	}
	s := &Snapshot{Type: n.NodeType(), Value: ValueOf(n)}
	for _, child := range Children(n) {
		if child == nil {
			continue
		}
		s.Children = append(s.Children, Snap(child))
	}
	return s
}

// WriteTree writes one line per node, indented two spaces per depth.
func WriteTree(w io.Writer, n Node) error {
	return writeTree(w, n, 0)
}

func writeTree(w io.Writer, n Node, depth int) error {
	if n == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s|--Node Type: %s, Value: %s\n", strings.Repeat(" ", depth*2), n.NodeType(), ValueOf(n)); err != nil {
		return err
	}
	for _, child := range Children(n) {
		if err := writeTree(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes n in the requested format.
func Dump(w io.Writer, n Node, format Format) error {
	switch format {
	case FormatTree, "":
		return WriteTree(w, n)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Snap(n))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Snap(n)); err != nil {
			return err
		}
		return enc.Close()
	case FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", n)
		return err
	default:
		return fmt.Errorf("ast: unsupported dump format %q", format)
	}
}
