package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/interpreter"
	"wordlang/interpreter-go/pkg/lexer"
	"wordlang/interpreter-go/pkg/parser"
)

// RunOptions controls Run and the inspection helpers.
type RunOptions struct {
	Lexer   lexer.Options
	Parser  parser.Options
	ShowAST bool
	Format  ast.Format
	Stdout  io.Writer
	Log     logrus.FieldLogger
}

// RunOptionsFromConfig derives run options from a loaded config.
func RunOptionsFromConfig(cfg *Config) RunOptions {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return RunOptions{
		Lexer:   lexer.Options{DividedBy: cfg.Lexer.DividedBy},
		Parser:  parser.Options{MaxDepth: cfg.Parser.MaxDepth},
		ShowAST: cfg.Output.AST,
		Format:  cfg.Output.Format,
	}
}

func (o RunOptions) normalize() RunOptions {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Format == "" {
		o.Format = ast.FormatTree
	}
	if o.Log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		o.Log = quiet
	}
	return o
}

// Parse tokenizes and parses src.
func Parse(src *Source, opts RunOptions) (*ast.Program, error) {
	opts = opts.normalize()
	tokens := lexer.New(src.Text, opts.Lexer).Tokenize()
	opts.Log.WithFields(logrus.Fields{"path": src.Path, "tokens": len(tokens)}).Debug("tokenized")
	program, err := parser.New(tokens, opts.Parser).Parse()
	if err != nil {
		return nil, errors.Wrap(err, src.Path)
	}
	return program, nil
}

// Run parses src, prints the AST section when requested, then evaluates the
// program under an "Output:" header. Output written before a runtime error
// is kept.
func Run(src *Source, opts RunOptions) error {
	opts = opts.normalize()
	program, err := Parse(src, opts)
	if err != nil {
		return err
	}
	out := opts.Stdout
	if opts.ShowAST {
		if _, err := fmt.Fprintln(out, "Abstract Syntax Tree (AST):"); err != nil {
			return err
		}
		if err := ast.Dump(out, program, opts.Format); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out, "Output:"); err != nil {
		return err
	}
	interp := interpreter.New(interpreter.WithOutput(out), interpreter.WithLogger(opts.Log))
	if _, err := interp.Run(program); err != nil {
		return errors.Wrap(err, src.Path)
	}
	return nil
}

// WriteTokens prints one token per line as "KIND lexeme".
func WriteTokens(w io.Writer, src *Source, opts RunOptions) error {
	for _, tok := range lexer.New(src.Text, opts.Lexer).Tokenize() {
		line := tok.Kind.String()
		if tok.Lexeme != "" {
			line += " " + tok.Lexeme
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteAST parses src and dumps its tree in opts.Format.
func WriteAST(w io.Writer, src *Source, opts RunOptions) error {
	opts = opts.normalize()
	program, err := Parse(src, opts)
	if err != nil {
		return err
	}
	return ast.Dump(w, program, opts.Format)
}
