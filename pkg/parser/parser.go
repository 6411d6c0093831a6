package parser

import (
	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/lexer"
)

// DefaultMaxDepth bounds If nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 512

// Options tunes the parser.
type Options struct {
	// MaxDepth is the deepest If nesting accepted before parsing fails
	// with ErrNestingTooDeep.
	MaxDepth int
}

// Parser is a recursive-descent parser over a token slice with one token
// of lookahead.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int
}

// New returns a parser over tokens. A missing END terminator is supplied.
func New(tokens []lexer.Token, opts Options) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.END {
		tokens = append(append([]lexer.Token{}, tokens...), lexer.Token{Kind: lexer.END})
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{tokens: tokens, maxDepth: maxDepth}
}

// Parse parses tokens with default options.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens, Options{}).Parse()
}

// ParseSource tokenizes and parses program text.
func ParseSource(source string, lexOpts lexer.Options, opts Options) (*ast.Program, error) {
	return New(lexer.New(source, lexOpts).Tokenize(), opts).Parse()
}

// Parse consumes every token and returns the Program root. The first error
// aborts parsing; no partial tree is returned.
func (p *Parser) Parse() (*ast.Program, error) {
	var body []ast.Statement
	for !p.at(lexer.END) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return ast.NewProgram(body), nil
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

// advance returns the current token and moves past it. The cursor never
// moves beyond END.
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if tok.Kind != lexer.END {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind or fails naming what was wanted.
func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	if !p.at(kind) {
		return lexer.Token{}, &SyntaxError{Kind: ErrUnexpectedToken, Found: p.current(), Expected: what}
	}
	return p.advance(), nil
}
