package parser

import (
	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Kind {
	case lexer.DECLARE:
		return p.parseDeclaration()
	case lexer.SET:
		return p.parseAssignment()
	case lexer.SHOW:
		return p.parsePrint()
	case lexer.IF:
		return p.parseIf()
	default:
		return nil, &SyntaxError{Kind: ErrUnexpectedStatement, Found: p.current()}
	}
}

// Declare <name> to be <expr>.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	p.advance()
	target, value, err := p.parseBinding(lexer.TO_BE, `"to be"`)
	if err != nil {
		return nil, err
	}
	return ast.NewDeclaration(target, value), nil
}

// Set <name> to <expr>.
func (p *Parser) parseAssignment() (ast.Statement, error) {
	p.advance()
	target, value, err := p.parseBinding(lexer.TO, `"to"`)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(target, value), nil
}

// parseBinding reads "<name> <connective> <expr>." shared by declarations
// and assignments.
func (p *Parser) parseBinding(connective lexer.Kind, what string) (*ast.Identifier, ast.Expression, error) {
	name, err := p.expect(lexer.IDENTIFIER, "identifier")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(connective, what); err != nil {
		return nil, nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.PERIOD, `"."`); err != nil {
		return nil, nil, err
	}
	return ast.NewIdentifier(name.Lexeme), value, nil
}

// Show the value of <expr>.
func (p *Parser) parsePrint() (ast.Statement, error) {
	p.advance()
	if _, err := p.expect(lexer.VALUE, `"the value of"`); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.PERIOD, `"."`); err != nil {
		return nil, err
	}
	return ast.NewPrint(value), nil
}

// If <expr> is <comparison> <expr>: <block> [Otherwise: <block>]
func (p *Parser) parseIf() (ast.Statement, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, &SyntaxError{Kind: ErrNestingTooDeep, Found: p.current(), Limit: p.maxDepth}
	}

	p.advance()
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IS, `"is"`); err != nil {
		return nil, err
	}
	comparison, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, `":"`); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var otherwise *ast.Block
	if p.at(lexer.OTHERWISE) {
		p.advance()
		if _, err := p.expect(lexer.COLON, `":"`); err != nil {
			return nil, err
		}
		otherwise, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(left, comparison, right, then, otherwise), nil
}

// parseBlock reads statements up to a period (or end of input) and then
// requires that period. Each inner statement consumes its own terminator,
// so a block that ends with a statement is closed by a second period.
func (p *Parser) parseBlock() (*ast.Block, error) {
	var body []ast.Statement
	for !p.at(lexer.PERIOD) && !p.at(lexer.END) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.PERIOD, `"." closing the block`); err != nil {
		return nil, err
	}
	return ast.NewBlock(body), nil
}
