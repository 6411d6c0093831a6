package parser

import (
	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/lexer"
)

// Both precedence levels fold left: "a minus b minus c" is (a minus b) minus c.

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Lexeme, left, right)
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TIMES) || p.at(lexer.DIVIDED_BY) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Lexeme, left, right)
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	switch tok := p.current(); tok.Kind {
	case lexer.NUMBER:
		p.advance()
		return ast.NewNumber(tok.Lexeme), nil
	case lexer.IDENTIFIER:
		p.advance()
		return ast.NewIdentifier(tok.Lexeme), nil
	default:
		return nil, &SyntaxError{Kind: ErrUnexpectedFactor, Found: tok}
	}
}

// parseComparison returns the operator leaf stored on an If node.
func (p *Parser) parseComparison() (*ast.BinaryOp, error) {
	switch p.current().Kind {
	case lexer.GREATER_THAN:
		p.advance()
		return ast.NewBinaryOp(ast.OpGreater, nil, nil), nil
	case lexer.LESS_THAN:
		p.advance()
		return ast.NewBinaryOp(ast.OpLess, nil, nil), nil
	default:
		return nil, &SyntaxError{Kind: ErrUnexpectedComparison, Found: p.current()}
	}
}
