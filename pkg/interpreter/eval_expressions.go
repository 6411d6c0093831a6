package interpreter

import (
	"strconv"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/runtime"
)

// Evaluate computes the integer value of an expression node. It reads env
// but never modifies it.
func (i *Interpreter) Evaluate(node ast.Node, env *runtime.Environment) (int64, error) {
	switch n := node.(type) {
	case *ast.Number:
		v, err := strconv.ParseInt(n.Literal, 10, 64)
		if err != nil {
			return 0, runtimeError(ErrInvalidNumber, "%s", n.Literal)
		}
		return v, nil
	case *ast.Identifier:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return 0, runtimeError(ErrUnresolvedName, "%s", n.Name)
		}
		return v, nil
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(n, env)
	case nil:
		return 0, runtimeError(ErrUnexpectedNode, "missing operand")
	default:
		return 0, runtimeError(ErrUnexpectedNode, "%s is not an expression", n.NodeType())
	}
}

func (i *Interpreter) evaluateBinaryOp(expr *ast.BinaryOp, env *runtime.Environment) (int64, error) {
	left, err := i.Evaluate(expr.Left, env)
	if err != nil {
		return 0, err
	}
	right, err := i.Evaluate(expr.Right, env)
	if err != nil {
		return 0, err
	}
	switch expr.Operator {
	case ast.OpPlus:
		return left + right, nil
	case ast.OpMinus:
		return left - right, nil
	case ast.OpTimes:
		return left * right, nil
	case ast.OpDividedBy:
		if right == 0 {
			return 0, runtimeError(ErrDivisionByZero, "%d divided by 0", left)
		}
		return left / right, nil
	default:
		return 0, runtimeError(ErrUnknownOperator, "%q", expr.Operator)
	}
}
