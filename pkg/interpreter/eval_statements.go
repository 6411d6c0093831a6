package interpreter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/runtime"
)

// Interpret executes a statement-level node for its effects on env and the
// output. Expression nodes are rejected with ErrUnexpectedNode.
func (i *Interpreter) Interpret(node ast.Node, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.Program:
		return i.interpretBody(n.Body, env)
	case *ast.Block:
		return i.interpretBody(n.Body, env)
	case *ast.Declaration:
		return i.bind(n.NodeType(), n.Target, n.Value, env, env.Define)
	case *ast.Assignment:
		return i.bind(n.NodeType(), n.Target, n.Value, env, env.Assign)
	case *ast.Print:
		return i.interpretPrint(n, env)
	case *ast.If:
		return i.interpretIf(n, env)
	case nil:
		return runtimeError(ErrUnexpectedNode, "nil statement")
	default:
		return runtimeError(ErrUnexpectedNode, "%s is not a statement", n.NodeType())
	}
}

func (i *Interpreter) interpretBody(body []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range body {
		if err := i.Interpret(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// bind evaluates value and hands it to store. Neither Define nor Assign
// checks whether the name already exists.
func (i *Interpreter) bind(kind ast.NodeType, target *ast.Identifier, value ast.Expression, env *runtime.Environment, store func(string, int64)) error {
	if target == nil {
		return runtimeError(ErrUnexpectedNode, "%s without a target", kind)
	}
	v, err := i.Evaluate(value, env)
	if err != nil {
		return err
	}
	store(target.Name, v)
	i.log.WithFields(logrus.Fields{"stmt": kind, "name": target.Name, "value": v}).Debug("bound")
	return nil
}

func (i *Interpreter) interpretPrint(stmt *ast.Print, env *runtime.Environment) error {
	v, err := i.Evaluate(stmt.Value, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	i.log.WithField("value", v).Debug("printed")
	return nil
}

func (i *Interpreter) interpretIf(stmt *ast.If, env *runtime.Environment) error {
	if stmt.Comparison == nil || stmt.Then == nil {
		return runtimeError(ErrUnexpectedNode, "malformed If")
	}
	left, err := i.Evaluate(stmt.Left, env)
	if err != nil {
		return err
	}
	right, err := i.Evaluate(stmt.Right, env)
	if err != nil {
		return err
	}
	holds, err := compare(stmt.Comparison.Operator, left, right)
	if err != nil {
		return err
	}
	i.log.WithFields(logrus.Fields{"left": left, "op": stmt.Comparison.Operator, "right": right, "holds": holds}).Debug("condition")
	switch {
	case holds:
		return i.Interpret(stmt.Then, env)
	case stmt.Otherwise != nil:
		return i.Interpret(stmt.Otherwise, env)
	default:
		return nil
	}
}

func compare(op string, left, right int64) (bool, error) {
	switch op {
	case ast.OpGreater:
		return left > right, nil
	case ast.OpLess:
		return left < right, nil
	default:
		return false, runtimeError(ErrUnknownOperator, "%q", op)
	}
}
