package ast

import "strconv"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value int64) *Number {
	return NewNumber(strconv.FormatInt(value, 10))
}

func Lit(literal string) *Number {
	return NewNumber(literal)
}

// Expression helpers.

func Bin(operator string, left, right Expression) *BinaryOp {
	return NewBinaryOp(operator, left, right)
}

func Plus(left, right Expression) *BinaryOp {
	return Bin(OpPlus, left, right)
}

func Minus(left, right Expression) *BinaryOp {
	return Bin(OpMinus, left, right)
}

func Times(left, right Expression) *BinaryOp {
	return Bin(OpTimes, left, right)
}

func Div(left, right Expression) *BinaryOp {
	return Bin(OpDividedBy, left, right)
}

// Statement helpers.

func Declare(name string, value Expression) *Declaration {
	return NewDeclaration(ID(name), value)
}

func Set(name string, value Expression) *Assignment {
	return NewAssignment(ID(name), value)
}

func Show(value Expression) *Print {
	return NewPrint(value)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func Cond(left Expression, operator string, right Expression, then *Block, otherwise *Block) *If {
	return NewIf(left, NewBinaryOp(operator, nil, nil), right, then, otherwise)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}
