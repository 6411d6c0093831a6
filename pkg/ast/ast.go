package ast

type NodeType string

const (
	NodeProgram     NodeType = "Program"
	NodeDeclaration NodeType = "Declaration"
	NodeAssignment  NodeType = "Assignment"
	NodePrint       NodeType = "Print"
	NodeIf          NodeType = "If"
	NodeBlock       NodeType = "Block"
	NodeBinaryOp    NodeType = "BinaryOp"
	NodeNumber      NodeType = "Number"
	NodeIdentifier  NodeType = "Identifier"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program root

type Program struct {
	nodeImpl

	Body []Statement
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Statements

type Declaration struct {
	nodeImpl
	statementMarker

	Target *Identifier
	Value  Expression
}

func NewDeclaration(target *Identifier, value Expression) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Target: target, Value: value}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Target *Identifier
	Value  Expression
}

func NewAssignment(target *Identifier, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Value: value}
}

type Print struct {
	nodeImpl
	statementMarker

	Value Expression
}

func NewPrint(value Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

// If compares Left and Right with the operator carried by Comparison, a
// BinaryOp leaf without operands. Otherwise is nil when the branch is absent.
type If struct {
	nodeImpl
	statementMarker

	Left       Expression
	Comparison *BinaryOp
	Right      Expression
	Then       *Block
	Otherwise  *Block
}

func NewIf(left Expression, comparison *BinaryOp, right Expression, then, otherwise *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Left: left, Comparison: comparison, Right: right, Then: then, Otherwise: otherwise}
}

type Block struct {
	nodeImpl

	Body []Statement
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Expressions

// Comparison operators stored on the comparison leaf of an If.
const (
	OpGreater = ">"
	OpLess    = "<"
)

// Arithmetic operators are kept as their source lexemes.
const (
	OpPlus      = "plus"
	OpMinus     = "minus"
	OpTimes     = "times"
	OpDividedBy = "divided by"
)

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryOp(operator string, left, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Operator: operator, Left: left, Right: right}
}

type Number struct {
	nodeImpl
	expressionMarker

	Literal string
}

func NewNumber(literal string) *Number {
	return &Number{nodeImpl: newNodeImpl(NodeNumber), Literal: literal}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Children returns the node's children in canonical order. Leaves return nil.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Program:
		return statements(v.Body)
	case *Block:
		return statements(v.Body)
	case *Declaration:
		return []Node{v.Target, v.Value}
	case *Assignment:
		return []Node{v.Target, v.Value}
	case *Print:
		return []Node{v.Value}
	case *If:
		out := []Node{v.Left, v.Comparison, v.Right, v.Then}
		if v.Otherwise != nil {
			out = append(out, v.Otherwise)
		}
		return out
	case *BinaryOp:
		if v.Left == nil && v.Right == nil {
			return nil
		}
		return []Node{v.Left, v.Right}
	default:
		return nil
	}
}

// ValueOf returns the textual value a node carries: the operator of a
// BinaryOp, the literal of a Number, the name of an Identifier, and "" for
// everything else.
func ValueOf(n Node) string {
	switch v := n.(type) {
	case *BinaryOp:
		return v.Operator
	case *Number:
		return v.Literal
	case *Identifier:
		return v.Name
	default:
		return ""
	}
}

func statements(body []Statement) []Node {
	if len(body) == 0 {
		return nil
	}
	out := make([]Node, len(body))
	for i, stmt := range body {
		out[i] = stmt
	}
	return out
}
