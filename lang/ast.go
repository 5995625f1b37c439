package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is an immutable expression tree node. The concrete types below
// are the only implementations; a parsed tree is never mutated, so it
// may be evaluated concurrently against any number of environments.
type Node interface {
	node()
}

// MathOp selects the arithmetic performed by a [Math] node.
type MathOp int

const (
	OpAdd MathOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
)

func (op MathOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	case OpPower:
		return "^"
	default:
		return "?"
	}
}

// ComparisonOp selects the relation tested by a [Comparison] node.
type ComparisonOp int

const (
	CmpGreater ComparisonOp = iota
	CmpGreaterEqual
	CmpLess
	CmpLessEqual
	CmpEqual
	CmpEqualExact
	CmpNotEqual
	CmpNotEqualExact
)

func (op ComparisonOp) String() string {
	switch op {
	case CmpGreater:
		return ">"
	case CmpGreaterEqual:
		return ">="
	case CmpLess:
		return "<"
	case CmpLessEqual:
		return "<="
	case CmpEqual:
		return "=="
	case CmpEqualExact:
		return "==="
	case CmpNotEqual:
		return "!="
	case CmpNotEqualExact:
		return "!=="
	default:
		return "?"
	}
}

// IntLiteral is a signed integer constant.
type IntLiteral struct{ Value int64 }

// FloatLiteral is a floating-point constant.
type FloatLiteral struct{ Value float64 }

// StringLiteral is a string constant with escapes already resolved.
type StringLiteral struct{ Value string }

// BoolLiteral is the constant true or false.
type BoolLiteral struct{ Value bool }

// NullLiteral is the constant null.
type NullLiteral struct{}

// Identifier references a variable by name. Negated marks the form
// "-name", which arithmetically negates the resolved value.
type Identifier struct {
	Name    string
	Negated bool
}

// FlipSign arithmetically negates its operand.
type FlipSign struct{ Operand Node }

// Invert logically negates its operand.
type Invert struct{ Operand Node }

// Math applies an arithmetic operator to two operands.
type Math struct {
	Op  MathOp
	LHS Node
	RHS Node
}

// Comparison applies a relational or equality operator to two operands.
type Comparison struct {
	Op  ComparisonOp
	LHS Node
	RHS Node
}

// LogicalAnd short-circuits: RHS is evaluated only when LHS is true.
type LogicalAnd struct {
	LHS Node
	RHS Node
}

// LogicalOr short-circuits: RHS is evaluated only when LHS is false.
type LogicalOr struct {
	LHS Node
	RHS Node
}

// Concat stringifies both operands and joins them.
type Concat struct {
	LHS Node
	RHS Node
}

// Call invokes a named function with the given argument expressions.
type Call struct {
	Name string
	Args []Node
}

func (*IntLiteral) node()    {}
func (*FloatLiteral) node()  {}
func (*StringLiteral) node() {}
func (*BoolLiteral) node()   {}
func (*NullLiteral) node()   {}
func (*Identifier) node()    {}
func (*FlipSign) node()      {}
func (*Invert) node()        {}
func (*Math) node()          {}
func (*Comparison) node()    {}
func (*LogicalAnd) node()    {}
func (*LogicalOr) node()     {}
func (*Concat) node()        {}
func (*Call) node()          {}

// Print writes an indented rendition of the tree rooted at n.
func Print(w io.Writer, n Node) {
	printNode(w, n, 0)
}

func printNode(w io.Writer, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	put := func(format string, args ...any) {
		fmt.Fprintf(w, indent+format+"\n", args...)
	}
	switch n := n.(type) {
	case *IntLiteral:
		put("int %d", n.Value)
	case *FloatLiteral:
		put("float %s", strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *StringLiteral:
		put("string %q", n.Value)
	case *BoolLiteral:
		put("bool %t", n.Value)
	case *NullLiteral:
		put("null")
	case *Identifier:
		if n.Negated {
			put("identifier -%s", n.Name)
		} else {
			put("identifier %s", n.Name)
		}
	case *FlipSign:
		put("flip-sign")
		printNode(w, n.Operand, depth+1)
	case *Invert:
		put("invert")
		printNode(w, n.Operand, depth+1)
	case *Math:
		put("math %s", n.Op)
		printNode(w, n.LHS, depth+1)
		printNode(w, n.RHS, depth+1)
	case *Comparison:
		put("comparison %s", n.Op)
		printNode(w, n.LHS, depth+1)
		printNode(w, n.RHS, depth+1)
	case *LogicalAnd:
		put("and")
		printNode(w, n.LHS, depth+1)
		printNode(w, n.RHS, depth+1)
	case *LogicalOr:
		put("or")
		printNode(w, n.LHS, depth+1)
		printNode(w, n.RHS, depth+1)
	case *Concat:
		put("concat")
		printNode(w, n.LHS, depth+1)
		printNode(w, n.RHS, depth+1)
	case *Call:
		put("call %s", n.Name)
		for _, arg := range n.Args {
			printNode(w, arg, depth+1)
		}
	}
}
