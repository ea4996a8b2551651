package ast

import "solir/internal/types"

// Expression is implemented by every expression tree node. Expressions are
// immutable after construction; consumers compare and print them but never
// rewrite them in place.
type Expression interface {
	String() string
	isExpr()
}

// Entity is any named declaration an identifier can refer to: contracts,
// structures, enums, events, functions, variables, and builtins.
type Entity interface {
	DeclName() string
}

// Literal represents a literal constant with its resolved type
// Example: "0", "false", "" (empty string literal)
type Literal struct {
	Value string
	Type  types.Type
}

// Identifier represents a name referring to a declared entity
// Example: "totalSupply", "SafeMath", "Suit"
type Identifier struct {
	Value Entity
}

// CallExpression represents a call with ordered arguments. TypeCall
// records the declared result type phrase when the parser knows it
// Example: "transfer(to, amount)", "new uint256[](0)"
type CallExpression struct {
	Called    Expression
	Arguments []Expression
	TypeCall  string
}

// MemberAccess represents field, method, or accessor selection
// Example: "msg.sender", "type(Suit).min", "Fix.wrap"
type MemberAccess struct {
	MemberName string
	MemberType types.Type
	Expression Expression
}

// TypeConversion represents an explicit cast
// Example: "address(0)", "Vault(address(0))"
type TypeConversion struct {
	Type       types.Type
	Expression Expression
}

// NewArray represents the callee of a dynamic array allocation. Depth
// counts trailing "[]" pairs for nested arrays
// Example: "new uint256[]" in "new uint256[](0)"
type NewArray struct {
	Depth       int
	ElementType types.Type
}

// TupleExpression represents a parenthesized tuple or an inline array
// literal; only the bracketing differs
// Example: "(a, b)", "[0, 0, 0]"
type TupleExpression struct {
	Expressions   []Expression
	IsInlineArray bool
}

// TypeNameExpression represents a type used as an expression
// Example: "Fix" in "Fix.wrap(0)", "uint256" in "abi.decode(data, (uint256))"
type TypeNameExpression struct {
	Type types.Type
}

func (*Literal) isExpr() {}

func (*Identifier) isExpr() {}

func (*CallExpression) isExpr() {}

func (*MemberAccess) isExpr() {}

func (*TypeConversion) isExpr() {}

func (*NewArray) isExpr() {}

func (*TupleExpression) isExpr() {}

func (*TypeNameExpression) isExpr() {}
