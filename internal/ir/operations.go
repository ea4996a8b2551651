package ir

import (
	"fmt"
	"strings"

	"solir/internal/ast"
	"solir/internal/errors"
	"solir/internal/types"
)

// Operation is one IR instruction. Read returns the operands the
// operation consumes. The operation kinds form a closed set; detectors
// are expected to type-switch exhaustively over them.
type Operation interface {
	Read() []Variable
	String() string
}

// OperationWithLValue is an operation that writes a single result.
type OperationWithLValue interface {
	Operation
	LValue() Variable
	SetLValue(Variable)
}

// withLValue supplies the result slot of value-producing operations.
type withLValue struct {
	lvalue Variable
}

func (w *withLValue) LValue() Variable     { return w.lvalue }
func (w *withLValue) SetLValue(v Variable) { w.lvalue = v }

// isValidLValue reports whether a variable can be assigned to. Constants
// and builtin environment variables cannot.
func isValidLValue(v Variable) bool {
	switch v.(type) {
	case *ast.StateVariable, *ast.LocalVariable, *Temporary, *Reference:
		return true
	}
	return false
}

func requireLValue(operation string, v Variable) {
	if !isValidLValue(v) {
		panic(errors.NewUnexpectedError("%s lvalue %v is not assignable", operation, v))
	}
}

// lvaluePrefix renders the "TMP_3(uint256) = " head of an operation
// listing line, empty when the operation discards its result.
func lvaluePrefix(v Variable) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s(%s) = ", v, v.Type())
}

// IsStorageVariable reports whether a variable denotes a storage
// location. The cases run in order: a reference resolving to a state
// variable, a reference resolving to a storage-declared local or
// temporary, a state variable itself, a storage-declared local.
// References are always classified through their resolved origin because
// references can chain.
func IsStorageVariable(v Variable) bool {
	if ref, ok := v.(*Reference); ok {
		switch origin := ref.PointsToOrigin().(type) {
		case *ast.StateVariable:
			return true
		case *ast.LocalVariable:
			if origin.IsStorage() {
				return true
			}
		case *Temporary:
			if origin.Location() == ast.Storage {
				return true
			}
		}
	}
	if _, ok := v.(*ast.StateVariable); ok {
		return true
	}
	if local, ok := v.(*ast.LocalVariable); ok {
		return local.IsStorage()
	}
	return false
}

// Assignment copies a value into an assignable location.
type Assignment struct {
	withLValue
	rvalue Variable
}

func NewAssignment(lvalue, rvalue Variable) *Assignment {
	requireLValue("assignment", lvalue)
	a := &Assignment{rvalue: rvalue}
	a.lvalue = lvalue
	return a
}

func (a *Assignment) RValue() Variable { return a.rvalue }
func (a *Assignment) Read() []Variable { return []Variable{a.rvalue} }

func (a *Assignment) String() string {
	return fmt.Sprintf("%s(%s) := %s(%s)", a.lvalue, a.lvalue.Type(), a.rvalue, a.rvalue.Type())
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpPower BinaryOp = iota
	OpMultiplication
	OpDivision
	OpModulo
	OpAddition
	OpSubtraction
	OpLeftShift
	OpRightShift
	OpBitwiseAnd
	OpBitwiseXor
	OpBitwiseOr
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpLogicalAnd
	OpLogicalOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpPower:
		return "**"
	case OpMultiplication:
		return "*"
	case OpDivision:
		return "/"
	case OpModulo:
		return "%"
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "-"
	case OpLeftShift:
		return "<<"
	case OpRightShift:
		return ">>"
	case OpBitwiseAnd:
		return "&"
	case OpBitwiseXor:
		return "^"
	case OpBitwiseOr:
		return "|"
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	}
	panic(errors.NewUnreachableError())
}

// YieldsBool reports whether the operator produces a boolean regardless
// of its operand types.
func (op BinaryOp) YieldsBool() bool {
	switch op {
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpEqual, OpNotEqual, OpLogicalAnd, OpLogicalOr:
		return true
	}
	return false
}

// Binary computes one binary operation into its lvalue.
type Binary struct {
	withLValue
	left  Variable
	op    BinaryOp
	right Variable
}

func NewBinary(lvalue Variable, left Variable, op BinaryOp, right Variable) *Binary {
	requireLValue("binary", lvalue)
	b := &Binary{left: left, op: op, right: right}
	b.lvalue = lvalue
	return b
}

func (b *Binary) Left() Variable  { return b.left }
func (b *Binary) Op() BinaryOp    { return b.op }
func (b *Binary) Right() Variable { return b.right }
func (b *Binary) Read() []Variable {
	return []Variable{b.left, b.right}
}

func (b *Binary) String() string {
	return fmt.Sprintf("%s(%s) = %s %s %s", b.lvalue, b.lvalue.Type(), b.left, b.op, b.right)
}

// UnaryOp enumerates the unary operators the IR keeps; increment and
// decrement lower to binary additions before reaching the IR.
type UnaryOp int

const (
	OpNot        UnaryOp = iota // !
	OpBitwiseNot                // ~
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpBitwiseNot:
		return "~"
	}
	panic(errors.NewUnreachableError())
}

// Unary computes a logical or bitwise negation into its lvalue.
type Unary struct {
	withLValue
	op     UnaryOp
	rvalue Variable
}

func NewUnary(lvalue Variable, op UnaryOp, rvalue Variable) *Unary {
	requireLValue("unary", lvalue)
	u := &Unary{op: op, rvalue: rvalue}
	u.lvalue = lvalue
	return u
}

func (u *Unary) Op() UnaryOp      { return u.op }
func (u *Unary) RValue() Variable { return u.rvalue }
func (u *Unary) Read() []Variable { return []Variable{u.rvalue} }

func (u *Unary) String() string {
	return fmt.Sprintf("%s(%s) = %s%s", u.lvalue, u.lvalue.Type(), u.op, u.rvalue)
}

// Index forms a reference to base[index]. The result is always a
// reference; constructing the operation wires its points-to edge to the
// indexed base.
type Index struct {
	lvalue *Reference
	base   Variable
	index  Variable
}

func NewIndex(lvalue *Reference, base, index Variable) *Index {
	lvalue.SetPointsTo(base)
	return &Index{lvalue: lvalue, base: base, index: index}
}

func (ix *Index) Base() Variable   { return ix.base }
func (ix *Index) Key() Variable    { return ix.index }
func (ix *Index) LValue() Variable { return ix.lvalue }

func (ix *Index) SetLValue(v Variable) {
	ref, ok := v.(*Reference)
	if !ok {
		panic(errors.NewUnexpectedError("index lvalue must be a reference, got %v", v))
	}
	ix.lvalue = ref
}

func (ix *Index) Read() []Variable { return []Variable{ix.base, ix.index} }

func (ix *Index) String() string {
	return fmt.Sprintf("%s(%s) -> %s[%s]", ix.lvalue, ix.lvalue.Type(), ix.base, ix.index)
}

// Member forms a reference to base.member. The member name travels as a
// string constant and is not part of the read set.
type Member struct {
	lvalue *Reference
	base   Variable
	member *Constant
}

func NewMember(lvalue *Reference, base Variable, member *Constant) *Member {
	lvalue.SetPointsTo(base)
	return &Member{lvalue: lvalue, base: base, member: member}
}

func (m *Member) Base() Variable    { return m.base }
func (m *Member) Member() *Constant { return m.member }
func (m *Member) LValue() Variable  { return m.lvalue }

func (m *Member) SetLValue(v Variable) {
	ref, ok := v.(*Reference)
	if !ok {
		panic(errors.NewUnexpectedError("member lvalue must be a reference, got %v", v))
	}
	m.lvalue = ref
}

func (m *Member) Read() []Variable { return []Variable{m.base} }

func (m *Member) String() string {
	return fmt.Sprintf("%s(%s) -> %s.%s", m.lvalue, m.lvalue.Type(), m.base, m.member)
}

// TypeConversion casts a value into its lvalue's type.
type TypeConversion struct {
	withLValue
	value Variable
	to    types.Type
}

func NewTypeConversion(lvalue Variable, value Variable, to types.Type) *TypeConversion {
	requireLValue("type conversion", lvalue)
	tc := &TypeConversion{value: value, to: to}
	tc.lvalue = lvalue
	return tc
}

func (tc *TypeConversion) Value() Variable { return tc.value }
func (tc *TypeConversion) To() types.Type  { return tc.to }
func (tc *TypeConversion) Read() []Variable {
	return []Variable{tc.value}
}

func (tc *TypeConversion) String() string {
	return fmt.Sprintf("%s = CONVERT %s to %s", tc.lvalue, tc.value, tc.to)
}

// Condition marks the branching value of a conditional node. It reads
// its value and writes nothing.
type Condition struct {
	value Variable
}

func NewCondition(value Variable) *Condition {
	return &Condition{value: value}
}

func (c *Condition) Value() Variable { return c.value }
func (c *Condition) Read() []Variable {
	return []Variable{c.value}
}

func (c *Condition) String() string {
	return fmt.Sprintf("CONDITION %s", c.value)
}

// Return carries a function's return values, possibly none.
type Return struct {
	values []Variable
}

func NewReturn(values ...Variable) *Return {
	return &Return{values: values}
}

func (r *Return) Values() []Variable { return r.values }
func (r *Return) Read() []Variable   { return r.values }

func (r *Return) String() string {
	if len(r.values) == 0 {
		return "RETURN"
	}
	names := make([]string, len(r.values))
	for i, v := range r.values {
		names[i] = v.String()
	}
	return "RETURN " + strings.Join(names, ",")
}

// Delete resets a location to its type's default value.
type Delete struct {
	withLValue
	target Variable
}

func NewDelete(lvalue Variable, target Variable) *Delete {
	requireLValue("delete", lvalue)
	d := &Delete{target: target}
	d.lvalue = lvalue
	return d
}

func (d *Delete) Target() Variable { return d.target }
func (d *Delete) Read() []Variable { return []Variable{d.target} }

func (d *Delete) String() string {
	return fmt.Sprintf("%s = delete %s", d.lvalue, d.target)
}

// InitArray materializes an inline array literal into its lvalue.
type InitArray struct {
	withLValue
	values []Argument
}

func NewInitArray(lvalue Variable, values []Argument) *InitArray {
	requireLValue("init array", lvalue)
	ia := &InitArray{values: values}
	ia.lvalue = lvalue
	return ia
}

func (ia *InitArray) Values() []Argument { return ia.values }
func (ia *InitArray) Read() []Variable   { return Unroll(ia.values) }

func (ia *InitArray) String() string {
	return fmt.Sprintf("%s(%s) = [%s]", ia.lvalue, ia.lvalue.Type(), argumentList(ia.values))
}

// Length reads the length member of an array or bytes value.
type Length struct {
	withLValue
	target Variable
}

func NewLength(lvalue Variable, target Variable) *Length {
	requireLValue("length", lvalue)
	l := &Length{target: target}
	l.lvalue = lvalue
	return l
}

func (l *Length) Target() Variable { return l.target }
func (l *Length) Read() []Variable { return []Variable{l.target} }

func (l *Length) String() string {
	return fmt.Sprintf("%s -> LENGTH %s", l.lvalue, l.target)
}

// Push appends an element to a dynamic array and yields the new slot.
// The default-element form allocates the element type's default value;
// the explicit form appends a computed value.
type Push struct {
	withLValue
	array Variable
	elem  Variable // nil for the default-element form
}

// NewPush builds the default-element form.
func NewPush(lvalue Variable, array Variable) *Push {
	return newPush(lvalue, array, nil)
}

// NewPushValue builds the explicit-element form.
func NewPushValue(lvalue Variable, array Variable, elem Variable) *Push {
	if elem == nil {
		panic(errors.NewUnexpectedError("push value form requires an element"))
	}
	return newPush(lvalue, array, elem)
}

func newPush(lvalue Variable, array Variable, elem Variable) *Push {
	requireLValue("push", lvalue)
	if _, ok := array.Type().(*types.ArrayType); !ok {
		panic(errors.NewUnexpectedError("push target %v is not an array", array))
	}
	p := &Push{array: array, elem: elem}
	p.lvalue = lvalue
	return p
}

func (p *Push) Array() Variable   { return p.array }
func (p *Push) Element() Variable { return p.elem }

func (p *Push) Read() []Variable {
	if p.elem == nil {
		return nil
	}
	return []Variable{p.elem}
}

// Storage reports whether the push allocates into storage rather than
// memory.
func (p *Push) Storage() bool {
	return IsStorageVariable(p.array)
}

// ElementType returns the type of the pushed element.
func (p *Push) ElementType() types.Type {
	return p.array.Type().(*types.ArrayType).ElementType()
}

func (p *Push) String() string {
	if p.elem == nil {
		return fmt.Sprintf("%s = push %s", p.lvalue, p.array)
	}
	return fmt.Sprintf("%s = push %s %s", p.lvalue, p.array, p.elem)
}
