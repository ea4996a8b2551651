package ast

import "strings"

// String methods render expressions back to Solidity source form. Default
// initializers synthesized by the semantic layer print through these, so
// the output must match what a programmer would have written.

func (l *Literal) String() string {
	return l.Value
}

func (i *Identifier) String() string {
	return i.Value.DeclName()
}

func (c *CallExpression) String() string {
	var b strings.Builder

	b.WriteString(c.Called.String())
	b.WriteString("(")
	for i, arg := range c.Arguments {
		if i > 0 {
			b.WriteString(",")
		}
		if arg != nil {
			b.WriteString(arg.String())
		}
	}
	b.WriteString(")")

	return b.String()
}

func (m *MemberAccess) String() string {
	return m.Expression.String() + "." + m.MemberName
}

func (t *TypeConversion) String() string {
	return t.Type.String() + "(" + t.Expression.String() + ")"
}

func (n *NewArray) String() string {
	return "new " + n.ElementType.String() + strings.Repeat("[]", n.Depth)
}

func (t *TupleExpression) String() string {
	left, right := "(", ")"
	if t.IsInlineArray {
		left, right = "[", "]"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, expr := range t.Expressions {
		if i > 0 {
			b.WriteString(",")
		}
		// Tuples keep nil holes for skipped assignment slots; they
		// print as empty cells.
		if expr != nil {
			b.WriteString(expr.String())
		}
	}
	b.WriteString(right)

	return b.String()
}

func (t *TypeNameExpression) String() string {
	return t.Type.String()
}

func (c *Contract) String() string { return c.Name }

func (s *Structure) String() string { return s.TypeDeclName() }

func (e *Enum) String() string { return e.TypeDeclName() }

func (e *Event) String() string { return e.Signature() }

func (f *Function) String() string { return f.QualifiedName() }
