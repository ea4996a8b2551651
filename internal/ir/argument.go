package ir

import "strings"

// Argument is one call operand: a plain variable, or the ordered group of
// variables an inline array or tuple literal expanded to. Groups hold
// variables directly, so flattening a read set is structurally one level
// deep.
type Argument struct {
	value Variable
	group []Variable
}

// NewArgument wraps a plain variable operand.
func NewArgument(v Variable) Argument {
	return Argument{value: v}
}

// NewArgumentGroup wraps the expanded elements of an inline literal.
func NewArgumentGroup(variables []Variable) Argument {
	return Argument{group: variables}
}

// IsGroup reports whether the argument is an expanded literal.
func (a Argument) IsGroup() bool { return a.value == nil }

// Value returns the plain operand, nil for groups.
func (a Argument) Value() Variable { return a.value }

// Group returns the expanded elements, nil for plain operands.
func (a Argument) Group() []Variable { return a.group }

func (a Argument) String() string {
	if a.value != nil {
		return a.value.String()
	}
	names := make([]string, len(a.group))
	for i, v := range a.group {
		names[i] = v.String()
	}
	return "[" + strings.Join(names, ",") + "]"
}

// argumentList renders an argument list the way call listings print it,
// comma separated without spaces.
func argumentList(arguments []Argument) string {
	parts := make([]string, len(arguments))
	for i, argument := range arguments {
		parts[i] = argument.String()
	}
	return strings.Join(parts, ",")
}

// Unroll flattens an argument list into read operands: a plain argument
// contributes its variable, a group contributes each element instead of
// the containing literal.
func Unroll(arguments []Argument) []Variable {
	var read []Variable
	for _, argument := range arguments {
		if argument.value != nil {
			read = append(read, argument.value)
			continue
		}
		read = append(read, argument.group...)
	}
	return read
}

// Arguments wraps plain variables, the common positional-call case.
func Arguments(variables ...Variable) []Argument {
	arguments := make([]Argument, len(variables))
	for i, v := range variables {
		arguments[i] = NewArgument(v)
	}
	return arguments
}
