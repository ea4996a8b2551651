package semantic

import (
	"solir/internal/ast"
	"solir/internal/builtins"
	"solir/internal/errors"
	"solir/internal/types"
)

// DefaultValue synthesizes the initializer a declaration without an
// explicit one starts with. The returned tree prints exactly as the
// source-level zero value would be written, so lowered code is
// indistinguishable from code that spelled the initializer out.
//
// Function types have no zero value in this model; asking for one is a
// bug in the caller and panics. So does any type shape outside the
// closed set.
//
// Example: DefaultValue(uint256[]) -> "new uint256[](0)"
// Example: DefaultValue(Coord) -> "Coord(0,0)"
func DefaultValue(t types.Type) ast.Expression {
	switch typ := t.(type) {
	case *types.ElementaryType:
		return elementaryDefault(typ)
	case *types.ArrayType:
		if typ.IsFixed() {
			return fixedArrayDefault(typ)
		}
		return emptyArrayDefault(typ)
	case *types.UserDefinedType:
		return userDefinedDefault(typ)
	case *types.TypeAlias:
		return aliasDefault(typ)
	case *types.FunctionType:
		panic(errors.NewUnexpectedError("function type %s has no default value", typ))
	}
	panic(errors.NewUnreachableError())
}

func elementaryDefault(t *types.ElementaryType) ast.Expression {
	switch t.Name() {
	case "string":
		return &ast.Literal{Value: "", Type: t}
	case "bool":
		return &ast.Literal{Value: "false", Type: t}
	default:
		// Integers, fixed and dynamic bytes, and addresses all zero out
		// to the numeric literal.
		return &ast.Literal{Value: "0", Type: t}
	}
}

// emptyArrayDefault builds the zero-length allocation "new T[](0)".
func emptyArrayDefault(t *types.ArrayType) ast.Expression {
	return &ast.CallExpression{
		Called:    &ast.NewArray{Depth: 1, ElementType: t.ElementType()},
		Arguments: []ast.Expression{zeroLiteral()},
		TypeCall:  t.ElementType().String() + "[] memory",
	}
}

// fixedArrayDefault builds an inline array literal of N element defaults,
// "[0,0,0]" for uint256[3].
func fixedArrayDefault(t *types.ArrayType) ast.Expression {
	length := int(t.Length().Uint64())
	exprs := make([]ast.Expression, length)
	for i := range exprs {
		exprs[i] = DefaultValue(t.ElementType())
	}
	return &ast.TupleExpression{Expressions: exprs, IsInlineArray: true}
}

func userDefinedDefault(t *types.UserDefinedType) ast.Expression {
	decl := t.Decl()
	entity, ok := decl.(ast.Entity)
	if !ok {
		panic(errors.NewUnexpectedError("declaration %s cannot appear in an expression", decl.TypeDeclName()))
	}

	switch decl.TypeDeclKind() {
	case types.EnumKind:
		// The declared minimum member, spelled "type(Suit).min".
		return &ast.MemberAccess{
			MemberName: "min",
			MemberType: t,
			Expression: &ast.CallExpression{
				Called:    &ast.Identifier{Value: builtins.MustSolidityFunction("type()")},
				Arguments: []ast.Expression{&ast.Identifier{Value: entity}},
				TypeCall:  "type(enum " + entity.DeclName() + ")",
			},
		}

	case types.StructKind:
		st, ok := decl.(types.StructDecl)
		if !ok {
			panic(errors.NewUnexpectedError("struct declaration %s does not expose its fields", decl.TypeDeclName()))
		}
		// Positional constructor call with each field's default, in
		// declaration order.
		args := make([]ast.Expression, st.NumFields())
		for i := range args {
			args[i] = DefaultValue(st.FieldType(i))
		}
		return &ast.CallExpression{
			Called:    &ast.Identifier{Value: entity},
			Arguments: args,
			TypeCall:  "struct " + entity.DeclName() + " memory",
		}

	case types.ContractKind:
		// The zero address cast through address first, "C(address(0))".
		// Collapsing the two conversions would skip the numeric-to-address
		// checking step compilers perform.
		return &ast.TypeConversion{
			Type: t,
			Expression: &ast.TypeConversion{
				Type:       types.MustElementaryType("address"),
				Expression: zeroLiteral(),
			},
		}
	}
	panic(errors.NewUnreachableError())
}

// aliasDefault wraps the underlying type's default back into the alias,
// "Fix.wrap(0)" for a uint128-backed Fix.
func aliasDefault(t *types.TypeAlias) ast.Expression {
	underlying := t.Underlying()
	return &ast.CallExpression{
		Called: &ast.MemberAccess{
			MemberName: "wrap",
			MemberType: types.NewFunctionType([]types.Type{underlying}, []types.Type{t}),
			Expression: &ast.TypeNameExpression{Type: t},
		},
		Arguments: []ast.Expression{DefaultValue(underlying)},
		TypeCall:  t.Name(),
	}
}

func zeroLiteral() ast.Expression {
	return &ast.Literal{Value: "0", Type: types.MustElementaryType("uint256")}
}
