package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solir/internal/builtins"
	"solir/internal/types"
)

func TestLiteralString(t *testing.T) {
	zero := &Literal{Value: "0", Type: types.MustElementaryType("uint256")}
	assert.Equal(t, "0", zero.String())

	empty := &Literal{Value: "", Type: types.MustElementaryType("string")}
	assert.Equal(t, "", empty.String())
}

func TestIdentifierString(t *testing.T) {
	contract := &Contract{Name: "Vault"}
	entry := &Structure{Name: "Entry", Contract: contract}

	// Identifiers print the bare name even for nested declarations,
	// matching how source code spells them.
	ident := &Identifier{Value: entry}
	assert.Equal(t, "Entry", ident.String())
}

func TestNewArrayCallString(t *testing.T) {
	uint256 := types.MustElementaryType("uint256")

	call := &CallExpression{
		Called:    &NewArray{Depth: 1, ElementType: uint256},
		Arguments: []Expression{&Literal{Value: "0", Type: uint256}},
		TypeCall:  "uint256[] memory",
	}

	assert.Equal(t, "new uint256[](0)", call.String())
}

func TestNestedNewArrayString(t *testing.T) {
	alloc := &NewArray{Depth: 2, ElementType: types.MustElementaryType("bytes32")}
	assert.Equal(t, "new bytes32[][]", alloc.String())
}

func TestTupleExpressionString(t *testing.T) {
	uint256 := types.MustElementaryType("uint256")
	zero := &Literal{Value: "0", Type: uint256}

	inline := &TupleExpression{
		Expressions:   []Expression{zero, zero, zero},
		IsInlineArray: true,
	}
	assert.Equal(t, "[0,0,0]", inline.String())

	tuple := &TupleExpression{Expressions: []Expression{zero, zero}}
	assert.Equal(t, "(0,0)", tuple.String())
}

func TestTupleExpressionEmptyAndHoles(t *testing.T) {
	empty := &TupleExpression{IsInlineArray: true}
	assert.Equal(t, "[]", empty.String())

	uint256 := types.MustElementaryType("uint256")
	a := &Literal{Value: "1", Type: uint256}
	b := &Literal{Value: "2", Type: uint256}

	// A skipped assignment slot stays nil and prints as an empty cell.
	holed := &TupleExpression{Expressions: []Expression{a, nil, b}}
	assert.Equal(t, "(1,,2)", holed.String())
}

func TestTypeConversionString(t *testing.T) {
	vault := &Contract{Name: "Vault"}
	vaultType := types.NewUserDefinedType(vault)

	conversion := &TypeConversion{
		Type: vaultType,
		Expression: &TypeConversion{
			Type:       types.MustElementaryType("address"),
			Expression: &Literal{Value: "0", Type: types.MustElementaryType("uint256")},
		},
	}

	assert.Equal(t, "Vault(address(0))", conversion.String())
}

func TestEnumAccessorString(t *testing.T) {
	suit := &Enum{Name: "Suit", Members: []string{"Hearts", "Spades"}}

	access := &MemberAccess{
		MemberName: "min",
		MemberType: types.NewUserDefinedType(suit),
		Expression: &CallExpression{
			Called:    &Identifier{Value: builtins.MustSolidityFunction("type()")},
			Arguments: []Expression{&Identifier{Value: suit}},
			TypeCall:  "type(enum Suit)",
		},
	}

	assert.Equal(t, "type(Suit).min", access.String())
}

func TestStructConstructorString(t *testing.T) {
	uint256 := types.MustElementaryType("uint256")
	coord := &Structure{
		Name: "Coord",
		Fields: []*StructField{
			{Name: "x", Type: uint256},
			{Name: "y", Type: uint256},
		},
	}

	call := &CallExpression{
		Called: &Identifier{Value: coord},
		Arguments: []Expression{
			&Literal{Value: "0", Type: uint256},
			&Literal{Value: "0", Type: uint256},
		},
		TypeCall: "struct Coord memory",
	}

	assert.Equal(t, "Coord(0,0)", call.String())
}

func TestAliasWrapString(t *testing.T) {
	uint128 := types.MustElementaryType("uint128")
	fix := types.NewTypeAlias("Fix", uint128)

	wrap := &CallExpression{
		Called: &MemberAccess{
			MemberName: "wrap",
			MemberType: types.NewFunctionType([]types.Type{uint128}, []types.Type{fix}),
			Expression: &TypeNameExpression{Type: fix},
		},
		Arguments: []Expression{&Literal{Value: "0", Type: uint128}},
	}

	assert.Equal(t, "Fix.wrap(0)", wrap.String())
}

func TestDeclarationStrings(t *testing.T) {
	vault := &Contract{Name: "Vault"}
	entry := &Structure{Name: "Entry", Contract: vault}
	suit := &Enum{Name: "Suit", Contract: vault}

	assert.Equal(t, "Vault", vault.String())
	assert.Equal(t, "Vault.Entry", entry.String())
	assert.Equal(t, "Vault.Suit", suit.String())

	f := &Function{Name: "withdraw", Contract: vault}
	assert.Equal(t, "Vault.withdraw", f.String())
}
