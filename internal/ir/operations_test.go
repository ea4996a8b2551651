package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solir/internal/ast"
	"solir/internal/types"
)

func TestStorageClassification(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	vault := &ast.Contract{Name: "Vault"}
	balances := ast.NewStateVariable("balances", u256, vault, ast.Internal)

	t.Run("StateVariable", func(t *testing.T) {
		assert.True(t, IsStorageVariable(balances))
	})

	t.Run("ReferenceToStateVariable", func(t *testing.T) {
		ref := NewAllocator().NewReference(u256)
		ref.SetPointsTo(balances)
		assert.True(t, IsStorageVariable(ref))
	})

	t.Run("ReferenceChainResolvesToOrigin", func(t *testing.T) {
		alloc := NewAllocator()
		inner := alloc.NewReference(u256)
		outer := alloc.NewReference(u256)
		inner.SetPointsTo(balances)
		outer.SetPointsTo(inner)
		assert.True(t, IsStorageVariable(outer), "classification chases the chain, not the immediate referent")
	})

	t.Run("StorageLocal", func(t *testing.T) {
		local := ast.NewLocalVariable("slot", u256, nil, ast.Storage)
		assert.True(t, IsStorageVariable(local))
	})

	t.Run("MemoryLocalIsNot", func(t *testing.T) {
		local := ast.NewLocalVariable("buf", u256, nil, ast.Memory)
		assert.False(t, IsStorageVariable(local))
	})

	t.Run("ReferenceToStorageLocal", func(t *testing.T) {
		local := ast.NewLocalVariable("slot", u256, nil, ast.Storage)
		ref := NewAllocator().NewReference(u256)
		ref.SetPointsTo(local)
		assert.True(t, IsStorageVariable(ref))
	})

	t.Run("ReferenceToMemoryLocalIsNot", func(t *testing.T) {
		local := ast.NewLocalVariable("buf", u256, nil, ast.Memory)
		ref := NewAllocator().NewReference(u256)
		ref.SetPointsTo(local)
		assert.False(t, IsStorageVariable(ref))
	})

	t.Run("ReferenceToStoragePointerTemporary", func(t *testing.T) {
		alloc := NewAllocator()
		pointer := alloc.NewTemporaryIn(u256, ast.Storage)
		ref := alloc.NewReference(u256)
		ref.SetPointsTo(pointer)
		assert.True(t, IsStorageVariable(ref))
	})

	t.Run("PlainTemporaryIsNot", func(t *testing.T) {
		assert.False(t, IsStorageVariable(NewAllocator().NewTemporary(u256)))
	})

	t.Run("ConstantIsNot", func(t *testing.T) {
		assert.False(t, IsStorageVariable(NewConstant("0", u256)))
	})
}

func TestAssignment(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()
	a := ast.NewLocalVariable("a", u256, nil, ast.NoLocation)
	tmp := alloc.NewTemporary(u256)

	op := NewAssignment(a, tmp)
	assert.Equal(t, []Variable{tmp}, op.Read())
	assert.Same(t, a, op.LValue())
	assert.Equal(t, "a(uint256) := TMP_0(uint256)", op.String())

	t.Run("ConstantLValuePanics", func(t *testing.T) {
		assert.Panics(t, func() { NewAssignment(NewConstant("1", u256), tmp) })
	})
}

func TestBinaryOperators(t *testing.T) {
	t.Run("SymbolForms", func(t *testing.T) {
		symbols := map[BinaryOp]string{
			OpPower:          "**",
			OpMultiplication: "*",
			OpDivision:       "/",
			OpModulo:         "%",
			OpAddition:       "+",
			OpSubtraction:    "-",
			OpLeftShift:      "<<",
			OpRightShift:     ">>",
			OpBitwiseAnd:     "&",
			OpBitwiseXor:     "^",
			OpBitwiseOr:      "|",
			OpLess:           "<",
			OpGreater:        ">",
			OpLessEqual:      "<=",
			OpGreaterEqual:   ">=",
			OpEqual:          "==",
			OpNotEqual:       "!=",
			OpLogicalAnd:     "&&",
			OpLogicalOr:      "||",
		}
		for op, symbol := range symbols {
			assert.Equal(t, symbol, op.String())
		}
	})

	t.Run("ComparisonsYieldBool", func(t *testing.T) {
		for _, op := range []BinaryOp{OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpEqual, OpNotEqual, OpLogicalAnd, OpLogicalOr} {
			assert.True(t, op.YieldsBool(), "%s", op)
		}
		for _, op := range []BinaryOp{OpAddition, OpPower, OpBitwiseAnd, OpLeftShift} {
			assert.False(t, op.YieldsBool(), "%s", op)
		}
	})

	t.Run("UnknownOperatorPanics", func(t *testing.T) {
		assert.Panics(t, func() { _ = BinaryOp(99).String() })
	})
}

func TestBinary(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()
	a := ast.NewLocalVariable("a", u256, nil, ast.NoLocation)
	b := ast.NewLocalVariable("b", u256, nil, ast.NoLocation)
	tmp := alloc.NewTemporary(u256)

	op := NewBinary(tmp, a, OpAddition, b)
	assert.Equal(t, []Variable{a, b}, op.Read())
	assert.Equal(t, OpAddition, op.Op())
	assert.Equal(t, "TMP_0(uint256) = a + b", op.String())
}

func TestUnary(t *testing.T) {
	boolType := types.MustElementaryType("bool")
	alloc := NewAllocator()
	flag := ast.NewLocalVariable("flag", boolType, nil, ast.NoLocation)
	tmp := alloc.NewTemporary(boolType)

	op := NewUnary(tmp, OpNot, flag)
	assert.Equal(t, []Variable{flag}, op.Read())
	assert.Equal(t, "TMP_0(bool) = !flag", op.String())

	t.Run("BitwiseNot", func(t *testing.T) {
		u256 := types.MustElementaryType("uint256")
		mask := alloc.NewTemporary(u256)
		inverted := alloc.NewTemporary(u256)
		assert.Equal(t, "TMP_2(uint256) = ~TMP_1", NewUnary(inverted, OpBitwiseNot, mask).String())
	})

	t.Run("UnknownOperatorPanics", func(t *testing.T) {
		assert.Panics(t, func() { _ = UnaryOp(99).String() })
	})
}

func TestIndex(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	vault := &ast.Contract{Name: "Vault"}
	balances := ast.NewStateVariable("balances", u256, vault, ast.Internal)

	alloc := NewAllocator()
	key := alloc.NewTemporary(types.MustElementaryType("address"))
	ref := alloc.NewReference(u256)

	op := NewIndex(ref, balances, key)
	assert.Same(t, balances, ref.PointsTo(), "constructing the index wires the points-to edge")
	assert.Equal(t, []Variable{balances, key}, op.Read())
	assert.Equal(t, "REF_0(uint256) -> balances[TMP_0]", op.String())

	t.Run("LValueMustBeAReference", func(t *testing.T) {
		assert.Panics(t, func() { op.SetLValue(alloc.NewTemporary(u256)) })
	})

	t.Run("RewiringReplacesTheReference", func(t *testing.T) {
		other := alloc.NewReference(u256)
		op.SetLValue(other)
		assert.Same(t, other, op.LValue())
	})
}

func TestMember(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	entry := ast.NewLocalVariable("entry", u256, nil, ast.Storage)

	alloc := NewAllocator()
	ref := alloc.NewReference(u256)
	field := NewConstant("amount", types.MustElementaryType("string"))

	op := NewMember(ref, entry, field)
	assert.Same(t, entry, ref.PointsTo(), "constructing the member access wires the points-to edge")
	assert.Equal(t, []Variable{entry}, op.Read(), "the member name is not an operand")
	assert.Equal(t, "REF_0(uint256) -> entry.amount", op.String())

	t.Run("LValueMustBeAReference", func(t *testing.T) {
		assert.Panics(t, func() { op.SetLValue(alloc.NewTemporary(u256)) })
	})
}

func TestTypeConversion(t *testing.T) {
	addr := types.MustElementaryType("address")
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()
	balance := ast.NewLocalVariable("balance", u256, nil, ast.NoLocation)
	tmp := alloc.NewTemporary(addr)

	op := NewTypeConversion(tmp, balance, addr)
	assert.Equal(t, []Variable{balance}, op.Read())
	assert.Equal(t, addr, op.To())
	assert.Equal(t, "TMP_0 = CONVERT balance to address", op.String())
}

func TestConditionAndReturn(t *testing.T) {
	boolType := types.MustElementaryType("bool")
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()

	t.Run("ConditionReadsItsValue", func(t *testing.T) {
		cond := alloc.NewTemporary(boolType)
		op := NewCondition(cond)
		assert.Equal(t, []Variable{cond}, op.Read())
		assert.Equal(t, "CONDITION TMP_0", op.String())
	})

	t.Run("EmptyReturn", func(t *testing.T) {
		op := NewReturn()
		assert.Empty(t, op.Read())
		assert.Equal(t, "RETURN", op.String())
	})

	t.Run("MultiValueReturn", func(t *testing.T) {
		a := ast.NewLocalVariable("a", u256, nil, ast.NoLocation)
		b := ast.NewLocalVariable("b", u256, nil, ast.NoLocation)
		op := NewReturn(a, b)
		assert.Equal(t, []Variable{a, b}, op.Read())
		assert.Equal(t, "RETURN a,b", op.String())
	})
}

func TestDelete(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	vault := &ast.Contract{Name: "Vault"}
	balances := ast.NewStateVariable("balances", u256, vault, ast.Internal)
	tmp := NewAllocator().NewTemporary(u256)

	op := NewDelete(tmp, balances)
	assert.Equal(t, []Variable{balances}, op.Read())
	assert.Equal(t, "TMP_0 = delete balances", op.String())
}

func TestInitArray(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()
	a := ast.NewLocalVariable("a", u256, nil, ast.NoLocation)
	b := ast.NewLocalVariable("b", u256, nil, ast.NoLocation)
	tmp := alloc.NewTemporary(types.NewArrayType(u256, nil))

	op := NewInitArray(tmp, Arguments(a, b))
	assert.Equal(t, []Variable{a, b}, op.Read())
	assert.Equal(t, "TMP_0(uint256[]) = [a,b]", op.String())

	t.Run("GroupArgumentsUnroll", func(t *testing.T) {
		c := ast.NewLocalVariable("c", u256, nil, ast.NoLocation)
		nested := NewInitArray(tmp, []Argument{NewArgument(a), NewArgumentGroup([]Variable{b, c})})
		assert.Equal(t, []Variable{a, b, c}, nested.Read())
		assert.Equal(t, "TMP_0(uint256[]) = [a,[b,c]]", nested.String())
	})
}

func TestLength(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	vault := &ast.Contract{Name: "Vault"}
	entries := ast.NewStateVariable("entries", types.NewArrayType(u256, nil), vault, ast.Internal)
	tmp := NewAllocator().NewTemporary(u256)

	op := NewLength(tmp, entries)
	assert.Equal(t, []Variable{entries}, op.Read())
	assert.Equal(t, "TMP_0 -> LENGTH entries", op.String())
}

func TestPush(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	arrayType := types.NewArrayType(u256, nil)
	vault := &ast.Contract{Name: "Vault"}
	entries := ast.NewStateVariable("entries", arrayType, vault, ast.Internal)

	t.Run("DefaultElementForm", func(t *testing.T) {
		slot := NewAllocator().NewReference(u256)
		op := NewPush(slot, entries)

		assert.Empty(t, op.Read(), "the default-element form reads nothing")
		assert.True(t, op.Storage())
		require.True(t, u256.Equal(op.ElementType()))
		assert.Equal(t, "REF_0 = push entries", op.String())
	})

	t.Run("ExplicitElementForm", func(t *testing.T) {
		alloc := NewAllocator()
		slot := alloc.NewReference(u256)
		elem := alloc.NewTemporary(u256)
		op := NewPushValue(slot, entries, elem)

		assert.Equal(t, []Variable{elem}, op.Read())
		assert.Same(t, elem, op.Element())
		assert.Equal(t, "REF_0 = push entries TMP_0", op.String())
	})

	t.Run("ThroughAStorageReference", func(t *testing.T) {
		alloc := NewAllocator()
		arrayRef := alloc.NewReferenceIn(arrayType, ast.Storage)
		arrayRef.SetPointsTo(entries)
		op := NewPush(alloc.NewReference(u256), arrayRef)
		assert.True(t, op.Storage())
	})

	t.Run("MemoryArrayIsNotStorage", func(t *testing.T) {
		buf := ast.NewLocalVariable("buf", arrayType, nil, ast.Memory)
		op := NewPush(NewAllocator().NewReference(u256), buf)
		assert.False(t, op.Storage())
	})

	t.Run("NonArrayTargetPanics", func(t *testing.T) {
		alloc := NewAllocator()
		assert.Panics(t, func() { NewPush(alloc.NewReference(u256), alloc.NewTemporary(u256)) })
	})

	t.Run("InvalidLValuePanics", func(t *testing.T) {
		assert.Panics(t, func() { NewPush(NewConstant("0", u256), entries) })
	})

	t.Run("MissingElementPanics", func(t *testing.T) {
		assert.Panics(t, func() { NewPushValue(NewAllocator().NewReference(u256), entries, nil) })
	})
}
