package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solir/internal/ast"
	"solir/internal/types"
)

func TestAllocatorIndices(t *testing.T) {
	u256 := types.MustElementaryType("uint256")

	t.Run("TemporariesNumberAcrossFunctions", func(t *testing.T) {
		alloc := NewAllocator()

		first := []*Temporary{alloc.NewTemporary(u256), alloc.NewTemporary(u256), alloc.NewTemporary(u256)}
		second := []*Temporary{alloc.NewTemporary(u256), alloc.NewTemporary(u256)}

		for i, tmp := range first {
			assert.Equal(t, uint64(i), tmp.Index())
		}
		assert.Equal(t, uint64(3), second[0].Index(), "a later function continues the unit's numbering")
		assert.Equal(t, uint64(4), second[1].Index())
	})

	t.Run("FreshUnitStartsAtZero", func(t *testing.T) {
		assert.Equal(t, uint64(0), NewAllocator().NewTemporary(u256).Index())
	})

	t.Run("ReferencesCountIndependently", func(t *testing.T) {
		alloc := NewAllocator()
		alloc.NewTemporary(u256)
		alloc.NewTemporary(u256)

		assert.Equal(t, "REF_0", alloc.NewReference(u256).Name(),
			"references do not share the temporary counter")
	})

	t.Run("IndicesAreNeverReused", func(t *testing.T) {
		alloc := NewAllocator()
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			name := alloc.NewTemporary(u256).Name()
			assert.False(t, seen[name], "%s handed out twice", name)
			seen[name] = true
		}
	})
}

func TestTemporaries(t *testing.T) {
	u256 := types.MustElementaryType("uint256")
	alloc := NewAllocator()

	t.Run("NameCarriesTheIndex", func(t *testing.T) {
		tmp := alloc.NewTemporary(u256)
		assert.Equal(t, "TMP_0", tmp.Name())
		assert.Equal(t, "TMP_0", tmp.String())
		assert.Equal(t, u256, tmp.Type())
	})

	t.Run("DefaultLocationIsUnset", func(t *testing.T) {
		assert.Equal(t, ast.NoLocation, alloc.NewTemporary(u256).Location())
	})

	t.Run("ExplicitLocationSticks", func(t *testing.T) {
		tmp := alloc.NewTemporaryIn(u256, ast.Storage)
		assert.Equal(t, ast.Storage, tmp.Location())
	})
}

func TestReferences(t *testing.T) {
	u256 := types.MustElementaryType("uint256")

	t.Run("NameCarriesTheIndex", func(t *testing.T) {
		alloc := NewAllocator()
		ref := alloc.NewReference(u256)
		assert.Equal(t, "REF_0", ref.Name())
		assert.Equal(t, "REF_0", ref.String())
		assert.Equal(t, u256, ref.Type())
	})

	t.Run("PointsToStartsEmpty", func(t *testing.T) {
		ref := NewAllocator().NewReference(u256)
		assert.Nil(t, ref.PointsTo())
		assert.Nil(t, ref.PointsToOrigin())
	})

	t.Run("OriginOfDirectReferent", func(t *testing.T) {
		alloc := NewAllocator()
		tmp := alloc.NewTemporary(u256)
		ref := alloc.NewReference(u256)
		ref.SetPointsTo(tmp)

		assert.Same(t, tmp, ref.PointsTo())
		assert.Same(t, tmp, ref.PointsToOrigin())
	})

	t.Run("OriginChasesReferenceChains", func(t *testing.T) {
		vault := &ast.Contract{Name: "Vault"}
		balances := ast.NewStateVariable("balances", u256, vault, ast.Internal)

		alloc := NewAllocator()
		inner := alloc.NewReference(u256)
		outer := alloc.NewReference(u256)
		inner.SetPointsTo(balances)
		outer.SetPointsTo(inner)

		assert.Same(t, inner, outer.PointsTo(), "the immediate referent stays visible")
		assert.Same(t, balances, outer.PointsToOrigin(), "the origin skips intermediate references")
	})

	t.Run("RetargetingMovesTheOrigin", func(t *testing.T) {
		alloc := NewAllocator()
		a := alloc.NewTemporary(u256)
		b := alloc.NewTemporary(u256)
		ref := alloc.NewReference(u256)

		ref.SetPointsTo(a)
		assert.Same(t, a, ref.PointsToOrigin())
		ref.SetPointsTo(b)
		assert.Same(t, b, ref.PointsToOrigin())
	})

	t.Run("LocationIsSetAtConstruction", func(t *testing.T) {
		ref := NewAllocator().NewReferenceIn(u256, ast.Storage)
		assert.Equal(t, ast.Storage, ref.Location())
	})
}

func TestConstants(t *testing.T) {
	u256 := types.MustElementaryType("uint256")

	t.Run("DecimalText", func(t *testing.T) {
		c := NewConstant("42", u256)
		assert.Equal(t, "42", c.Name())
		assert.Equal(t, "42", c.IntValue().String())
		assert.Equal(t, u256, c.Type())
	})

	t.Run("HexNormalizesToDecimal", func(t *testing.T) {
		c := NewConstant("0x10", u256)
		assert.Equal(t, "16", c.Name())
		assert.Equal(t, "0x10", c.OriginalValue(), "reporting keeps the source spelling")
	})

	t.Run("UnderscoreSeparatorsDrop", func(t *testing.T) {
		assert.Equal(t, "1000000", NewConstant("1_000_000", u256).Name())
	})

	t.Run("ScientificNotationExpands", func(t *testing.T) {
		assert.Equal(t, "1000000000000000000", NewConstant("1e18", u256).Name())
		assert.Equal(t, "2500", NewConstant("2.5e3", u256).Name())
	})

	t.Run("AddressTextParsesAsInteger", func(t *testing.T) {
		c := NewConstant("0xdeadbeef", types.MustElementaryType("address"))
		assert.Equal(t, "3735928559", c.Name())
	})

	t.Run("BoolText", func(t *testing.T) {
		boolType := types.MustElementaryType("bool")
		assert.True(t, NewConstant("true", boolType).BoolValue())
		assert.False(t, NewConstant("false", boolType).BoolValue())
	})

	t.Run("StringConstantsKeepTheirText", func(t *testing.T) {
		c := NewConstant("transfer failed", types.MustElementaryType("string"))
		assert.Equal(t, "transfer failed", c.String())
		assert.Nil(t, c.IntValue())
	})

	t.Run("NilTypeInfersFromText", func(t *testing.T) {
		number := NewConstant("7", nil)
		assert.Equal(t, "uint256", number.Type().String())
		assert.Equal(t, "7", number.IntValue().String())

		text := NewConstant("hello", nil)
		assert.Equal(t, "string", text.Type().String())
		assert.Equal(t, "hello", text.Name())
	})

	t.Run("MalformedIntegerPanics", func(t *testing.T) {
		assert.Panics(t, func() { NewConstant("abc", u256) })
		assert.Panics(t, func() { NewConstant("1.5", u256) }, "a fractional value is not an integer")
		assert.Panics(t, func() { NewConstant("1e-3", u256) }, "a negative exponent cannot produce an integer")
	})

	t.Run("MalformedBoolPanics", func(t *testing.T) {
		assert.Panics(t, func() { NewConstant("maybe", types.MustElementaryType("bool")) })
	})
}
