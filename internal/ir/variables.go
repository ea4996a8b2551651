package ir

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync/atomic"

	"solir/internal/ast"
	"solir/internal/errors"
	"solir/internal/types"
)

// Variable is the identity contract every IR operand satisfies: unique
// within its scope, typed, and stringifiable. Declaration-level variables
// (state variables, locals) and builtin environment variables satisfy it
// alongside the IR-local kinds below.
type Variable interface {
	Name() string
	Type() types.Type
	String() string
}

// Allocator hands out temporary and reference indices for one compilation
// unit. Counters are monotonic and never reused, so a bare index is unique
// across every function of the unit and downstream analyses can use it as
// a global key. Functions of the same unit may lower concurrently; the
// counters are the unit's only shared mutable state.
type Allocator struct {
	temporaries atomic.Uint64
	references  atomic.Uint64
}

// NewAllocator creates the allocator for one compilation unit.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NewTemporary allocates the unit's next temporary.
func (a *Allocator) NewTemporary(typ types.Type) *Temporary {
	return a.NewTemporaryIn(typ, ast.NoLocation)
}

// NewTemporaryIn allocates a temporary with an explicit data location,
// used when lowering storage pointer expressions.
func (a *Allocator) NewTemporaryIn(typ types.Type, location ast.Location) *Temporary {
	return &Temporary{index: a.temporaries.Add(1) - 1, typ: typ, location: location}
}

// NewReference allocates the unit's next reference.
func (a *Allocator) NewReference(typ types.Type) *Reference {
	return a.NewReferenceIn(typ, ast.NoLocation)
}

// NewReferenceIn allocates a reference with an explicit data location.
func (a *Allocator) NewReferenceIn(typ types.Type, location ast.Location) *Reference {
	return &Reference{index: a.references.Add(1) - 1, typ: typ, location: location}
}

// Temporary is a compiler-introduced variable holding an intermediate
// value. Its lifetime is function-local but its index comes from the
// owning unit's allocator, so "TMP_3" names at most one variable per unit.
type Temporary struct {
	index    uint64
	typ      types.Type
	location ast.Location
}

func (t *Temporary) Index() uint64          { return t.index }
func (t *Temporary) Name() string           { return fmt.Sprintf("TMP_%d", t.index) }
func (t *Temporary) Type() types.Type       { return t.typ }
func (t *Temporary) Location() ast.Location { return t.location }
func (t *Temporary) String() string         { return t.Name() }

// Reference aliases a storage, memory or calldata location instead of
// holding a value. The location tag is set once at construction; the
// points-to edge is a non-owning back-reference into the scope's variable
// table, re-targeted freely during lowering.
type Reference struct {
	index    uint64
	typ      types.Type
	location ast.Location
	pointsTo Variable
}

func (r *Reference) Index() uint64          { return r.index }
func (r *Reference) Name() string           { return fmt.Sprintf("REF_%d", r.index) }
func (r *Reference) Type() types.Type       { return r.typ }
func (r *Reference) Location() ast.Location { return r.location }
func (r *Reference) String() string         { return r.Name() }

// PointsTo returns the immediate referent.
func (r *Reference) PointsTo() Variable { return r.pointsTo }

// SetPointsTo re-targets the reference.
func (r *Reference) SetPointsTo(v Variable) { r.pointsTo = v }

// PointsToOrigin chases reference chains down to the ultimate referent:
// the state variable, local, temporary or constant the reference finally
// resolves to. Storage classification always consults the origin, never
// the immediate referent.
func (r *Reference) PointsToOrigin() Variable {
	origin := r.pointsTo
	for {
		ref, ok := origin.(*Reference)
		if !ok {
			return origin
		}
		origin = ref.pointsTo
	}
}

// Constant embeds a literal value and its type. Integer and address
// constants normalize their text to a big integer; the original source
// spelling stays available for reporting.
type Constant struct {
	text     string
	original string
	typ      types.Type
	intVal   *big.Int
	boolVal  bool
}

// NewConstant builds a typed constant from literal text. Integer-typed
// text accepts decimal, 0x hexadecimal, underscore separators and
// scientific notation; bool accepts "true" and "false". Text that does
// not fit the type signals a bug in the lowering pass and fails fast.
// A nil type infers uint256 for integer text and string otherwise.
func NewConstant(text string, typ types.Type) *Constant {
	c := &Constant{text: text, original: text, typ: typ}
	if typ == nil {
		if value, ok := parseIntegerLiteral(text); ok {
			c.typ = types.MustElementaryType("uint256")
			c.intVal = value
			c.text = value.String()
		} else {
			c.typ = types.MustElementaryType("string")
		}
		return c
	}

	elem, _ := typ.(*types.ElementaryType)
	switch {
	case elem != nil && (elem.IsInteger() || elem.Name() == "address"):
		value, ok := parseIntegerLiteral(text)
		if !ok {
			panic(errors.NewUnexpectedError("cannot parse %q as an integer constant", text))
		}
		c.intVal = value
		c.text = value.String()
	case elem != nil && elem.Name() == "bool":
		if text != "true" && text != "false" {
			panic(errors.NewUnexpectedError("cannot parse %q as a bool constant", text))
		}
		c.boolVal = text == "true"
	}
	return c
}

func (c *Constant) Name() string          { return c.text }
func (c *Constant) Type() types.Type      { return c.typ }
func (c *Constant) String() string        { return c.text }
func (c *Constant) OriginalValue() string { return c.original }

// IntValue returns the numeric value of an integer or address typed
// constant, nil for other types.
func (c *Constant) IntValue() *big.Int { return c.intVal }

// BoolValue reports the value of a bool typed constant.
func (c *Constant) BoolValue() bool { return c.boolVal }

// parseIntegerLiteral normalizes the literal forms Solidity allows for
// integers: decimal, 0x hexadecimal, underscore digit separators, and
// scientific notation with a non-negative integral result (1e18, 2.5e3).
func parseIntegerLiteral(text string) (*big.Int, bool) {
	cleaned := strings.ReplaceAll(text, "_", "")
	if rest, ok := strings.CutPrefix(cleaned, "0x"); ok {
		return new(big.Int).SetString(rest, 16)
	}
	if rest, ok := strings.CutPrefix(cleaned, "0X"); ok {
		return new(big.Int).SetString(rest, 16)
	}
	if mantissa, exponent, ok := cutExponent(cleaned); ok {
		return expandScientific(mantissa, exponent)
	}
	return new(big.Int).SetString(cleaned, 10)
}

func cutExponent(text string) (mantissa, exponent string, ok bool) {
	if mantissa, exponent, ok = strings.Cut(text, "e"); ok {
		return mantissa, exponent, true
	}
	return strings.Cut(text, "E")
}

// expandScientific turns mantissa/exponent into an integer by shifting
// the decimal point. 2.5e3 expands to 2500; anything that would leave a
// fractional part does not parse.
func expandScientific(mantissa, exponent string) (*big.Int, bool) {
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return nil, false
	}
	whole, frac, _ := strings.Cut(mantissa, ".")
	exp -= len(frac)
	if exp < 0 {
		return nil, false
	}
	value, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, false
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
	return value.Mul(value, scale), true
}
