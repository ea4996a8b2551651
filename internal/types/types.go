package types

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"solir/internal/errors"
)

// Type is implemented by every Solidity type representation. The variant
// set is closed: elementary, array, user-defined, function, alias and
// typename. Types are structural values; two types compare equal when
// their shapes match, except user-defined types, which compare by
// declaration identity.
type Type interface {
	// StorageSize returns the number of bytes a value of this type
	// occupies in contract storage and whether it must start a fresh
	// 32-byte slot. Typename and Function types have no storage layout;
	// asking panics.
	StorageSize() (uint64, bool)
	// IsDynamic reports whether the size of a value depends on runtime
	// data. Panics for Typename and Function types.
	IsDynamic() bool
	// Equal reports whether the other type has the same shape.
	Equal(other Type) bool
	String() string

	isType()
}

// ElementaryType is a value type built into the language: sized integers,
// fixed byte sequences, bool, address, and the dynamic string/bytes pair.
//
// Example: "uint256", "bytes4", "address"
type ElementaryType struct {
	name string
}

// NewElementaryType validates and normalizes an elementary type name.
// The unsized spellings "uint", "int" and "byte" normalize to "uint256",
// "int256" and "bytes1". Unsupported names or widths are rejected.
func NewElementaryType(name string) (*ElementaryType, error) {
	normalized, ok := normalizeElementaryName(name)
	if !ok {
		return nil, errors.InvalidElementaryType(name, errors.Position{})
	}
	return &ElementaryType{name: normalized}, nil
}

// MustElementaryType is NewElementaryType for names known at compile time,
// such as static builtin tables. Invalid names panic.
func MustElementaryType(name string) *ElementaryType {
	t, err := NewElementaryType(name)
	if err != nil {
		panic(errors.NewUnexpectedError("invalid elementary type name %q", name))
	}
	return t
}

// Name returns the normalized type name.
func (t *ElementaryType) Name() string { return t.name }

// BitSize returns the value width in bits. The dynamically sized "string"
// and "bytes" report zero.
func (t *ElementaryType) BitSize() uint64 {
	return elementaryBitSizes[t.name]
}

func (t *ElementaryType) StorageSize() (uint64, bool) {
	if t.name == "string" || t.name == "bytes" {
		return 32, true
	}
	return t.BitSize() / 8, false
}

func (t *ElementaryType) IsDynamic() bool {
	return t.name == "string" || t.name == "bytes"
}

func (t *ElementaryType) Equal(other Type) bool {
	o, ok := other.(*ElementaryType)
	return ok && o.name == t.name
}

func (t *ElementaryType) String() string { return t.name }

// ArrayType is a sequence of a single element type, fixed when a length
// is present and dynamic otherwise.
//
// Example: "uint256[4]", "bytes32[]"
type ArrayType struct {
	elem   Type
	length *big.Int
}

// NewArrayType builds an array type. A nil length means a dynamic array.
func NewArrayType(elem Type, length *big.Int) *ArrayType {
	if elem == nil {
		panic(errors.NewUnexpectedError("array type requires an element type"))
	}
	return &ArrayType{elem: elem, length: length}
}

// ElementType returns the element type.
func (t *ArrayType) ElementType() Type { return t.elem }

// Length returns the declared length, nil for dynamic arrays.
func (t *ArrayType) Length() *big.Int { return t.length }

// IsFixed reports whether the array has a declared length.
func (t *ArrayType) IsFixed() bool { return t.length != nil }

func (t *ArrayType) StorageSize() (uint64, bool) {
	if t.length != nil {
		elemSize, _ := t.elem.StorageSize()
		total := new(big.Int).Mul(t.length, new(big.Int).SetUint64(elemSize))
		return total.Uint64(), true
	}
	return 32, true
}

func (t *ArrayType) IsDynamic() bool { return t.length == nil }

func (t *ArrayType) Equal(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok || !t.elem.Equal(o.elem) {
		return false
	}
	if (t.length == nil) != (o.length == nil) {
		return false
	}
	return t.length == nil || t.length.Cmp(o.length) == 0
}

func (t *ArrayType) String() string {
	if t.length != nil {
		return fmt.Sprintf("%s[%s]", t.elem, t.length)
	}
	return t.elem.String() + "[]"
}

// DeclKind discriminates the declaration entities a user-defined type can wrap.
type DeclKind int

const (
	ContractKind DeclKind = iota
	StructKind
	EnumKind
)

func (k DeclKind) String() string {
	switch k {
	case ContractKind:
		return "contract"
	case StructKind:
		return "struct"
	case EnumKind:
		return "enum"
	default:
		return fmt.Sprintf("DeclKind(%d)", int(k))
	}
}

// TypeDecl is the declaration entity behind a user-defined type: a
// contract, struct or enum declared in analyzed source. Declarations live
// outside this package; only identity, kind and layout-relevant shape are
// visible here. A TypeDecl value must be comparable so it can serve as a
// map key.
type TypeDecl interface {
	// TypeDeclName returns the qualified declaration name, "Lib.Entry"
	// for declarations nested in a contract.
	TypeDeclName() string
	TypeDeclKind() DeclKind
}

// StructDecl exposes the declared-order field types of a struct declaration.
type StructDecl interface {
	TypeDecl
	NumFields() int
	FieldType(i int) Type
}

// EnumDecl exposes the member count of an enum declaration.
type EnumDecl interface {
	TypeDecl
	NumMembers() int
}

// ContractDecl exposes the library flag of a contract declaration.
type ContractDecl interface {
	TypeDecl
	IsLibraryDecl() bool
}

// UserDefinedType wraps a declared contract, struct or enum.
type UserDefinedType struct {
	decl TypeDecl
}

// NewUserDefinedType wraps a declaration.
func NewUserDefinedType(decl TypeDecl) *UserDefinedType {
	if decl == nil {
		panic(errors.NewUnexpectedError("user-defined type requires a declaration"))
	}
	return &UserDefinedType{decl: decl}
}

// Decl returns the wrapped declaration.
func (t *UserDefinedType) Decl() TypeDecl { return t.decl }

func (t *UserDefinedType) StorageSize() (uint64, bool) {
	switch t.decl.TypeDeclKind() {
	case ContractKind:
		return 20, false
	case EnumKind:
		enum, ok := t.decl.(EnumDecl)
		if !ok {
			panic(errors.NewUnexpectedError("enum declaration %s does not expose its members", t.decl.TypeDeclName()))
		}
		return enumStorageBytes(enum.NumMembers()), false
	case StructKind:
		st, ok := t.decl.(StructDecl)
		if !ok {
			panic(errors.NewUnexpectedError("struct declaration %s does not expose its fields", t.decl.TypeDeclName()))
		}
		return structStorageBytes(st), true
	}
	panic(errors.NewUnreachableError())
}

func (t *UserDefinedType) IsDynamic() bool { return false }

// Equal is true only when both types wrap the same declared entity.
func (t *UserDefinedType) Equal(other Type) bool {
	o, ok := other.(*UserDefinedType)
	return ok && o.decl == t.decl
}

func (t *UserDefinedType) String() string { return t.decl.TypeDeclName() }

// enumStorageBytes returns the bytes needed to hold any member index.
func enumStorageBytes(members int) uint64 {
	if members <= 1 {
		return 1
	}
	bitLen := bits.Len(uint(members - 1))
	return uint64((bitLen + 7) / 8)
}

// structStorageBytes sums the slots of the ordered fields, packing
// adjacent fields into a shared slot when they fit.
func structStorageBytes(st StructDecl) uint64 {
	var slots, offset uint64
	for i := 0; i < st.NumFields(); i++ {
		size, freshSlot := st.FieldType(i).StorageSize()
		switch {
		case freshSlot:
			if offset > 0 {
				slots++
				offset = 0
			}
			slots += (size + 31) / 32
		case size+offset > 32:
			slots++
			offset = size
		default:
			offset += size
		}
	}
	if offset > 0 {
		slots++
	}
	return slots * 32
}

// FunctionType is the type of a function value: ordered parameter and
// return types. Function values have no storage layout in this model;
// layout queries panic.
type FunctionType struct {
	params  []Type
	returns []Type
}

// NewFunctionType builds a function type.
func NewFunctionType(params, returns []Type) *FunctionType {
	return &FunctionType{params: params, returns: returns}
}

// Params returns the ordered parameter types.
func (t *FunctionType) Params() []Type { return t.params }

// Returns returns the ordered return types.
func (t *FunctionType) Returns() []Type { return t.returns }

func (t *FunctionType) StorageSize() (uint64, bool) {
	panic(errors.NewUnexpectedError("function type %s has no storage size", t))
}

func (t *FunctionType) IsDynamic() bool {
	panic(errors.NewUnexpectedError("function type %s has no dynamic flag", t))
}

func (t *FunctionType) Equal(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.params) != len(t.params) || len(o.returns) != len(t.returns) {
		return false
	}
	for i, p := range t.params {
		if !p.Equal(o.params[i]) {
			return false
		}
	}
	for i, r := range t.returns {
		if !r.Equal(o.returns[i]) {
			return false
		}
	}
	return true
}

func (t *FunctionType) String() string {
	params := make([]string, len(t.params))
	for i, p := range t.params {
		params[i] = p.String()
	}
	if len(t.returns) == 0 {
		return fmt.Sprintf("function(%s)", strings.Join(params, ","))
	}
	returns := make([]string, len(t.returns))
	for i, r := range t.returns {
		returns[i] = r.String()
	}
	return fmt.Sprintf("function(%s) returns(%s)", strings.Join(params, ","), strings.Join(returns, ","))
}

// TypeAlias is a user-defined value type ("type Fix is uint128"): a
// distinct type sharing its underlying type's layout. Equality requires
// the same alias name, so an alias never compares equal to its
// underlying type.
type TypeAlias struct {
	name       string
	underlying Type
}

// NewTypeAlias builds an alias over an underlying elementary type. The
// name is qualified for aliases declared inside a contract.
func NewTypeAlias(name string, underlying Type) *TypeAlias {
	if underlying == nil {
		panic(errors.NewUnexpectedError("type alias %s requires an underlying type", name))
	}
	return &TypeAlias{name: name, underlying: underlying}
}

// Name returns the alias name.
func (t *TypeAlias) Name() string { return t.name }

// Underlying returns the aliased type.
func (t *TypeAlias) Underlying() Type { return t.underlying }

func (t *TypeAlias) StorageSize() (uint64, bool) { return t.underlying.StorageSize() }

func (t *TypeAlias) IsDynamic() bool { return t.underlying.IsDynamic() }

func (t *TypeAlias) Equal(other Type) bool {
	o, ok := other.(*TypeAlias)
	return ok && o.name == t.name && t.underlying.Equal(o.underlying)
}

func (t *TypeAlias) String() string { return t.name }

// Typename is the type of a type name used as a value, as in type(C) or
// the type argument of abi.decode. It has no values and no layout; layout
// queries panic.
type Typename struct {
	wrapped Type
}

// NewTypename wraps the named type.
func NewTypename(t Type) *Typename {
	if t == nil {
		panic(errors.NewUnexpectedError("typename requires a wrapped type"))
	}
	return &Typename{wrapped: t}
}

// Wrapped returns the type the name refers to.
func (t *Typename) Wrapped() Type { return t.wrapped }

func (t *Typename) StorageSize() (uint64, bool) {
	panic(errors.NewUnexpectedError("%s has no storage size", t))
}

func (t *Typename) IsDynamic() bool {
	panic(errors.NewUnexpectedError("%s has no dynamic flag", t))
}

func (t *Typename) Equal(other Type) bool {
	o, ok := other.(*Typename)
	return ok && t.wrapped.Equal(o.wrapped)
}

func (t *Typename) String() string {
	return fmt.Sprintf("typename[%s]", t.wrapped)
}

func (t *ElementaryType) isType()  {}
func (t *ArrayType) isType()       {}
func (t *UserDefinedType) isType() {}
func (t *FunctionType) isType()    {}
func (t *TypeAlias) isType()       {}
func (t *Typename) isType()        {}
