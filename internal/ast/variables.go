package ast

import "solir/internal/types"

// Location tags where a variable's data lives
// Example: "storage", "memory", "calldata"
type Location int

const (
	// NoLocation is the default for value-typed locals and parameters.
	NoLocation Location = iota
	Storage
	Memory
	Calldata
)

func (l Location) String() string {
	switch l {
	case NoLocation:
		return "default"
	case Storage:
		return "storage"
	case Memory:
		return "memory"
	case Calldata:
		return "calldata"
	}
	return "unknown"
}

// StateVariable represents a contract-level storage variable
// Example: "uint256 public totalSupply;"
type StateVariable struct {
	name       string
	typ        types.Type
	contract   *Contract
	visibility Visibility
}

// NewStateVariable declares a state variable on a contract.
func NewStateVariable(name string, typ types.Type, contract *Contract, visibility Visibility) *StateVariable {
	return &StateVariable{name: name, typ: typ, contract: contract, visibility: visibility}
}

func (v *StateVariable) Name() string           { return v.name }
func (v *StateVariable) Type() types.Type       { return v.typ }
func (v *StateVariable) Contract() *Contract    { return v.contract }
func (v *StateVariable) Visibility() Visibility { return v.visibility }
func (v *StateVariable) String() string         { return v.name }
func (v *StateVariable) DeclName() string       { return v.name }

// HasGetter reports whether the compiler generates a public accessor for
// this variable, making it an external call target.
func (v *StateVariable) HasGetter() bool { return v.visibility == Public }

// LocalVariable represents a function-scoped variable or parameter
// Example: "uint256[] storage entries"
type LocalVariable struct {
	name     string
	typ      types.Type
	function *Function
	location Location
}

// NewLocalVariable declares a local variable in a function scope.
func NewLocalVariable(name string, typ types.Type, function *Function, location Location) *LocalVariable {
	return &LocalVariable{name: name, typ: typ, function: function, location: location}
}

func (v *LocalVariable) Name() string        { return v.name }
func (v *LocalVariable) Type() types.Type    { return v.typ }
func (v *LocalVariable) Function() *Function { return v.function }
func (v *LocalVariable) Location() Location  { return v.location }
func (v *LocalVariable) String() string      { return v.name }
func (v *LocalVariable) DeclName() string    { return v.name }

// IsStorage reports whether the variable was declared with the storage
// location, making it an alias into contract storage.
func (v *LocalVariable) IsStorage() bool { return v.location == Storage }
