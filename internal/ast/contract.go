package ast

import (
	"strings"

	"solir/internal/errors"
	"solir/internal/types"
)

// Visibility classifies who may call a function or read a state variable
// Example: "public", "external", "internal", "private"
type Visibility int

const (
	Public Visibility = iota
	External
	Internal
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case External:
		return "external"
	case Internal:
		return "internal"
	case Private:
		return "private"
	}
	return "unknown"
}

// Mutability classifies how a function may touch contract state
// Example: "view", "pure", "payable"
type Mutability int

const (
	NonPayable Mutability = iota
	Payable
	View
	Pure
)

func (m Mutability) String() string {
	switch m {
	case NonPayable:
		return "nonpayable"
	case Payable:
		return "payable"
	case View:
		return "view"
	case Pure:
		return "pure"
	}
	return "unknown"
}

// Contract represents a contract, interface, or library declaration
// Example: "contract Vault is Ownable { ... }", "library SafeMath { ... }"
type Contract struct {
	Name           string
	IsLibrary      bool
	IsInterface    bool
	Bases          []*Contract // linearized ancestors, nearest base first
	StateVariables []*StateVariable
	Structures     []*Structure
	Enums          []*Enum
	Events         []*Event
	Functions      []*Function
	UsingFor       []*UsingForDirective
}

func (c *Contract) TypeDeclName() string         { return c.Name }
func (c *Contract) TypeDeclKind() types.DeclKind { return types.ContractKind }
func (c *Contract) IsLibraryDecl() bool          { return c.IsLibrary }
func (c *Contract) DeclName() string             { return c.Name }

// FunctionByName finds a directly declared function, ignoring inherited ones.
func (c *Contract) FunctionByName(name string) *Function {
	for _, f := range c.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// StateVariableByName finds a directly declared state variable.
func (c *Contract) StateVariableByName(name string) *StateVariable {
	for _, v := range c.StateVariables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Structure represents a struct declaration, contract-nested or file-level
// Example: "struct Entry { address owner; uint256 amount; }"
type Structure struct {
	Name     string
	Contract *Contract // nil for file-level structs
	Fields   []*StructField
}

// StructField represents one field of a struct, in declaration order
type StructField struct {
	Name string
	Type types.Type
}

// TypeDeclName returns the qualified name, "Vault.Entry" for nested structs.
func (s *Structure) TypeDeclName() string {
	if s.Contract != nil {
		return s.Contract.Name + "." + s.Name
	}
	return s.Name
}

func (s *Structure) TypeDeclKind() types.DeclKind { return types.StructKind }
func (s *Structure) NumFields() int               { return len(s.Fields) }
func (s *Structure) FieldType(i int) types.Type   { return s.Fields[i].Type }

// DeclName returns the bare name, which is how source code spells the
// struct in constructor calls.
func (s *Structure) DeclName() string { return s.Name }

// Enum represents an enum declaration, contract-nested or file-level
// Example: "enum Suit { Hearts, Spades, Clubs, Diamonds }"
type Enum struct {
	Name     string
	Contract *Contract // nil for file-level enums
	Members  []string  // declaration order; the first member is the default
}

// TypeDeclName returns the qualified name, "Deck.Suit" for nested enums.
func (e *Enum) TypeDeclName() string {
	if e.Contract != nil {
		return e.Contract.Name + "." + e.Name
	}
	return e.Name
}

func (e *Enum) TypeDeclKind() types.DeclKind { return types.EnumKind }
func (e *Enum) NumMembers() int              { return len(e.Members) }
func (e *Enum) DeclName() string             { return e.Name }

// Event represents an event declaration
// Example: "event Transfer(address indexed from, address indexed to, uint256 value)"
type Event struct {
	Name       string
	Contract   *Contract
	Parameters []*EventParameter
}

// EventParameter represents one event parameter
type EventParameter struct {
	Name    string
	Type    types.Type
	Indexed bool
}

// Signature returns the canonical signature used for topic hashing
// Example: "Transfer(address,address,uint256)"
func (e *Event) Signature() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.Type.String()
	}
	return e.Name + "(" + strings.Join(params, ",") + ")"
}

func (e *Event) DeclName() string { return e.Name }

// Parameter represents a function parameter or return value
// Example: "uint256 amount", "bytes calldata payload"
type Parameter struct {
	Name     string
	Type     types.Type
	Location Location
}

// Function represents a function declaration
// Example: "function withdraw(uint256 amount) external"
type Function struct {
	Name       string
	Contract   *Contract // nil for free functions
	Visibility Visibility
	Mutability Mutability
	Parameters []*Parameter
	Returns    []*Parameter

	// Call reachability, recorded while the function body is lowered to
	// operations. Reentrancy queries walk this instead of re-scanning IR.
	internalCallees  []*Function
	hasExternalCalls bool
}

func (f *Function) DeclName() string { return f.Name }

// QualifiedName returns the contract-prefixed name, "Vault.withdraw" for
// member functions and the bare name for free functions.
func (f *Function) QualifiedName() string {
	if f.Contract != nil {
		return f.Contract.Name + "." + f.Name
	}
	return f.Name
}

// Signature returns the canonical signature
// Example: "withdraw(uint256)"
func (f *Function) Signature() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Type.String()
	}
	return f.Name + "(" + strings.Join(params, ",") + ")"
}

// IsView reports whether the function promises not to modify state.
func (f *Function) IsView() bool { return f.Mutability == View }

// IsPure reports whether the function promises not to read or modify state.
func (f *Function) IsPure() bool { return f.Mutability == Pure }

// RecordInternalCall notes a direct call from this function to callee.
func (f *Function) RecordInternalCall(callee *Function) {
	f.internalCallees = append(f.internalCallees, callee)
}

// MarkExternalCall notes that the body performs at least one external
// message call.
func (f *Function) MarkExternalCall() {
	f.hasExternalCalls = true
}

// HasExternalCalls reports whether the body performs an external message
// call directly, not counting callees.
func (f *Function) HasExternalCalls() bool { return f.hasExternalCalls }

// CanReenter reports whether executing this function can reach an external
// message call, directly or through internal callees. The callstack guards
// against recursive call graphs; pass nil at the top level.
func (f *Function) CanReenter(callstack []*Function) bool {
	for _, seen := range callstack {
		if seen == f {
			return false
		}
	}
	if f.hasExternalCalls {
		return true
	}
	callstack = append(callstack, f)
	for _, callee := range f.internalCallees {
		if callee.CanReenter(callstack) {
			return true
		}
	}
	return false
}

// UsingForDirective represents one using-for statement inside a contract.
// Either LibraryName or FunctionNames is set, never both
// Example: "using SafeMath for uint256;", "using {add, sub} for Fix;"
type UsingForDirective struct {
	Pos           errors.Position
	LibraryName   string   // "using L for T" form
	FunctionNames []string // "using {f, g} for T" form
	TypeName      string   // "*" for the wildcard form
}
