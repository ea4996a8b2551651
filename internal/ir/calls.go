package ir

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"solir/internal/ast"
	"solir/internal/builtins"
	"solir/internal/errors"
	"solir/internal/types"
)

// CallOperation is an operation that transfers control to a callee. The
// reentrancy and ether queries drive the security analyses.
type CallOperation interface {
	Operation
	Arguments() []Argument
	Names() []string
	CanReenter(callstack []*ast.Function) bool
	CanSendEth() bool
}

// Call carries the argument list shared by every call operation. Named
// arguments keep their call-site names so printers can echo them.
type Call struct {
	arguments []Argument
	names     []string
}

func (c *Call) Arguments() []Argument     { return c.arguments }
func (c *Call) SetArguments(a []Argument) { c.arguments = a }
func (c *Call) Names() []string           { return c.names }
func (c *Call) SetNames(names []string)   { c.names = names }

// CanReenter reports whether the call can hand control to untrusted code.
// Call kinds where that is possible override this.
func (c *Call) CanReenter([]*ast.Function) bool { return false }

// CanSendEth reports whether the call can move ether. Call kinds where
// that is possible override this.
func (c *Call) CanSendEth() bool { return false }

// writeCallClauses appends the optional value and gas clauses of a call
// listing line.
func writeCallClauses(b *strings.Builder, value, gas Variable) {
	if value != nil {
		fmt.Fprintf(b, " value:%s", value)
	}
	if gas != nil {
		fmt.Fprintf(b, " gas:%s", gas)
	}
}

// EventCall emits an event
// Example: "emit Transfer(msg.sender, to, amount)"
type EventCall struct {
	Call
	event *ast.Event
}

func NewEventCall(event *ast.Event, arguments []Argument) *EventCall {
	call := &EventCall{event: event}
	call.arguments = arguments
	return call
}

func (e *EventCall) Event() *ast.Event { return e.event }

// Name returns the emitted event's name.
func (e *EventCall) Name() string { return e.event.Name }

func (e *EventCall) Read() []Variable { return Unroll(e.arguments) }

func (e *EventCall) String() string {
	return fmt.Sprintf("Emit %s(%s)", e.event.Name, argumentList(e.arguments))
}

// InternalCall invokes a function of the same contract, or a free
// function, without a message call.
type InternalCall struct {
	Call
	withLValue
	function *ast.Function
}

func NewInternalCall(lvalue Variable, function *ast.Function, arguments []Argument) *InternalCall {
	if function == nil {
		panic(errors.NewUnexpectedError("internal call requires a function"))
	}
	if lvalue != nil {
		requireLValue("internal call", lvalue)
	}
	call := &InternalCall{function: function}
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

func (c *InternalCall) Function() *ast.Function { return c.function }

func (c *InternalCall) Read() []Variable { return Unroll(c.arguments) }

// CanReenter reports whether the callee can reach an external call.
func (c *InternalCall) CanReenter(callstack []*ast.Function) bool {
	return c.function.CanReenter(callstack)
}

func (c *InternalCall) String() string {
	return fmt.Sprintf("%sINTERNAL_CALL, %s(%s)",
		lvaluePrefix(c.lvalue), c.function.QualifiedName(), argumentList(c.arguments))
}

// staticcallSince is the compiler release from which external view and
// pure calls compile to STATICCALL.
var staticcallSince = semver.MustParse("0.5.0")

// HighLevelCall invokes a function on another contract through a message
// call. A read of a public state variable through its generated getter
// carries the state variable instead of a function.
type HighLevelCall struct {
	Call
	withLValue
	destination Variable
	function    *ast.Function
	getter      *ast.StateVariable
	gas         Variable
	value       Variable
	unit        *ast.CompilationUnit
}

func NewHighLevelCall(lvalue Variable, destination Variable, function *ast.Function, arguments []Argument, unit *ast.CompilationUnit) *HighLevelCall {
	if function == nil {
		panic(errors.NewUnexpectedError("high-level call requires a function"))
	}
	if lvalue != nil {
		requireLValue("high-level call", lvalue)
	}
	call := &HighLevelCall{destination: destination, function: function, unit: unit}
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

// NewGetterCall builds the call form of reading a public state variable
// from outside, dest.balances(key).
func NewGetterCall(lvalue Variable, destination Variable, getter *ast.StateVariable, arguments []Argument, unit *ast.CompilationUnit) *HighLevelCall {
	if getter == nil {
		panic(errors.NewUnexpectedError("getter call requires a state variable"))
	}
	if lvalue != nil {
		requireLValue("getter call", lvalue)
	}
	call := &HighLevelCall{destination: destination, getter: getter, unit: unit}
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

func (h *HighLevelCall) Destination() Variable      { return h.destination }
func (h *HighLevelCall) Function() *ast.Function    { return h.function }
func (h *HighLevelCall) Getter() *ast.StateVariable { return h.getter }
func (h *HighLevelCall) Gas() Variable              { return h.gas }
func (h *HighLevelCall) Value() Variable            { return h.value }

// SetGas records an explicit gas forwarding clause.
func (h *HighLevelCall) SetGas(gas Variable) { h.gas = gas }

// SetValue records an explicit ether value clause.
func (h *HighLevelCall) SetValue(value Variable) { h.value = value }

func (h *HighLevelCall) Read() []Variable {
	read := make([]Variable, 0, 3+len(h.arguments))
	for _, v := range []Variable{h.destination, h.gas, h.value} {
		if v != nil {
			read = append(read, v)
		}
	}
	return append(read, Unroll(h.arguments)...)
}

// isSelfCall reports whether the destination is the calling contract
// itself, spelled this.f().
func (h *HighLevelCall) isSelfCall() bool {
	v, ok := h.destination.(*builtins.SolidityVariable)
	return ok && v.Name() == "this"
}

// CanReenter reports whether the call can hand control to untrusted code.
// From Solidity 0.5.0 external view and pure calls compile to STATICCALL,
// under which the EVM reverts any state change, so they cannot reenter.
// Calls through this never leave the contract and follow the callee's
// reachability.
func (h *HighLevelCall) CanReenter(callstack []*ast.Function) bool {
	if h.unit != nil && h.unit.SolcAtLeast(staticcallSince) {
		if h.getter != nil {
			return false
		}
		if h.function.IsView() || h.function.IsPure() {
			return false
		}
	}
	if h.isSelfCall() {
		if h.getter != nil {
			return false
		}
		return h.function.CanReenter(callstack)
	}
	return true
}

// CanSendEth reports whether the call forwards ether.
func (h *HighLevelCall) CanSendEth() bool { return h.value != nil }

func (h *HighLevelCall) calledName() string {
	if h.getter != nil {
		return h.getter.Name()
	}
	return h.function.Name
}

func (h *HighLevelCall) String() string {
	var b strings.Builder
	b.WriteString(lvaluePrefix(h.lvalue))
	fmt.Fprintf(&b, "HIGH_LEVEL_CALL, dest:%s(%s), function:%s, arguments:[%s]",
		h.destination, h.destination.Type(), h.calledName(), argumentList(h.arguments))
	writeCallClauses(&b, h.value, h.gas)
	return b.String()
}

// LibraryCall invokes a library function. Library calls execute in the
// caller's storage context, so the library contract stands in for the
// message-call destination.
type LibraryCall struct {
	HighLevelCall
	library *ast.Contract
}

func NewLibraryCall(lvalue Variable, library *ast.Contract, function *ast.Function, arguments []Argument, unit *ast.CompilationUnit) *LibraryCall {
	if function == nil {
		panic(errors.NewUnexpectedError("library call requires a function"))
	}
	if lvalue != nil {
		requireLValue("library call", lvalue)
	}
	call := &LibraryCall{library: library}
	call.function = function
	call.unit = unit
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

func (l *LibraryCall) Library() *ast.Contract { return l.library }

// CanReenter reports whether the callee can reach an external call. The
// message-call rule does not apply, execution never leaves the caller.
func (l *LibraryCall) CanReenter(callstack []*ast.Function) bool {
	return l.function.CanReenter(callstack)
}

func (l *LibraryCall) String() string {
	var b strings.Builder
	b.WriteString(lvaluePrefix(l.lvalue))
	fmt.Fprintf(&b, "LIBRARY_CALL, dest:%s, function:%s, arguments:[%s]",
		l.library.Name, l.function.QualifiedName(), argumentList(l.arguments))
	writeCallClauses(&b, l.value, l.gas)
	return b.String()
}

// Low-level call kinds.
const (
	CallKind         = "call"
	DelegateCallKind = "delegatecall"
	StaticCallKind   = "staticcall"
	CallCodeKind     = "callcode"
)

// LowLevelCall performs a raw message call on an address.
type LowLevelCall struct {
	Call
	withLValue
	destination Variable
	kind        string
	gas         Variable
	value       Variable
}

func NewLowLevelCall(lvalue Variable, destination Variable, kind string, arguments []Argument) *LowLevelCall {
	switch kind {
	case CallKind, DelegateCallKind, StaticCallKind, CallCodeKind:
	default:
		panic(errors.NewUnexpectedError("unknown low-level call kind %q", kind))
	}
	if lvalue != nil {
		requireLValue("low-level call", lvalue)
	}
	call := &LowLevelCall{destination: destination, kind: kind}
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

func (l *LowLevelCall) Destination() Variable { return l.destination }
func (l *LowLevelCall) Kind() string          { return l.kind }
func (l *LowLevelCall) Gas() Variable         { return l.gas }
func (l *LowLevelCall) Value() Variable       { return l.value }

// SetGas records an explicit gas forwarding clause.
func (l *LowLevelCall) SetGas(gas Variable) { l.gas = gas }

// SetValue records an explicit ether value clause.
func (l *LowLevelCall) SetValue(value Variable) { l.value = value }

func (l *LowLevelCall) Read() []Variable {
	read := make([]Variable, 0, 3+len(l.arguments))
	for _, v := range []Variable{l.destination, l.gas, l.value} {
		if v != nil {
			read = append(read, v)
		}
	}
	return append(read, Unroll(l.arguments)...)
}

// CanReenter reports whether the call can hand control to untrusted code.
// Every kind except staticcall can, the EVM reverts state changes made
// under a staticcall.
func (l *LowLevelCall) CanReenter([]*ast.Function) bool {
	return l.kind != StaticCallKind
}

// CanSendEth reports whether the call forwards ether.
func (l *LowLevelCall) CanSendEth() bool { return l.value != nil }

func (l *LowLevelCall) String() string {
	var b strings.Builder
	b.WriteString(lvaluePrefix(l.lvalue))
	fmt.Fprintf(&b, "LOW_LEVEL_CALL, dest:%s(%s), function:%s, arguments:[%s]",
		l.destination, l.destination.Type(), l.kind, argumentList(l.arguments))
	writeCallClauses(&b, l.value, l.gas)
	return b.String()
}

// SolidityCall invokes a compiler builtin
// Example: "require(cond)", "keccak256(payload)"
type SolidityCall struct {
	Call
	withLValue
	function *builtins.SolidityFunction
}

func NewSolidityCall(lvalue Variable, function *builtins.SolidityFunction, arguments []Argument) *SolidityCall {
	if function == nil {
		panic(errors.NewUnexpectedError("solidity call requires a builtin function"))
	}
	if lvalue != nil {
		requireLValue("solidity call", lvalue)
	}
	call := &SolidityCall{function: function}
	call.arguments = arguments
	call.lvalue = lvalue
	return call
}

func (s *SolidityCall) Function() *builtins.SolidityFunction { return s.function }

func (s *SolidityCall) Read() []Variable { return Unroll(s.arguments) }

func (s *SolidityCall) String() string {
	return fmt.Sprintf("%sSOLIDITY_CALL %s(%s)",
		lvaluePrefix(s.lvalue), s.function.Signature(), argumentList(s.arguments))
}

// Transfer moves ether with a 2300 gas stipend and reverts on failure.
type Transfer struct {
	Call
	destination Variable
	value       Variable
}

func NewTransfer(destination, value Variable) *Transfer {
	return &Transfer{destination: destination, value: value}
}

func (t *Transfer) Destination() Variable { return t.destination }
func (t *Transfer) Value() Variable       { return t.value }

func (t *Transfer) Read() []Variable {
	return []Variable{t.destination, t.value}
}

// CanSendEth reports that a transfer always moves ether.
func (t *Transfer) CanSendEth() bool { return true }

func (t *Transfer) String() string {
	return fmt.Sprintf("Transfer dest:%s value:%s", t.destination, t.value)
}

// Send moves ether with a 2300 gas stipend and yields a success flag.
type Send struct {
	Call
	withLValue
	destination Variable
	value       Variable
}

func NewSend(lvalue Variable, destination, value Variable) *Send {
	requireLValue("send", lvalue)
	s := &Send{destination: destination, value: value}
	s.lvalue = lvalue
	return s
}

func (s *Send) Destination() Variable { return s.destination }
func (s *Send) Value() Variable       { return s.value }

func (s *Send) Read() []Variable {
	return []Variable{s.destination, s.value}
}

// CanSendEth reports that a send always moves ether.
func (s *Send) CanSendEth() bool { return true }

func (s *Send) String() string {
	return fmt.Sprintf("%sSEND dest:%s value:%s", lvaluePrefix(s.lvalue), s.destination, s.value)
}

// ArrayAllocation allocates a new array in memory
// Example: "new uint256[](len)", depth 2 for "new uint256[][](len)"
type ArrayAllocation struct {
	Call
	withLValue
	elemType types.Type
	depth    int
}

func NewArrayAllocation(lvalue Variable, elemType types.Type, depth int, arguments []Argument) *ArrayAllocation {
	requireLValue("array allocation", lvalue)
	a := &ArrayAllocation{elemType: elemType, depth: depth}
	a.arguments = arguments
	a.lvalue = lvalue
	return a
}

func (a *ArrayAllocation) ElementType() types.Type { return a.elemType }
func (a *ArrayAllocation) Depth() int              { return a.depth }

func (a *ArrayAllocation) Read() []Variable { return Unroll(a.arguments) }

func (a *ArrayAllocation) String() string {
	return fmt.Sprintf("%s = new %s%s(%s)",
		a.lvalue, a.elemType, strings.Repeat("[]", a.depth), argumentList(a.arguments))
}

// StructureAllocation builds a struct value from positional arguments
// Example: "Coord(3, 4)"
type StructureAllocation struct {
	Call
	withLValue
	structure *ast.Structure
}

func NewStructureAllocation(lvalue Variable, structure *ast.Structure, arguments []Argument) *StructureAllocation {
	requireLValue("structure allocation", lvalue)
	s := &StructureAllocation{structure: structure}
	s.arguments = arguments
	s.lvalue = lvalue
	return s
}

func (s *StructureAllocation) Structure() *ast.Structure { return s.structure }

func (s *StructureAllocation) Read() []Variable { return Unroll(s.arguments) }

func (s *StructureAllocation) String() string {
	return fmt.Sprintf("%s = new %s(%s)", s.lvalue, s.structure.Name, argumentList(s.arguments))
}

// ContractAllocation deploys a new contract instance
// Example: "new Vault{value: amount}(owner)"
type ContractAllocation struct {
	Call
	withLValue
	contractName string
	value        Variable
}

func NewContractAllocation(lvalue Variable, contractName string, arguments []Argument) *ContractAllocation {
	requireLValue("contract allocation", lvalue)
	c := &ContractAllocation{contractName: contractName}
	c.arguments = arguments
	c.lvalue = lvalue
	return c
}

func (c *ContractAllocation) ContractName() string { return c.contractName }
func (c *ContractAllocation) Value() Variable      { return c.value }

// SetValue records the ether forwarded to the constructor.
func (c *ContractAllocation) SetValue(value Variable) { c.value = value }

func (c *ContractAllocation) Read() []Variable {
	if c.value == nil {
		return Unroll(c.arguments)
	}
	return append([]Variable{c.value}, Unroll(c.arguments)...)
}

// CanSendEth reports whether the deployment funds the constructor.
func (c *ContractAllocation) CanSendEth() bool { return c.value != nil }

func (c *ContractAllocation) String() string {
	return fmt.Sprintf("%s = new %s(%s)", c.lvalue, c.contractName, argumentList(c.arguments))
}
