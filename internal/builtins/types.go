package builtins

import (
	"sort"
	"strings"

	"solir/internal/errors"
	"solir/internal/types"
)

// The builtin catalogue: environment variables and functions the language
// provides without declaration. Names come from analyzed source, so
// unknown names are recoverable errors, not panics.

// SolidityVariables maps every builtin variable name to its elementary
// type name. The bare grouping names ("msg", "block", "tx", "abi",
// "super") carry no type of their own and map to the empty string.
var SolidityVariables = map[string]string{
	"now":  "uint256",
	"this": "address",
	"self": "address",

	"abi":   "",
	"msg":   "",
	"tx":    "",
	"block": "",
	"super": "",

	"block.basefee":    "uint256",
	"block.chainid":    "uint256",
	"block.coinbase":   "address",
	"block.difficulty": "uint256",
	"block.gaslimit":   "uint256",
	"block.number":     "uint256",
	"block.prevrandao": "uint256",
	"block.timestamp":  "uint256",

	"msg.data":   "bytes",
	"msg.sender": "address",
	"msg.sig":    "bytes4",
	"msg.value":  "uint256",

	"tx.gasprice": "uint256",
	"tx.origin":   "address",
}

// functionDef pairs a canonical builtin signature with its return type
// names. The signature form is "require(bool,string)" style, no spaces.
type functionDef struct {
	signature string
	returns   []string
}

var solidityFunctionDefs = []functionDef{
	{"assert(bool)", nil},
	{"require(bool)", nil},
	{"require(bool,string)", nil},
	{"revert()", nil},
	{"revert(string)", nil},
	{"selfdestruct(address)", nil},

	{"gasleft()", []string{"uint256"}},
	{"blockhash(uint256)", []string{"bytes32"}},
	{"addmod(uint256,uint256,uint256)", []string{"uint256"}},
	{"mulmod(uint256,uint256,uint256)", []string{"uint256"}},

	{"keccak256(bytes)", []string{"bytes32"}},
	{"sha256(bytes)", []string{"bytes32"}},
	{"ripemd160(bytes)", []string{"bytes20"}},
	{"ecrecover(bytes32,uint8,bytes32,bytes32)", []string{"address"}},

	{"balance(address)", []string{"uint256"}},
	{"code(address)", []string{"bytes"}},
	{"codehash(address)", []string{"bytes32"}},

	{"type()", nil},
}

// SolidityFunctions maps every builtin function signature to its return
// type names.
var SolidityFunctions = make(map[string][]string, len(solidityFunctionDefs))

func init() {
	for _, def := range solidityFunctionDefs {
		SolidityFunctions[def.signature] = def.returns
	}
}

// SolidityVariable is a builtin environment variable, "msg.sender" or
// "block.timestamp". It satisfies the IR variable identity contract so
// operations can read it directly.
type SolidityVariable struct {
	name string
	typ  types.Type
}

// NewSolidityVariable resolves a builtin variable name against the
// catalogue.
func NewSolidityVariable(name string) (*SolidityVariable, error) {
	typeName, ok := SolidityVariables[name]
	if !ok {
		return nil, errors.UnknownBuiltin(name, errors.Position{}, errors.FindSimilarNames(name, VariableNames()))
	}
	var typ types.Type
	if typeName != "" {
		typ = types.MustElementaryType(typeName)
	}
	return &SolidityVariable{name: name, typ: typ}, nil
}

// MustSolidityVariable is NewSolidityVariable for names known at compile
// time. Unknown names panic.
func MustSolidityVariable(name string) *SolidityVariable {
	v, err := NewSolidityVariable(name)
	if err != nil {
		panic(errors.NewUnexpectedError("unknown builtin variable %q", name))
	}
	return v
}

// Name returns the full dotted name.
func (v *SolidityVariable) Name() string { return v.name }

// Type returns the variable's type, nil for the bare grouping names.
func (v *SolidityVariable) Type() types.Type { return v.typ }

func (v *SolidityVariable) String() string { return v.name }

// DeclName lets builtin variables appear behind expression identifiers.
func (v *SolidityVariable) DeclName() string { return v.name }

// SolidityFunction is a builtin function identified by its canonical
// signature, "require(bool)" style.
type SolidityFunction struct {
	signature string
	name      string
	params    []types.Type
	returns   []types.Type
}

// NewSolidityFunction resolves a canonical signature against the
// catalogue.
func NewSolidityFunction(signature string) (*SolidityFunction, error) {
	returnNames, ok := SolidityFunctions[signature]
	if !ok {
		return nil, errors.UnknownBuiltin(signature, errors.Position{}, errors.FindSimilarNames(signature, FunctionSignatures()))
	}

	open := strings.IndexByte(signature, '(')
	name := signature[:open]
	paramList := strings.TrimSuffix(signature[open+1:], ")")

	var params []types.Type
	if paramList != "" {
		for _, p := range strings.Split(paramList, ",") {
			params = append(params, types.MustElementaryType(p))
		}
	}
	var returns []types.Type
	for _, r := range returnNames {
		returns = append(returns, types.MustElementaryType(r))
	}

	return &SolidityFunction{
		signature: signature,
		name:      name,
		params:    params,
		returns:   returns,
	}, nil
}

// MustSolidityFunction is NewSolidityFunction for signatures known at
// compile time. Unknown signatures panic.
func MustSolidityFunction(signature string) *SolidityFunction {
	f, err := NewSolidityFunction(signature)
	if err != nil {
		panic(errors.NewUnexpectedError("unknown builtin function %q", signature))
	}
	return f
}

// Name returns the bare function name, "require" for "require(bool)".
// Expression printing relies on this so calls render as source would.
func (f *SolidityFunction) Name() string { return f.name }

// Signature returns the canonical signature key.
func (f *SolidityFunction) Signature() string { return f.signature }

// Params returns the declared parameter types.
func (f *SolidityFunction) Params() []types.Type { return f.params }

// Returns returns the declared return types.
func (f *SolidityFunction) Returns() []types.Type { return f.returns }

// Type returns the function type of the builtin.
func (f *SolidityFunction) Type() types.Type {
	return types.NewFunctionType(f.params, f.returns)
}

func (f *SolidityFunction) String() string { return f.signature }

// DeclName lets builtin functions appear behind expression identifiers.
func (f *SolidityFunction) DeclName() string { return f.name }

// VariableNames returns the catalogue's variable names, sorted.
func VariableNames() []string {
	names := make([]string, 0, len(SolidityVariables))
	for name := range SolidityVariables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionSignatures returns the catalogue's function signatures, sorted.
func FunctionSignatures() []string {
	sigs := make([]string, 0, len(SolidityFunctions))
	for sig := range SolidityFunctions {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	return sigs
}

// IsSolidityVariable checks whether a name is a builtin variable.
func IsSolidityVariable(name string) bool {
	_, ok := SolidityVariables[name]
	return ok
}

// IsSolidityFunction checks whether a signature is a builtin function.
func IsSolidityFunction(signature string) bool {
	_, ok := SolidityFunctions[signature]
	return ok
}
