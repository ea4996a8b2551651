package ast

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"solir/internal/errors"
	"solir/internal/types"
)

// CompilationUnit groups the declarations produced by one compiler run and
// records the solc version the sources were compiled with. Analyses that
// depend on compiler behavior, like whether external view calls compile to
// STATICCALL, query the version through SolcAtLeast.
type CompilationUnit struct {
	SolcVersion *semver.Version
	Contracts   []*Contract
	Functions   []*Function // file-level free functions
	Structures  []*Structure
	Enums       []*Enum
	Aliases     []*types.TypeAlias
}

// NewCompilationUnit creates a unit for sources compiled with the given
// solc version. Compiler metadata versions like "0.8.19+commit.7dd6d404"
// parse; anything else is rejected.
func NewCompilationUnit(solcVersion string) (*CompilationUnit, error) {
	version, err := semver.NewVersion(solcVersion)
	if err != nil {
		return nil, errors.InvalidConfig(fmt.Sprintf("cannot parse solc version %q", solcVersion))
	}
	return &CompilationUnit{SolcVersion: version}, nil
}

// SolcAtLeast reports whether the unit was compiled at or above min.
func (u *CompilationUnit) SolcAtLeast(min *semver.Version) bool {
	return u.SolcVersion != nil && !u.SolcVersion.LessThan(min)
}

// ContractByName finds a contract declared in this unit.
func (u *CompilationUnit) ContractByName(name string) *Contract {
	for _, c := range u.Contracts {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FunctionByName finds a file-level free function.
func (u *CompilationUnit) FunctionByName(name string) *Function {
	for _, f := range u.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Registry builds the type registry of file-scope names: contracts under
// their names, file-level structs, enums and aliases under their bare
// names, and contract-nested declarations under their qualified names.
func (u *CompilationUnit) Registry() *types.Registry {
	reg := types.NewRegistry()
	for _, c := range u.Contracts {
		reg.RegisterDecl(c)
		for _, s := range c.Structures {
			reg.RegisterDecl(s)
		}
		for _, e := range c.Enums {
			reg.RegisterDecl(e)
		}
	}
	for _, s := range u.Structures {
		reg.RegisterDecl(s)
	}
	for _, e := range u.Enums {
		reg.RegisterDecl(e)
	}
	for _, a := range u.Aliases {
		reg.RegisterAlias(a)
	}
	return reg
}

// RegistryFor builds the registry visible inside one contract: the file
// scope plus bare-name spellings for the contract's own nested types and
// those inherited from its bases. A derived declaration shadows a base
// declaration with the same bare name.
func (u *CompilationUnit) RegistryFor(contract *Contract) *types.Registry {
	reg := u.Registry()
	// Walk bases furthest first so nearer declarations overwrite.
	for i := len(contract.Bases) - 1; i >= 0; i-- {
		registerNestedDecls(reg, contract.Bases[i])
	}
	registerNestedDecls(reg, contract)
	return reg
}

func registerNestedDecls(reg *types.Registry, c *Contract) {
	for _, s := range c.Structures {
		reg.RegisterDeclAs(s.Name, s)
	}
	for _, e := range c.Enums {
		reg.RegisterDeclAs(e.Name, e)
	}
}
