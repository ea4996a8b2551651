package ast

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solir/internal/errors"
	"solir/internal/types"
)

func TestEventSignature(t *testing.T) {
	transfer := &Event{
		Name: "Transfer",
		Parameters: []*EventParameter{
			{Name: "from", Type: types.MustElementaryType("address"), Indexed: true},
			{Name: "to", Type: types.MustElementaryType("address"), Indexed: true},
			{Name: "value", Type: types.MustElementaryType("uint256")},
		},
	}

	assert.Equal(t, "Transfer(address,address,uint256)", transfer.Signature())
}

func TestEventSignatureNoParameters(t *testing.T) {
	paused := &Event{Name: "Paused"}
	assert.Equal(t, "Paused()", paused.Signature())
}

func TestFunctionSignature(t *testing.T) {
	withdraw := &Function{
		Name: "withdraw",
		Parameters: []*Parameter{
			{Name: "amount", Type: types.MustElementaryType("uint256")},
			{Name: "to", Type: types.MustElementaryType("address")},
		},
	}

	assert.Equal(t, "withdraw(uint256,address)", withdraw.Signature())
}

func TestCanReenterDirectExternalCall(t *testing.T) {
	f := &Function{Name: "sweep"}
	assert.False(t, f.CanReenter(nil))

	f.MarkExternalCall()
	assert.True(t, f.CanReenter(nil))
}

func TestCanReenterThroughCallee(t *testing.T) {
	inner := &Function{Name: "forward"}
	inner.MarkExternalCall()

	outer := &Function{Name: "withdraw"}
	outer.RecordInternalCall(inner)

	assert.True(t, outer.CanReenter(nil))
}

func TestCanReenterRecursionGuard(t *testing.T) {
	// Mutually recursive functions with no external calls must not loop.
	a := &Function{Name: "a"}
	b := &Function{Name: "b"}
	a.RecordInternalCall(b)
	b.RecordInternalCall(a)

	assert.False(t, a.CanReenter(nil))
	assert.False(t, b.CanReenter(nil))
}

func TestCanReenterRecursiveWithExternalCall(t *testing.T) {
	a := &Function{Name: "a"}
	b := &Function{Name: "b"}
	a.RecordInternalCall(b)
	b.RecordInternalCall(a)
	b.MarkExternalCall()

	assert.True(t, a.CanReenter(nil))
}

func TestStateVariableGetter(t *testing.T) {
	vault := &Contract{Name: "Vault"}
	total := NewStateVariable("totalSupply", types.MustElementaryType("uint256"), vault, Public)
	secret := NewStateVariable("secret", types.MustElementaryType("bytes32"), vault, Private)

	assert.True(t, total.HasGetter())
	assert.False(t, secret.HasGetter())
	assert.Equal(t, vault, total.Contract())
}

func TestLocalVariableStorageLocation(t *testing.T) {
	f := &Function{Name: "update"}
	entries := NewLocalVariable("entries", types.NewArrayType(types.MustElementaryType("uint256"), nil), f, Storage)
	scratch := NewLocalVariable("scratch", types.MustElementaryType("uint256"), f, NoLocation)

	assert.True(t, entries.IsStorage())
	assert.False(t, scratch.IsStorage())
	assert.Equal(t, "storage", entries.Location().String())
	assert.Equal(t, "default", scratch.Location().String())
}

func TestNewCompilationUnitVersions(t *testing.T) {
	unit, err := NewCompilationUnit("0.8.19+commit.7dd6d404")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), unit.SolcVersion.Minor())

	_, err = NewCompilationUnit("latest")
	require.Error(t, err)

	var analysisErr errors.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, errors.ErrorInvalidConfig, analysisErr.Code)
}

func TestSolcAtLeast(t *testing.T) {
	cutoff := semver.MustParse("0.5.0")

	modern, err := NewCompilationUnit("0.8.19")
	require.NoError(t, err)
	assert.True(t, modern.SolcAtLeast(cutoff))

	legacy, err := NewCompilationUnit("0.4.26")
	require.NoError(t, err)
	assert.False(t, legacy.SolcAtLeast(cutoff))

	exact, err := NewCompilationUnit("0.5.0")
	require.NoError(t, err)
	assert.True(t, exact.SolcAtLeast(cutoff))
}

func TestUnitRegistryQualifiedNames(t *testing.T) {
	vault := &Contract{Name: "Vault"}
	entry := &Structure{Name: "Entry", Contract: vault}
	vault.Structures = []*Structure{entry}

	unit := &CompilationUnit{Contracts: []*Contract{vault}}
	reg := unit.Registry()

	resolved, ok := reg.Resolve("Vault.Entry")
	require.True(t, ok)
	assert.Equal(t, "Vault.Entry", resolved.String())

	// The bare spelling is only visible inside the declaring contract.
	_, ok = reg.Resolve("Entry")
	assert.False(t, ok)

	scoped := unit.RegistryFor(vault)
	resolved, ok = scoped.Resolve("Entry")
	require.True(t, ok)
	assert.Equal(t, "Vault.Entry", resolved.String())
}

func TestRegistryForShadowsBaseDecls(t *testing.T) {
	base := &Contract{Name: "Base"}
	baseEntry := &Structure{Name: "Entry", Contract: base}
	base.Structures = []*Structure{baseEntry}

	derived := &Contract{Name: "Derived", Bases: []*Contract{base}}
	derivedEntry := &Structure{Name: "Entry", Contract: derived}
	derived.Structures = []*Structure{derivedEntry}

	unit := &CompilationUnit{Contracts: []*Contract{base, derived}}

	scoped := unit.RegistryFor(derived)
	decl, ok := scoped.ResolveDecl("Entry")
	require.True(t, ok)
	assert.Equal(t, "Derived.Entry", decl.TypeDeclName())

	// The base contract still sees its own declaration.
	baseScoped := unit.RegistryFor(base)
	decl, ok = baseScoped.ResolveDecl("Entry")
	require.True(t, ok)
	assert.Equal(t, "Base.Entry", decl.TypeDeclName())
}
