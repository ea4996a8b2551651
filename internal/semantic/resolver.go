package semantic

import (
	"strings"

	"github.com/tliron/commonlog"

	"solir/internal/ast"
	"solir/internal/errors"
	"solir/internal/types"
)

// Resolver builds the using-for tables of every contract in a compilation
// unit. Resolution runs in two passes: the first turns each contract's own
// directives into a table, the second merges inherited tables bottom-up so
// a derived contract's attachments are tried before its bases'.
//
// Unresolvable directives are recoverable: they produce diagnostics and
// the directive is skipped, since a parseable program can still name a
// library that does not exist.
type Resolver struct {
	unit   *ast.CompilationUnit
	log    commonlog.Logger
	errors []errors.AnalysisError

	own        map[*ast.Contract]*Table
	ownSources map[*ast.Contract]*SourceTable
	ownKeyPos  map[*ast.Contract]map[string]errors.Position
	merged     map[*ast.Contract]*Table
	sources    map[*ast.Contract]*SourceTable
}

// NewResolver creates a resolver over one compilation unit.
func NewResolver(unit *ast.CompilationUnit) *Resolver {
	return &Resolver{
		unit:       unit,
		log:        commonlog.GetLogger("solir.semantic"),
		own:        make(map[*ast.Contract]*Table),
		ownSources: make(map[*ast.Contract]*SourceTable),
		ownKeyPos:  make(map[*ast.Contract]map[string]errors.Position),
		merged:     make(map[*ast.Contract]*Table),
		sources:    make(map[*ast.Contract]*SourceTable),
	}
}

// Resolve builds the tables for every contract and returns the collected
// diagnostics. Warnings and errors share one list; callers filter by level.
func (r *Resolver) Resolve() []errors.AnalysisError {
	// Pass 1: directive-local tables. Every contract's own table must
	// exist before inheritance merging can consult it.
	for _, contract := range r.unit.Contracts {
		r.resolveOwnDirectives(contract)
	}

	// Pass 2: fold base tables into each contract, furthest ancestor
	// first, so nearer attachments end up in front on shared keys.
	for _, contract := range r.unit.Contracts {
		r.mergeInherited(contract)
	}

	r.log.Infof("resolved using-for tables for %d contracts", len(r.unit.Contracts))
	return r.errors
}

// Table returns a contract's fully merged using-for table.
func (r *Resolver) Table(contract *ast.Contract) *Table {
	return r.merged[contract]
}

// Sources returns the provenance-aware variant of a contract's table.
func (r *Resolver) Sources(contract *ast.Contract) *SourceTable {
	return r.sources[contract]
}

// TargetsFor returns the attachments usable on values of the receiver
// type inside the contract: targets keyed on the type first, then
// wildcard targets, each group in table order.
func (r *Resolver) TargetsFor(contract *ast.Contract, receiver types.Type) []Target {
	table := r.merged[contract]
	if table == nil {
		return nil
	}
	specific := table.Targets(receiver)
	wildcard := table.WildcardTargets()
	targets := make([]Target, 0, len(specific)+len(wildcard))
	targets = append(targets, specific...)
	targets = append(targets, wildcard...)
	return targets
}

// Diagnostics returns everything reported so far.
func (r *Resolver) Diagnostics() []errors.AnalysisError {
	return r.errors
}

func (r *Resolver) resolveOwnDirectives(contract *ast.Contract) {
	table := NewTable()
	sourceTable := NewSourceTable()
	keyPos := make(map[string]errors.Position)
	registry := r.unit.RegistryFor(contract)

	for _, directive := range contract.UsingFor {
		targets := r.resolveTargets(directive)
		if len(targets) == 0 {
			continue
		}

		if directive.TypeName == Wildcard {
			for _, target := range targets {
				table.AddWildcard(target)
				sourceTable.AddWildcard(TargetSource{Target: target, Origin: contract})
			}
			rememberKeyPos(keyPos, Wildcard, directive.Pos)
			continue
		}

		receiver, err := types.ParseType(directive.TypeName, registry)
		if err != nil {
			r.addError(errors.UnknownAttachmentType(directive.TypeName, directive.Pos))
			continue
		}
		for _, target := range targets {
			table.Add(receiver, target)
			sourceTable.Add(receiver, TargetSource{Target: target, Origin: contract})
		}
		rememberKeyPos(keyPos, receiver.String(), directive.Pos)
	}

	r.own[contract] = table
	r.ownSources[contract] = sourceTable
	r.ownKeyPos[contract] = keyPos
	r.log.Debugf("contract %s declares %d using-for keys", contract.Name, table.Len())
}

func rememberKeyPos(keyPos map[string]errors.Position, key string, pos errors.Position) {
	if _, seen := keyPos[key]; !seen {
		keyPos[key] = pos
	}
}

// resolveTargets maps one directive to its attachment targets. Names that
// do not resolve produce diagnostics and drop out; the rest of the
// directive stays usable.
func (r *Resolver) resolveTargets(directive *ast.UsingForDirective) []Target {
	if directive.LibraryName != "" {
		if target, ok := r.resolveLibrary(directive.LibraryName, directive.Pos); ok {
			return []Target{target}
		}
		return nil
	}

	var targets []Target
	for _, name := range directive.FunctionNames {
		if target, ok := r.resolveFunction(name, directive.Pos); ok {
			targets = append(targets, target)
		}
	}
	return targets
}

func (r *Resolver) resolveLibrary(name string, pos errors.Position) (Target, bool) {
	library := r.unit.ContractByName(name)
	if library == nil {
		r.addError(errors.UnknownAttachmentTarget(name, pos, r.similarContracts(name)))
		return Target{}, false
	}
	if !library.IsLibrary {
		kind := "contract"
		if library.IsInterface {
			kind = "interface"
		}
		r.addError(errors.InvalidAttachmentTarget(name, kind, pos))
		return Target{}, false
	}
	return Target{Library: types.NewUserDefinedType(library)}, true
}

// resolveFunction handles the brace form: a bare name binds a free
// function, a dotted name binds a library member.
func (r *Resolver) resolveFunction(name string, pos errors.Position) (Target, bool) {
	if libName, fnName, qualified := strings.Cut(name, "."); qualified {
		library := r.unit.ContractByName(libName)
		if library == nil {
			r.addError(errors.UnknownAttachmentTarget(libName, pos, r.similarContracts(libName)))
			return Target{}, false
		}
		if !library.IsLibrary {
			r.addError(errors.InvalidAttachmentTarget(libName, "contract", pos))
			return Target{}, false
		}
		fn := library.FunctionByName(fnName)
		if fn == nil {
			r.addError(errors.UnknownAttachmentTarget(name, pos, r.similarLibraryFunctions(library, fnName)))
			return Target{}, false
		}
		return Target{Function: fn}, true
	}

	fn := r.unit.FunctionByName(name)
	if fn == nil {
		r.addError(errors.UnknownAttachmentTarget(name, pos, r.similarFreeFunctions(name)))
		return Target{}, false
	}
	return Target{Function: fn}, true
}

func (r *Resolver) mergeInherited(contract *ast.Contract) {
	inherited := NewTable()
	inheritedSources := NewSourceTable()
	for i := len(contract.Bases) - 1; i >= 0; i-- {
		base := contract.Bases[i]
		inherited = Merge(inherited, r.own[base])
		inheritedSources = MergeSources(inheritedSources, r.ownSources[base])
	}

	own := r.own[contract]
	for _, key := range own.Keys() {
		if inheritedSources.Has(key) {
			origin := inheritedSources.SourcesForKey(key)[0].Origin
			r.addError(errors.ShadowedAttachment(key, origin.Name, r.ownKeyPos[contract][key]))
			r.log.Debugf("contract %s shadows using-for key %s from %s", contract.Name, key, origin.Name)
		}
	}

	r.merged[contract] = Merge(inherited, own)
	r.sources[contract] = MergeSources(inheritedSources, r.ownSources[contract])
}

func (r *Resolver) addError(err errors.AnalysisError) {
	r.errors = append(r.errors, err)
}

func (r *Resolver) similarContracts(name string) []string {
	candidates := make([]string, 0, len(r.unit.Contracts))
	for _, c := range r.unit.Contracts {
		candidates = append(candidates, c.Name)
	}
	return errors.FindSimilarNames(name, candidates)
}

func (r *Resolver) similarFreeFunctions(name string) []string {
	candidates := make([]string, 0, len(r.unit.Functions))
	for _, f := range r.unit.Functions {
		candidates = append(candidates, f.Name)
	}
	return errors.FindSimilarNames(name, candidates)
}

func (r *Resolver) similarLibraryFunctions(library *ast.Contract, name string) []string {
	candidates := make([]string, 0, len(library.Functions))
	for _, f := range library.Functions {
		candidates = append(candidates, library.Name+"."+f.Name)
	}
	return errors.FindSimilarNames(library.Name+"."+name, candidates)
}
