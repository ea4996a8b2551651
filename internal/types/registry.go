package types

import "sort"

// Registry manages the type names visible to a compilation unit: declared
// contracts, structs, enums and aliases, resolvable alongside the
// elementary names. Declarations register under their qualified name;
// scope-local spellings ("Entry" inside the contract that declares
// "Vault.Entry") register explicitly with RegisterDeclAs.
type Registry struct {
	decls   map[string]TypeDecl
	aliases map[string]*TypeAlias
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decls:   make(map[string]TypeDecl),
		aliases: make(map[string]*TypeAlias),
	}
}

// RegisterDecl adds a declaration under its qualified name.
func (r *Registry) RegisterDecl(decl TypeDecl) {
	r.decls[decl.TypeDeclName()] = decl
}

// RegisterDeclAs adds a declaration under an additional spelling.
func (r *Registry) RegisterDeclAs(name string, decl TypeDecl) {
	r.decls[name] = decl
}

// RegisterAlias adds an alias under its name.
func (r *Registry) RegisterAlias(alias *TypeAlias) {
	r.aliases[alias.Name()] = alias
}

// RegisterAliasAs adds an alias under an additional spelling.
func (r *Registry) RegisterAliasAs(name string, alias *TypeAlias) {
	r.aliases[name] = alias
}

// Resolve maps a name to the type it denotes. Aliases win over
// declarations; the parser relies on that when a unit declares both.
func (r *Registry) Resolve(name string) (Type, bool) {
	if alias, ok := r.aliases[name]; ok {
		return alias, true
	}
	if decl, ok := r.decls[name]; ok {
		return NewUserDefinedType(decl), true
	}
	return nil, false
}

// ResolveDecl maps a name to the raw declaration entity.
func (r *Registry) ResolveDecl(name string) (TypeDecl, bool) {
	decl, ok := r.decls[name]
	return decl, ok
}

// IsValidType checks whether a name denotes any known type.
func (r *Registry) IsValidType(name string) bool {
	if IsElementaryName(name) {
		return true
	}
	if _, ok := r.aliases[name]; ok {
		return true
	}
	_, ok := r.decls[name]
	return ok
}

// Names returns every registered name, sorted, for suggestion lookups.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.decls)+len(r.aliases))
	for name := range r.decls {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
