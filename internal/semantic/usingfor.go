package semantic

import (
	"solir/internal/ast"
	"solir/internal/types"
)

// Wildcard is the table key that attaches targets to every receiver type.
const Wildcard = "*"

// Target is one using-for attachment: a library whose functions become
// extension methods on the receiver, or a single free function. Exactly
// one field is set.
type Target struct {
	Library  *types.UserDefinedType
	Function *ast.Function
}

func (t Target) String() string {
	if t.Library != nil {
		return t.Library.String()
	}
	return t.Function.QualifiedName()
}

// TargetSource pairs a target with the contract whose directive introduced
// it, so consumers can tell a locally declared attachment from an
// inherited one.
type TargetSource struct {
	Target Target
	Origin *ast.Contract
}

// Table maps a receiver type, or the wildcard, to its ordered attachment
// targets. Keys are canonical type spellings and keep insertion order;
// target lists keep directive order. A table is never mutated once its
// owning contract's resolution completes.
type Table struct {
	keys      []string
	receivers map[string]types.Type // nil entry for the wildcard
	entries   map[string][]Target
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		receivers: make(map[string]types.Type),
		entries:   make(map[string][]Target),
	}
}

// Add appends a target for the receiver type.
func (t *Table) Add(receiver types.Type, target Target) {
	t.add(receiver.String(), receiver, target)
}

// AddWildcard appends a target under the wildcard key.
func (t *Table) AddWildcard(target Target) {
	t.add(Wildcard, nil, target)
}

func (t *Table) add(key string, receiver types.Type, target Target) {
	if _, seen := t.entries[key]; !seen {
		t.keys = append(t.keys, key)
		t.receivers[key] = receiver
	}
	t.entries[key] = append(t.entries[key], target)
}

// Targets returns the targets attached to exactly this receiver type,
// without wildcard entries.
func (t *Table) Targets(receiver types.Type) []Target {
	return t.entries[receiver.String()]
}

// WildcardTargets returns the targets attached to every type.
func (t *Table) WildcardTargets() []Target {
	return t.entries[Wildcard]
}

// TargetsForKey returns the targets stored under a canonical key.
func (t *Table) TargetsForKey(key string) []Target {
	return t.entries[key]
}

// Keys returns the canonical keys in insertion order.
func (t *Table) Keys() []string {
	return t.keys
}

// ReceiverType returns the receiver type behind a key, nil for the
// wildcard key.
func (t *Table) ReceiverType(key string) types.Type {
	return t.receivers[key]
}

// Has reports whether any targets are attached under the key.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Merge produces a new table over the union of both key sets. For a key
// present in both, the second table's targets precede the first's: the
// most recently merged attachments are tried first. Duplicate targets are
// kept as-is; they carry provenance meaning and consumers that want
// uniqueness must dedupe themselves.
func Merge(a, b *Table) *Table {
	merged := NewTable()
	for _, key := range a.keys {
		if _, shared := b.entries[key]; shared {
			merged.addAll(key, a.receivers[key], b.entries[key])
			merged.addAll(key, a.receivers[key], a.entries[key])
			continue
		}
		merged.addAll(key, a.receivers[key], a.entries[key])
	}
	for _, key := range b.keys {
		if _, shared := a.entries[key]; shared {
			continue
		}
		merged.addAll(key, b.receivers[key], b.entries[key])
	}
	return merged
}

func (t *Table) addAll(key string, receiver types.Type, targets []Target) {
	for _, target := range targets {
		t.add(key, receiver, target)
	}
}

// SourceTable is the provenance-aware variant of Table: every target is
// paired with the contract that introduced it. Resolution builds both in
// lockstep; shadowing diagnostics and provenance queries read this one.
type SourceTable struct {
	keys      []string
	receivers map[string]types.Type
	entries   map[string][]TargetSource
}

// NewSourceTable creates an empty provenance table.
func NewSourceTable() *SourceTable {
	return &SourceTable{
		receivers: make(map[string]types.Type),
		entries:   make(map[string][]TargetSource),
	}
}

// Add appends a sourced target for the receiver type.
func (t *SourceTable) Add(receiver types.Type, source TargetSource) {
	t.add(receiver.String(), receiver, source)
}

// AddWildcard appends a sourced target under the wildcard key.
func (t *SourceTable) AddWildcard(source TargetSource) {
	t.add(Wildcard, nil, source)
}

func (t *SourceTable) add(key string, receiver types.Type, source TargetSource) {
	if _, seen := t.entries[key]; !seen {
		t.keys = append(t.keys, key)
		t.receivers[key] = receiver
	}
	t.entries[key] = append(t.entries[key], source)
}

// SourcesForKey returns the sourced targets stored under a canonical key.
func (t *SourceTable) SourcesForKey(key string) []TargetSource {
	return t.entries[key]
}

// Keys returns the canonical keys in insertion order.
func (t *SourceTable) Keys() []string {
	return t.keys
}

// Has reports whether any sourced targets exist under the key.
func (t *SourceTable) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// MergeSources merges provenance tables with the same ordering contract
// as Merge.
func MergeSources(a, b *SourceTable) *SourceTable {
	merged := NewSourceTable()
	for _, key := range a.keys {
		if _, shared := b.entries[key]; shared {
			merged.addAll(key, a.receivers[key], b.entries[key])
			merged.addAll(key, a.receivers[key], a.entries[key])
			continue
		}
		merged.addAll(key, a.receivers[key], a.entries[key])
	}
	for _, key := range b.keys {
		if _, shared := a.entries[key]; shared {
			continue
		}
		merged.addAll(key, b.receivers[key], b.entries[key])
	}
	return merged
}

func (t *SourceTable) addAll(key string, receiver types.Type, sources []TargetSource) {
	for _, source := range sources {
		t.add(key, receiver, source)
	}
}
