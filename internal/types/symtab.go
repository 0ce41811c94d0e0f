package types

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// SymbolTable binds source-level names to types for one compilation unit.
// Names are NFC-normalized before use so visually identical spellings share
// one binding. Entries survive refinement and collapse: a name bound to a
// placeholder silently follows it to the survivor.
type SymbolTable struct {
	ctx     *Context
	entries map[string]TypeID
	order   []string
}

// NewSymbolTable creates an empty name table over ctx.
func NewSymbolTable(ctx *Context) *SymbolTable {
	return &SymbolTable{
		ctx:     ctx,
		entries: make(map[string]TypeID, 16),
	}
}

// Insert binds name to id, replacing any previous binding for the same
// normalized name.
func (st *SymbolTable) Insert(name string, id TypeID) {
	key := norm.NFC.String(name)
	if _, ok := st.entries[key]; !ok {
		st.order = append(st.order, key)
	}
	st.entries[key] = id
}

// Lookup returns the canonical type currently bound to name. The second
// result is false when the name is unbound.
func (st *SymbolTable) Lookup(name string) (TypeID, bool) {
	id, ok := st.entries[norm.NFC.String(name)]
	if !ok {
		return NoTypeID, false
	}
	id = st.ctx.Canonical(id)
	return id, id != NoTypeID
}

// Remove drops the binding for name.
func (st *SymbolTable) Remove(name string) {
	key := norm.NFC.String(name)
	if _, ok := st.entries[key]; !ok {
		return
	}
	delete(st.entries, key)
	for i, k := range st.order {
		if k == key {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}

// Names returns all bound names in insertion order.
func (st *SymbolTable) Names() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// SortedNames returns all bound names in lexical order.
func (st *SymbolTable) SortedNames() []string {
	out := st.Names()
	sort.Strings(out)
	return out
}

// Len returns the number of bindings.
func (st *SymbolTable) Len() int {
	return len(st.entries)
}
