package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive singletons every Context owns.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Float   TypeID
	Double  TypeID
	Label   TypeID
}

// Context owns the node arena and one uniquing table per composite kind for
// a single compilation unit. All construction and refinement goes through it;
// nothing else may mutate containment edges. A Context is not safe for
// concurrent use.
type Context struct {
	arena    []node
	builtins Builtins

	ints     map[uint32]TypeID
	fns      map[string]TypeID
	structs  map[string]TypeID
	arrays   map[seqKey]TypeID
	vectors  map[seqKey]TypeID
	pointers map[TypeID]TypeID

	// pending holds containers whose contained edges changed during the
	// current refinement and that still need an abstractness / uniquing
	// re-check. Drained before any public call returns.
	pending []TypeID

	opaqueCount uint64
}

type seqKey struct {
	elem  TypeID
	count uint64
}

// NewContext constructs a type-system context seeded with the primitive
// singleton types.
func NewContext() *Context {
	c := &Context{
		ints:     make(map[uint32]TypeID, 16),
		fns:      make(map[string]TypeID, 16),
		structs:  make(map[string]TypeID, 16),
		arrays:   make(map[seqKey]TypeID, 8),
		vectors:  make(map[seqKey]TypeID, 8),
		pointers: make(map[TypeID]TypeID, 16),
	}
	c.builtins.Invalid = c.alloc(node{kind: KindInvalid, dead: true})
	c.builtins.Void = c.alloc(node{kind: KindVoid, uniqued: true})
	c.builtins.Float = c.alloc(node{kind: KindFloat, uniqued: true})
	c.builtins.Double = c.alloc(node{kind: KindDouble, uniqued: true})
	c.builtins.Label = c.alloc(node{kind: KindLabel, uniqued: true})
	return c
}

// Builtins returns TypeIDs for the primitive singletons.
func (c *Context) Builtins() Builtins {
	return c.builtins
}

func (c *Context) alloc(n node) TypeID {
	idx, err := safecast.Conv[uint32](len(c.arena))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	c.arena = append(c.arena, n)
	return TypeID(idx)
}

func (c *Context) node(id TypeID) *node {
	if id == NoTypeID || int(id) >= len(c.arena) {
		return nil
	}
	return &c.arena[id]
}

// live returns the node for id if it names a live (not refined-away) type.
func (c *Context) live(id TypeID) *node {
	n := c.node(id)
	if n == nil || n.dead {
		return nil
	}
	return n
}

// Valid reports whether id names a live type of this context.
func (c *Context) Valid(id TypeID) bool {
	return c.live(id) != nil
}

// Canonical chases forwarding stubs left behind by refinement and collapse,
// returning the surviving TypeID. Live IDs map to themselves. Chains are
// path-compressed as they are walked.
func (c *Context) Canonical(id TypeID) TypeID {
	n := c.node(id)
	if n == nil {
		return NoTypeID
	}
	if !n.dead {
		return id
	}
	root := c.Canonical(n.forward)
	if root != NoTypeID {
		n.forward = root
	}
	return root
}

// Kind returns the kind tag for a live TypeID, KindInvalid otherwise.
func (c *Context) Kind(id TypeID) Kind {
	n := c.live(id)
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// IsAbstract reports whether the type transitively contains an unresolved
// placeholder. Placeholders themselves are always abstract.
func (c *Context) IsAbstract(id TypeID) bool {
	n := c.live(id)
	return n != nil && n.abstract
}

// ContainedTypes returns the contained subtype edges of id in slot order:
// [return, params...] for functions, fields for structs, [element] for
// sequential kinds. The slice is a copy.
func (c *Context) ContainedTypes(id TypeID) []TypeID {
	n := c.live(id)
	if n == nil || len(n.contained) == 0 {
		return nil
	}
	out := make([]TypeID, len(n.contained))
	copy(out, n.contained)
	return out
}

// PrimitiveSizeInBits returns the bit width of fixed-width scalar types
// (integers, float, double) and 0 for everything else.
func (c *Context) PrimitiveSizeInBits(id TypeID) uint32 {
	n := c.live(id)
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindInteger:
		return n.width
	case KindFloat:
		return 32
	case KindDouble:
		return 64
	default:
		return 0
	}
}

// Stats describes the uniquing tables of a context.
type Stats struct {
	Nodes     int
	Integers  int
	Functions int
	Structs   int
	Arrays    int
	Vectors   int
	Pointers  int
	Opaques   uint64 // total placeholders ever created
}

// Stats returns table sizes for debugging and reporting.
func (c *Context) Stats() Stats {
	return Stats{
		Nodes:     len(c.arena),
		Integers:  len(c.ints),
		Functions: len(c.fns),
		Structs:   len(c.structs),
		Arrays:    len(c.arrays),
		Vectors:   len(c.vectors),
		Pointers:  len(c.pointers),
		Opaques:   c.opaqueCount,
	}
}

// checkComponent validates that every id in ids is a live type usable as a
// contained component of kind. Void and label never nest inside composites.
func (c *Context) checkComponent(kind Kind, ids ...TypeID) error {
	for _, id := range ids {
		n := c.live(id)
		if n == nil {
			return constructErr(kind, "component %d is not a live type of this context", id)
		}
		if n.kind == KindVoid || n.kind == KindLabel {
			return constructErr(kind, "%s cannot be a contained type", n.kind)
		}
	}
	return nil
}
