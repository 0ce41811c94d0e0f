package types

import "encoding/binary"

// anyAbstract reports whether any of the given live components is abstract.
func (c *Context) anyAbstract(ids []TypeID) bool {
	for _, id := range ids {
		if c.arena[id].abstract {
			return true
		}
	}
	return false
}

// newComposite allocates a composite node and subscribes each of its
// contained edges to every abstract target, so the slots can be repointed
// when those targets refine. Concrete targets never refine and take no
// subscription.
func (c *Context) newComposite(n node) TypeID {
	id := c.alloc(n)
	for slot, t := range c.arena[id].contained {
		target := &c.arena[t]
		if target.abstract {
			target.users = append(target.users, edge{container: id, slot: slot})
		}
	}
	return id
}

// Structural keys for function and struct tables are encoded byte strings:
// contained identities compare by TypeID, never by recursive shape, which is
// what keeps uniquing well-defined on cyclic graphs.

func appendID(b []byte, id TypeID) []byte {
	return binary.AppendUvarint(b, uint64(id))
}

func functionKey(ret TypeID, params []TypeID, variadic bool, attrs []ParamAttrs) string {
	b := make([]byte, 0, 8+4*len(params)+2*len(attrs))
	b = appendID(b, ret)
	b = binary.AppendUvarint(b, uint64(len(params)))
	for _, p := range params {
		b = appendID(b, p)
	}
	if variadic {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	for _, a := range attrs {
		b = binary.AppendUvarint(b, uint64(a))
	}
	return string(b)
}

func structKey(fields []TypeID, packed bool) string {
	b := make([]byte, 0, 1+4*len(fields))
	if packed {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	for _, f := range fields {
		b = appendID(b, f)
	}
	return string(b)
}

// finalKeyInsert performs the insert-or-collapse step of §uniquing for a node
// that is (now) fully concrete: look its final key up in the kind's table; on
// a hit with a distinct survivor, collapse this node into it; on a miss,
// insert it as the canonical instance.
func (c *Context) finalKeyInsert(id TypeID) {
	n := &c.arena[id]
	var existing TypeID
	var hit bool
	switch n.kind {
	case KindFunction:
		key := functionKey(n.contained[0], n.contained[1:], n.variadic, n.attrs)
		existing, hit = c.fns[key]
		if !hit {
			c.fns[key] = id
		}
	case KindStruct:
		key := structKey(n.contained, n.packed)
		existing, hit = c.structs[key]
		if !hit {
			c.structs[key] = id
		}
	case KindArray:
		key := seqKey{elem: n.contained[0], count: n.count}
		existing, hit = c.arrays[key]
		if !hit {
			c.arrays[key] = id
		}
	case KindVector:
		key := seqKey{elem: n.contained[0], count: n.count}
		existing, hit = c.vectors[key]
		if !hit {
			c.vectors[key] = id
		}
	case KindPointer:
		existing, hit = c.pointers[n.contained[0]]
		if !hit {
			c.pointers[n.contained[0]] = id
		}
	default:
		return
	}
	if hit && existing != id {
		c.replaceAllUses(id, existing)
		return
	}
	n.uniqued = true
}

// tableRemove deletes id's entry from its kind table, keyed by the node's
// current contained edges. Callers must invoke it before repointing any of
// those edges, while the stored key still matches.
func (c *Context) tableRemove(id TypeID) {
	n := &c.arena[id]
	if !n.uniqued {
		return
	}
	switch n.kind {
	case KindFunction:
		delete(c.fns, functionKey(n.contained[0], n.contained[1:], n.variadic, n.attrs))
	case KindStruct:
		delete(c.structs, structKey(n.contained, n.packed))
	case KindArray:
		delete(c.arrays, seqKey{elem: n.contained[0], count: n.count})
	case KindVector:
		delete(c.vectors, seqKey{elem: n.contained[0], count: n.count})
	case KindPointer:
		delete(c.pointers, n.contained[0])
	}
	n.uniqued = false
}
