package types

// Sequential kinds (array, vector, pointer) all contain exactly one element
// type in slot 0 and differ only in their extra key bits.

// ArrayType returns the canonical array type of count elements. Zero-length
// arrays are legal.
func (c *Context) ArrayType(elem TypeID, count uint64) (TypeID, error) {
	if err := c.checkComponent(KindArray, elem); err != nil {
		return NoTypeID, err
	}
	if c.arena[elem].abstract {
		return c.newComposite(node{
			kind:      KindArray,
			abstract:  true,
			contained: []TypeID{elem},
			count:     count,
		}), nil
	}
	key := seqKey{elem: elem, count: count}
	if id, ok := c.arrays[key]; ok {
		return id, nil
	}
	id := c.newComposite(node{
		kind:      KindArray,
		contained: []TypeID{elem},
		count:     count,
		uniqued:   true,
	})
	c.arrays[key] = id
	return id, nil
}

// VectorType returns the canonical vector type of count elements. The element
// must be a fixed-width scalar (integer, float or double) and the count must
// be positive; a vector therefore can never be abstract.
func (c *Context) VectorType(elem TypeID, count uint32) (TypeID, error) {
	if count == 0 {
		return NoTypeID, constructErr(KindVector, "element count must be positive")
	}
	n := c.live(elem)
	if n == nil {
		return NoTypeID, constructErr(KindVector, "element %d is not a live type of this context", elem)
	}
	if c.PrimitiveSizeInBits(elem) == 0 {
		return NoTypeID, constructErr(KindVector, "element must be a fixed-width scalar, got %s", n.kind)
	}
	key := seqKey{elem: elem, count: uint64(count)}
	if id, ok := c.vectors[key]; ok {
		return id, nil
	}
	id := c.newComposite(node{
		kind:      KindVector,
		contained: []TypeID{elem},
		count:     uint64(count),
		uniqued:   true,
	})
	c.vectors[key] = id
	return id, nil
}

// PointerType returns the canonical pointer type to elem. Address spaces and
// qualifiers are out of scope; the element identity alone is the key.
func (c *Context) PointerType(elem TypeID) (TypeID, error) {
	if err := c.checkComponent(KindPointer, elem); err != nil {
		return NoTypeID, err
	}
	if c.arena[elem].abstract {
		return c.newComposite(node{
			kind:      KindPointer,
			abstract:  true,
			contained: []TypeID{elem},
		}), nil
	}
	if id, ok := c.pointers[elem]; ok {
		return id, nil
	}
	id := c.newComposite(node{
		kind:      KindPointer,
		contained: []TypeID{elem},
		uniqued:   true,
	})
	c.pointers[elem] = id
	return id, nil
}

// ElementType returns the element type of an array, vector or pointer type.
func (c *Context) ElementType(id TypeID) TypeID {
	n := c.live(id)
	if n == nil {
		return NoTypeID
	}
	switch n.kind {
	case KindArray, KindVector, KindPointer:
		return n.contained[0]
	default:
		return NoTypeID
	}
}

// NumElements returns the element count of an array or vector type.
func (c *Context) NumElements(id TypeID) uint64 {
	n := c.live(id)
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindArray, KindVector:
		return n.count
	default:
		return 0
	}
}

// VectorBitWidth returns count × element width for a vector type.
func (c *Context) VectorBitWidth(id TypeID) uint64 {
	n := c.live(id)
	if n == nil || n.kind != KindVector {
		return 0
	}
	return n.count * uint64(c.PrimitiveSizeInBits(n.contained[0]))
}
