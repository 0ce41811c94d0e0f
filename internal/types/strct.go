package types

// StructType returns the canonical struct type with the given ordered field
// types. The packed flag (no inter-field padding) is part of the structural
// key: identical field lists with different packing are distinct types.
//
// As with all composites, a struct built over an abstract component starts
// life outside the uniquing table and is inserted (or collapsed into an
// existing duplicate) when it turns concrete.
func (c *Context) StructType(fields []TypeID, packed bool) (TypeID, error) {
	if err := c.checkComponent(KindStruct, fields...); err != nil {
		return NoTypeID, err
	}
	contained := make([]TypeID, len(fields))
	copy(contained, fields)

	if c.anyAbstract(contained) {
		return c.newComposite(node{
			kind:      KindStruct,
			abstract:  true,
			contained: contained,
			packed:    packed,
		}), nil
	}

	key := structKey(fields, packed)
	if id, ok := c.structs[key]; ok {
		return id, nil
	}
	id := c.newComposite(node{
		kind:      KindStruct,
		contained: contained,
		packed:    packed,
		uniqued:   true,
	})
	c.structs[key] = id
	return id, nil
}

// FieldTypes returns a copy of the ordered field types of a struct type.
func (c *Context) FieldTypes(id TypeID) []TypeID {
	n := c.live(id)
	if n == nil || n.kind != KindStruct || len(n.contained) == 0 {
		return nil
	}
	out := make([]TypeID, len(n.contained))
	copy(out, n.contained)
	return out
}

// NumFields returns the field count of a struct type.
func (c *Context) NumFields(id TypeID) int {
	n := c.live(id)
	if n == nil || n.kind != KindStruct {
		return 0
	}
	return len(n.contained)
}

// FieldType returns field i of a struct type, NoTypeID when out of range.
func (c *Context) FieldType(id TypeID, i int) TypeID {
	n := c.live(id)
	if n == nil || n.kind != KindStruct || i < 0 || i >= len(n.contained) {
		return NoTypeID
	}
	return n.contained[i]
}

// IsPacked reports whether a struct type lays fields out without padding.
func (c *Context) IsPacked(id TypeID) bool {
	n := c.live(id)
	return n != nil && n.kind == KindStruct && n.packed
}
