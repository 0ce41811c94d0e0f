package types

// FunctionType returns the canonical function type with the given return
// type, ordered parameter types, variadic flag and optional per-parameter
// attribute bits. Slot 0 of the contained edges is the return type; parameter
// i lives in slot i+1.
//
// attrs must be empty or have exactly len(params)+1 entries, index 0 naming
// the return slot. Attribute bits are part of the structural key but never
// affect containment or abstractness. A list whose every slot is AttrNone is
// the same shape as no list at all and is normalized away before keying.
//
// A request involving an abstract component yields a fresh abstract node
// tracked only by identity; it joins the uniquing table when it becomes
// concrete.
func (c *Context) FunctionType(ret TypeID, params []TypeID, variadic bool, attrs []ParamAttrs) (TypeID, error) {
	rn := c.live(ret)
	if rn == nil {
		return NoTypeID, constructErr(KindFunction, "return type %d is not a live type of this context", ret)
	}
	if rn.kind == KindLabel {
		return NoTypeID, constructErr(KindFunction, "label cannot be a return type")
	}
	if err := c.checkComponent(KindFunction, params...); err != nil {
		return NoTypeID, err
	}
	if len(attrs) != 0 && len(attrs) != len(params)+1 {
		return NoTypeID, constructErr(KindFunction,
			"attribute list has %d entries, want 0 or %d (params + return slot)", len(attrs), len(params)+1)
	}
	attrs = cloneAttrs(attrs)

	contained := make([]TypeID, 0, len(params)+1)
	contained = append(contained, ret)
	contained = append(contained, params...)

	if c.anyAbstract(contained) {
		return c.newComposite(node{
			kind:      KindFunction,
			abstract:  true,
			contained: contained,
			variadic:  variadic,
			attrs:     attrs,
		}), nil
	}

	key := functionKey(ret, params, variadic, attrs)
	if id, ok := c.fns[key]; ok {
		return id, nil
	}
	id := c.newComposite(node{
		kind:      KindFunction,
		contained: contained,
		variadic:  variadic,
		attrs:     attrs,
		uniqued:   true,
	})
	c.fns[key] = id
	return id, nil
}

// ReturnType returns the return type of a function type.
func (c *Context) ReturnType(id TypeID) TypeID {
	n := c.live(id)
	if n == nil || n.kind != KindFunction {
		return NoTypeID
	}
	return n.contained[0]
}

// ParamTypes returns a copy of the ordered parameter types of a function
// type, excluding the return slot.
func (c *Context) ParamTypes(id TypeID) []TypeID {
	n := c.live(id)
	if n == nil || n.kind != KindFunction || len(n.contained) == 1 {
		return nil
	}
	out := make([]TypeID, len(n.contained)-1)
	copy(out, n.contained[1:])
	return out
}

// NumParams returns the number of fixed parameters, not counting varargs.
func (c *Context) NumParams(id TypeID) int {
	n := c.live(id)
	if n == nil || n.kind != KindFunction {
		return 0
	}
	return len(n.contained) - 1
}

// IsVariadic reports whether a function type accepts variable arguments.
func (c *Context) IsVariadic(id TypeID) bool {
	n := c.live(id)
	return n != nil && n.kind == KindFunction && n.variadic
}

// ParamAttrs returns the attribute bits of slot i, where slot 0 is the
// return. AttrNone when no attributes were supplied or i is out of range.
func (c *Context) ParamAttrs(id TypeID, i int) ParamAttrs {
	n := c.live(id)
	if n == nil || n.kind != KindFunction || i < 0 || i >= len(n.attrs) {
		return AttrNone
	}
	return n.attrs[i]
}

// ParamHasAttr reports whether slot i carries the given attribute bit.
func (c *Context) ParamHasAttr(id TypeID, i int, attr ParamAttrs) bool {
	return c.ParamAttrs(id, i)&attr != 0
}

// IsStructReturn reports whether the first parameter is a hidden pointer to
// the returned structure.
func (c *Context) IsStructReturn(id TypeID) bool {
	return c.NumParams(id) > 0 && c.ParamHasAttr(id, 1, AttrStructRet)
}

// cloneAttrs copies the caller's attribute list, normalizing one that sets no
// bit anywhere to nil so it keys identically to an absent list.
func cloneAttrs(attrs []ParamAttrs) []ParamAttrs {
	for _, a := range attrs {
		if a != AttrNone {
			out := make([]ParamAttrs, len(attrs))
			copy(out, attrs)
			return out
		}
	}
	return nil
}
