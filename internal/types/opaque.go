package types

// OpaqueType creates a new placeholder for a type whose shape is not yet
// known. Placeholders are distinct by identity, never by shape: every call
// yields a brand-new abstract node. A placeholder lives until it is refined
// to a concrete shape with RefineAbstractTypeTo, which destroys it.
func (c *Context) OpaqueType() TypeID {
	c.opaqueCount++
	return c.alloc(node{kind: KindOpaque, abstract: true})
}
