package types

// IntegerType returns the canonical integer type of the given bit width.
// Widths outside [MinIntBits, MaxIntBits] are rejected. Integer types carry
// no contained subtypes and are always concrete.
func (c *Context) IntegerType(width uint32) (TypeID, error) {
	if width < MinIntBits || width > MaxIntBits {
		return NoTypeID, constructErr(KindInteger, "bit width %d outside [%d, %d]", width, MinIntBits, MaxIntBits)
	}
	if id, ok := c.ints[width]; ok {
		return id, nil
	}
	id := c.alloc(node{kind: KindInteger, width: width, uniqued: true})
	c.ints[width] = id
	return id, nil
}

// BitWidth returns the width of an integer type, 0 for any other kind.
func (c *Context) BitWidth(id TypeID) uint32 {
	n := c.live(id)
	if n == nil || n.kind != KindInteger {
		return 0
	}
	return n.width
}

// BitMask returns a mask with ones in every bit an unsigned value of this
// integer type can set. Widths above 64 saturate to a full mask.
func (c *Context) BitMask(id TypeID) uint64 {
	w := c.BitWidth(id)
	if w == 0 {
		return 0
	}
	if w >= 64 {
		return ^uint64(0)
	}
	return ^uint64(0) >> (64 - w)
}

// IsPowerOf2ByteWidth reports whether an integer type's width is a power of
// two measured in 8-bit bytes.
func (c *Context) IsPowerOf2ByteWidth(id TypeID) bool {
	w := c.BitWidth(id)
	return w%8 == 0 && (w/8)&(w/8-1) == 0 && w != 0
}
