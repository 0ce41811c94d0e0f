package types

import (
	"errors"
	"testing"
)

func mustInt(t *testing.T, c *Context, width uint32) TypeID {
	t.Helper()
	id, err := c.IntegerType(width)
	if err != nil {
		t.Fatalf("IntegerType(%d): %v", width, err)
	}
	return id
}

func TestIntegerUniquing(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	again := mustInt(t, c, 32)
	if i32 != again {
		t.Fatalf("same width returned distinct ids: %d vs %d", i32, again)
	}
	i31 := mustInt(t, c, 31)
	if i31 == i32 {
		t.Fatalf("different widths must be distinct types")
	}
	if c.BitWidth(i31) != 31 {
		t.Fatalf("BitWidth = %d, want 31", c.BitWidth(i31))
	}
}

func TestIntegerWidthBounds(t *testing.T) {
	c := NewContext()
	if _, err := c.IntegerType(0); err == nil {
		t.Fatalf("width 0 must be rejected")
	}
	if _, err := c.IntegerType(MaxIntBits + 1); err == nil {
		t.Fatalf("width beyond MaxIntBits must be rejected")
	}
	var cerr *ConstructionError
	_, err := c.IntegerType(0)
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConstructionError, got %T", err)
	}
	if _, err := c.IntegerType(MaxIntBits); err != nil {
		t.Fatalf("MaxIntBits itself is legal: %v", err)
	}
}

func TestIntegerBitMask(t *testing.T) {
	c := NewContext()
	i8 := mustInt(t, c, 8)
	if m := c.BitMask(i8); m != 0xFF {
		t.Fatalf("BitMask(i8) = %#x", m)
	}
	i64 := mustInt(t, c, 64)
	if m := c.BitMask(i64); m != ^uint64(0) {
		t.Fatalf("BitMask(i64) = %#x", m)
	}
	if !c.IsPowerOf2ByteWidth(i8) {
		t.Fatalf("i8 is a power-of-2 byte width")
	}
	i31 := mustInt(t, c, 31)
	if c.IsPowerOf2ByteWidth(i31) {
		t.Fatalf("i31 is not a power-of-2 byte width")
	}
}

func TestFunctionUniquing(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	ptr, err := c.PointerType(i32)
	if err != nil {
		t.Fatalf("PointerType: %v", err)
	}
	f1, err := c.FunctionType(i32, []TypeID{ptr, i32}, false, nil)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	f2, err := c.FunctionType(i32, []TypeID{ptr, i32}, false, nil)
	if err != nil {
		t.Fatalf("FunctionType again: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("identical function shapes returned distinct ids")
	}
	variadic, err := c.FunctionType(i32, []TypeID{ptr, i32}, true, nil)
	if err != nil {
		t.Fatalf("variadic FunctionType: %v", err)
	}
	if variadic == f1 {
		t.Fatalf("variadic flag must be part of the key")
	}
	if c.ReturnType(f1) != i32 {
		t.Fatalf("ReturnType mismatch")
	}
	params := c.ParamTypes(f1)
	if len(params) != 2 || params[0] != ptr || params[1] != i32 {
		t.Fatalf("ParamTypes = %v", params)
	}
}

func TestFunctionAttrsInKey(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	plain, err := c.FunctionType(i32, []TypeID{i32}, false, nil)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	signed, err := c.FunctionType(i32, []TypeID{i32}, false, []ParamAttrs{AttrNone, AttrSExt})
	if err != nil {
		t.Fatalf("FunctionType with attrs: %v", err)
	}
	if plain == signed {
		t.Fatalf("attribute bits must be part of the key")
	}
	if !c.ParamHasAttr(signed, 1, AttrSExt) {
		t.Fatalf("param 1 should carry sext")
	}
	if c.ParamAttrs(plain, 1) != AttrNone {
		t.Fatalf("plain function has no attrs")
	}
}

func TestFunctionEmptyAttrsNormalized(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	plain, err := c.FunctionType(i32, []TypeID{i32}, false, nil)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	// a full list of AttrNone describes the same shape as no list
	noop, err := c.FunctionType(i32, []TypeID{i32}, false, []ParamAttrs{AttrNone, AttrNone})
	if err != nil {
		t.Fatalf("FunctionType with blank attrs: %v", err)
	}
	if plain != noop {
		t.Fatalf("all-blank attribute list must key like nil: %d vs %d", plain, noop)
	}
	if c.ParamAttrs(noop, 0) != AttrNone || c.ParamAttrs(noop, 1) != AttrNone {
		t.Fatalf("normalized function must still report AttrNone everywhere")
	}
}

func TestFunctionAttrsLengthPolicy(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	// attrs must be empty or exactly params+1 (slot 0 is the return)
	if _, err := c.FunctionType(i32, []TypeID{i32, i32}, false, []ParamAttrs{AttrNone}); err == nil {
		t.Fatalf("short attribute list must be rejected")
	}
	if _, err := c.FunctionType(i32, []TypeID{i32, i32}, false, make([]ParamAttrs, 3)); err != nil {
		t.Fatalf("full attribute list is legal: %v", err)
	}
}

func TestStructUniquingAndPacking(t *testing.T) {
	c := NewContext()
	i8 := mustInt(t, c, 8)
	i32 := mustInt(t, c, 32)
	s1, err := c.StructType([]TypeID{i32, i8}, false)
	if err != nil {
		t.Fatalf("StructType: %v", err)
	}
	s2, err := c.StructType([]TypeID{i32, i8}, false)
	if err != nil {
		t.Fatalf("StructType again: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("identical structs returned distinct ids")
	}
	packed, err := c.StructType([]TypeID{i32, i8}, true)
	if err != nil {
		t.Fatalf("packed StructType: %v", err)
	}
	if packed == s1 {
		t.Fatalf("packing must be part of the key")
	}
	if !c.IsPacked(packed) || c.IsPacked(s1) {
		t.Fatalf("IsPacked mismatch")
	}
	if c.FieldType(s1, 1) != i8 {
		t.Fatalf("FieldType(1) mismatch")
	}
	if c.NumFields(s1) != 2 {
		t.Fatalf("NumFields = %d", c.NumFields(s1))
	}
}

func TestSequentialUniquing(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	a1, err := c.ArrayType(i32, 4)
	if err != nil {
		t.Fatalf("ArrayType: %v", err)
	}
	a2, err := c.ArrayType(i32, 4)
	if err != nil {
		t.Fatalf("ArrayType again: %v", err)
	}
	if a1 != a2 {
		t.Fatalf("identical arrays returned distinct ids")
	}
	a8, err := c.ArrayType(i32, 8)
	if err != nil {
		t.Fatalf("ArrayType(8): %v", err)
	}
	if a8 == a1 {
		t.Fatalf("element count must be part of the key")
	}
	v4, err := c.VectorType(i32, 4)
	if err != nil {
		t.Fatalf("VectorType: %v", err)
	}
	if v4 == a1 {
		t.Fatalf("vector and array of same shape are distinct kinds")
	}
	if got := c.VectorBitWidth(v4); got != 128 {
		t.Fatalf("VectorBitWidth = %d, want 128", got)
	}
	p1, err := c.PointerType(i32)
	if err != nil {
		t.Fatalf("PointerType: %v", err)
	}
	p2, err := c.PointerType(i32)
	if err != nil {
		t.Fatalf("PointerType again: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("identical pointers returned distinct ids")
	}
	if c.ElementType(p1) != i32 || c.ElementType(a1) != i32 {
		t.Fatalf("ElementType mismatch")
	}
}

func TestVectorConstraints(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	if _, err := c.VectorType(i32, 0); err == nil {
		t.Fatalf("zero-size vector must be rejected")
	}
	s, err := c.StructType([]TypeID{i32}, false)
	if err != nil {
		t.Fatalf("StructType: %v", err)
	}
	if _, err := c.VectorType(s, 4); err == nil {
		t.Fatalf("non-scalar vector element must be rejected")
	}
	f, err := c.VectorType(c.Builtins().Float, 4)
	if err != nil {
		t.Fatalf("float vector: %v", err)
	}
	if got := c.VectorBitWidth(f); got != 128 {
		t.Fatalf("float vector width = %d", got)
	}
}

func TestVoidAndLabelNeverNest(t *testing.T) {
	c := NewContext()
	b := c.Builtins()
	if _, err := c.PointerType(b.Void); err == nil {
		t.Fatalf("pointer to void must be rejected")
	}
	if _, err := c.StructType([]TypeID{b.Label}, false); err == nil {
		t.Fatalf("label field must be rejected")
	}
	if _, err := c.FunctionType(b.Void, nil, false, nil); err != nil {
		t.Fatalf("void return is legal: %v", err)
	}
	if _, err := c.FunctionType(c.Builtins().Float, []TypeID{b.Void}, false, nil); err == nil {
		t.Fatalf("void parameter must be rejected")
	}
}

func TestConcreteLookupIsIdempotent(t *testing.T) {
	c := NewContext()
	i32 := mustInt(t, c, 32)
	if _, err := c.ArrayType(i32, 4); err != nil {
		t.Fatalf("ArrayType: %v", err)
	}
	before := c.Stats()
	if _, err := c.ArrayType(i32, 4); err != nil {
		t.Fatalf("ArrayType again: %v", err)
	}
	after := c.Stats()
	if before != after {
		t.Fatalf("repeat lookup mutated the store: %+v vs %+v", before, after)
	}
}

func TestOpaqueAlwaysDistinct(t *testing.T) {
	c := NewContext()
	o1 := c.OpaqueType()
	o2 := c.OpaqueType()
	if o1 == o2 {
		t.Fatalf("placeholders must be distinct by identity")
	}
	if !c.IsAbstract(o1) {
		t.Fatalf("placeholders are abstract")
	}
}

func TestComponentsMustBeLive(t *testing.T) {
	c := NewContext()
	if _, err := c.PointerType(TypeID(9999)); err == nil {
		t.Fatalf("unknown component id must be rejected")
	}
	o := c.OpaqueType()
	i32 := mustInt(t, c, 32)
	if err := c.RefineAbstractTypeTo(o, i32); err != nil {
		t.Fatalf("refine: %v", err)
	}
	// o is a dead stub now; it is no longer a valid component
	if _, err := c.PointerType(o); err == nil {
		t.Fatalf("dead component id must be rejected")
	}
}
