package types

import "testing"

func TestSymbolTableFollowsRefinement(t *testing.T) {
	c := NewContext()
	st := NewSymbolTable(c)
	i32 := mustInt(t, c, 32)
	o := c.OpaqueType()
	st.Insert("list", o)

	p, err := c.PointerType(o)
	if err != nil {
		t.Fatalf("PointerType: %v", err)
	}
	s, err := c.StructType([]TypeID{i32, p}, false)
	if err != nil {
		t.Fatalf("StructType: %v", err)
	}
	if err := c.RefineAbstractTypeTo(o, s); err != nil {
		t.Fatalf("refine: %v", err)
	}
	got, ok := st.Lookup("list")
	if !ok {
		t.Fatalf("binding lost across refinement")
	}
	if got != c.Canonical(s) {
		t.Fatalf("binding = %d, want survivor %d", got, c.Canonical(s))
	}
	if c.IsAbstract(got) {
		t.Fatalf("bound type must be concrete after the cycle closed")
	}
}

func TestSymbolTableNormalizesNames(t *testing.T) {
	c := NewContext()
	st := NewSymbolTable(c)
	i8 := mustInt(t, c, 8)
	// U+00E9 and e + combining U+0301 are the same name after NFC
	st.Insert("caf\u00e9", i8)
	if got, ok := st.Lookup("cafe\u0301"); !ok || got != i8 {
		t.Fatalf("NFC-equal spellings must share a binding")
	}
	st.Insert("cafe\u0301", i8)
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1", st.Len())
	}
}

func TestSymbolTableOrderAndRemove(t *testing.T) {
	c := NewContext()
	st := NewSymbolTable(c)
	i8 := mustInt(t, c, 8)
	i16 := mustInt(t, c, 16)
	st.Insert("b", i8)
	st.Insert("a", i16)
	names := st.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("Names = %v, want insertion order", names)
	}
	sorted := st.SortedNames()
	if sorted[0] != "a" || sorted[1] != "b" {
		t.Fatalf("SortedNames = %v", sorted)
	}
	st.Remove("b")
	if _, ok := st.Lookup("b"); ok {
		t.Fatalf("removed binding still resolves")
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d after remove", st.Len())
	}
}
