package typeexpr

import (
	"strings"
	"testing"

	"github.com/th3flyboy/llvm-mirror/internal/testkit"
	"github.com/th3flyboy/llvm-mirror/internal/typeprint"
	"github.com/th3flyboy/llvm-mirror/internal/types"
)

func parse(t *testing.T, src string) (*types.Context, *types.SymbolTable) {
	t.Helper()
	ctx := types.NewContext()
	st := types.NewSymbolTable(ctx)
	if err := NewParser(ctx, st).ParseScript(src); err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return ctx, st
}

func lookup(t *testing.T, st *types.SymbolTable, name string) types.TypeID {
	t.Helper()
	id, ok := st.Lookup(name)
	if !ok {
		t.Fatalf("%%%s not bound", name)
	}
	return id
}

func TestParseTypeRoundTrips(t *testing.T) {
	ctx := types.NewContext()
	st := types.NewSymbolTable(ctx)
	exprs := []string{
		"void",
		"i1",
		"i8388607",
		"float*",
		"[4 x i32]",
		"[0 x double]",
		"<8 x i16>",
		"{ i32, i8* }",
		"<{ i8, i8 }>",
		"i32 (i8*, ...)",
		"void ()",
		"{ }",
	}
	for _, src := range exprs {
		id, err := ParseType(ctx, st, src)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", src, err)
		}
		rendered := typeprint.Render(ctx, id)
		back, err := ParseType(ctx, st, rendered)
		if err != nil {
			t.Fatalf("reparse of %q (from %q): %v", rendered, src, err)
		}
		if back != id {
			t.Fatalf("%q: reparse of %q returned a different identity", src, rendered)
		}
	}
}

func TestParseScriptBindsNames(t *testing.T) {
	ctx, st := parse(t, `
		; геометрия точки
		%point = type { float, float }
		%shape = type { %point, i32 }
	`)
	point := lookup(t, st, "point")
	shape := lookup(t, st, "shape")
	if ctx.Kind(shape) != types.KindStruct || ctx.FieldType(shape, 0) != point {
		t.Fatalf("shape does not embed point")
	}
	if ctx.IsAbstract(point) || ctx.IsAbstract(shape) {
		t.Fatalf("fully defined script must leave everything concrete")
	}
}

func TestParseScriptRecursiveDefinition(t *testing.T) {
	ctx, st := parse(t, `%list = type { i32, %list* }`)
	list := lookup(t, st, "list")
	if ctx.IsAbstract(list) {
		t.Fatalf("self-referential definition must close the cycle")
	}
	if ctx.ElementType(ctx.FieldType(list, 1)) != list {
		t.Fatalf("second field must point back at %%list")
	}
	if err := testkit.CheckGraphInvariants(ctx, []types.TypeID{list}); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestParseScriptMutualRecursion(t *testing.T) {
	ctx, st := parse(t, `
		%a = type { %b* }
		%b = type { %a* }
	`)
	a := lookup(t, st, "a")
	bid := lookup(t, st, "b")
	if ctx.IsAbstract(a) || ctx.IsAbstract(bid) {
		t.Fatalf("mutually recursive pair must become concrete")
	}
	if ctx.ElementType(ctx.FieldType(a, 0)) != bid {
		t.Fatalf("a's field must point at b")
	}
	if ctx.ElementType(ctx.FieldType(bid, 0)) != a {
		t.Fatalf("b's field must point at a")
	}
	if err := testkit.CheckGraphInvariants(ctx, []types.TypeID{a, bid}); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestParseScriptSharedShapesCollapse(t *testing.T) {
	ctx, st := parse(t, `
		%pair = type { i64, i64 }
		%same = type { i64, i64 }
	`)
	if lookup(t, st, "pair") != lookup(t, st, "same") {
		t.Fatalf("identical concrete shapes must share one canonical type")
	}
	_ = ctx
}

func TestParseScriptErrors(t *testing.T) {
	cases := []struct {
		src  string
		frag string
	}{
		{`%a = type %b`, "never defined"},
		{`%a = type i32
		  %a = type i64`, "redefinition"},
		{`%a = type %a`, "refinement protocol"},
		{`%a = type i0`, "bit width"},
		{`%a = type <0 x i32>`, "count must be positive"},
		{`%a = type { i32`, "expected"},
		{`%a = type wat`, "unknown type name"},
		{`%a = type void*`, "cannot be a contained type"},
	}
	for _, tc := range cases {
		ctx := types.NewContext()
		st := types.NewSymbolTable(ctx)
		err := NewParser(ctx, st).ParseScript(tc.src)
		if err == nil {
			t.Fatalf("ParseScript(%q) unexpectedly succeeded", tc.src)
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Fatalf("ParseScript(%q) error %q does not mention %q", tc.src, err, tc.frag)
		}
	}
}
