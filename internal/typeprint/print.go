// Package typeprint renders types from a store context in assembly-like
// textual syntax. Recursive types print with \N up-references: \1 names the
// nearest enclosing type, \2 the one above it, and so on, so rendering always
// terminates on cyclic graphs.
package typeprint

import (
	"fmt"
	"strings"

	"github.com/th3flyboy/llvm-mirror/internal/types"
)

// Render returns the textual form of id, e.g. "i32", "[4 x float]",
// "<8 x i16>", "{ i32, \1* }", "void (i8*, ...)".
func Render(ctx *types.Context, id types.TypeID) string {
	var b strings.Builder
	write(&b, ctx, ctx.Canonical(id), nil)
	return b.String()
}

// RenderNamed is like Render but substitutes %name for any nested type bound
// in st, keeping deep or recursive dumps readable. The top-level type itself
// is always expanded.
func RenderNamed(ctx *types.Context, st *types.SymbolTable, id types.TypeID) string {
	names := make(map[types.TypeID]string, st.Len())
	for _, name := range st.Names() {
		if bound, ok := st.Lookup(name); ok {
			if _, taken := names[bound]; !taken {
				names[bound] = name
			}
		}
	}
	id = ctx.Canonical(id)
	delete(names, id)
	var b strings.Builder
	writeNamed(&b, ctx, id, nil, names)
	return b.String()
}

func write(b *strings.Builder, ctx *types.Context, id types.TypeID, path []types.TypeID) {
	writeNamed(b, ctx, id, path, nil)
}

func writeNamed(b *strings.Builder, ctx *types.Context, id types.TypeID, path []types.TypeID, names map[types.TypeID]string) {
	if id == types.NoTypeID {
		b.WriteString("<invalid>")
		return
	}
	for i, anc := range path {
		if anc == id {
			fmt.Fprintf(b, "\\%d", len(path)-i)
			return
		}
	}
	if name, ok := names[id]; ok {
		b.WriteByte('%')
		b.WriteString(name)
		return
	}
	switch ctx.Kind(id) {
	case types.KindVoid:
		b.WriteString("void")
	case types.KindFloat:
		b.WriteString("float")
	case types.KindDouble:
		b.WriteString("double")
	case types.KindLabel:
		b.WriteString("label")
	case types.KindOpaque:
		b.WriteString("opaque")
	case types.KindInteger:
		fmt.Fprintf(b, "i%d", ctx.BitWidth(id))
	case types.KindPointer:
		writeNamed(b, ctx, ctx.ElementType(id), append(path, id), names)
		b.WriteByte('*')
	case types.KindArray:
		fmt.Fprintf(b, "[%d x ", ctx.NumElements(id))
		writeNamed(b, ctx, ctx.ElementType(id), append(path, id), names)
		b.WriteByte(']')
	case types.KindVector:
		fmt.Fprintf(b, "<%d x ", ctx.NumElements(id))
		writeNamed(b, ctx, ctx.ElementType(id), append(path, id), names)
		b.WriteByte('>')
	case types.KindStruct:
		packed := ctx.IsPacked(id)
		if packed {
			b.WriteByte('<')
		}
		b.WriteString("{ ")
		for i, f := range ctx.FieldTypes(id) {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNamed(b, ctx, f, append(path, id), names)
		}
		if ctx.NumFields(id) == 0 {
			b.WriteString("}")
		} else {
			b.WriteString(" }")
		}
		if packed {
			b.WriteByte('>')
		}
	case types.KindFunction:
		writeNamed(b, ctx, ctx.ReturnType(id), append(path, id), names)
		b.WriteString(" (")
		params := ctx.ParamTypes(id)
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNamed(b, ctx, p, append(path, id), names)
		}
		if ctx.IsVariadic(id) {
			if len(params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteByte(')')
	default:
		b.WriteString("<invalid>")
	}
}

// Describe returns a short multi-line report on one type for interactive
// inspection.
func Describe(ctx *types.Context, id types.TypeID) string {
	id = ctx.Canonical(id)
	var b strings.Builder
	fmt.Fprintf(&b, "kind:     %s\n", ctx.Kind(id))
	fmt.Fprintf(&b, "abstract: %v\n", ctx.IsAbstract(id))
	fmt.Fprintf(&b, "form:     %s\n", Render(ctx, id))
	switch ctx.Kind(id) {
	case types.KindInteger:
		fmt.Fprintf(&b, "width:    %d bits\n", ctx.BitWidth(id))
	case types.KindFunction:
		fmt.Fprintf(&b, "params:   %d (variadic: %v)\n", ctx.NumParams(id), ctx.IsVariadic(id))
	case types.KindStruct:
		fmt.Fprintf(&b, "fields:   %d (packed: %v)\n", ctx.NumFields(id), ctx.IsPacked(id))
	case types.KindArray, types.KindVector:
		fmt.Fprintf(&b, "elements: %d\n", ctx.NumElements(id))
	}
	return b.String()
}
