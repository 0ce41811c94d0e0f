package testkit

import (
	"fmt"

	"github.com/th3flyboy/llvm-mirror/internal/types"
)

// CheckGraphInvariants re-derives the properties the type store promises to
// hold after every public call and reports the first violation:
//  1. no live node has a containment edge to a dead node
//  2. every abstractness flag matches a full re-derivation over the graph
//  3. a concrete composite looked up again by its accessors returns itself
//     (it is canonical for its own shape)
//
// It is deliberately quadratic-ish: tests trade speed for an independent
// recomputation of what the store maintains incrementally.
func CheckGraphInvariants(ctx *types.Context, ids []types.TypeID) error {
	live := make([]types.TypeID, 0, len(ids))
	for _, id := range ids {
		can := ctx.Canonical(id)
		if can == types.NoTypeID {
			return fmt.Errorf("id %d has no canonical survivor", id)
		}
		live = append(live, can)
	}

	for _, id := range live {
		for _, sub := range ctx.ContainedTypes(id) {
			if !ctx.Valid(sub) {
				return fmt.Errorf("type %d holds an edge to dead type %d", id, sub)
			}
		}
	}

	for _, id := range live {
		want := derivesAbstract(ctx, id, make(map[types.TypeID]bool))
		if got := ctx.IsAbstract(id); got != want {
			return fmt.Errorf("type %d: isAbstract=%v, re-derivation says %v", id, got, want)
		}
	}

	for _, id := range live {
		if ctx.IsAbstract(id) {
			continue
		}
		dup, err := rebuild(ctx, id)
		if err != nil {
			return fmt.Errorf("type %d: rebuild failed: %w", id, err)
		}
		if dup != types.NoTypeID && dup != id {
			return fmt.Errorf("type %d: rebuilding its shape returned distinct id %d", id, dup)
		}
	}
	return nil
}

// derivesAbstract recomputes abstractness from scratch: a node is abstract
// iff it can reach a live placeholder. Visited tracking makes cycles, which
// are abstract only because of one another, come out concrete.
func derivesAbstract(ctx *types.Context, id types.TypeID, visited map[types.TypeID]bool) bool {
	if ctx.Kind(id) == types.KindOpaque {
		return true
	}
	if visited[id] {
		return false
	}
	visited[id] = true
	for _, sub := range ctx.ContainedTypes(id) {
		if derivesAbstract(ctx, sub, visited) {
			return true
		}
	}
	return false
}

// rebuild requests id's exact shape again through the public constructors.
// Kinds without structural constructors (primitives, opaques) return
// NoTypeID and are skipped by the caller.
func rebuild(ctx *types.Context, id types.TypeID) (types.TypeID, error) {
	switch ctx.Kind(id) {
	case types.KindInteger:
		return ctx.IntegerType(ctx.BitWidth(id))
	case types.KindFunction:
		var attrs []types.ParamAttrs
		for i := 0; i <= ctx.NumParams(id); i++ {
			if ctx.ParamAttrs(id, i) != types.AttrNone {
				attrs = make([]types.ParamAttrs, ctx.NumParams(id)+1)
				for j := range attrs {
					attrs[j] = ctx.ParamAttrs(id, j)
				}
				break
			}
		}
		return ctx.FunctionType(ctx.ReturnType(id), ctx.ParamTypes(id), ctx.IsVariadic(id), attrs)
	case types.KindStruct:
		return ctx.StructType(ctx.FieldTypes(id), ctx.IsPacked(id))
	case types.KindArray:
		return ctx.ArrayType(ctx.ElementType(id), ctx.NumElements(id))
	case types.KindVector:
		count, err := toUint32(ctx.NumElements(id))
		if err != nil {
			return types.NoTypeID, err
		}
		return ctx.VectorType(ctx.ElementType(id), count)
	case types.KindPointer:
		return ctx.PointerType(ctx.ElementType(id))
	default:
		return types.NoTypeID, nil
	}
}
