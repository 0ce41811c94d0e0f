package types

import "fmt"

// TypeID uniquely identifies a type inside one Context.
//
// IDs are stable for the lifetime of the Context. A refined-away placeholder
// or a collapsed duplicate keeps its ID, but the ID becomes a forwarding stub;
// use Context.Canonical to chase it to the surviving node.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Primitive singletons, seeded once per Context.
	KindVoid
	KindFloat
	KindDouble
	KindLabel

	// Composite kinds, uniqued by structural key.
	KindInteger
	KindFunction
	KindStruct
	KindArray
	KindVector
	KindPointer

	// Placeholder kind: never uniqued, distinct by identity.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindLabel:
		return "label"
	case KindInteger:
		return "integer"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	case KindPointer:
		return "pointer"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Integer bit-width bounds. The upper bound mirrors the 23-bit width field of
// the system this store is modeled after.
const (
	MinIntBits uint32 = 1
	MaxIntBits uint32 = 1<<23 - 1
)

// ParamAttrs is a bitset of per-parameter attributes on a function type.
// Attribute bits participate in the structural key but never in containment,
// so they cannot make a function type abstract.
type ParamAttrs uint16

const (
	AttrNone      ParamAttrs = 0
	AttrZExt      ParamAttrs = 1 << 0 // zero extended before/after call
	AttrSExt      ParamAttrs = 1 << 1 // sign extended before/after call
	AttrNoReturn  ParamAttrs = 1 << 2
	AttrInReg     ParamAttrs = 1 << 3
	AttrStructRet ParamAttrs = 1 << 4 // hidden pointer to returned structure
)

// edge records that contained slot `slot` of `container` points at some node.
// An edge doubles as the subscription entry kept on abstract targets so the
// slot can be repointed when the target refines.
type edge struct {
	container TypeID
	slot      int
}

// node is the closed tagged union behind every TypeID. Which fields are
// meaningful depends on kind:
//
//	integer:   width
//	function:  contained = [return, params...], variadic, attrs
//	struct:    contained = fields, packed
//	array:     contained = [elem], count
//	vector:    contained = [elem], count
//	pointer:   contained = [elem]
//	opaque:    nothing (abstract until refined)
type node struct {
	kind     Kind
	abstract bool
	uniqued  bool // present in its kind's uniquing table under its current key
	dead     bool // refined away or collapsed; forward holds the survivor

	forward   TypeID
	contained []TypeID
	users     []edge // subscriptions; consumed only when the node is replaced

	width    uint32
	count    uint64
	variadic bool
	packed   bool
	attrs    []ParamAttrs
}
