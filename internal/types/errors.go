package types

import "fmt"

// ConstructionError reports a request for a shape that violates a structural
// constraint (width out of range, zero-size vector, bad attribute list, or a
// component that is not a live TypeID of this context). No partial node is
// registered when a constructor returns one.
type ConstructionError struct {
	Kind   Kind
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s type: %s", e.Kind, e.Reason)
}

func constructErr(kind Kind, format string, args ...any) error {
	return &ConstructionError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// ProtocolError reports misuse of the refinement protocol: refining a
// non-placeholder, an already-resolved placeholder, or a placeholder to
// itself. The graph is left untouched.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "refinement protocol violation: " + e.Reason
}

func protocolErr(format string, args ...any) error {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}
