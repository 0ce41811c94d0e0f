package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
type Scope uint8

const (
	// ScopePhase represents evaluation phases (parse, build, render).
	ScopePhase Scope = iota + 1
	// ScopeDetail represents per-definition and per-store events.
	ScopeDetail
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopePhase:
		return "phase"
	case ScopeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Kind  Kind
	Scope Scope
	Name  string
	Time  time.Time
	Dur   time.Duration // valid for KindSpanEnd
	Note  string
}
