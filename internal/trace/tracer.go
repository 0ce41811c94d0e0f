package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer is the interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// nopTracer is a no-op implementation for zero overhead when tracing is
// disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}

// StreamTracer writes events immediately to an io.Writer as text lines.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a StreamTracer at the given level.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes an event to the output. Write errors are swallowed: tracing
// must never fail an evaluation.
func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	line := fmt.Sprintf("[%s] %-5s %-6s %s", ev.Time.Format("15:04:05.000"), ev.Scope, ev.Kind, ev.Name)
	if ev.Kind == KindSpanEnd {
		line += fmt.Sprintf(" (%.2fms)", float64(ev.Dur.Microseconds())/1000)
	}
	if ev.Note != "" {
		line += " // " + ev.Note
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, line+"\n")
}

// Level returns the tracer's level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether any events are emitted.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// Span tracks one logical operation from begin to end.
type Span struct {
	tracer Tracer
	scope  Scope
	name   string
	start  time.Time
}

// StartSpan emits a begin event and returns a Span whose End emits the
// matching end event with the elapsed duration.
func StartSpan(t Tracer, scope Scope, name string) *Span {
	s := &Span{tracer: t, scope: scope, name: name, start: time.Now()}
	t.Emit(Event{Kind: KindSpanBegin, Scope: scope, Name: name, Time: s.start})
	return s
}

// End closes the span.
func (s *Span) End(note string) {
	s.tracer.Emit(Event{
		Kind:  KindSpanEnd,
		Scope: s.scope,
		Name:  s.name,
		Time:  time.Now(),
		Dur:   time.Since(s.start),
		Note:  note,
	})
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, note string) {
	t.Emit(Event{Kind: KindPoint, Scope: scope, Name: name, Note: note})
}
