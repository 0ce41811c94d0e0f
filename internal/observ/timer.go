// Package observ collects coarse wall-clock timings for the evaluation
// phases of a script (parse+build, render) and turns them into a
// serializable report.
package observ

import "time"

// Phase is one timed section. End it exactly once.
type Phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// End closes the phase with an optional note.
func (p *Phase) End(note string) {
	if p == nil || p.dur != 0 {
		return
	}
	p.dur = time.Since(p.start)
	p.note = note
}

// Timer accumulates phases in begin order.
type Timer struct {
	phases []*Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a new phase and returns its handle.
func (t *Timer) Begin(name string) *Phase {
	p := &Phase{name: name, start: time.Now()}
	t.phases = append(t.phases, p)
	return p
}

// PhaseReport is the serializable per-phase record.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates all phases and the total duration in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots every phase recorded so far. Unfinished phases count as
// zero duration.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	rep := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.dur
		rep.Phases[i] = PhaseReport{
			Name:       p.name,
			DurationMS: millis(p.dur),
			Note:       p.note,
		}
	}
	rep.TotalMS = millis(total)
	return rep
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
