package combat

import (
	"sync"
)

// RecordingSink запоминает все события сессии (для тестов и headless-прогонов).
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *RecordingSink) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *RecordingSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of recorded events in order.
func (r *RecordingSink) Kinds() []EventKind {
	events := r.Events()
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}

// TurnResults returns recorded TurnResult events in order.
func (r *RecordingSink) TurnResults() []TurnResult {
	var out []TurnResult
	for _, e := range r.Events() {
		if tr, ok := e.(TurnResult); ok {
			out = append(out, tr)
		}
	}
	return out
}

// Ended returns the CombatEnded event if one was recorded.
func (r *RecordingSink) Ended() (CombatEnded, bool) {
	for _, e := range r.Events() {
		if ce, ok := e.(CombatEnded); ok {
			return ce, true
		}
	}
	return CombatEnded{}, false
}

// Reset forgets recorded events.
func (r *RecordingSink) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// ScriptedSource replays IntN results in order and returns 0 once the script
// is exhausted. Values are clamped into [0, n).
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewScriptedSource creates a ScriptedSource. Use Face to script die faces.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Face converts a 1-based die face into the IntN value that produces it.
func Face(f int) int { return f - 1 }

// IntN returns the next scripted value.
func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := 0
	if s.pos < len(s.values) {
		v = s.values[s.pos]
	}
	s.pos++
	return max(0, min(v, n-1))
}

// Consumed returns how many values were drawn.
func (s *ScriptedSource) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
