package combat

import "log/slog"

// Sink receives combat events. The presentation layer implements it and owns
// all timing and animation of what it receives.
//
// Emit is called synchronously while the session holds its lock: an
// implementation must not call back into the Session.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// MultiSink fans events out to several sinks in order. Nil entries are skipped.
type MultiSink []Sink

// Emit forwards e to every sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// LogSink writes combat events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger means slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit logs e. Turn-level events go to Debug, start/end to Info.
func (l *LogSink) Emit(e Event) {
	switch ev := e.(type) {
	case CombatStarted:
		l.logger.Info("combat started",
			"attacker", ev.AttackerID,
			"defender", ev.DefenderID)
	case TurnResult:
		l.logger.Debug("turn resolved",
			"turn", ev.Turn,
			"actor", ev.ActorID,
			"target", ev.TargetID,
			"raw", ev.RawRoll,
			"modified", ev.ModifiedRoll,
			"damage", ev.Damage,
			"crit", ev.IsCritical,
			"remainingHP", ev.TargetRemainingHealth,
			"defeated", ev.TargetDefeated)
	case TurnSkipped:
		l.logger.Debug("turn skipped",
			"turn", ev.Turn,
			"actor", ev.ActorID,
			"reason", ev.Reason)
	case CombatEnded:
		attrs := []any{
			"outcome", ev.Outcome.String(),
			"turns", ev.Turns,
			"experience", ev.Experience,
		}
		if ev.Loot != nil {
			attrs = append(attrs, "loot", ev.Loot.ItemID, "count", ev.Loot.Count)
		}
		l.logger.Info("combat ended", attrs...)
	default:
		l.logger.Warn("unknown combat event", "kind", e.Kind())
	}
}
