package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout создаёт context с timeout и автоматически отменяет его при завершении теста.
// Timeout не выходит за deadline самого теста (go test -timeout).
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, has := d.Deadline(); has {
			duration = min(duration, time.Until(deadline)-time.Second)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}

// ContextWithCancel создаёт context с cancel, который отменяется при завершении теста.
// Для остановки фоновых воркеров (combatlog.Writer, симулятор).
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx, cancel
}
