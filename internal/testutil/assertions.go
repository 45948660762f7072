package testutil

import (
	"testing"

	"github.com/udisondev/dicecrawl/internal/model"
)

// AssertBattleOutcome проверяет исход боя в отчёте.
func AssertBattleOutcome(t testing.TB, expected string, report *model.BattleReport) {
	t.Helper()

	if report == nil {
		t.Fatalf("battle report is nil, expected outcome %q", expected)
	}
	if report.Outcome != expected {
		t.Fatalf("battle outcome mismatch: expected %q, got %q", expected, report.Outcome)
	}
}

// AssertTurnSequence проверяет, что ходы пронумерованы подряд с 1
// и имеют ожидаемые виды (model.TurnKindResult / model.TurnKindSkipped).
func AssertTurnSequence(t testing.TB, report *model.BattleReport, kinds ...string) {
	t.Helper()

	if len(report.Turns) != len(kinds) {
		t.Fatalf("turn count mismatch: expected %d, got %d (%+v)", len(kinds), len(report.Turns), report.Turns)
	}
	for i, turn := range report.Turns {
		if turn.Seq != i+1 {
			t.Fatalf("turn %d has seq %d", i, turn.Seq)
		}
		if turn.Kind != kinds[i] {
			t.Fatalf("turn %d kind mismatch: expected %q, got %q", i+1, kinds[i], turn.Kind)
		}
	}
}

// AssertDamageFloor проверяет инвариант: каждый результат хода наносит не меньше 1 урона.
func AssertDamageFloor(t testing.TB, report *model.BattleReport) {
	t.Helper()

	for _, turn := range report.Turns {
		if turn.Kind == model.TurnKindResult && turn.Damage < 1 {
			t.Fatalf("turn %d dealt %d damage, expected >= 1", turn.Seq, turn.Damage)
		}
	}
}
