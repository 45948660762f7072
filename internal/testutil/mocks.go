package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/dicecrawl/internal/model"
)

// MemoryBattleStore - in-memory имплементация хранилища боёв для unit тестов.
// Не требует реального PostgreSQL.
type MemoryBattleStore struct {
	mu      sync.RWMutex
	battles map[uuid.UUID]*model.BattleReport
	order   []uuid.UUID

	// Err, если задан, возвращается из SaveBattle вместо сохранения.
	Err error
}

// NewMemoryBattleStore создаёт пустой store.
func NewMemoryBattleStore() *MemoryBattleStore {
	return &MemoryBattleStore{battles: make(map[uuid.UUID]*model.BattleReport)}
}

// SaveBattle сохраняет копию отчёта.
func (m *MemoryBattleStore) SaveBattle(ctx context.Context, report *model.BattleReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	cp := *report
	cp.Turns = append([]model.BattleTurn(nil), report.Turns...)
	if _, exists := m.battles[cp.ID]; !exists {
		m.order = append(m.order, cp.ID)
	}
	m.battles[cp.ID] = &cp
	return nil
}

// Get возвращает сохранённый отчёт или nil.
func (m *MemoryBattleStore) Get(id uuid.UUID) *model.BattleReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.battles[id]
}

// All возвращает отчёты в порядке сохранения.
func (m *MemoryBattleStore) All() []*model.BattleReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.BattleReport, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.battles[id])
	}
	return out
}

// Count возвращает число сохранённых отчётов.
func (m *MemoryBattleStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.battles)
}
