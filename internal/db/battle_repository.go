package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dicecrawl/internal/model"
)

// ErrBattleNotFound is returned by GetBattle for unknown IDs.
var ErrBattleNotFound = errors.New("battle not found")

// BattleRepository хранит отчёты о боях и их ходы.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository создаёт новый BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// SaveBattle saves the report and all its turns in a single transaction.
func (r *BattleRepository) SaveBattle(ctx context.Context, report *model.BattleReport) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var lootItem *string
	if report.LootItemID != "" {
		lootItem = &report.LootItemID
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO battles
		 (battle_id, seed, attacker_id, defender_id, boss_fight, outcome,
		  experience, loot_item_id, loot_count, rounds, started_at, ended_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		report.ID, report.Seed, report.AttackerID, report.DefenderID, report.BossFight, report.Outcome,
		report.Experience, lootItem, report.LootCount, report.Rounds, report.StartedAt, report.EndedAt,
	); err != nil {
		return fmt.Errorf("save battle %s: %w", report.ID, err)
	}

	if len(report.Turns) > 0 {
		batch := &pgx.Batch{}
		for _, t := range report.Turns {
			batch.Queue(
				`INSERT INTO battle_turns
				 (battle_id, seq, kind, actor_id, target_id, raw_roll, modified_roll,
				  damage, critical, remaining_hp, defeated, skip_reason)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
				report.ID, t.Seq, t.Kind, t.ActorID, t.TargetID, t.RawRoll, t.ModifiedRoll,
				t.Damage, t.Critical, t.RemainingHP, t.Defeated, t.SkipReason,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range report.Turns {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("save battle turn batch: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close turn batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit battle %s: %w", report.ID, err)
	}
	return nil
}

// GetBattle загружает отчёт о бое вместе с ходами.
func (r *BattleRepository) GetBattle(ctx context.Context, id uuid.UUID) (*model.BattleReport, error) {
	var (
		report   model.BattleReport
		lootItem *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT battle_id, seed, attacker_id, defender_id, boss_fight, outcome,
		        experience, loot_item_id, loot_count, rounds, started_at, ended_at
		 FROM battles WHERE battle_id = $1`, id,
	).Scan(
		&report.ID, &report.Seed, &report.AttackerID, &report.DefenderID, &report.BossFight, &report.Outcome,
		&report.Experience, &lootItem, &report.LootCount, &report.Rounds, &report.StartedAt, &report.EndedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBattleNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying battle %s: %w", id, err)
	}
	if lootItem != nil {
		report.LootItemID = *lootItem
	}

	rows, err := r.pool.Query(ctx,
		`SELECT seq, kind, actor_id, target_id, raw_roll, modified_roll,
		        damage, critical, remaining_hp, defeated, skip_reason
		 FROM battle_turns WHERE battle_id = $1 ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns of battle %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.BattleTurn
		if err := rows.Scan(
			&t.Seq, &t.Kind, &t.ActorID, &t.TargetID, &t.RawRoll, &t.ModifiedRoll,
			&t.Damage, &t.Critical, &t.RemainingHP, &t.Defeated, &t.SkipReason,
		); err != nil {
			return nil, fmt.Errorf("scanning battle turn: %w", err)
		}
		report.Turns = append(report.Turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle turns: %w", err)
	}

	return &report, nil
}

// OutcomeCounts returns how often each outcome occurred against defenderID.
// An empty defenderID counts all battles.
func (r *BattleRepository) OutcomeCounts(ctx context.Context, defenderID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT outcome, COUNT(*) FROM battles
		 WHERE $1 = '' OR defender_id = $1
		 GROUP BY outcome`, defenderID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying outcome counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome counts: %w", err)
	}
	return counts, nil
}
