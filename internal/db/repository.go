package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/match"
)

// MatchRepository stores finished round summaries.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates a repository over pool.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Save inserts a result. Saving the same round twice is a no-op.
func (r *MatchRepository) Save(ctx context.Context, res match.Result) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO matches (id, started_at, duration_ms, ticks, seed, winner, reason,
		                      player_hp, enemy_hp, player_skills, enemy_skills,
		                      player_arrows, enemy_arrows, player_damage, enemy_damage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (id) DO NOTHING`,
		res.ID.String(), res.StartedAt, res.Duration.Milliseconds(), res.Ticks, int64(res.Seed),
		res.Winner.String(), string(res.Reason),
		res.PlayerHP, res.EnemyHP, usesToSQL(res.PlayerSkills), usesToSQL(res.EnemySkills),
		res.PlayerArrows, res.EnemyArrows, res.PlayerDamage, res.EnemyDamage,
	)
	if err != nil {
		return fmt.Errorf("saving match %s: %w", res.ID, err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]match.Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, started_at, duration_ms, ticks, seed, winner, reason,
		        player_hp, enemy_hp, player_skills, enemy_skills,
		        player_arrows, enemy_arrows, player_damage, enemy_damage
		 FROM matches
		 ORDER BY started_at DESC, id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent matches: %w", err)
	}
	defer rows.Close()

	results := make([]match.Result, 0, limit)
	for rows.Next() {
		var (
			res                       match.Result
			id, winner, reason        string
			durationMS, seed          int64
			playerSkills, enemySkills []int32
		)
		if err := rows.Scan(&id, &res.StartedAt, &durationMS, &res.Ticks, &seed, &winner, &reason,
			&res.PlayerHP, &res.EnemyHP, &playerSkills, &enemySkills,
			&res.PlayerArrows, &res.EnemyArrows, &res.PlayerDamage, &res.EnemyDamage); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}

		res.ID, err = ulid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing match id %q: %w", id, err)
		}
		res.Duration = time.Duration(durationMS) * time.Millisecond
		res.Seed = uint64(seed)
		res.Reason = match.Reason(reason)
		res.Winner = match.WinnerPlayer
		if winner == match.WinnerEnemy.String() {
			res.Winner = match.WinnerEnemy
		}
		res.PlayerSkills = usesFromSQL(playerSkills)
		res.EnemySkills = usesFromSQL(enemySkills)

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating match rows: %w", err)
	}
	return results, nil
}

func usesToSQL(uses [combat.AbilityCount]int) []int32 {
	out := make([]int32, len(uses))
	for i, n := range uses {
		out[i] = int32(n)
	}
	return out
}

func usesFromSQL(v []int32) [combat.AbilityCount]int {
	var out [combat.AbilityCount]int
	for i := range min(len(v), len(out)) {
		out[i] = int(v[i])
	}
	return out
}
