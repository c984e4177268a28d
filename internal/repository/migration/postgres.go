package migration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner *pgxpool.Pool или *pgx.Conn
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		balance NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		bet_desc TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		outcome_number SMALLINT NOT NULL,
		payout NUMERIC NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_player_id ON history(player_id, id DESC)`,
}

// Postgres создаёт таблицы игроков и истории, если их ещё нет
func Postgres(ctx context.Context, db TxBeginner) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range postgresSchema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit(ctx)
}
