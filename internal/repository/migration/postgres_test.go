package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx записывает выполненные выражения; остальные методы pgx.Tx не нужны
type fakeTx struct {
	pgx.Tx

	execErr    error
	failOn     int
	stmts      []string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.stmts = append(tx.stmts, sql)
	if tx.execErr != nil && len(tx.stmts) == tx.failOn {
		return pgconn.CommandTag{}, tx.execErr
	}
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx  *fakeTx
	err error
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.err != nil {
		return nil, db.err
	}
	return db.tx, nil
}

func TestPostgresAppliesSchemaInOneTx(t *testing.T) {
	tx := &fakeTx{}
	require.NoError(t, Postgres(context.Background(), &fakeDB{tx: tx}))

	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	require.Len(t, tx.stmts, 3)
	assert.Contains(t, tx.stmts[0], "CREATE TABLE IF NOT EXISTS players")
	assert.Contains(t, tx.stmts[0], "name TEXT NOT NULL UNIQUE")
	assert.Contains(t, tx.stmts[1], "REFERENCES players(id) ON DELETE CASCADE")
	assert.Contains(t, tx.stmts[2], "idx_history_player_id")
}

func TestPostgresSchemaHasRepositoryColumns(t *testing.T) {
	history := postgresSchema[1]
	for _, col := range []string{"player_id", "bet_desc", "amount", "status", "outcome_number", "payout", "created_at"} {
		assert.True(t, strings.Contains(history, col+" "), "history missing %s", col)
	}
	assert.Contains(t, postgresSchema[0], "balance NUMERIC")
}

func TestPostgresRollsBackOnError(t *testing.T) {
	boom := errors.New("permission denied")
	tx := &fakeTx{execErr: boom, failOn: 2}

	err := Postgres(context.Background(), &fakeDB{tx: tx})
	require.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Len(t, tx.stmts, 2)

	err = Postgres(context.Background(), &fakeDB{err: boom})
	assert.ErrorIs(t, err, boom)
}
