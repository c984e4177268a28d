package sqlite_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roulette_casino/internal/model"

	sq "github.com/Masterminds/squirrel"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	playersTable = "players"
	historyTable = "history"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	// ErrDuplicateName игрок с таким именем уже есть
	ErrDuplicateName = errors.New("player name already taken")
)

// Store хранилище игроков и истории в одном файле SQLite.
// Реализует repository.PlayerRepository и repository.HistoryRepository.
type Store struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
}

// New открывает или создаёт базу по пути dbPath и накатывает схему
func New(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite пишет в один поток

	s := &Store{db: db, getter: trmsql.DefaultCtxGetter}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB для менеджера транзакций
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			balance TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			bet_desc TEXT NOT NULL,
			amount TEXT NOT NULL,
			status TEXT NOT NULL,
			outcome_number INTEGER NOT NULL,
			payout TEXT NOT NULL DEFAULT '0',
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(player_id) REFERENCES players(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_player_id ON history(player_id, id DESC);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) conn(ctx context.Context) trmsql.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.db)
}

// --------- Players ---------

func (s *Store) LoadPlayer(ctx context.Context, name string) (*model.PlayerAccount, error) {
	return s.player(ctx, sq.Eq{"name": name})
}

func (s *Store) GetPlayer(ctx context.Context, id int64) (*model.PlayerAccount, error) {
	return s.player(ctx, sq.Eq{"id": id})
}

func (s *Store) player(ctx context.Context, where sq.Eq) (*model.PlayerAccount, error) {
	sqlStr, args, err := psql.Select("id", "name", "balance").From(playersTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p       model.PlayerAccount
		balance string
	)
	err = s.conn(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(&p.ID, &p.Name, &balance)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, model.ErrPlayerNotFound
	case err != nil:
		return nil, err
	}

	if p.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("player %d: bad balance %q: %w", p.ID, balance, err)
	}
	return &p, nil
}

func (s *Store) CreatePlayer(ctx context.Context, name string, balance decimal.Decimal) (int64, error) {
	sqlStr, args, err := psql.Insert(playersTable).
		Columns("name", "balance").
		Values(name, balance.String()).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueErr(err) {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	sqlStr, args, err := psql.Update(playersTable).
		Set("balance", balance.String()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	sqlStr, args, err := psql.Delete(playersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	return err
}

// --------- History ---------

func (s *Store) RecordHistory(ctx context.Context, rec model.HistoryRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sqlStr, args, err := psql.Insert(historyTable).
		Columns("player_id", "bet_desc", "amount", "status", "outcome_number", "payout", "created_at").
		Values(rec.PlayerID, rec.BetDesc, rec.Amount.String(), string(rec.Status), int(rec.OutcomeSlot), rec.Payout.String(), createdAt.UTC()).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FetchHistory последние limit записей игрока, свежие первыми
func (s *Store) FetchHistory(ctx context.Context, playerID int64, limit int) ([]model.HistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	sqlStr, args, err := psql.Select("id", "player_id", "bet_desc", "amount", "status", "outcome_number", "payout", "created_at").
		From(historyTable).
		Where(sq.Eq{"player_id": playerID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HistoryRecord, 0, limit)
	for rows.Next() {
		var (
			rec            model.HistoryRecord
			amount, payout string
			status         string
			slot           int
		)
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &rec.BetDesc, &amount, &status, &slot, &payout, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("history %d: bad amount %q: %w", rec.ID, amount, err)
		}
		if rec.Payout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("history %d: bad payout %q: %w", rec.ID, payout, err)
		}
		rec.Status = model.Outcome(status)
		rec.OutcomeSlot = model.Slot(slot)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) ClearHistory(ctx context.Context, playerID int64) error {
	sqlStr, args, err := psql.Delete(historyTable).Where(sq.Eq{"player_id": playerID}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	return err
}

// isUniqueErr нарушение UNIQUE (драйвер включает расширенные коды ошибок)
func isUniqueErr(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
