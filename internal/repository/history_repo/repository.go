package history_repo

import (
	"context"
	"fmt"
	"time"

	"roulette_casino/internal/model"
	"roulette_casino/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table            = "history"
	colID            = "id"
	colPlayerID      = "player_id"
	colBetDesc       = "bet_desc"
	colAmount        = "amount"
	colStatus        = "status"
	colOutcomeNumber = "outcome_number"
	colPayout        = "payout"
	colCreatedAt     = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewHistoryRepository(dbc *pgxpool.Pool) repository.HistoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// RecordHistory - сохраняет сыгранный раунд
func (r *repo) RecordHistory(ctx context.Context, rec model.HistoryRecord) (int64, error) {
	sqlStr, args, err := insertHistory(rec).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FetchHistory - последние limit раундов игрока, свежие первыми
func (r *repo) FetchHistory(ctx context.Context, playerID int64, limit int) ([]model.HistoryRecord, error) {
	sqlStr, args, err := selectHistory(playerID, limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.HistoryRecord, 0, limit)
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
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ClearHistory - удаляет всю историю игрока
func (r *repo) ClearHistory(ctx context.Context, playerID int64) error {
	sqlStr, args, err := deleteHistory(playerID).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// Формируем запросы

func insertHistory(rec model.HistoryRecord) sq.InsertBuilder {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return sq.Insert(table).
		Columns(colPlayerID, colBetDesc, colAmount, colStatus, colOutcomeNumber, colPayout, colCreatedAt).
		Values(rec.PlayerID, rec.BetDesc, rec.Amount.String(), string(rec.Status), int(rec.OutcomeSlot), rec.Payout.String(), rec.CreatedAt.UTC()).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)
}

func selectHistory(playerID int64, limit int) sq.SelectBuilder {
	return sq.Select(colID, colPlayerID, colBetDesc, colAmount+"::text", colStatus, colOutcomeNumber, colPayout+"::text", colCreatedAt).
		From(table).
		Where(sq.Eq{colPlayerID: playerID}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)
}

func deleteHistory(playerID int64) sq.DeleteBuilder {
	return sq.Delete(table).
		Where(sq.Eq{colPlayerID: playerID}).
		PlaceholderFormat(sq.Dollar)
}
