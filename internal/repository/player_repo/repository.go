package player_repo

import (
	"context"
	"errors"
	"fmt"

	"roulette_casino/internal/model"
	"roulette_casino/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table      = "players"
	colID      = "id"
	colName    = "name"
	colBalance = "balance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPlayerRepository(dbc *pgxpool.Pool) repository.PlayerRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// LoadPlayer - возвращает игрока по имени
func (r *repo) LoadPlayer(ctx context.Context, name string) (*model.PlayerAccount, error) {
	return r.scanOne(ctx, selectPlayer(sq.Eq{colName: name}))
}

// GetPlayer - возвращает игрока по ID
func (r *repo) GetPlayer(ctx context.Context, id int64) (*model.PlayerAccount, error) {
	return r.scanOne(ctx, selectPlayer(sq.Eq{colID: id}))
}

func (r *repo) scanOne(ctx context.Context, query sq.SelectBuilder) (*model.PlayerAccount, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p       model.PlayerAccount
		balance string
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.Name, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	p.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("player %d: bad balance %q: %w", p.ID, balance, err)
	}
	return &p, nil
}

// CreatePlayer - создает нового игрока.
// Возвращает ID созданного игрока
func (r *repo) CreatePlayer(ctx context.Context, name string, balance decimal.Decimal) (int64, error) {
	sqlStr, args, err := insertPlayer(name, balance).ToSql()
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

// UpdateBalance - записывает новый баланс игрока
func (r *repo) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	sqlStr, args, err := updateBalance(id, balance).ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrPlayerNotFound
	}

	return nil
}

// DeletePlayer - удаляет игрока, история удаляется каскадно
func (r *repo) DeletePlayer(ctx context.Context, id int64) error {
	sqlStr, args, err := deletePlayer(id).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// Формируем запросы

func selectPlayer(where sq.Eq) sq.SelectBuilder {
	return sq.Select(colID, colName, colBalance+"::text").
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)
}

func insertPlayer(name string, balance decimal.Decimal) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colName, colBalance).
		Values(name, balance.String()).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)
}

func updateBalance(id int64, balance decimal.Decimal) sq.UpdateBuilder {
	return sq.Update(table).
		Set(colBalance, balance.String()).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)
}

func deletePlayer(id int64) sq.DeleteBuilder {
	return sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)
}
