package history_repo

import (
	"testing"
	"time"

	"roulette_casino/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertHistoryQuery(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
	rec := model.HistoryRecord{
		PlayerID:    4,
		BetDesc:     "Number 17",
		Amount:      decimal.NewFromInt(50),
		Status:      model.OutcomeWin,
		OutcomeSlot: 17,
		Payout:      decimal.NewFromInt(1800),
		CreatedAt:   at,
	}

	sqlStr, args, err := insertHistory(rec).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO history (player_id,bet_desc,amount,status,outcome_number,payout,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id",
		sqlStr)
	require.Len(t, args, 7)
	assert.Equal(t, int64(4), args[0])
	assert.Equal(t, "Number 17", args[1])
	assert.Equal(t, "50", args[2])
	assert.Equal(t, "WIN", args[3])
	assert.Equal(t, 17, args[4])
	assert.Equal(t, "1800", args[5])
	assert.Equal(t, at.UTC(), args[6])
}

func TestInsertHistoryDefaultsCreatedAt(t *testing.T) {
	before := time.Now().UTC()
	_, args, err := insertHistory(model.HistoryRecord{PlayerID: 1, Amount: decimal.NewFromInt(1)}).ToSql()
	require.NoError(t, err)

	created, ok := args[6].(time.Time)
	require.True(t, ok)
	assert.False(t, created.Before(before.Add(-time.Second)))
}

func TestSelectAndDeleteHistoryQueries(t *testing.T) {
	sqlStr, args, err := selectHistory(4, 20).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, player_id, bet_desc, amount::text, status, outcome_number, payout::text, created_at FROM history WHERE player_id = $1 ORDER BY id DESC LIMIT 20",
		sqlStr)
	assert.Equal(t, []interface{}{int64(4)}, args)

	sqlStr, args, err = deleteHistory(4).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM history WHERE player_id = $1", sqlStr)
	assert.Equal(t, []interface{}{int64(4)}, args)
}
