package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
)

func testCandle(code string, date time.Time) entity.DailyCandle {
	return entity.DailyCandle{
		StockCode:    code,
		Date:         date,
		OpenPrice:    74000,
		HighPrice:    75500,
		LowPrice:     73800,
		ClosePrice:   75000,
		Volume:       12000000,
		TradingValue: 890000000000,
		DiffFromPrev: 500,
		DiffSign:     "2",
		TurnoverRate: 0.21,
	}
}

// TestCandleGorm_InsertNew_Deduplicates は同じ(銘柄, 日付)の日足が
// 二重保存されないことを検証します。
func TestCandleGorm_InsertNew_Deduplicates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	candle := testCandle("005930", date)

	inserted, err := repo.InsertNew(ctx, []entity.DailyCandle{candle})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	inserted, err = repo.InsertNew(ctx, []entity.DailyCandle{candle})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted, "duplicate candle should be skipped")

	var count int64
	db.Model(&DailyCandleModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// TestCandleGorm_InsertNew_MixedBatch は既存と新規が混在するバッチで
// 新規分のみ挿入されることを検証します。
func TestCandleGorm_InsertNew_MixedBatch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	existing := testCandle("005930", date)

	_, err := repo.InsertNew(ctx, []entity.DailyCandle{existing})
	require.NoError(t, err)

	inserted, err := repo.InsertNew(ctx, []entity.DailyCandle{
		existing,
		testCandle("005930", date.AddDate(0, 0, -1)),
		testCandle("005930", date.AddDate(0, 0, -2)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted, "only the two new dates should be inserted")

	var count int64
	db.Model(&DailyCandleModel{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

// TestCandleGorm_FindByCode は日付昇順での取得とフィールドのマッピングを検証します。
func TestCandleGorm_FindByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	_, err := repo.InsertNew(ctx, []entity.DailyCandle{
		testCandle("005930", date),
		testCandle("005930", date.AddDate(0, 0, -1)),
		testCandle("122630", date),
	})
	require.NoError(t, err)

	got, err := repo.FindByCode(ctx, "005930", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(got[1].Date), "candles should be ordered by date ascending")
	assert.Equal(t, int64(74000), got[0].OpenPrice)
	assert.Equal(t, int64(75000), got[0].ClosePrice)
	assert.Equal(t, 0.21, got[0].TurnoverRate)
}
