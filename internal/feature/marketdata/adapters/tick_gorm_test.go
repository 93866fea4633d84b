package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&PriceTickModel{},
		&OrderBookModel{},
		&DailyCandleModel{},
		&InvestorFlowModel{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func testTick(code string, tm time.Time) entity.PriceTick {
	return entity.PriceTick{
		StockCode:       code,
		Time:            tm,
		CurrentPrice:    75000,
		DiffFromPrev:    500,
		DiffSign:        "2",
		FluctuationRate: 0.67,
		Volume:          1200,
		AccTradeValue:   900000000,
		AccTradeVolume:  1500000,
		VolumePower:     105.3,
		VolumePower5m:   98.1,
		VolumePower20m:  101.0,
		VolumePower60m:  99.7,
		ExchangeType:    "1",
	}
}

// TestTickGorm_InsertNew_Deduplicates は同じ(銘柄, 時刻)のティックが
// 二重保存されないことを検証します。
func TestTickGorm_InsertNew_Deduplicates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickRepository(db)
	ctx := context.Background()

	baseTime := time.Date(2025, 3, 14, 9, 30, 15, 0, time.UTC)
	tick := testTick("005930", baseTime)

	inserted, err := repo.InsertNew(ctx, []entity.PriceTick{tick})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted, "first insert should store one row")

	// 同一レコードの再提出は何も挿入しない
	inserted, err = repo.InsertNew(ctx, []entity.PriceTick{tick})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted, "duplicate insert should be skipped")

	var count int64
	db.Model(&PriceTickModel{}).Count(&count)
	assert.Equal(t, int64(1), count, "exactly one row should be stored")
}

// TestTickGorm_InsertNew_DistinctKeys は銘柄または時刻が異なれば別行として
// 保存されることを検証します。
func TestTickGorm_InsertNew_DistinctKeys(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickRepository(db)
	ctx := context.Background()

	baseTime := time.Date(2025, 3, 14, 9, 30, 15, 0, time.UTC)

	inserted, err := repo.InsertNew(ctx, []entity.PriceTick{
		testTick("005930", baseTime),
		testTick("005930", baseTime.Add(time.Minute)),
		testTick("000660", baseTime),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	var count int64
	db.Model(&PriceTickModel{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

// TestTickGorm_FindByCode は銘柄での絞り込みと時刻昇順の並びを検証します。
func TestTickGorm_FindByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickRepository(db)
	ctx := context.Background()

	baseTime := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	_, err := repo.InsertNew(ctx, []entity.PriceTick{
		testTick("005930", baseTime.Add(2*time.Minute)),
		testTick("005930", baseTime),
		testTick("000660", baseTime),
	})
	require.NoError(t, err)

	got, err := repo.FindByCode(ctx, "005930", 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "should return only 005930 ticks")
	assert.True(t, got[0].Time.Before(got[1].Time), "ticks should be ordered by time ascending")
	assert.Equal(t, int64(75000), got[0].CurrentPrice)
	assert.Equal(t, 105.3, got[0].VolumePower)
}

// TestTickGorm_FindByCode_Empty は該当なしの場合に空のスライスが返ることを検証します。
func TestTickGorm_FindByCode_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickRepository(db)

	got, err := repo.FindByCode(context.Background(), "999999", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
