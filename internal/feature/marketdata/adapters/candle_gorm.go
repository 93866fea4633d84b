package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

type candleGorm struct {
	db *gorm.DB
}

var _ usecase.CandleRepository = (*candleGorm)(nil)

// NewCandleRepository はgormベースのCandleRepositoryを生成します。
func NewCandleRepository(db *gorm.DB) *candleGorm {
	return &candleGorm{db: db}
}

// DailyCandleModel はstock_daily_candlesテーブルの行を表します。
// (stock_code, date)のユニークインデックスが重複挿入の最終防衛線です。
type DailyCandleModel struct {
	ID        uint      `gorm:"primaryKey"`
	StockCode string    `gorm:"size:16;not null;uniqueIndex:candle_code_date,priority:1"`
	Date      time.Time `gorm:"not null;uniqueIndex:candle_code_date,priority:2"`

	OpenPrice    int64
	HighPrice    int64
	LowPrice     int64
	ClosePrice   int64
	Volume       int64
	TradingValue int64
	DiffFromPrev int64
	DiffSign     string `gorm:"size:8"`
	TurnoverRate float64
}

func (DailyCandleModel) TableName() string {
	return "stock_daily_candles"
}

func candleToModel(e entity.DailyCandle) DailyCandleModel {
	return DailyCandleModel{
		StockCode:    e.StockCode,
		Date:         e.Date,
		OpenPrice:    e.OpenPrice,
		HighPrice:    e.HighPrice,
		LowPrice:     e.LowPrice,
		ClosePrice:   e.ClosePrice,
		Volume:       e.Volume,
		TradingValue: e.TradingValue,
		DiffFromPrev: e.DiffFromPrev,
		DiffSign:     e.DiffSign,
		TurnoverRate: e.TurnoverRate,
	}
}

func candleToEntity(m DailyCandleModel) entity.DailyCandle {
	return entity.DailyCandle{
		StockCode:    m.StockCode,
		Date:         m.Date,
		OpenPrice:    m.OpenPrice,
		HighPrice:    m.HighPrice,
		LowPrice:     m.LowPrice,
		ClosePrice:   m.ClosePrice,
		Volume:       m.Volume,
		TradingValue: m.TradingValue,
		DiffFromPrev: m.DiffFromPrev,
		DiffSign:     m.DiffSign,
		TurnoverRate: m.TurnoverRate,
	}
}

// InsertNew は(stock_code, date)が未登録の日足のみ挿入します。
// 既存の日足はスキップされ、更新されません。
func (r *candleGorm) InsertNew(ctx context.Context, candles []entity.DailyCandle) (int, error) {
	inserted := 0
	for _, c := range candles {
		var count int64
		err := r.db.WithContext(ctx).Model(&DailyCandleModel{}).
			Where("stock_code = ? AND date = ?", c.StockCode, c.Date).
			Count(&count).Error
		if err != nil {
			return inserted, err
		}
		if count > 0 {
			continue
		}

		m := candleToModel(c)
		res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

// FindByCode は指定銘柄の日足を日付昇順で返します。
func (r *candleGorm) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.DailyCandle, error) {
	var rows []DailyCandleModel
	q := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.DailyCandle, 0, len(rows))
	for _, m := range rows {
		out = append(out, candleToEntity(m))
	}
	return out, nil
}
