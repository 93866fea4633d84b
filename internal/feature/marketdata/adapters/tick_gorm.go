// Package adapters はmarketdataフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

type tickGorm struct {
	db *gorm.DB
}

var _ usecase.TickRepository = (*tickGorm)(nil)

// NewTickRepository はgormベースのTickRepositoryを生成します。
func NewTickRepository(db *gorm.DB) *tickGorm {
	return &tickGorm{db: db}
}

// PriceTickModel はstock_price_ticksテーブルの行を表します。
// (stock_code, time)のユニークインデックスが重複挿入の最終防衛線です。
type PriceTickModel struct {
	ID        uint      `gorm:"primaryKey"`
	StockCode string    `gorm:"size:16;not null;uniqueIndex:tick_code_time,priority:1"`
	Time      time.Time `gorm:"not null;uniqueIndex:tick_code_time,priority:2"`

	CurrentPrice    int64
	DiffFromPrev    int64
	DiffSign        string `gorm:"size:8"`
	FluctuationRate float64
	Volume          int64
	AccTradeValue   int64
	AccTradeVolume  int64
	VolumePower     float64
	VolumePower5m   float64
	VolumePower20m  float64
	VolumePower60m  float64
	ExchangeType    string `gorm:"size:8"`
}

func (PriceTickModel) TableName() string {
	return "stock_price_ticks"
}

func tickToModel(e entity.PriceTick) PriceTickModel {
	return PriceTickModel{
		StockCode:       e.StockCode,
		Time:            e.Time,
		CurrentPrice:    e.CurrentPrice,
		DiffFromPrev:    e.DiffFromPrev,
		DiffSign:        e.DiffSign,
		FluctuationRate: e.FluctuationRate,
		Volume:          e.Volume,
		AccTradeValue:   e.AccTradeValue,
		AccTradeVolume:  e.AccTradeVolume,
		VolumePower:     e.VolumePower,
		VolumePower5m:   e.VolumePower5m,
		VolumePower20m:  e.VolumePower20m,
		VolumePower60m:  e.VolumePower60m,
		ExchangeType:    e.ExchangeType,
	}
}

func tickToEntity(m PriceTickModel) entity.PriceTick {
	return entity.PriceTick{
		StockCode:       m.StockCode,
		Time:            m.Time,
		CurrentPrice:    m.CurrentPrice,
		DiffFromPrev:    m.DiffFromPrev,
		DiffSign:        m.DiffSign,
		FluctuationRate: m.FluctuationRate,
		Volume:          m.Volume,
		AccTradeValue:   m.AccTradeValue,
		AccTradeVolume:  m.AccTradeVolume,
		VolumePower:     m.VolumePower,
		VolumePower5m:   m.VolumePower5m,
		VolumePower20m:  m.VolumePower20m,
		VolumePower60m:  m.VolumePower60m,
		ExchangeType:    m.ExchangeType,
	}
}

// InsertNew は(stock_code, time)が未登録のティックのみ挿入します。
// 既存レコードはスキップされ、更新も衝突報告もされません。
func (r *tickGorm) InsertNew(ctx context.Context, ticks []entity.PriceTick) (int, error) {
	inserted := 0
	for _, t := range ticks {
		var count int64
		err := r.db.WithContext(ctx).Model(&PriceTickModel{}).
			Where("stock_code = ? AND time = ?", t.StockCode, t.Time).
			Count(&count).Error
		if err != nil {
			return inserted, err
		}
		if count > 0 {
			continue
		}

		// 存在チェックと挿入の間の競合はユニークインデックス + DoNothingで吸収
		m := tickToModel(t)
		res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

// FindByCode は指定銘柄のティックを時刻昇順で返します。
func (r *tickGorm) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.PriceTick, error) {
	var rows []PriceTickModel
	q := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("time ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceTick, 0, len(rows))
	for _, m := range rows {
		out = append(out, tickToEntity(m))
	}
	return out, nil
}
