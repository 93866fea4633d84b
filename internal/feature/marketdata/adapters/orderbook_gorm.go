package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

type orderBookGorm struct {
	db *gorm.DB
}

var _ usecase.OrderBookRepository = (*orderBookGorm)(nil)

// NewOrderBookRepository はgormベースのOrderBookRepositoryを生成します。
func NewOrderBookRepository(db *gorm.DB) *orderBookGorm {
	return &orderBookGorm{db: db}
}

// OrderBookModel はstock_order_booksテーブルの行を表します。
// 追記専用のためユニーク制約はありません。同じ銘柄・時刻の行が複数あっても正常です。
type OrderBookModel struct {
	ID              uint      `gorm:"primaryKey"`
	StockCode       string    `gorm:"size:16;not null;index"`
	Time            time.Time `gorm:"not null"`
	TotalSellRemain int64
	TotalBuyRemain  int64
}

func (OrderBookModel) TableName() string {
	return "stock_order_books"
}

// Insert はスナップショットを無条件に追加します。
func (r *orderBookGorm) Insert(ctx context.Context, snapshot *entity.OrderBookSnapshot) error {
	m := OrderBookModel{
		StockCode:       snapshot.StockCode,
		Time:            snapshot.Time,
		TotalSellRemain: snapshot.TotalSellRemain,
		TotalBuyRemain:  snapshot.TotalBuyRemain,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// FindByCode は指定銘柄のスナップショットを時刻昇順で返します。
func (r *orderBookGorm) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.OrderBookSnapshot, error) {
	var rows []OrderBookModel
	q := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("time ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.OrderBookSnapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.OrderBookSnapshot{
			StockCode:       m.StockCode,
			Time:            m.Time,
			TotalSellRemain: m.TotalSellRemain,
			TotalBuyRemain:  m.TotalBuyRemain,
		})
	}
	return out, nil
}
