package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

type flowGorm struct {
	db *gorm.DB
}

var _ usecase.FlowRepository = (*flowGorm)(nil)

// NewFlowRepository はgormベースのFlowRepositoryを生成します。
func NewFlowRepository(db *gorm.DB) *flowGorm {
	return &flowGorm{db: db}
}

// InvestorFlowModel はstock_investor_flowsテーブルの行を表します。
// 収集時刻がキーの役割を果たすため追記専用で、ユニーク制約はありません。
type InvestorFlowModel struct {
	ID        uint      `gorm:"primaryKey"`
	Time      time.Time `gorm:"not null"`
	StockCode string    `gorm:"size:16;not null;index"`
	Date      time.Time `gorm:"not null"`

	CurrentPrice    int64
	DiffFromPrev    int64
	FluctuationRate float64
	Volume          int64
	TradingValue    int64

	Individual      int64
	Foreigner       int64
	Institution     int64
	FinancialInvest int64
	Insurance       int64
	InvestmentTrust int64
	EtcFinance      int64
	Bank            int64
	PensionFund     int64
	PrivateFund     int64
	Nation          int64
	EtcCorp         int64
	ForeignNational int64
}

func (InvestorFlowModel) TableName() string {
	return "stock_investor_flows"
}

func flowToModel(e entity.InvestorFlow) InvestorFlowModel {
	return InvestorFlowModel{
		Time:            e.Time,
		StockCode:       e.StockCode,
		Date:            e.Date,
		CurrentPrice:    e.CurrentPrice,
		DiffFromPrev:    e.DiffFromPrev,
		FluctuationRate: e.FluctuationRate,
		Volume:          e.Volume,
		TradingValue:    e.TradingValue,
		Individual:      e.Individual,
		Foreigner:       e.Foreigner,
		Institution:     e.Institution,
		FinancialInvest: e.FinancialInvest,
		Insurance:       e.Insurance,
		InvestmentTrust: e.InvestmentTrust,
		EtcFinance:      e.EtcFinance,
		Bank:            e.Bank,
		PensionFund:     e.PensionFund,
		PrivateFund:     e.PrivateFund,
		Nation:          e.Nation,
		EtcCorp:         e.EtcCorp,
		ForeignNational: e.ForeignNational,
	}
}

func flowToEntity(m InvestorFlowModel) entity.InvestorFlow {
	return entity.InvestorFlow{
		Time:            m.Time,
		StockCode:       m.StockCode,
		Date:            m.Date,
		CurrentPrice:    m.CurrentPrice,
		DiffFromPrev:    m.DiffFromPrev,
		FluctuationRate: m.FluctuationRate,
		Volume:          m.Volume,
		TradingValue:    m.TradingValue,
		Individual:      m.Individual,
		Foreigner:       m.Foreigner,
		Institution:     m.Institution,
		FinancialInvest: m.FinancialInvest,
		Insurance:       m.Insurance,
		InvestmentTrust: m.InvestmentTrust,
		EtcFinance:      m.EtcFinance,
		Bank:            m.Bank,
		PensionFund:     m.PensionFund,
		PrivateFund:     m.PrivateFund,
		Nation:          m.Nation,
		EtcCorp:         m.EtcCorp,
		ForeignNational: m.ForeignNational,
	}
}

// InsertBatch はレコードを無条件に一括追加します。
func (r *flowGorm) InsertBatch(ctx context.Context, flows []entity.InvestorFlow) error {
	if len(flows) == 0 {
		return nil
	}
	ms := make([]InvestorFlowModel, 0, len(flows))
	for _, f := range flows {
		ms = append(ms, flowToModel(f))
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// FindByCode は指定銘柄のレコードを収集時刻昇順で返します。
func (r *flowGorm) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.InvestorFlow, error) {
	var rows []InvestorFlowModel
	q := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("time ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.InvestorFlow, 0, len(rows))
	for _, m := range rows {
		out = append(out, flowToEntity(m))
	}
	return out, nil
}
