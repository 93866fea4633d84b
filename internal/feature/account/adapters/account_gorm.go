// Package adapters はaccountフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"github.com/sujins0621/StockService/internal/feature/account/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/account/usecase"
)

type accountGorm struct {
	db *gorm.DB
}

var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountRepository はgormベースのAccountRepositoryを生成します。
func NewAccountRepository(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// AccountInfoModel はaccount_infoテーブルの行を表します。
// 常に最新のスナップショット1件だけが保持されます。
type AccountInfoModel struct {
	ID uint `gorm:"primaryKey"`

	AccountName string `gorm:"size:64"`
	BranchName  string `gorm:"size:64"`

	Deposit               int64
	D2Deposit             int64
	TotalEvalAmount       int64
	AssetEvalAmount       int64
	TotalPurchaseAmount   int64
	EstimatedDepositAsset int64
	TotalLoanAmount       int64

	TodayInvestPrincipal int64
	MonthInvestPrincipal int64
	AccumInvestPrincipal int64

	TodayProfitLoss int64
	MonthProfitLoss int64
	AccumProfitLoss int64

	TodayProfitRate float64
	MonthProfitRate float64
	AccumProfitRate float64

	Holdings []AccountHoldingModel `gorm:"foreignKey:AccountInfoID;constraint:OnDelete:CASCADE"`
}

func (AccountInfoModel) TableName() string {
	return "account_info"
}

// AccountHoldingModel はaccount_holdingsテーブルの行を表します。
type AccountHoldingModel struct {
	ID            uint `gorm:"primaryKey"`
	AccountInfoID uint `gorm:"index;not null"`

	StockCode string `gorm:"size:16;not null"`
	StockName string `gorm:"size:64"`
	RemainQty int64
	AvgPrice  float64

	CurrentPrice   int64
	EvalAmount     int64
	ProfitLoss     int64
	ProfitLossRate float64

	LoanDate       string `gorm:"size:16"`
	PurchaseAmount int64
	SettlementQty  int64
	PrevDayBuyQty  int64
	PrevDaySellQty int64
	TodayBuyQty    int64
	TodaySellQty   int64
}

func (AccountHoldingModel) TableName() string {
	return "account_holdings"
}

func accountToModel(e *entity.AccountInfo) AccountInfoModel {
	m := AccountInfoModel{
		AccountName:           e.AccountName,
		BranchName:            e.BranchName,
		Deposit:               e.Deposit,
		D2Deposit:             e.D2Deposit,
		TotalEvalAmount:       e.TotalEvalAmount,
		AssetEvalAmount:       e.AssetEvalAmount,
		TotalPurchaseAmount:   e.TotalPurchaseAmount,
		EstimatedDepositAsset: e.EstimatedDepositAsset,
		TotalLoanAmount:       e.TotalLoanAmount,
		TodayInvestPrincipal:  e.TodayInvestPrincipal,
		MonthInvestPrincipal:  e.MonthInvestPrincipal,
		AccumInvestPrincipal:  e.AccumInvestPrincipal,
		TodayProfitLoss:       e.TodayProfitLoss,
		MonthProfitLoss:       e.MonthProfitLoss,
		AccumProfitLoss:       e.AccumProfitLoss,
		TodayProfitRate:       e.TodayProfitRate,
		MonthProfitRate:       e.MonthProfitRate,
		AccumProfitRate:       e.AccumProfitRate,
	}
	m.Holdings = make([]AccountHoldingModel, 0, len(e.Holdings))
	for _, h := range e.Holdings {
		m.Holdings = append(m.Holdings, AccountHoldingModel{
			StockCode:      h.StockCode,
			StockName:      h.StockName,
			RemainQty:      h.RemainQty,
			AvgPrice:       h.AvgPrice,
			CurrentPrice:   h.CurrentPrice,
			EvalAmount:     h.EvalAmount,
			ProfitLoss:     h.ProfitLoss,
			ProfitLossRate: h.ProfitLossRate,
			LoanDate:       h.LoanDate,
			PurchaseAmount: h.PurchaseAmount,
			SettlementQty:  h.SettlementQty,
			PrevDayBuyQty:  h.PrevDayBuyQty,
			PrevDaySellQty: h.PrevDaySellQty,
			TodayBuyQty:    h.TodayBuyQty,
			TodaySellQty:   h.TodaySellQty,
		})
	}
	return m
}

func accountToEntity(m AccountInfoModel) *entity.AccountInfo {
	e := &entity.AccountInfo{
		AccountName:           m.AccountName,
		BranchName:            m.BranchName,
		Deposit:               m.Deposit,
		D2Deposit:             m.D2Deposit,
		TotalEvalAmount:       m.TotalEvalAmount,
		AssetEvalAmount:       m.AssetEvalAmount,
		TotalPurchaseAmount:   m.TotalPurchaseAmount,
		EstimatedDepositAsset: m.EstimatedDepositAsset,
		TotalLoanAmount:       m.TotalLoanAmount,
		TodayInvestPrincipal:  m.TodayInvestPrincipal,
		MonthInvestPrincipal:  m.MonthInvestPrincipal,
		AccumInvestPrincipal:  m.AccumInvestPrincipal,
		TodayProfitLoss:       m.TodayProfitLoss,
		MonthProfitLoss:       m.MonthProfitLoss,
		AccumProfitLoss:       m.AccumProfitLoss,
		TodayProfitRate:       m.TodayProfitRate,
		MonthProfitRate:       m.MonthProfitRate,
		AccumProfitRate:       m.AccumProfitRate,
	}
	e.Holdings = make([]entity.AccountHolding, 0, len(m.Holdings))
	for _, h := range m.Holdings {
		e.Holdings = append(e.Holdings, entity.AccountHolding{
			StockCode:      h.StockCode,
			StockName:      h.StockName,
			RemainQty:      h.RemainQty,
			AvgPrice:       h.AvgPrice,
			CurrentPrice:   h.CurrentPrice,
			EvalAmount:     h.EvalAmount,
			ProfitLoss:     h.ProfitLoss,
			ProfitLossRate: h.ProfitLossRate,
			LoanDate:       h.LoanDate,
			PurchaseAmount: h.PurchaseAmount,
			SettlementQty:  h.SettlementQty,
			PrevDayBuyQty:  h.PrevDayBuyQty,
			PrevDaySellQty: h.PrevDaySellQty,
			TodayBuyQty:    h.TodayBuyQty,
			TodaySellQty:   h.TodaySellQty,
		})
	}
	return e
}

// Replace は既存のスナップショットと保有銘柄を全削除してから新しいものを
// 保存します。削除と挿入は1トランザクションで行い、途中失敗で
// スナップショットが消えたままにならないようにします。
func (r *accountGorm) Replace(ctx context.Context, info *entity.AccountInfo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&AccountHoldingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&AccountInfoModel{}).Error; err != nil {
			return err
		}
		m := accountToModel(info)
		return tx.Create(&m).Error
	})
}

// Latest は保存済みのスナップショットを保有銘柄込みで返します。
// スナップショットがない場合は(nil, nil)を返します。
func (r *accountGorm) Latest(ctx context.Context) (*entity.AccountInfo, error) {
	var rows []AccountInfoModel
	err := r.db.WithContext(ctx).Preload("Holdings").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return accountToEntity(rows[0]), nil
}
