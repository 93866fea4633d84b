// Package kiwoom はKiwoom REST APIから口座評価を取得するAccountSource実装です。
package kiwoom

import (
	"context"

	"github.com/sujins0621/StockService/internal/feature/account/adapters/kiwoom/dto"
	"github.com/sujins0621/StockService/internal/feature/account/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/account/usecase"
	"github.com/sujins0621/StockService/internal/platform/kiwoom"
)

// trAccount は口座評価現況 (account evaluation) のTR選択子です。
const trAccount = "kt00004"

// Account はKiwoom APIから口座評価スナップショットを取得します。
type Account struct {
	client *kiwoom.Client
}

var _ usecase.AccountSource = (*Account)(nil)

// NewAccount はAccountの新しいインスタンスを生成します。
func NewAccount(client *kiwoom.Client) *Account {
	return &Account{client: client}
}

// FetchAccount は口座全体の評価と保有銘柄リストを取得します。
func (a *Account) FetchAccount(ctx context.Context, token string) (*entity.AccountInfo, error) {
	var res dto.AccountResponse
	body := map[string]string{
		"qry_tp":       "0",   // 전체 (all holdings)
		"dmst_stex_tp": "KRX", // 한국거래소
	}
	if err := a.client.PostJSON(ctx, "/api/dostk/acnt", trAccount, token, body, &res); err != nil {
		return nil, err
	}

	info := &entity.AccountInfo{
		AccountName:           res.AccountName,
		BranchName:            res.BranchName,
		Deposit:               kiwoom.ParseInt64(res.Deposit),
		D2Deposit:             kiwoom.ParseInt64(res.D2Deposit),
		TotalEvalAmount:       kiwoom.ParseInt64(res.TotalEvalAmount),
		AssetEvalAmount:       kiwoom.ParseInt64(res.AssetEvalAmount),
		TotalPurchaseAmount:   kiwoom.ParseInt64(res.TotalPurchaseAmount),
		EstimatedDepositAsset: kiwoom.ParseInt64(res.EstimatedDepositAsset),
		TotalLoanAmount:       kiwoom.ParseInt64(res.TotalLoanAmount),
		TodayInvestPrincipal:  kiwoom.ParseInt64(res.TodayInvestPrincipal),
		MonthInvestPrincipal:  kiwoom.ParseInt64(res.MonthInvestPrincipal),
		AccumInvestPrincipal:  kiwoom.ParseInt64(res.AccumInvestPrincipal),
		TodayProfitLoss:       kiwoom.ParseInt64(res.TodayProfitLoss),
		MonthProfitLoss:       kiwoom.ParseInt64(res.MonthProfitLoss),
		AccumProfitLoss:       kiwoom.ParseInt64(res.AccumProfitLoss),
		TodayProfitRate:       kiwoom.ParseFloat(res.TodayProfitRate),
		MonthProfitRate:       kiwoom.ParseFloat(res.MonthProfitRate),
		AccumProfitRate:       kiwoom.ParseFloat(res.AccumProfitRate),
	}

	info.Holdings = make([]entity.AccountHolding, 0, len(res.Holdings))
	for _, row := range res.Holdings {
		info.Holdings = append(info.Holdings, entity.AccountHolding{
			StockCode:      row.StockCode,
			StockName:      row.StockName,
			RemainQty:      kiwoom.ParseInt64(row.RemainQty),
			AvgPrice:       kiwoom.ParseFloat(row.AvgPrice),
			CurrentPrice:   kiwoom.ParseInt64(row.CurrentPrice),
			EvalAmount:     kiwoom.ParseInt64(row.EvalAmount),
			ProfitLoss:     kiwoom.ParseInt64(row.ProfitLoss),
			ProfitLossRate: kiwoom.ParseFloat(row.ProfitLossRate),
			LoanDate:       row.LoanDate,
			PurchaseAmount: kiwoom.ParseInt64(row.PurchaseAmount),
			SettlementQty:  kiwoom.ParseInt64(row.SettlementQty),
			PrevDayBuyQty:  kiwoom.ParseInt64(row.PrevDayBuyQty),
			PrevDaySellQty: kiwoom.ParseInt64(row.PrevDaySellQty),
			TodayBuyQty:    kiwoom.ParseInt64(row.TodayBuyQty),
			TodaySellQty:   kiwoom.ParseInt64(row.TodaySellQty),
		})
	}
	return info, nil
}
