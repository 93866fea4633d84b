// Package kiwoom はKiwoom REST APIから市場データを取得するMarketDataSource実装です。
package kiwoom

import (
	"context"
	"time"

	"github.com/sujins0621/StockService/internal/feature/marketdata/adapters/kiwoom/dto"
	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
	"github.com/sujins0621/StockService/internal/platform/kiwoom"
)

// TR選択子。リクエストするレポートをapi-idヘッダーで識別します。
const (
	trPriceTick    = "ka10046" // 체결강도 (execution strength)
	trOrderBook    = "ka10004" // 호가 (order book)
	trDailyCandle  = "ka10081" // 일봉 차트 (daily chart)
	trInvestorFlow = "ka10059" // 투자자별 매매 (investor flow)
)

// candleRetentionDays は日足を永続化対象とする直近日数です。
const candleRetentionDays = 7

// Market はKiwoom APIから4種類の市場データを取得します。
type Market struct {
	client *kiwoom.Client
	now    func() time.Time
}

// MarketがMarketDataSourceを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataSource = (*Market)(nil)

// NewMarket はMarketの新しいインスタンスを生成します。
// タイムスタンプの再構成には韓国取引所のタイムゾーンを使用します。
func NewMarket(client *kiwoom.Client) *Market {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.Local
	}
	return &Market{
		client: client,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// FetchPriceTicks は체결강도レスポンスの先頭要素（最新）を1件のPriceTickとして返します。
// リストが欠損または空の場合はエラーなしで空を返します。
func (m *Market) FetchPriceTicks(ctx context.Context, token, stockCode string) ([]entity.PriceTick, error) {
	var res dto.PriceTickResponse
	body := map[string]string{"stk_cd": stockCode}
	if err := m.client.PostJSON(ctx, "/api/dostk/mrkcond", trPriceTick, token, body, &res); err != nil {
		return nil, err
	}
	if len(res.List) == 0 {
		return nil, nil
	}

	row := res.List[0]
	now := m.now()
	return []entity.PriceTick{{
		StockCode:       stockCode,
		Time:            kiwoom.TimeOfDay(row.Time, now),
		CurrentPrice:    kiwoom.ParseInt64(row.CurrentPrice),
		DiffFromPrev:    kiwoom.ParseInt64(row.DiffFromPrev),
		DiffSign:        row.DiffSign,
		FluctuationRate: kiwoom.ParseFloat(row.FluctuationRate),
		Volume:          kiwoom.ParseInt64(row.Volume),
		AccTradeValue:   kiwoom.ParseInt64(row.AccTradeValue),
		AccTradeVolume:  kiwoom.ParseInt64(row.AccTradeVolume),
		VolumePower:     kiwoom.ParseFloat(row.VolumePower),
		VolumePower5m:   kiwoom.ParseFloat(row.VolumePower5m),
		VolumePower20m:  kiwoom.ParseFloat(row.VolumePower20m),
		VolumePower60m:  kiwoom.ParseFloat(row.VolumePower60m),
		ExchangeType:    row.ExchangeType,
	}}, nil
}

// FetchOrderBook は板情報のスナップショットを返します。レスポンスのフィールドは
// トップレベルまたは"output"サブオブジェクトのどちらかに現れるため両方を見ます。
func (m *Market) FetchOrderBook(ctx context.Context, token, stockCode string) (*entity.OrderBookSnapshot, error) {
	var res dto.OrderBookResponse
	body := map[string]string{"stk_cd": stockCode}
	if err := m.client.PostJSON(ctx, "/api/dostk/mrkcond", trOrderBook, token, body, &res); err != nil {
		return nil, err
	}

	f := res.Fields()
	return &entity.OrderBookSnapshot{
		StockCode:       stockCode,
		Time:            kiwoom.TimeOfDay(f.Time, m.now()),
		TotalSellRemain: kiwoom.ParseInt64(f.TotalSellRemain),
		TotalBuyRemain:  kiwoom.ParseInt64(f.TotalBuyRemain),
	}, nil
}

// FetchDailyCandles は日足チャートを取得し、直近7日分に絞って返します。
func (m *Market) FetchDailyCandles(ctx context.Context, token, stockCode string) ([]entity.DailyCandle, error) {
	now := m.now()
	var res dto.DailyCandleResponse
	body := map[string]string{
		"stk_cd":       stockCode,
		"base_dt":      now.Format("20060102"),
		"upd_stkpc_tp": "0", // 수정주가 미적용 (no adjusted-price restatement)
	}
	if err := m.client.PostJSON(ctx, "/api/dostk/chart", trDailyCandle, token, body, &res); err != nil {
		return nil, err
	}

	weekAgo := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -candleRetentionDays)

	candles := make([]entity.DailyCandle, 0, len(res.List))
	for _, row := range res.List {
		date := kiwoom.DateYYYYMMDD(row.Date, now)
		if date.Before(weekAgo) {
			continue
		}
		candles = append(candles, entity.DailyCandle{
			StockCode:    stockCode,
			Date:         date,
			OpenPrice:    kiwoom.ParseInt64(row.OpenPrice),
			HighPrice:    kiwoom.ParseInt64(row.HighPrice),
			LowPrice:     kiwoom.ParseInt64(row.LowPrice),
			ClosePrice:   kiwoom.ParseInt64(row.CurrentPrice),
			Volume:       kiwoom.ParseInt64(row.Volume),
			TradingValue: kiwoom.ParseInt64(row.TradingValue),
			DiffFromPrev: kiwoom.ParseInt64(row.DiffFromPrev),
			DiffSign:     row.DiffSign,
			TurnoverRate: kiwoom.ParseFloat(row.TurnoverRate),
		})
	}
	return candles, nil
}

// FetchInvestorFlows は投資主体別売買データを取得し、当日分のみ返します。
func (m *Market) FetchInvestorFlows(ctx context.Context, token, stockCode string) ([]entity.InvestorFlow, error) {
	now := m.now()
	var res dto.InvestorFlowResponse
	body := map[string]string{
		"dt":         now.Format("20060102"),
		"stk_cd":     stockCode,
		"amt_qty_tp": "2", // 수량 기준 (quantity, not amount)
		"trde_tp":    "0", // 순매수 (net buy)
		"unit_tp":    "1", // 단주 (single shares)
	}
	if err := m.client.PostJSON(ctx, "/api/dostk/stkinfo", trInvestorFlow, token, body, &res); err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	flows := make([]entity.InvestorFlow, 0, len(res.List))
	for _, row := range res.List {
		date := kiwoom.DateYYYYMMDD(row.Date, now)
		if !date.Equal(today) {
			continue
		}
		flows = append(flows, entity.InvestorFlow{
			Time:            now,
			StockCode:       stockCode,
			Date:            date,
			CurrentPrice:    kiwoom.ParseInt64(row.CurrentPrice),
			DiffFromPrev:    kiwoom.ParseInt64(row.DiffFromPrev),
			FluctuationRate: kiwoom.ParseFloat(row.FluctuationRate),
			Volume:          kiwoom.ParseInt64(row.Volume),
			TradingValue:    kiwoom.ParseInt64(row.TradingValue),
			Individual:      kiwoom.ParseInt64(row.Individual),
			Foreigner:       kiwoom.ParseInt64(row.Foreigner),
			Institution:     kiwoom.ParseInt64(row.Institution),
			FinancialInvest: kiwoom.ParseInt64(row.FinancialInvest),
			Insurance:       kiwoom.ParseInt64(row.Insurance),
			InvestmentTrust: kiwoom.ParseInt64(row.InvestmentTrust),
			EtcFinance:      kiwoom.ParseInt64(row.EtcFinance),
			Bank:            kiwoom.ParseInt64(row.Bank),
			PensionFund:     kiwoom.ParseInt64(row.PensionFund),
			PrivateFund:     kiwoom.ParseInt64(row.PrivateFund),
			Nation:          kiwoom.ParseInt64(row.Nation),
			EtcCorp:         kiwoom.ParseInt64(row.EtcCorp),
			ForeignNational: kiwoom.ParseInt64(row.ForeignNational),
		})
	}
	return flows, nil
}
