package usecase

import (
	"context"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultOutputSize は照会系のデフォルト返却件数です。
	DefaultOutputSize = 200
	// MaxOutputSize は照会系の最大返却件数です。
	MaxOutputSize = 5000
)

// queryUsecase は収集済み市場データの照会ユースケースを定義します。
// 収集サイクルが保存したレコードは次の照会から遅延なく見えます。
type queryUsecase struct {
	ticks   TickRepository
	books   OrderBookRepository
	candles CandleRepository
	flows   FlowRepository
}

// NewQueryUsecase はqueryUsecaseの新しいインスタンスを生成します。
func NewQueryUsecase(ticks TickRepository, books OrderBookRepository,
	candles CandleRepository, flows FlowRepository) *queryUsecase {
	return &queryUsecase{ticks: ticks, books: books, candles: candles, flows: flows}
}

// clampLimit は返却件数を有効範囲に丸めます。
func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxOutputSize {
		return DefaultOutputSize
	}
	return limit
}

// GetTicks は指定銘柄のティックを時刻昇順で返します。
func (qu *queryUsecase) GetTicks(ctx context.Context, stockCode string, limit int) ([]entity.PriceTick, error) {
	return qu.ticks.FindByCode(ctx, stockCode, clampLimit(limit))
}

// GetOrderBooks は指定銘柄の板スナップショットを返します。
func (qu *queryUsecase) GetOrderBooks(ctx context.Context, stockCode string, limit int) ([]entity.OrderBookSnapshot, error) {
	return qu.books.FindByCode(ctx, stockCode, clampLimit(limit))
}

// GetCandles は指定銘柄の日足を返します。
func (qu *queryUsecase) GetCandles(ctx context.Context, stockCode string, limit int) ([]entity.DailyCandle, error) {
	return qu.candles.FindByCode(ctx, stockCode, clampLimit(limit))
}

// GetFlows は指定銘柄の投資主体別売買データを返します。
func (qu *queryUsecase) GetFlows(ctx context.Context, stockCode string, limit int) ([]entity.InvestorFlow, error) {
	return qu.flows.FindByCode(ctx, stockCode, clampLimit(limit))
}
