// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sujins0621/StockService/internal/api"
	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/transport/http/dto"
)

// QueryUsecase は収集済み市場データの照会を定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QueryUsecase interface {
	GetTicks(ctx context.Context, stockCode string, limit int) ([]entity.PriceTick, error)
	GetOrderBooks(ctx context.Context, stockCode string, limit int) ([]entity.OrderBookSnapshot, error)
	GetCandles(ctx context.Context, stockCode string, limit int) ([]entity.DailyCandle, error)
	GetFlows(ctx context.Context, stockCode string, limit int) ([]entity.InvestorFlow, error)
}

// Collector は収集サイクルの手動トリガーを定義します。
type Collector interface {
	CollectAll(ctx context.Context) error
}

// TokenRefresher はBearerトークンの強制再発行を定義します。
type TokenRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// MarketHandler は市場データの照会と収集操作のHTTPリクエストを処理します。
type MarketHandler struct {
	query     QueryUsecase
	collector Collector
	tokens    TokenRefresher
}

// NewMarketHandler はMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(query QueryUsecase, collector Collector, tokens TokenRefresher) *MarketHandler {
	return &MarketHandler{query: query, collector: collector, tokens: tokens}
}

// limitParam はクエリパラメータlimitを読み取ります。不正値は0として扱い、
// usecase側のデフォルトに任せます。
func limitParam(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return limit
}

// GetTicks は指定銘柄のティックを時刻昇順のJSONで返します。
//
// エンドポイント例:
// GET /api/ticks/:code?limit=200
func (h *MarketHandler) GetTicks(c *gin.Context) {
	ticks, err := h.query.GetTicks(c.Request.Context(), c.Param("code"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load ticks"})
		return
	}

	out := make([]dto.TickResponse, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, dto.TickResponse{
			Time:            t.Time.Format(time.RFC3339),
			CurrentPrice:    t.CurrentPrice,
			DiffFromPrev:    t.DiffFromPrev,
			DiffSign:        t.DiffSign,
			FluctuationRate: t.FluctuationRate,
			Volume:          t.Volume,
			AccTradeValue:   t.AccTradeValue,
			AccTradeVolume:  t.AccTradeVolume,
			VolumePower:     t.VolumePower,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetOrderBooks は指定銘柄の板スナップショット履歴をJSONで返します。
func (h *MarketHandler) GetOrderBooks(c *gin.Context) {
	books, err := h.query.GetOrderBooks(c.Request.Context(), c.Param("code"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load order books"})
		return
	}

	out := make([]dto.OrderBookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, dto.OrderBookResponse{
			Time:            b.Time.Format(time.RFC3339),
			TotalSellRemain: b.TotalSellRemain,
			TotalBuyRemain:  b.TotalBuyRemain,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetCandles は指定銘柄の日足を日付昇順のJSONで返します。
func (h *MarketHandler) GetCandles(c *gin.Context) {
	candles, err := h.query.GetCandles(c.Request.Context(), c.Param("code"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load candles"})
		return
	}

	out := make([]dto.CandleResponse, 0, len(candles))
	for _, cd := range candles {
		out = append(out, dto.CandleResponse{
			Date:         cd.Date.Format("2006-01-02"),
			Open:         cd.OpenPrice,
			High:         cd.HighPrice,
			Low:          cd.LowPrice,
			Close:        cd.ClosePrice,
			Volume:       cd.Volume,
			TradingValue: cd.TradingValue,
			TurnoverRate: cd.TurnoverRate,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetFlows は指定銘柄の投資主体別売買データをJSONで返します。
func (h *MarketHandler) GetFlows(c *gin.Context) {
	flows, err := h.query.GetFlows(c.Request.Context(), c.Param("code"), limitParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load investor flows"})
		return
	}

	out := make([]dto.FlowResponse, 0, len(flows))
	for _, f := range flows {
		out = append(out, dto.FlowResponse{
			Time:         f.Time.Format(time.RFC3339),
			Date:         f.Date.Format("2006-01-02"),
			CurrentPrice: f.CurrentPrice,
			Volume:       f.Volume,
			Individual:   f.Individual,
			Foreigner:    f.Foreigner,
			Institution:  f.Institution,
			PensionFund:  f.PensionFund,
			PrivateFund:  f.PrivateFund,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Collect は収集サイクルを手動でトリガーします。スケジュールと同じ経路を通り、
// 進行中のサイクルがあればスキップされます。
//
// エンドポイント: POST /api/collect
func (h *MarketHandler) Collect(c *gin.Context) {
	if err := h.collector.CollectAll(c.Request.Context()); err != nil {
		slog.Error("manual collection failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "collection failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// RefreshToken は上流のBearerトークンを強制再発行します。
// 手動再発行は認証情報の診断用途のため、失敗時は上流のエラー内容
// （レスポンスペイロードを含む）をそのまま返します。
//
// エンドポイント: POST /api/token/refresh
func (h *MarketHandler) RefreshToken(c *gin.Context) {
	if _, err := h.tokens.Refresh(c.Request.Context()); err != nil {
		slog.Error("token refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
