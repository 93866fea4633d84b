// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sujins0621/StockService/internal/api"
	"github.com/sujins0621/StockService/internal/feature/account/domain/entity"
)

// AccountUsecase は口座評価スナップショットの操作を定義します。
type AccountUsecase interface {
	Latest(ctx context.Context) (*entity.AccountInfo, error)
	Refresh(ctx context.Context) (*entity.AccountInfo, error)
}

// AccountHandler は口座評価のHTTPリクエストを処理します。
type AccountHandler struct {
	account AccountUsecase
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
func NewAccountHandler(account AccountUsecase) *AccountHandler {
	return &AccountHandler{account: account}
}

// GetAccount は保存済みの口座評価スナップショットを返します。
// スナップショットがまだない場合は404を返します。
//
// エンドポイント: GET /api/account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	info, err := h.account.Latest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load account"})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no account snapshot"})
		return
	}
	c.JSON(http.StatusOK, toResponse(info))
}

// RefreshAccount は上流から口座評価を取り直してスナップショットを差し替えます。
//
// エンドポイント: POST /api/account/refresh
func (h *AccountHandler) RefreshAccount(c *gin.Context) {
	info, err := h.account.Refresh(c.Request.Context())
	if err != nil {
		slog.Error("account refresh failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "account refresh failed"})
		return
	}
	c.JSON(http.StatusOK, toResponse(info))
}

// accountResponse は口座評価のJSON表現です。
type accountResponse struct {
	AccountName string `json:"account_name"`
	BranchName  string `json:"branch_name"`

	Deposit         int64 `json:"deposit"`
	D2Deposit       int64 `json:"d2_deposit"`
	TotalEvalAmount int64 `json:"total_eval_amount"`
	AssetEvalAmount int64 `json:"asset_eval_amount"`

	TodayProfitLoss int64   `json:"today_profit_loss"`
	AccumProfitLoss int64   `json:"accum_profit_loss"`
	TodayProfitRate float64 `json:"today_profit_rate"`
	AccumProfitRate float64 `json:"accum_profit_rate"`

	Holdings []holdingResponse `json:"holdings"`
}

type holdingResponse struct {
	StockCode      string  `json:"stock_code"`
	StockName      string  `json:"stock_name"`
	RemainQty      int64   `json:"remain_qty"`
	AvgPrice       float64 `json:"avg_price"`
	CurrentPrice   int64   `json:"current_price"`
	EvalAmount     int64   `json:"eval_amount"`
	ProfitLoss     int64   `json:"profit_loss"`
	ProfitLossRate float64 `json:"profit_loss_rate"`
}

func toResponse(info *entity.AccountInfo) accountResponse {
	out := accountResponse{
		AccountName:     info.AccountName,
		BranchName:      info.BranchName,
		Deposit:         info.Deposit,
		D2Deposit:       info.D2Deposit,
		TotalEvalAmount: info.TotalEvalAmount,
		AssetEvalAmount: info.AssetEvalAmount,
		TodayProfitLoss: info.TodayProfitLoss,
		AccumProfitLoss: info.AccumProfitLoss,
		TodayProfitRate: info.TodayProfitRate,
		AccumProfitRate: info.AccumProfitRate,
	}
	out.Holdings = make([]holdingResponse, 0, len(info.Holdings))
	for _, h := range info.Holdings {
		out.Holdings = append(out.Holdings, holdingResponse{
			StockCode:      h.StockCode,
			StockName:      h.StockName,
			RemainQty:      h.RemainQty,
			AvgPrice:       h.AvgPrice,
			CurrentPrice:   h.CurrentPrice,
			EvalAmount:     h.EvalAmount,
			ProfitLoss:     h.ProfitLoss,
			ProfitLossRate: h.ProfitLossRate,
		})
	}
	return out
}
