package router

import (
	accounthandler "github.com/sujins0621/StockService/internal/feature/account/transport/handler"
	authhandler "github.com/sujins0621/StockService/internal/feature/auth/transport/handler"
	markethandler "github.com/sujins0621/StockService/internal/feature/marketdata/transport/handler"
	"github.com/sujins0621/StockService/internal/platform/http/handler"
	jwtmw "github.com/sujins0621/StockService/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, market *markethandler.MarketHandler,
	account *accounthandler.AccountHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 収集済みデータの参照系は認証不要
	r.GET("/api/ticks/:code", market.GetTicks)
	r.GET("/api/orderbooks/:code", market.GetOrderBooks)
	r.GET("/api/candles/:code", market.GetCandles)
	r.GET("/api/investors/:code", market.GetFlows)
	r.GET("/api/account", account.GetAccount)

	// 認証必須のルート
	// 収集トリガーやトークン再発行は上流APIを叩くため管理者のみ
	admin := r.Group("/api")
	admin.Use(jwtmw.AuthRequired())
	{
		admin.POST("/collect", market.Collect)
		admin.POST("/token/refresh", market.RefreshToken)
		admin.POST("/account/refresh", account.RefreshAccount)
	}

	return r
}
