// 1回分の収集サイクルを実行して終了するワンショットコマンドです。
// cronやコンテナジョブからサーバーを立てずに収集だけ回す用途に使います。
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	marketadapters "github.com/sujins0621/StockService/internal/feature/marketdata/adapters"
	marketkiwoom "github.com/sujins0621/StockService/internal/feature/marketdata/adapters/kiwoom"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
	"github.com/sujins0621/StockService/internal/platform/db"
	platformhttp "github.com/sujins0621/StockService/internal/platform/http"
	"github.com/sujins0621/StockService/internal/platform/kiwoom"
	"github.com/sujins0621/StockService/internal/shared/ratelimiter"
)

func stockCodes() []string {
	raw := os.Getenv("STOCK_CODES")
	if raw == "" {
		raw = "005930,000660"
	}
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func main() {
	_ = godotenv.Load()

	dbConn := db.OpenDB()

	cfg := kiwoom.LoadConfig()
	hc := platformhttp.NewHTTPClient(cfg.Timeout)
	tokens := kiwoom.NewTokenCache(cfg, hc)
	market := marketkiwoom.NewMarket(kiwoom.NewClient(cfg, hc))

	uc := usecase.NewCollectUsecase(
		tokens,
		market,
		marketadapters.NewTickRepository(dbConn),
		marketadapters.NewOrderBookRepository(dbConn),
		marketadapters.NewCandleRepository(dbConn),
		marketadapters.NewFlowRepository(dbConn),
		ratelimiter.NewRateLimiter(4, time.Second),
		stockCodes(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.CollectAll(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("collect ok")
}
