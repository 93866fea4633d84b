package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sujins0621/StockService/internal/app/router"
	accountadapters "github.com/sujins0621/StockService/internal/feature/account/adapters"
	accountkiwoom "github.com/sujins0621/StockService/internal/feature/account/adapters/kiwoom"
	accounthandler "github.com/sujins0621/StockService/internal/feature/account/transport/handler"
	accountusecase "github.com/sujins0621/StockService/internal/feature/account/usecase"
	authhandler "github.com/sujins0621/StockService/internal/feature/auth/transport/handler"
	authusecase "github.com/sujins0621/StockService/internal/feature/auth/usecase"
	marketadapters "github.com/sujins0621/StockService/internal/feature/marketdata/adapters"
	marketkiwoom "github.com/sujins0621/StockService/internal/feature/marketdata/adapters/kiwoom"
	markethandler "github.com/sujins0621/StockService/internal/feature/marketdata/transport/handler"
	marketusecase "github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
	"github.com/sujins0621/StockService/internal/platform/cache"
	"github.com/sujins0621/StockService/internal/platform/db"
	platformhttp "github.com/sujins0621/StockService/internal/platform/http"
	jwtmw "github.com/sujins0621/StockService/internal/platform/jwt"
	"github.com/sujins0621/StockService/internal/platform/kiwoom"
	platformredis "github.com/sujins0621/StockService/internal/platform/redis"
	"github.com/sujins0621/StockService/internal/platform/scheduler"
	"github.com/sujins0621/StockService/internal/shared/ratelimiter"
)

// stockCodes は収集対象の銘柄コードをSTOCK_CODESから読み込みます。
func stockCodes() []string {
	raw := os.Getenv("STOCK_CODES")
	if raw == "" {
		// サムスン電子・SKハイニックス
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
	// .env（存在しない場合は無視）
	_ = godotenv.Load()

	// db
	dbConn := db.OpenDB()

	// Redis
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache:", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Kiwoom APIクライアント
	kiwoomCfg := kiwoom.LoadConfig()
	hc := platformhttp.NewHTTPClient(kiwoomCfg.Timeout)
	tokens := kiwoom.NewTokenCache(kiwoomCfg, hc)
	client := kiwoom.NewClient(kiwoomCfg, hc)

	// Repository
	tickRepo := marketadapters.NewTickRepository(dbConn)
	bookRepo := marketadapters.NewOrderBookRepository(dbConn)
	candleRepo := marketadapters.NewCandleRepository(dbConn)
	flowRepo := marketadapters.NewFlowRepository(dbConn)
	accountRepo := accountadapters.NewAccountRepository(dbConn)

	// Redisキャッシュでラップ（rdbがnilなら素通し）
	cachedTickRepo := cache.NewCachingTickRepository(rdb, 0, tickRepo, "ticks")
	cachedCandleRepo := cache.NewCachingCandleRepository(rdb, cache.TimeUntilNextMarketOpen(), candleRepo, "candles")

	// Usecase
	// 上流の流量制限（5req/s）に対して1つ余裕を持たせる
	limiter := ratelimiter.NewRateLimiter(4, time.Second)
	market := marketkiwoom.NewMarket(client)
	collectUC := marketusecase.NewCollectUsecase(
		tokens, market, cachedTickRepo, bookRepo, cachedCandleRepo, flowRepo, limiter, stockCodes())
	queryUC := marketusecase.NewQueryUsecase(cachedTickRepo, bookRepo, cachedCandleRepo, flowRepo)
	accountUC := accountusecase.NewAccountUsecase(tokens, accountkiwoom.NewAccount(client), accountRepo)

	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	creds := authusecase.Credentials{
		Username:     os.Getenv("ADMIN_USERNAME"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	authUC := authusecase.NewAdminUsecase(creds, jwtGen)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	marketH := markethandler.NewMarketHandler(queryUC, collectUC, tokens)
	accountH := accounthandler.NewAccountHandler(accountUC)

	// スケジューラ：平日の場中に毎分収集
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Fatal(err)
	}
	sched := scheduler.New(loc)
	if _, err := sched.AddJob(scheduler.MarketHoursSpec, "collect", collectUC.CollectScheduled); err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	// 起動直後に1回収集し、口座評価も取り直す
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := collectUC.CollectAll(ctx); err != nil {
			slog.Error("startup collection failed", "error", err)
		}
		if _, err := accountUC.Refresh(ctx); err != nil {
			slog.Error("startup account refresh failed", "error", err)
		}
	}()

	// ルータ生成
	r := router.NewRouter(authH, marketH, accountH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
