// Package usecase は市場データの収集と照会のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/shared/ratelimiter"
)

// maxParallelCodes は同時にファンアウトする銘柄数の上限です。
// 1銘柄あたり4リクエストが並行するため、上流に対する同時リクエスト数は
// 最大で 4 × maxParallelCodes に抑えられます。
const maxParallelCodes = 2

// TokenSource はBearerトークンの取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TokenSource interface {
	// Token はキャッシュ済みトークンを返すか、なければ新規発行します。
	Token(ctx context.Context) (string, error)
}

// MarketDataSource は上流APIからの市場データ取得を抽象化します。
// 各メソッドはリストが欠損・空の場合、エラーではなく空の結果を返します。
type MarketDataSource interface {
	FetchPriceTicks(ctx context.Context, token, stockCode string) ([]entity.PriceTick, error)
	FetchOrderBook(ctx context.Context, token, stockCode string) (*entity.OrderBookSnapshot, error)
	FetchDailyCandles(ctx context.Context, token, stockCode string) ([]entity.DailyCandle, error)
	FetchInvestorFlows(ctx context.Context, token, stockCode string) ([]entity.InvestorFlow, error)
}

// TickRepository はPriceTickの永続化層を抽象化します。
type TickRepository interface {
	// InsertNew は(銘柄コード, 時刻)が未登録のティックのみ挿入し、挿入件数を返します。
	InsertNew(ctx context.Context, ticks []entity.PriceTick) (int, error)
	// FindByCode は指定銘柄のティックを時刻昇順で返します。
	FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.PriceTick, error)
}

// OrderBookRepository はOrderBookSnapshotの永続化層を抽象化します。
type OrderBookRepository interface {
	// Insert は無条件にスナップショットを追加します（追記専用）。
	Insert(ctx context.Context, snapshot *entity.OrderBookSnapshot) error
	FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.OrderBookSnapshot, error)
}

// CandleRepository はDailyCandleの永続化層を抽象化します。
type CandleRepository interface {
	// InsertNew は(銘柄コード, 日付)が未登録の日足のみ挿入し、挿入件数を返します。
	InsertNew(ctx context.Context, candles []entity.DailyCandle) (int, error)
	FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.DailyCandle, error)
}

// FlowRepository はInvestorFlowの永続化層を抽象化します。
type FlowRepository interface {
	// InsertBatch は無条件にレコードを一括追加します（追記専用）。
	InsertBatch(ctx context.Context, flows []entity.InvestorFlow) error
	FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.InvestorFlow, error)
}

// CollectUsecase は1回の収集サイクルをオーケストレーションします。
// トークン取得 → 銘柄ごとのファンアウト（銘柄内は4種類を並行フェッチ）→
// 種類別の保存、という流れで、障害は銘柄単位・データ種別単位に隔離されます。
type CollectUsecase struct {
	tokens  TokenSource
	market  MarketDataSource
	ticks   TickRepository
	books   OrderBookRepository
	candles CandleRepository
	flows   FlowRepository
	limiter ratelimiter.RateLimiterInterface
	codes   []string

	// running は進行中サイクルの有無を示します。スケジューラのtickが
	// 前回サイクルの完了前に発火した場合、新しいサイクルはスキップされます。
	running atomic.Bool

	// now はテストで固定時刻を注入するためのフックです。
	now func() time.Time
}

// NewCollectUsecase はCollectUsecaseの新しいインスタンスを生成します。
// codesは収集対象の銘柄コードのリストです。
func NewCollectUsecase(
	tokens TokenSource,
	market MarketDataSource,
	ticks TickRepository,
	books OrderBookRepository,
	candles CandleRepository,
	flows FlowRepository,
	limiter ratelimiter.RateLimiterInterface,
	codes []string,
) *CollectUsecase {
	return &CollectUsecase{
		tokens:  tokens,
		market:  market,
		ticks:   ticks,
		books:   books,
		candles: candles,
		flows:   flows,
		limiter: limiter,
		codes:   codes,
		now:     time.Now,
	}
}

// CollectScheduled はスケジューラから呼ばれるエントリポイントです。
// cron式は15時台の全minuteで発火するため、15:30以降はここで弾きます。
func (cu *CollectUsecase) CollectScheduled(ctx context.Context) error {
	now := cu.now()
	if now.Hour() == 15 && now.Minute() > 30 {
		return nil
	}
	return cu.CollectAll(ctx)
}

// CollectAll は1回の収集サイクルを実行します。
//
// トークン取得に失敗した場合はサイクル全体を中止します（ファンアウトは
// 一切行われず、次のtickで再試行）。銘柄ごとの失敗は隔離され、他の銘柄の
// 収集には影響しません。前回サイクルが進行中の場合はスキップします。
func (cu *CollectUsecase) CollectAll(ctx context.Context) error {
	if !cu.running.CompareAndSwap(false, true) {
		slog.Warn("previous collection cycle still in flight; skipping this tick")
		return nil
	}
	defer cu.running.Store(false)

	token, err := cu.tokens.Token(ctx)
	if err != nil {
		slog.Error("failed to acquire token; aborting cycle", "error", err)
		return fmt.Errorf("acquire token: %w", err)
	}

	sem := make(chan struct{}, maxParallelCodes)
	var wg sync.WaitGroup
	for _, code := range cu.codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			cu.collectOne(ctx, token, code)
		}(code)
	}
	wg.Wait()
	return nil
}

// collectOne は1銘柄分の4種類のデータを並行フェッチし、取得できたものを保存します。
// 各フェッチは独立に障害隔離されます。例えば日足の取得失敗は同じ銘柄の
// ティックや板情報の収集・保存を妨げません。
func (cu *CollectUsecase) collectOne(ctx context.Context, token, code string) {
	var (
		ticks   []entity.PriceTick
		book    *entity.OrderBookSnapshot
		candles []entity.DailyCandle
		flows   []entity.InvestorFlow
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		cu.limiter.WaitIfNeeded()
		var err error
		if ticks, err = cu.market.FetchPriceTicks(ctx, token, code); err != nil {
			slog.Error("failed to fetch price ticks", "code", code, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		cu.limiter.WaitIfNeeded()
		var err error
		if book, err = cu.market.FetchOrderBook(ctx, token, code); err != nil {
			slog.Error("failed to fetch order book", "code", code, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		cu.limiter.WaitIfNeeded()
		var err error
		if candles, err = cu.market.FetchDailyCandles(ctx, token, code); err != nil {
			slog.Error("failed to fetch daily candles", "code", code, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		cu.limiter.WaitIfNeeded()
		var err error
		if flows, err = cu.market.FetchInvestorFlows(ctx, token, code); err != nil {
			slog.Error("failed to fetch investor flows", "code", code, "error", err)
		}
	}()
	wg.Wait()

	if len(ticks) > 0 {
		if inserted, err := cu.ticks.InsertNew(ctx, ticks); err != nil {
			slog.Error("failed to save price ticks", "code", code, "error", err)
		} else {
			slog.Info("collected price ticks", "code", code, "count", len(ticks), "inserted", inserted)
		}
	}
	if book != nil {
		if err := cu.books.Insert(ctx, book); err != nil {
			slog.Error("failed to save order book", "code", code, "error", err)
		} else {
			slog.Info("collected order book", "code", code,
				"sell_remain", book.TotalSellRemain, "buy_remain", book.TotalBuyRemain)
		}
	}
	if len(candles) > 0 {
		if inserted, err := cu.candles.InsertNew(ctx, candles); err != nil {
			slog.Error("failed to save daily candles", "code", code, "error", err)
		} else {
			slog.Info("collected daily candles", "code", code, "count", len(candles), "inserted", inserted)
		}
	}
	if len(flows) > 0 {
		if err := cu.flows.InsertBatch(ctx, flows); err != nil {
			slog.Error("failed to save investor flows", "code", code, "error", err)
		} else {
			slog.Info("collected investor flows", "code", code, "count", len(flows))
		}
	}
}
