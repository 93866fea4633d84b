package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

// CachingCandleRepository はCandleRepositoryにRedisキャッシュを透過的に追加します。
// 日足は場中でも1日1本しか増えないため、ティックより長いTTLを使えます。
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingCandleRepository はCandleRepositoryをRedisキャッシュでデコレートします。
// ttlが0以下なら5分、namespaceが空なら"candles"を使います。
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// InsertNew は内部リポジトリへ挿入し、新規挿入があった銘柄の
// キャッシュを無効化します。重複だけのバッチでは無効化しません。
func (c *CachingCandleRepository) InsertNew(ctx context.Context, candles []entity.DailyCandle) (int, error) {
	inserted, err := c.inner.InsertNew(ctx, candles)
	if err != nil {
		return inserted, err
	}
	if c.rdb == nil || inserted == 0 {
		return inserted, nil
	}

	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.keyPrefix(cd.StockCode)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = deleteByPattern(ctx, c.rdb, prefix+"*")
	}
	return inserted, nil
}

// FindByCode はキャッシュを確認し、ミス時にDBへフォールバックして
// 結果をキャッシュします。
func (c *CachingCandleRepository) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.DailyCandle, error) {
	if c.rdb == nil {
		return c.inner.FindByCode(ctx, stockCode, limit)
	}

	key := c.key(stockCode, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DailyCandle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByCode(ctx, stockCode, limit)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingCandleRepository) key(stockCode string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(stockCode), limit)
}

func (c *CachingCandleRepository) keyPrefix(stockCode string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(stockCode))
}
