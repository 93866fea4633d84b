// Package cache はリポジトリインターフェースにRedisキャッシュを被せる
// デコレータ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
	"github.com/sujins0621/StockService/internal/feature/marketdata/usecase"
)

// CachingTickRepository はTickRepositoryにRedisキャッシュを透過的に追加します。
// ティックの照会はチャート描画で最も頻繁に呼ばれるため、短いTTLで
// DBへの読み出しを吸収します。
type CachingTickRepository struct {
	inner     usecase.TickRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTickRepository はTickRepositoryをRedisキャッシュでデコレートします。
// ttlが0以下なら30秒、namespaceが空なら"ticks"を使います。
func NewCachingTickRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TickRepository, namespace string) *CachingTickRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if namespace == "" {
		namespace = "ticks"
	}
	return &CachingTickRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.TickRepository = (*CachingTickRepository)(nil)

// InsertNew は内部リポジトリへ挿入し、実際に挿入があった銘柄の
// キャッシュを無効化します。
func (c *CachingTickRepository) InsertNew(ctx context.Context, ticks []entity.PriceTick) (int, error) {
	inserted, err := c.inner.InsertNew(ctx, ticks)
	if err != nil {
		return inserted, err
	}
	if c.rdb == nil || inserted == 0 {
		return inserted, nil
	}

	seen := map[string]struct{}{}
	for _, tk := range ticks {
		prefix := c.keyPrefix(tk.StockCode)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		// ベストエフォート: キャッシュ削除の失敗で挿入は失敗扱いにしない
		_ = deleteByPattern(ctx, c.rdb, prefix+"*")
	}
	return inserted, nil
}

// FindByCode はキャッシュを確認し、ミス時にDBへフォールバックして
// 結果をキャッシュします。
func (c *CachingTickRepository) FindByCode(ctx context.Context, stockCode string, limit int) ([]entity.PriceTick, error) {
	if c.rdb == nil {
		return c.inner.FindByCode(ctx, stockCode, limit)
	}

	key := c.key(stockCode, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceTick
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 破損エントリは削除してDBへ
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

func (c *CachingTickRepository) key(stockCode string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(stockCode), limit)
}

func (c *CachingTickRepository) keyPrefix(stockCode string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(stockCode))
}

// deleteByPattern はSCANでパターンに一致するキーを列挙して削除します。
// KEYSはブロッキングのため使いません。
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe はRedisキーで問題となる文字をエスケープします。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
