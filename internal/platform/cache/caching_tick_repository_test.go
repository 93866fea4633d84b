package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"github.com/sujins0621/StockService/internal/feature/marketdata/domain/entity"
)

// mockTickRepository はテスト用のTickRepositoryモック実装です。
type mockTickRepository struct {
	findFn   func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error)
	insertFn func(ctx context.Context, ticks []entity.PriceTick) (int, error)
}

func (m *mockTickRepository) FindByCode(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
	if m.findFn != nil {
		return m.findFn(ctx, code, limit)
	}
	return nil, nil
}

func (m *mockTickRepository) InsertNew(ctx context.Context, ticks []entity.PriceTick) (int, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, ticks)
	}
	return len(ticks), nil
}

func sampleTicks(code string) []entity.PriceTick {
	return []entity.PriceTick{
		{StockCode: code, Time: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), CurrentPrice: 75000},
	}
}

// TestNewCachingTickRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingTickRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingTickRepository(nil, 0, &mockTickRepository{}, "")
	if repo.ttl != 30*time.Second {
		t.Errorf("expected default TTL 30s, got %v", repo.ttl)
	}
	if repo.namespace != "ticks" {
		t.Errorf("expected namespace 'ticks', got %q", repo.namespace)
	}

	repo = NewCachingTickRepository(nil, 2*time.Minute, &mockTickRepository{}, "custom")
	if repo.ttl != 2*time.Minute {
		t.Errorf("custom TTL should be preserved, got %v", repo.ttl)
	}
	if repo.namespace != "custom" {
		t.Errorf("custom namespace should be preserved, got %q", repo.namespace)
	}
}

// TestCachingTickRepository_FindByCode_NilRedis はRedisがnilの場合に
// キャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingTickRepository_FindByCode_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockTickRepository{
		findFn: func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
			return sampleTicks(code), nil
		},
	}

	repo := NewCachingTickRepository(nil, time.Minute, inner, "ticks")

	ticks, err := repo.FindByCode(context.Background(), "005930", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticks) != 1 {
		t.Errorf("expected 1 tick, got %d", len(ticks))
	}
}

// TestCachingTickRepository_FindByCode_CacheHit はキャッシュヒット時に
// 内部リポジトリを呼ばないことを検証します。
func TestCachingTickRepository_FindByCode_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(sampleTicks("005930"))
	mock.ExpectGet("ticks:005930:100").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockTickRepository{
		findFn: func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingTickRepository(rdb, time.Minute, inner, "ticks")
	ticks, err := repo.FindByCode(context.Background(), "005930", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(ticks) != 1 || ticks[0].CurrentPrice != 75000 {
		t.Errorf("unexpected result: %+v", ticks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTickRepository_FindByCode_CacheMiss はキャッシュミス時に
// DBから取得してキャッシュに保存することを検証します。
func TestCachingTickRepository_FindByCode_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := sampleTicks("005930")
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("ticks:005930:100").RedisNil()
	mock.ExpectSet("ticks:005930:100", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockTickRepository{
		findFn: func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
			return expected, nil
		},
	}

	repo := NewCachingTickRepository(rdb, time.Minute, inner, "ticks")
	ticks, err := repo.FindByCode(context.Background(), "005930", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticks) != 1 {
		t.Errorf("expected 1 tick, got %d", len(ticks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTickRepository_FindByCode_CorruptedCache は破損したキャッシュを
// 削除してDBへフォールバックすることを検証します。
func TestCachingTickRepository_FindByCode_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := sampleTicks("005930")
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("ticks:005930:100").SetVal("invalid json")
	mock.ExpectDel("ticks:005930:100").SetVal(1)
	mock.ExpectSet("ticks:005930:100", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockTickRepository{
		findFn: func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
			return expected, nil
		},
	}

	repo := NewCachingTickRepository(rdb, time.Minute, inner, "ticks")
	ticks, err := repo.FindByCode(context.Background(), "005930", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticks) != 1 {
		t.Errorf("expected 1 tick, got %d", len(ticks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTickRepository_FindByCode_InnerError は内部リポジトリのエラーが
// 伝播されることを検証します。
func TestCachingTickRepository_FindByCode_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("ticks:005930:100").RedisNil()

	inner := &mockTickRepository{
		findFn: func(ctx context.Context, code string, limit int) ([]entity.PriceTick, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingTickRepository(rdb, time.Minute, inner, "ticks")
	_, err := repo.FindByCode(context.Background(), "005930", 100)
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingTickRepository_InsertNew_Invalidates は新規挿入があった銘柄の
// キャッシュがSCAN+DELで無効化されることを検証します。
func TestCachingTickRepository_InsertNew_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "ticks:005930:*", 200).SetVal([]string{"ticks:005930:100"}, 0)
	mock.ExpectDel("ticks:005930:100").SetVal(1)

	repo := NewCachingTickRepository(rdb, time.Minute, &mockTickRepository{}, "ticks")
	inserted, err := repo.InsertNew(context.Background(), sampleTicks("005930"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 1 {
		t.Errorf("expected 1 inserted, got %d", inserted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTickRepository_InsertNew_NoInvalidationOnDuplicates は全件重複で
// 挿入が0件のときキャッシュを無効化しないことを検証します。
func TestCachingTickRepository_InsertNew_NoInvalidationOnDuplicates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockTickRepository{
		insertFn: func(ctx context.Context, ticks []entity.PriceTick) (int, error) {
			return 0, nil
		},
	}

	// ExpectScanを設定しない: SCANが呼ばれたらExpectationsWereMetが失敗する
	repo := NewCachingTickRepository(rdb, time.Minute, inner, "ticks")
	inserted, err := repo.InsertNew(context.Background(), sampleTicks("005930"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected 0 inserted, got %d", inserted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"005930", "005930"},
		{"BRK A", "BRK_A"},
		{"key:value", "key_value"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if result := safe(tt.input); result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
