// Package db はGORMによるデータベース接続の確立とマイグレーションを担当します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountadapters "github.com/sujins0621/StockService/internal/feature/account/adapters"
	marketadapters "github.com/sujins0621/StockService/internal/feature/marketdata/adapters"
)

// Config はデータベース接続の設定です。
type Config struct {
	// URL はPostgreSQLの接続文字列です。空ならSQLiteへフォールバックします。
	URL string
	// SQLitePath はローカル開発用のSQLiteファイルパスです。
	SQLitePath string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "stockservice.db"
	}
	return Config{
		URL:        os.Getenv("DATABASE_URL"),
		SQLitePath: path,
	}
}

// Opener はDSNを受け取ってgorm.DBを開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// DefaultOpener は設定に応じてPostgreSQLまたはSQLiteのオープナーを返します。
// DATABASE_URLが設定されていればPostgreSQLが優先されます。
func DefaultOpener(cfg Config) (Opener, string) {
	if cfg.URL != "" {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, cfg.URL
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}, cfg.SQLitePath
}

// ConnectWithRetry は接続に成功するか期限が切れるまで3秒間隔で再試行します。
// 起動直後はDBコンテナの準備が間に合わないことがあるためです。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はデータベースへ接続し、RUN_MIGRATIONS=trueならマイグレーションを実行します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()
	open, dsn := DefaultOpener(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, open)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&marketadapters.PriceTickModel{},
			&marketadapters.OrderBookModel{},
			&marketadapters.DailyCandleModel{},
			&marketadapters.InvestorFlowModel{},
			&accountadapters.AccountInfoModel{},
			&accountadapters.AccountHoldingModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
