// Package kiwoom はキウム証券REST APIのクライアントを提供します。
package kiwoom

import (
	"os"
	"time"
)

// Config はKiwoom APIクライアントの設定を保持します。
type Config struct {
	AppKey    string        // キウム証券が発行するアプリケーションキー
	AppSecret string        // キウム証券が発行するアプリケーションシークレット
	BaseURL   string        // APIのベースURL（例: "https://api.kiwoom.com"）
	Timeout   time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からKiwoomの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("KIWOOM_BASE_URL")
	if base == "" {
		base = "https://api.kiwoom.com"
	}
	return Config{
		AppKey:    os.Getenv("KIWOOM_APP_KEY"),
		AppSecret: os.Getenv("KIWOOM_APP_SECRET"),
		BaseURL:   base,
		Timeout:   10 * time.Second,
	}
}
