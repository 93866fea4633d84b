package kiwoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// AuthError はトークン発行の失敗を表します。診断のため上流のペイロードを保持します。
type AuthError struct {
	Payload string // 上流が返した生のレスポンスボディ（取得できた場合）
	Err     error
}

func (e *AuthError) Error() string {
	if e.Payload != "" {
		return fmt.Sprintf("kiwoom auth failed: %v (payload: %s)", e.Err, e.Payload)
	}
	return fmt.Sprintf("kiwoom auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TokenCache はBearerトークンをプロセスメモリに1つだけ保持します。
// 有効期限の追跡はしません。トークンはそれを使ったAPI呼び出しが失敗するまで
// 信頼されます（401時の自動再発行は行わない設計上の制限）。
//
// 1サイクル内で複数の銘柄フェッチが並行してトークンを読むため、
// Token/Refreshはミューテックスで保護されます。
type TokenCache struct {
	cfg Config
	hc  *http.Client

	mu    sync.Mutex
	token string
}

// NewTokenCache はTokenCacheの新しいインスタンスを生成します。
func NewTokenCache(cfg Config, hc *http.Client) *TokenCache {
	return &TokenCache{cfg: cfg, hc: hc}
}

// Token はキャッシュ済みトークンがあればそれを返し、なければ新規発行します。
func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.token != "" {
		return tc.token, nil
	}
	return tc.refreshLocked(ctx)
}

// Refresh は常にトークンエンドポイントを呼び出し、成功時にキャッシュを上書きします。
// 失敗時はキャッシュを変更せず、上流ペイロード付きの*AuthErrorを返します。
func (tc *TokenCache) Refresh(ctx context.Context) (string, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.refreshLocked(ctx)
}

// refreshLocked はトークンエンドポイントを呼び出します。呼び出し側でtc.muを保持すること。
func (tc *TokenCache) refreshLocked(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("appkey", tc.cfg.AppKey)
	form.Set("appsecret", tc.cfg.AppSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		tc.cfg.BaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := tc.hc.Do(req)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &AuthError{Err: err}
	}

	if res.StatusCode >= 400 {
		return "", &AuthError{
			Payload: string(payload),
			Err:     fmt.Errorf("token endpoint http %d", res.StatusCode),
		}
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", &AuthError{Payload: string(payload), Err: err}
	}
	if body.AccessToken == "" {
		return "", &AuthError{
			Payload: string(payload),
			Err:     fmt.Errorf("token endpoint response has no access_token"),
		}
	}

	tc.token = body.AccessToken
	return tc.token, nil
}
