package kiwoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client はKiwoom REST APIへのリクエスト送信を共通化します。
// 全ての照会系エンドポイントはPOST + Bearerトークン + api-idヘッダー
// （TR選択子）という同じ形を取るため、ここに集約します。
type Client struct {
	cfg Config
	hc  *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, hc *http.Client) *Client {
	return &Client{cfg: cfg, hc: hc}
}

// BaseURL は設定されたAPIのベースURLを返します。
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// PostJSON はJSONボディをPOSTし、レスポンスをoutにデコードします。
// apiIDはリクエストするレポートを識別するTR選択子ヘッダーです。
func (c *Client) PostJSON(ctx context.Context, path, apiID, token string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("api-id", apiID)

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("kiwoom %s http %d", apiID, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", apiID, err)
	}
	return nil
}
