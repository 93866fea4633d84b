package kiwoom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClient_PostJSON はBearerトークンとTR選択子ヘッダーが付与され、
// レスポンスがoutにデコードされることを検証します。
func TestClient_PostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dostk/mrkcond", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "ka10046", r.Header.Get("api-id"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		_, _ = w.Write([]byte(`{"stk_cd":"005930"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client())

	var out struct {
		StockCode string `json:"stk_cd"`
	}
	err := c.PostJSON(context.Background(), "/api/dostk/mrkcond", "ka10046", "tok-1",
		map[string]string{"stk_cd": "005930"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "005930", out.StockCode)
}

// TestClient_PostJSON_HTTPError は4xx/5xxレスポンスがエラーになることを検証します。
func TestClient_PostJSON_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client())

	var out map[string]any
	err := c.PostJSON(context.Background(), "/api/dostk/mrkcond", "ka10046", "stale",
		map[string]string{"stk_cd": "005930"}, &out)
	assert.ErrorContains(t, err, "http 401")
}

// TestClient_PostJSON_MalformedBody は不正なJSONボディがエラーになることを検証します。
func TestClient_PostJSON_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client())

	var out map[string]any
	err := c.PostJSON(context.Background(), "/api/dostk/chart", "ka10081", "tok",
		map[string]string{"stk_cd": "005930"}, &out)
	assert.ErrorContains(t, err, "decode ka10081 response")
}
