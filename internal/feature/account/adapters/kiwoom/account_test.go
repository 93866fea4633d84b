package kiwoom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformkiwoom "github.com/sujins0621/StockService/internal/platform/kiwoom"
)

func newTestAccount(t *testing.T, body string, capture *map[string]string) *Account {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-id") != "kt00004" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if capture != nil {
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, capture)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := platformkiwoom.NewClient(
		platformkiwoom.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, srv.Client())
	return NewAccount(client)
}

// TestAccount_FetchAccount は数値の正規化と保有銘柄リストのマッピングを検証します。
func TestAccount_FetchAccount(t *testing.T) {
	t.Parallel()

	var sentBody map[string]string
	a := newTestAccount(t, `{
		"acnt_nm":"홍길동","brch_nm":"본점",
		"entr":"+1,000,000","d2_entra":"980,000","tot_est_amt":"5,400,000",
		"aset_evlt_amt":"6,400,000","tot_pur_amt":"5,000,000",
		"prsm_dpst_aset_amt":"6,380,000","tot_grnt_sella":"0",
		"tdy_lspft_amt":"100,000","invt_bsamt":"5,000,000","lspft_amt":"4,800,000",
		"tdy_lspft":"+12,000","lspft2":"-3,000","lspft":"+400,000",
		"tdy_lspft_rt":"+0.24","lspft_ratio":"-0.06","lspft_rt":"8.33",
		"stk_acnt_evlt_prst":[
			{"stk_cd":"A005930","stk_nm":"삼성전자","rmnd_qty":"10","avg_prc":"71,500.5",
			 "cur_prc":"+75,000","evlt_amt":"750,000","pl_amt":"+34,995","pl_rt":"4.89",
			 "pur_amt":"715,005","setl_remn":"10","tdy_buyq":"0","tdy_sellq":"0"}
		]}`, &sentBody)

	info, err := a.FetchAccount(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "0", sentBody["qry_tp"])
	assert.Equal(t, "KRX", sentBody["dmst_stex_tp"])

	assert.Equal(t, "홍길동", info.AccountName)
	assert.Equal(t, int64(1000000), info.Deposit)
	assert.Equal(t, int64(5400000), info.TotalEvalAmount)
	assert.Equal(t, int64(12000), info.TodayProfitLoss)
	assert.Equal(t, int64(-3000), info.MonthProfitLoss)
	assert.Equal(t, 0.24, info.TodayProfitRate)
	assert.Equal(t, -0.06, info.MonthProfitRate)

	require.Len(t, info.Holdings, 1)
	h := info.Holdings[0]
	assert.Equal(t, "A005930", h.StockCode)
	assert.Equal(t, int64(10), h.RemainQty)
	assert.Equal(t, 71500.5, h.AvgPrice)
	assert.Equal(t, int64(75000), h.CurrentPrice)
	assert.Equal(t, int64(34995), h.ProfitLoss)
}

// TestAccount_FetchAccount_NoHoldings は保有銘柄リストが欠損していても
// エラーにならないことを検証します。
func TestAccount_FetchAccount_NoHoldings(t *testing.T) {
	t.Parallel()

	a := newTestAccount(t, `{"acnt_nm":"홍길동","entr":"100"}`, nil)

	info, err := a.FetchAccount(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, info.Holdings)
	assert.Equal(t, int64(100), info.Deposit)
}

// TestAccount_FetchAccount_UpstreamError は上流のエラー応答が伝播することを検証します。
func TestAccount_FetchAccount_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := platformkiwoom.NewClient(
		platformkiwoom.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, srv.Client())
	a := NewAccount(client)

	_, err := a.FetchAccount(context.Background(), "tok")
	assert.Error(t, err)
}
