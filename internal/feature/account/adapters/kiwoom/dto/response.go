// Package dto は上流の口座評価レスポンスのデータ転送オブジェクトを定義します。
// 数値は全て文字列で届き、符号や桁区切りを含むことがあります。
package dto

// AccountResponse はkt00004（口座評価現況）のレスポンスエンベロープを表します。
type AccountResponse struct {
	AccountName string `json:"acnt_nm"`
	BranchName  string `json:"brch_nm"`

	Deposit               string `json:"entr"`
	D2Deposit             string `json:"d2_entra"`
	TotalEvalAmount       string `json:"tot_est_amt"`
	AssetEvalAmount       string `json:"aset_evlt_amt"`
	TotalPurchaseAmount   string `json:"tot_pur_amt"`
	EstimatedDepositAsset string `json:"prsm_dpst_aset_amt"`
	TotalLoanAmount       string `json:"tot_grnt_sella"`

	TodayInvestPrincipal string `json:"tdy_lspft_amt"`
	MonthInvestPrincipal string `json:"invt_bsamt"`
	AccumInvestPrincipal string `json:"lspft_amt"`

	TodayProfitLoss string `json:"tdy_lspft"`
	MonthProfitLoss string `json:"lspft2"`
	AccumProfitLoss string `json:"lspft"`

	TodayProfitRate string `json:"tdy_lspft_rt"`
	MonthProfitRate string `json:"lspft_ratio"`
	AccumProfitRate string `json:"lspft_rt"`

	Holdings []HoldingRow `json:"stk_acnt_evlt_prst"`
}

// HoldingRow は保有銘柄リストstk_acnt_evlt_prstの1要素です。
type HoldingRow struct {
	StockCode      string `json:"stk_cd"`
	StockName      string `json:"stk_nm"`
	RemainQty      string `json:"rmnd_qty"`
	AvgPrice       string `json:"avg_prc"`
	CurrentPrice   string `json:"cur_prc"`
	EvalAmount     string `json:"evlt_amt"`
	ProfitLoss     string `json:"pl_amt"`
	ProfitLossRate string `json:"pl_rt"`
	LoanDate       string `json:"loan_dt"`
	PurchaseAmount string `json:"pur_amt"`
	SettlementQty  string `json:"setl_remn"`
	PrevDayBuyQty  string `json:"pred_buyq"`
	PrevDaySellQty string `json:"pred_sellq"`
	TodayBuyQty    string `json:"tdy_buyq"`
	TodaySellQty   string `json:"tdy_sellq"`
}
