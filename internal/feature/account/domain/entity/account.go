// Package entity defines the account evaluation domain model.
package entity

// AccountInfo is a point-in-time evaluation of the trading account.
// Only the latest snapshot is kept; each refresh replaces the previous one.
type AccountInfo struct {
	AccountName string // acnt_nm
	BranchName  string // brch_nm

	Deposit               int64 // entr 예수금
	D2Deposit             int64 // d2_entra D+2추정예수금
	TotalEvalAmount       int64 // tot_est_amt 유가잔고평가액
	AssetEvalAmount       int64 // aset_evlt_amt 예탁자산평가액
	TotalPurchaseAmount   int64 // tot_pur_amt 총매입금액
	EstimatedDepositAsset int64 // prsm_dpst_aset_amt 추정예탁자산
	TotalLoanAmount       int64 // tot_grnt_sella 매도담보대출금

	TodayInvestPrincipal int64 // tdy_lspft_amt 당일투자원금
	MonthInvestPrincipal int64 // invt_bsamt 당월투자원금
	AccumInvestPrincipal int64 // lspft_amt 누적투자원금

	TodayProfitLoss int64 // tdy_lspft 당일투자손익
	MonthProfitLoss int64 // lspft2 당월투자손익
	AccumProfitLoss int64 // lspft 누적투자손익

	TodayProfitRate float64 // tdy_lspft_rt 당일손익율
	MonthProfitRate float64 // lspft_ratio 당월손익율
	AccumProfitRate float64 // lspft_rt 누적손익율

	Holdings []AccountHolding
}

// AccountHolding is one held position within the account snapshot.
type AccountHolding struct {
	StockCode string  // stk_cd
	StockName string  // stk_nm
	RemainQty int64   // rmnd_qty 보유수량
	AvgPrice  float64 // avg_prc 평균단가

	CurrentPrice   int64   // cur_prc
	EvalAmount     int64   // evlt_amt 평가금액
	ProfitLoss     int64   // pl_amt 손익금액
	ProfitLossRate float64 // pl_rt 손익율

	LoanDate        string // loan_dt
	PurchaseAmount  int64  // pur_amt 매입금액
	SettlementQty   int64  // setl_remn 결제잔고
	PrevDayBuyQty   int64  // pred_buyq
	PrevDaySellQty  int64  // pred_sellq
	TodayBuyQty     int64  // tdy_buyq
	TodaySellQty    int64  // tdy_sellq
}
