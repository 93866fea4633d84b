// Package dto はKiwoom市場データレスポンスのデータ転送オブジェクトを定義します。
// 数値フィールドは全て文字列で届き、符号プレフィックスや桁区切りを含むことが
// あります。正規化はここではなくアダプター側で行います。
package dto

// PriceTickResponse はka10046（約定強度）のレスポンスを表します。
// リストは新しい順で、先頭要素のみを使用します。
type PriceTickResponse struct {
	List []PriceTickRow `json:"cntr_str_tm"`
}

// PriceTickRow は約定強度リストの1要素です。
type PriceTickRow struct {
	Time            string `json:"cntr_tm"`
	CurrentPrice    string `json:"cur_prc"`
	DiffFromPrev    string `json:"pred_pre"`
	DiffSign        string `json:"pred_pre_sig"`
	FluctuationRate string `json:"flu_rt"`
	Volume          string `json:"trde_qty"`
	AccTradeValue   string `json:"acc_trde_prica"`
	AccTradeVolume  string `json:"acc_trde_qty"`
	VolumePower     string `json:"cntr_str"`
	VolumePower5m   string `json:"cntr_str_5min"`
	VolumePower20m  string `json:"cntr_str_20min"`
	VolumePower60m  string `json:"cntr_str_60min"`
	ExchangeType    string `json:"stex_tp"`
}

// OrderBookFields はka10004（板情報）の気配フィールドを保持します。
// 上流によってレスポンスのトップレベルに現れる場合と、"output"サブオブジェクト
// に包まれる場合があります。
type OrderBookFields struct {
	Time            string `json:"bid_req_base_tm"`
	TotalSellRemain string `json:"tot_sel_req"`
	TotalBuyRemain  string `json:"tot_buy_req"`
}

// OrderBookResponse はka10004のレスポンスエンベロープを表します。
type OrderBookResponse struct {
	OrderBookFields
	Output *OrderBookFields `json:"output"`
}

// Fields は上流がどちらの形で返しても気配フィールドを取り出します。
func (r *OrderBookResponse) Fields() OrderBookFields {
	if r.Output != nil {
		return *r.Output
	}
	return r.OrderBookFields
}

// DailyCandleResponse はka10081（日足チャート）のレスポンスを表します。
type DailyCandleResponse struct {
	List []DailyCandleRow `json:"stk_dt_pole_chart_qry"`
}

// DailyCandleRow は日足チャートリストの1要素です。
type DailyCandleRow struct {
	Date         string `json:"dt"`
	CurrentPrice string `json:"cur_prc"`
	Volume       string `json:"trde_qty"`
	TradingValue string `json:"trde_prica"`
	OpenPrice    string `json:"open_pric"`
	HighPrice    string `json:"high_pric"`
	LowPrice     string `json:"low_pric"`
	DiffFromPrev string `json:"pred_pre"`
	DiffSign     string `json:"pred_pre_sig"`
	TurnoverRate string `json:"trde_tern_rt"`
}

// InvestorFlowResponse はka10059（投資主体別売買）のレスポンスを表します。
type InvestorFlowResponse struct {
	List []InvestorFlowRow `json:"stk_invsr_orgn"`
}

// InvestorFlowRow は投資主体別売買リストの1要素です。
type InvestorFlowRow struct {
	Date            string `json:"dt"`
	CurrentPrice    string `json:"cur_prc"`
	DiffFromPrev    string `json:"pred_pre"`
	FluctuationRate string `json:"flu_rt"`
	Volume          string `json:"acc_trde_qty"`
	TradingValue    string `json:"acc_trde_prica"`
	Individual      string `json:"ind_invsr"`
	Foreigner       string `json:"frgnr_invsr"`
	Institution     string `json:"orgn"`
	FinancialInvest string `json:"fnnc_invt"`
	Insurance       string `json:"insrnc"`
	InvestmentTrust string `json:"invtrt"`
	EtcFinance      string `json:"etc_fnnc"`
	Bank            string `json:"bank"`
	PensionFund     string `json:"penfnd_etc"`
	PrivateFund     string `json:"samo_fund"`
	Nation          string `json:"natn"`
	EtcCorp         string `json:"etc_corp"`
	ForeignNational string `json:"natfor"`
}
