// Package dto はmarketdataフィーチャーのHTTPレスポンス型を定義します。
package dto

// TickResponse は1件のティックのJSON表現です。
type TickResponse struct {
	Time            string  `json:"time"`
	CurrentPrice    int64   `json:"current_price"`
	DiffFromPrev    int64   `json:"diff_from_prev"`
	DiffSign        string  `json:"diff_sign"`
	FluctuationRate float64 `json:"fluctuation_rate"`
	Volume          int64   `json:"volume"`
	AccTradeValue   int64   `json:"acc_trade_value"`
	AccTradeVolume  int64   `json:"acc_trade_volume"`
	VolumePower     float64 `json:"volume_power"`
}

// OrderBookResponse は1件の板スナップショットのJSON表現です。
type OrderBookResponse struct {
	Time            string `json:"time"`
	TotalSellRemain int64  `json:"total_sell_remain"`
	TotalBuyRemain  int64  `json:"total_buy_remain"`
}

// CandleResponse は1本の日足のJSON表現です。
type CandleResponse struct {
	Date         string  `json:"date"`
	Open         int64   `json:"open"`
	High         int64   `json:"high"`
	Low          int64   `json:"low"`
	Close        int64   `json:"close"`
	Volume       int64   `json:"volume"`
	TradingValue int64   `json:"trading_value"`
	TurnoverRate float64 `json:"turnover_rate"`
}

// FlowResponse は1件の投資主体別売買データのJSON表現です。
type FlowResponse struct {
	Time         string `json:"time"`
	Date         string `json:"date"`
	CurrentPrice int64  `json:"current_price"`
	Volume       int64  `json:"volume"`

	Individual  int64 `json:"individual"`
	Foreigner   int64 `json:"foreigner"`
	Institution int64 `json:"institution"`
	PensionFund int64 `json:"pension_fund"`
	PrivateFund int64 `json:"private_fund"`
}
