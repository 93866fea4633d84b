package entity

import "time"

// DailyCandle is the OHLCV summary for one instrument over one calendar day.
// Candles are unique per (StockCode, Date).
type DailyCandle struct {
	StockCode    string    // Instrument code
	Date         time.Time // Calendar date (dt)
	OpenPrice    int64     // Opening price (open_pric)
	HighPrice    int64     // Highest price (high_pric)
	LowPrice     int64     // Lowest price (low_pric)
	ClosePrice   int64     // Closing/current price (cur_prc)
	Volume       int64     // Trading volume (trde_qty)
	TradingValue int64     // Traded value (trde_prica)
	DiffFromPrev int64     // Delta versus prior day (pred_pre)
	DiffSign     string    // Sign marker for the delta (pred_pre_sig)
	TurnoverRate float64   // Turnover rate (trde_tern_rt)
}
