package entity

import "time"

// OrderBookSnapshot holds the top-of-book aggregate remain quantities for an
// instrument at a point in time. Snapshots are append-only: repeated cycles
// legitimately produce multiple rows for the same code and time.
type OrderBookSnapshot struct {
	StockCode       string    // Instrument code
	Time            time.Time // Quote base time reconstructed from bid_req_base_tm
	TotalSellRemain int64     // Outstanding sell-side quantity (tot_sel_req)
	TotalBuyRemain  int64     // Outstanding buy-side quantity (tot_buy_req)
}
