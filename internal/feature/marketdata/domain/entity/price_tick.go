// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// PriceTick is a single execution-strength observation for an instrument.
// Ticks are unique per (StockCode, Time); repeated collection of the same
// upstream record must not produce a second row.
type PriceTick struct {
	StockCode       string    // Instrument code (e.g., "005930")
	Time            time.Time // Execution time reconstructed from cntr_tm
	CurrentPrice    int64     // Last price (cur_prc)
	DiffFromPrev    int64     // Delta versus prior close (pred_pre)
	DiffSign        string    // Sign marker for the delta (pred_pre_sig)
	FluctuationRate float64   // Change percentage (flu_rt)
	Volume          int64     // Volume for the tick (trde_qty)
	AccTradeValue   int64     // Cumulative traded value (acc_trde_prica)
	AccTradeVolume  int64     // Cumulative traded volume (acc_trde_qty)
	VolumePower     float64   // Instantaneous buy-vs-sell pressure (cntr_str)
	VolumePower5m   float64   // 5-minute window (cntr_str_5min)
	VolumePower20m  float64   // 20-minute window (cntr_str_20min)
	VolumePower60m  float64   // 60-minute window (cntr_str_60min)
	ExchangeType    string    // Exchange tag (stex_tp)
}
