package entity

import "time"

// InvestorFlow is the net buy-minus-sell quantity attributed to each market
// participant category for an instrument and date, together with a price and
// volume snapshot taken at collection time. Flows are append-only; every
// cycle stores a fresh row stamped with its own collection time.
type InvestorFlow struct {
	Time            time.Time // Collection timestamp
	StockCode       string    // Instrument code
	Date            time.Time // Trade date the flow belongs to (dt)
	CurrentPrice    int64     // Price at collection (cur_prc)
	DiffFromPrev    int64     // Delta versus prior close (pred_pre)
	FluctuationRate float64   // Change percentage (flu_rt)
	Volume          int64     // Cumulative traded volume (acc_trde_qty)
	TradingValue    int64     // Cumulative traded value (acc_trde_prica)

	// Net flow per investor category.
	Individual      int64 // ind_invsr
	Foreigner       int64 // frgnr_invsr
	Institution     int64 // orgn
	FinancialInvest int64 // fnnc_invt
	Insurance       int64 // insrnc
	InvestmentTrust int64 // invtrt
	EtcFinance      int64 // etc_fnnc
	Bank            int64 // bank
	PensionFund     int64 // penfnd_etc
	PrivateFund     int64 // samo_fund
	Nation          int64 // natn
	EtcCorp         int64 // etc_corp
	ForeignNational int64 // natfor
}
